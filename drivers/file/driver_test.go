package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/birkland/servefs"
	"github.com/birkland/servefs/drivers/file"
)

const textContent = "hello world"

func setupTestFile(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(path, []byte(textContent), 0644); err != nil {
		t.Fatalf("could not write test file: %s", err)
	}
	return path
}

func TestNewDriver(t *testing.T) {
	path := setupTestFile(t)

	cases := []struct {
		name      string
		path      string
		expectErr bool
	}{
		{"validFile", path, false},
		{"dottedPath", filepath.Join(filepath.Dir(path), ".", "file.txt"), false},
		{"fileNoExist", "DOES_NOT_EXIST", true},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			_, err := file.NewDriver(c.path)
			if (err != nil) != c.expectErr {
				t.Errorf("expected error: %t, got error: %t", c.expectErr, (err != nil))
			}
		})
	}
}

func TestResolveIgnoresSegment(t *testing.T) {
	d, err := file.NewDriver(setupTestFile(t))
	if err != nil {
		t.Fatalf("Error setting up driver: %+v", err)
	}

	for _, segment := range []string{"", "file.txt", "anything/else", "../../etc/passwd"} {
		segment := segment
		t.Run(segment, func(t *testing.T) {
			content, err := d.Resolve(context.Background(), segment)
			if err != nil {
				t.Fatalf("unexpected error %+v", err)
			}

			if content.Status != servefs.OK {
				t.Fatalf("Expected status OK, got %s", content.Status)
			}

			if string(content.Body) != textContent {
				t.Errorf("Expected body %q, got %q", textContent, content.Body)
			}

			if content.ContentType != "text/plain;charset=utf-8" {
				t.Errorf("Unexpected content type %q", content.ContentType)
			}
		})
	}
}

// The path is fixed at construction, so a file removed afterwards is NotFound
func TestResolveRemovedFile(t *testing.T) {
	path := setupTestFile(t)
	d, err := file.NewDriver(path)
	if err != nil {
		t.Fatalf("Error setting up driver: %+v", err)
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("could not remove %s: %s", path, err)
	}

	content, err := d.Resolve(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error %+v", err)
	}

	if content.Status != servefs.NotFound {
		t.Errorf("Expected NotFound, got %s", content.Status)
	}
}

func TestResolveChangedContent(t *testing.T) {
	path := setupTestFile(t)
	d, err := file.NewDriver(path)
	if err != nil {
		t.Fatalf("Error setting up driver: %+v", err)
	}

	if err := os.WriteFile(path, []byte("changed"), 0644); err != nil {
		t.Fatalf("could not rewrite %s: %s", path, err)
	}

	content, _ := d.Resolve(context.Background(), "")
	if string(content.Body) != "changed" {
		t.Errorf("Expected the file to be read on each request, got %q", content.Body)
	}
}
