package compiled_test

import (
	"context"
	"embed"
	"testing"

	"github.com/birkland/servefs"
	"github.com/birkland/servefs/bundle"
	"github.com/birkland/servefs/drivers/compiled"
)

//go:embed testdata/site
var site embed.FS

func loadSite(t *testing.T) *bundle.Dir {
	t.Helper()
	tree, err := bundle.FromFS(site, "testdata/site")
	if err != nil {
		t.Fatalf("could not load embedded site: %+v", err)
	}
	return tree
}

type resolveCase struct {
	name        string
	segment     string
	status      servefs.Status
	body        string
	contentType string
}

func runResolveCases(t *testing.T, d compiled.Driver, cases []resolveCase) {
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			content, err := d.Resolve(context.Background(), c.segment)
			if err != nil {
				t.Fatalf("unexpected error resolving '%s': %+v", c.segment, err)
			}

			if content.Status != c.status {
				t.Fatalf("Expected status %s for '%s', got %s", c.status, c.segment, content.Status)
			}

			if string(content.Body) != c.body {
				t.Errorf("Expected body %q, got %q", c.body, content.Body)
			}

			if content.ContentType != c.contentType {
				t.Errorf("Expected content type %q, got %q", c.contentType, content.ContentType)
			}
		})
	}
}

func TestResolveWithoutIndex(t *testing.T) {
	runResolveCases(t, compiled.New(loadSite(t)), []resolveCase{
		{"file", "css/app.css", servefs.OK, "body { color: blue; }", "text/css;charset=utf-8"},
		{"leadingSolidus", "/css/app.css", servefs.OK, "body { color: blue; }", "text/css;charset=utf-8"},
		{"rootFile", "index.html", servefs.OK, "<html>home</html>", "text/html;charset=utf-8"},
		{"markdown", "docs/guide.md", servefs.OK, "# Guide", "text/markdown;charset=utf-8"},
		{"noExtension", "blog/first-post", servefs.OK, "first post", ""},
		{"root", "", servefs.NotFound, "", ""},
		{"nonEmptyDir", "docs", servefs.NotFound, "", ""},
		{"missing", "css/missing.css", servefs.NotFound, "", ""},
		{"traversal", "css/../index.html", servefs.NotFound, "", ""},
		{"escape", "../../etc/passwd", servefs.NotFound, "", ""},
		{"curDir", "./index.html", servefs.NotFound, "", ""},
	})
}

func TestResolveWithIndex(t *testing.T) {
	runResolveCases(t, compiled.New(loadSite(t)).WithIndexFile("index.html"), []resolveCase{
		{"root", "", servefs.OK, "<html>home</html>", "text/html;charset=utf-8"},
		{"rootSolidus", "/", servefs.OK, "<html>home</html>", "text/html;charset=utf-8"},
		{"dir", "docs", servefs.OK, "<html>docs</html>", "text/html;charset=utf-8"},
		{"dirSolidus", "docs/", servefs.OK, "<html>docs</html>", "text/html;charset=utf-8"},
		{"dirWithoutIndex", "css", servefs.NotFound, "", ""},
		{"file", "css/app.css", servefs.OK, "body { color: blue; }", "text/css;charset=utf-8"},
		{"missing", "nope", servefs.NotFound, "", ""},
	})
}

func TestWithIndexFileCopies(t *testing.T) {
	plain := compiled.New(loadSite(t))
	indexed := plain.WithIndexFile("index.html")

	if plain.IndexFile() != "" {
		t.Errorf("WithIndexFile modified its receiver")
	}

	if indexed.Tree() != plain.Tree() {
		t.Errorf("configured driver should share the tree")
	}

	if indexed.WithIndexFile("").IndexFile() != "" {
		t.Errorf("an empty index file name should disable index files")
	}

	content, _ := plain.Resolve(context.Background(), "")
	if content.Status != servefs.NotFound {
		t.Errorf("unconfigured driver served an index: %s", content.Status)
	}
}

// A directory takes precedence over a file when looking up a path
func TestLookupPrefersDirectories(t *testing.T) {
	d := compiled.New(loadSite(t))

	cases := map[string]servefs.Type{
		"":            servefs.Dir,
		"docs":        servefs.Dir,
		"css/app.css": servefs.File,
	}

	for path, expected := range cases {
		entry, ok := d.Lookup(path)
		if !ok {
			t.Fatalf("could not find %q", path)
		}
		if entry.Type != expected {
			t.Errorf("Expected %q to be a %s, got %s", path, expected, entry.Type)
		}
	}

	if _, ok := d.Lookup("missing"); ok {
		t.Errorf("found an entry that does not exist")
	}
}

func TestResolveRepeatable(t *testing.T) {
	d := compiled.New(loadSite(t)).WithIndexFile("index.html")

	for _, segment := range []string{"", "css/app.css", "missing"} {
		first, _ := d.Resolve(context.Background(), segment)
		second, _ := d.Resolve(context.Background(), segment)

		if first.Status != second.Status || string(first.Body) != string(second.Body) ||
			first.ContentType != second.ContentType {
			t.Errorf("Resolving '%s' twice gave different results", segment)
		}
	}
}

func TestResolveBuiltTree(t *testing.T) {
	b := bundle.NewBuilder()
	if err := b.AddFile("app/index.htm", []byte("hi")); err != nil {
		t.Fatalf("could not add file: %+v", err)
	}
	tree, _ := b.Build()

	runResolveCases(t, compiled.New(tree).WithIndexFile("index.htm"), []resolveCase{
		{"dir", "app", servefs.OK, "hi", "text/html;charset=utf-8"},
		{"root", "", servefs.NotFound, "", ""},
	})
}

// Bodies are shared with the tree, but appending to one leaves the tree alone
func TestResolveBodyCapped(t *testing.T) {
	b := bundle.NewBuilder()
	contents := make([]byte, 2, 16)
	copy(contents, "ab")
	if err := b.AddFile("a.txt", contents); err != nil {
		t.Fatalf("could not add file: %+v", err)
	}
	tree, _ := b.Build()
	d := compiled.New(tree)

	content, _ := d.Resolve(context.Background(), "a.txt")
	if cap(content.Body) != len(content.Body) {
		t.Errorf("Expected a capped body, got len %d cap %d", len(content.Body), cap(content.Body))
	}

	_ = append(content.Body, 'c')

	if contents[:3][2] == 'c' {
		t.Errorf("appending to a body wrote into the tree's bytes")
	}
}
