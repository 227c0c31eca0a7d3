package resolv_test

import (
	"testing"

	"github.com/birkland/servefs/internal/resolv"
	public "github.com/birkland/servefs/resolv"
	"github.com/go-test/deep"
)

func TestParseMount(t *testing.T) {
	cases := []struct {
		ref      string
		expected resolv.Mount
	}{
		{"/static=dir:/srv/static", resolv.Mount{Route: "/static", Location: resolv.Location{Kind: public.Dir, Path: "/srv/static"}}},
		{"static/=DIR:/srv/static", resolv.Mount{Route: "/static", Location: resolv.Location{Kind: public.Dir, Path: "/srv/static"}}},
		{"=bundle:./site", resolv.Mount{Route: "/", Location: resolv.Location{Kind: public.Bundle, Path: "./site"}}},
		{"/=file:index.html", resolv.Mount{Route: "/", Location: resolv.Location{Kind: public.File, Path: "index.html"}}},
		{"/a/b=s3:bucket/prefix", resolv.Mount{Route: "/a/b", Location: resolv.Location{Kind: public.S3, Path: "bucket/prefix"}}},
		{"/win=dir:C:\\site", resolv.Mount{Route: "/win", Location: resolv.Location{Kind: public.Dir, Path: "C:\\site"}}},
	}

	for _, c := range cases {
		c := c
		t.Run(c.ref, func(t *testing.T) {
			m, err := resolv.ParseMount(c.ref)
			if err != nil {
				t.Fatalf("could not parse %s: %+v", c.ref, err)
			}

			if diffs := deep.Equal(c.expected, m); len(diffs) != 0 {
				t.Errorf("Parsed mount differs: %s", diffs)
			}
		})
	}
}

func TestParseMountErrors(t *testing.T) {
	for _, ref := range []string{
		"dir:/srv/static",
		"/static=/srv/static",
		"/static=ftp:/srv/static",
		"/static=dir:",
		"/static/*=dir:/srv/static",
		"/{name}=dir:/srv/static",
	} {
		if _, err := resolv.ParseMount(ref); err == nil {
			t.Errorf("expected an error parsing %s", ref)
		}
	}
}

func TestParseLocation(t *testing.T) {
	loc, err := resolv.ParseLocation("bundle:site")
	if err != nil {
		t.Fatalf("could not parse location: %+v", err)
	}

	if loc.Kind != public.Bundle || loc.Path != "site" {
		t.Errorf("unexpected location %s:%s", loc.Kind, loc.Path)
	}

	if _, err := resolv.ParseLocation("site"); err == nil {
		t.Errorf("expected an error parsing a location without a kind")
	}
}
