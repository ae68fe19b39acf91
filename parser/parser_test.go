package parser

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const doc = `<osm>
 <node id="1" lat="1" lon="2"/>
 <way id="2"><nd ref="1"/></way>
 <relation id="3"/>
</osm>`

func countElements(t *testing.T, src Source) map[string]int {
	t.Helper()
	counts := map[string]int{}
	for {
		e, err := src.Next()
		if err == io.EOF {
			return counts
		}
		if err != nil {
			t.Fatal(err)
		}
		counts[e.Name]++
	}
}

func TestOpenXML(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "test.osm")
	if err := os.WriteFile(fname, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	src, err := Open(fname, []string{"node", "way"})
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()
	counts := countElements(t, src)
	if counts["node"] != 1 || counts["way"] != 1 || counts["relation"] != 0 {
		t.Error(counts)
	}
}

func TestOpenGzip(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "test.osm.gz")
	f, err := os.Create(fname)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte(doc)); err != nil {
		t.Fatal(err)
	}
	gz.Close()
	f.Close()

	src, err := Open(fname, nil)
	if err != nil {
		t.Fatal(err)
	}
	counts := countElements(t, src)
	if counts["node"] != 1 || counts["way"] != 1 || counts["relation"] != 1 {
		t.Error(counts)
	}
	if err := src.Close(); err != nil {
		t.Error(err)
	}
}

func TestOpenMissing(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.osm"), nil); err == nil {
		t.Error("expected error")
	}
}

func TestGlob(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.osm", "b.osm.gz", "sub/c.osm", "sub/d.txt"} {
		fname := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(fname), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(fname, []byte(doc), 0644); err != nil {
			t.Fatal(err)
		}
	}

	for _, tc := range []struct {
		pattern  string
		expected []string
	}{
		{"*.osm", []string{"a.osm"}},
		{"**/*.osm", []string{"a.osm", "sub/c.osm"}},
		{"*.{osm,osm.gz}", []string{"a.osm", "b.osm.gz"}},
		{"missing.osm", []string{"missing.osm"}},
	} {
		files, err := Glob(filepath.Join(dir, tc.pattern))
		if err != nil {
			t.Fatal(tc.pattern, err)
		}
		var rel []string
		for _, f := range files {
			r, _ := filepath.Rel(dir, f)
			rel = append(rel, filepath.ToSlash(r))
		}
		if !reflect.DeepEqual(rel, tc.expected) {
			t.Errorf("%s: %v != %v", tc.pattern, rel, tc.expected)
		}
	}

	if _, err := Glob(filepath.Join(dir, "*.pbf")); err == nil {
		t.Error("expected error for pattern without matches")
	}
}
