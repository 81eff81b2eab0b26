package index

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir, err := ioutil.TempDir("", "index-test")
	if err != nil {
		t.Fatalf("TempDir: %v", err)
	}
	defer os.RemoveAll(dir)

	ix := New()
	ix.Add("dartmouth", 1)
	ix.Add("dartmouth", 1)
	ix.Add("computer", 1)
	ix.Add("computer", 2)
	ix.Add("computer", 2)
	ix.Add("science", 2)

	path := filepath.Join(dir, "index.dat")
	if err := Save(ix, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ix.Equal(loaded) {
		t.Errorf("round trip: loaded index differs from original")
	}
}

func TestLoadMalformedLine(t *testing.T) {
	dir, err := ioutil.TempDir("", "index-test")
	if err != nil {
		t.Fatalf("TempDir: %v", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "index.dat")
	if err := ioutil.WriteFile(path, []byte("word 1\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Errorf("expected error loading a line with an odd number of fields")
	}
}
