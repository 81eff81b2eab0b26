package webpage

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir, err := ioutil.TempDir("", "webpage-test")
	if err != nil {
		t.Fatalf("TempDir: %v", err)
	}
	defer os.RemoveAll(dir)

	p := New("http://example.com/foo", 2)
	p.html = "<html><body>hello world</body></html>"

	if err := p.Save(dir, 3); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(dir, 3)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.URL() != p.URL() {
		t.Errorf("URL: expected %q got %q", p.URL(), loaded.URL())
	}
	if loaded.Depth() != p.Depth() {
		t.Errorf("Depth: expected %d got %d", p.Depth(), loaded.Depth())
	}
	if loaded.HTMLLen() != p.HTMLLen() {
		t.Errorf("HTMLLen: expected %d got %d", p.HTMLLen(), loaded.HTMLLen())
	}
	if loaded.HTML() != p.HTML() {
		t.Errorf("HTML: expected %q got %q", p.HTML(), loaded.HTML())
	}
}

func TestSaveFileLayout(t *testing.T) {
	dir, err := ioutil.TempDir("", "webpage-test")
	if err != nil {
		t.Fatalf("TempDir: %v", err)
	}
	defer os.RemoveAll(dir)

	p := New("http://example.com/", 0)
	p.html = "<html></html>"
	if err := p.Save(dir, 1); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, err := ioutil.ReadFile(filepath.Join(dir, "1"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := "http://example.com/\n0\n13\n<html></html>"
	if string(raw) != want {
		t.Errorf("file layout: expected %q got %q", want, string(raw))
	}
}

func TestWords(t *testing.T) {
	p := New("http://example.com/", 0)
	p.html = `<html><head><title>Dartmouth CS</title></head>
		<body><script>var x = 1;</script>
		<p>Dartmouth computer science, computer science!</p>
		</body></html>`

	got := p.Words()
	want := []string{
		"Dartmouth", "CS", "Dartmouth", "computer", "science", "computer", "science",
	}
	if len(got) != len(want) {
		t.Fatalf("Words: expected %v got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Words[%d]: expected %q got %q", i, want[i], got[i])
		}
	}
}

func TestWordsSplitsOnDigits(t *testing.T) {
	p := New("http://example.com/", 0)
	p.html = `<p>covid19vaccine research</p>`

	got := p.Words()
	want := []string{"covid", "vaccine", "research"}
	if len(got) != len(want) {
		t.Fatalf("Words: expected %v got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Words[%d]: expected %q got %q", i, want[i], got[i])
		}
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	f := NewFetcher("test-agent", 2*time.Second)
	p := New(srv.URL, 0)
	if err := p.Fetch(f); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if p.HTML() != "<html><body>ok</body></html>" {
		t.Errorf("Fetch: unexpected html %q", p.HTML())
	}
}

func TestFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher("test-agent", 2*time.Second)
	p := New(srv.URL, 0)
	if err := p.Fetch(f); err == nil {
		t.Errorf("Fetch: expected error for 404 response")
	}
}
