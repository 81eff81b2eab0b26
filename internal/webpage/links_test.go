package webpage

import (
	"reflect"
	"testing"
)

func TestExtractLinks(t *testing.T) {
	html := `<head>
		<link rel="canonical" href="https://example.com/sample-page/" />
		<link rel="canonical" href="http://localhost:8787/sample-page/" />
	 </head>
	 <body>
		<a href="foo/bar"><img src="/baz.png"></a>
		<img src="/stonk">
		<a href="foo/bar">
	</body>`

	got := extractLinks("http://localhost:8787", html)
	want := []string{
		"https://example.com/sample-page/",
		"http://localhost:8787/sample-page/",
		"http://localhost:8787/foo/bar",
		"http://localhost:8787/foo/bar",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extractLinks: expected %v got %v", want, got)
	}
}

func TestExtractLinksExcludesAssets(t *testing.T) {
	html := `<a href="/style.css">css</a><a href="/page">page</a>`
	got := extractLinks("http://localhost", html)
	want := []string{"http://localhost/page"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extractLinks: expected %v got %v", want, got)
	}
}

func TestIsInternalURL(t *testing.T) {
	seed, _ := ParseSeed("http://example.com/")
	internal, _ := ParseSeed("http://example.com/foo")
	external, _ := ParseSeed("http://other.com/foo")

	if !IsInternalURL(seed, internal) {
		t.Errorf("IsInternalURL: expected %s to be internal to %s", internal, seed)
	}
	if IsInternalURL(seed, external) {
		t.Errorf("IsInternalURL: expected %s to be external to %s", external, seed)
	}
}
