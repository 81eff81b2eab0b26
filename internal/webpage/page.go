package webpage

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
)

// Page is the in-memory representation of a single fetched document: its
// source URL, the depth at which it was discovered during a crawl, and its
// raw HTML body. It is the concrete collaborator behind the WebPage facility
// the crawler, indexer and query engine all depend on.
type Page struct {
	url   string
	depth int
	html  string
}

// New creates a Page for url at the given crawl depth, with no HTML fetched
// yet.
func New(rawURL string, depth int) *Page {
	return &Page{url: rawURL, depth: depth}
}

// Fetch retrieves the page's HTML body through f, populating HTML() and
// HTMLLen(). It is a no-op on the URL/depth already set at construction.
func (p *Page) Fetch(f Fetcher) error {
	html, err := f.Fetch(p.url)
	if err != nil {
		return err
	}
	p.html = html
	return nil
}

// URL returns the page's source URL.
func (p *Page) URL() string { return p.url }

// Depth returns the crawl depth at which the page was discovered.
func (p *Page) Depth() int { return p.depth }

// HTML returns the page's raw HTML body.
func (p *Page) HTML() string { return p.html }

// HTMLLen returns the byte length of the page's HTML body.
func (p *Page) HTMLLen() int { return len(p.html) }

// Release drops the page's HTML body, letting it be garbage collected as
// soon as callers are done consuming it (after link/word extraction in the
// crawler and indexer, after metadata extraction in the query engine).
func (p *Page) Release() {
	p.html = ""
}

// Links returns every internal-namespace-agnostic outbound URL discovered in
// the page's HTML, resolved to absolute form. Filtering by crawl namespace
// is the caller's responsibility (see IsInternalURL).
func (p *Page) Links() []string {
	return extractLinks(p.url, p.html)
}

// Words returns every raw candidate token in the page's HTML text, in
// left-to-right document order, with markup stripped. No normalisation
// (case folding, alphabetic/length filtering) is applied here — that is the
// indexer's job, so that this method matches the "one raw word at a time"
// contract of the original fetch facility precisely.
func (p *Page) Words() []string {
	text := stripTags(p.html)
	words := []string{}
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			words = append(words, b.String())
			b.Reset()
		}
	}
	for _, r := range text {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return words
}

// stripTags removes HTML tags (and their contents, for script/style
// elements) from html, returning the remaining text. It is a small linear
// scanner, not a full HTML5 tokenizer: the indexer's normalisation rule
// (alphabetic runes only, length >= 3) throws away tag fragments and entity
// leftovers anyway, so nothing beyond "don't index text that looks like
// markup" is required here.
func stripTags(html string) string {
	var out strings.Builder
	inTag := false
	skipUntil := "" // closing tag name we're skipping content for, if any
	i := 0
	n := len(html)
	for i < n {
		c := html[i]
		if !inTag && c == '<' {
			// Detect <script or <style to skip their raw content entirely.
			lower := strings.ToLower(html[i:min(i+8, n)])
			if strings.HasPrefix(lower, "<script") {
				skipUntil = "</script>"
			} else if strings.HasPrefix(lower, "<style") {
				skipUntil = "</style>"
			}
			inTag = true
			i++
			continue
		}
		if inTag {
			if c == '>' {
				inTag = false
				if skipUntil != "" {
					idx := strings.Index(strings.ToLower(html[i+1:]), skipUntil)
					if idx >= 0 {
						i = i + 1 + idx + len(skipUntil)
					} else {
						i = n
					}
					skipUntil = ""
					continue
				}
			}
			i++
			continue
		}
		out.WriteByte(c)
		i++
	}
	return out.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Save persists the page to <pageDir>/<docID> in the four-field newline
// separated format: url, depth, html length, then exactly html-length bytes
// of raw HTML with no trailing newline.
func (p *Page) Save(pageDir string, docID int) error {
	path := filepath.Join(pageDir, strconv.Itoa(docID))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("saving page %d: %w", docID, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := fmt.Fprintf(w, "%s\n%d\n%d\n%s", p.url, p.depth, len(p.html), p.html); err != nil {
		return fmt.Errorf("saving page %d: %w", docID, err)
	}
	return w.Flush()
}

// Load reads the page persisted as <pageDir>/<docID>, reproducing its url,
// depth, html length and html exactly as saved.
func Load(pageDir string, docID int) (*Page, error) {
	path := filepath.Join(pageDir, strconv.Itoa(docID))
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading page %d: %w", docID, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	rawURL, err := readLine(r)
	if err != nil {
		return nil, fmt.Errorf("loading page %d: %w", docID, err)
	}
	depthLine, err := readLine(r)
	if err != nil {
		return nil, fmt.Errorf("loading page %d: %w", docID, err)
	}
	depth, err := strconv.Atoi(depthLine)
	if err != nil {
		return nil, fmt.Errorf("loading page %d: bad depth %q: %w", docID, depthLine, err)
	}
	lenLine, err := readLine(r)
	if err != nil {
		return nil, fmt.Errorf("loading page %d: %w", docID, err)
	}
	htmlLen, err := strconv.Atoi(lenLine)
	if err != nil {
		return nil, fmt.Errorf("loading page %d: bad html length %q: %w", docID, lenLine, err)
	}
	html := make([]byte, htmlLen)
	if htmlLen > 0 {
		if _, err := io.ReadFull(r, html); err != nil {
			return nil, fmt.Errorf("loading page %d: %w", docID, err)
		}
	}
	return &Page{url: rawURL, depth: depth, html: string(html)}, nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSuffix(line, "\n"), nil
}

// ParseSeed parses the seed URL argument the crawler is invoked with,
// returning an error if it's not a well-formed absolute URL.
func ParseSeed(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("seed url %q is not absolute", raw)
	}
	return u, nil
}
