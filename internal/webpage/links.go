package webpage

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// excludedExts mirrors the reference parser's default asset exclusion pool:
// links to these extensions are never worth enqueuing as crawl targets.
var excludedExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".svg": true,
	".css": true, ".js": true, ".ico": true, ".pdf": true, ".zip": true,
}

// extractLinks walks an HTML document with goquery and returns every anchor
// href and canonical link, resolved against baseURL into absolute form.
// Adapted from the reference GoqueryParser.extractLinks: here we return
// plain strings and perform no deduplication, since deduplication against
// the visited set is the crawler's job, not the page's.
func extractLinks(baseURL string, html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	found := []string{}
	doc.Find("a,link").FilterFunction(func(i int, sel *goquery.Selection) bool {
		href, hrefExists := sel.Attr("href")
		rel, relExists := sel.Attr("rel")
		anchorOK := sel.Is("a") && hrefExists && !excludedExts[filepath.Ext(href)]
		linkOK := relExists && rel == "canonical" && !excludedExts[filepath.Ext(href)]
		return anchorOK || linkOK
	}).Each(func(i int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if resolved, ok := resolveRelativeURL(baseURL, href); ok {
			found = append(found, resolved.String())
		}
	})
	return found
}

// resolveRelativeURL joins a base domain to a possibly-relative href to
// produce an absolute URL to crawl.
func resolveRelativeURL(baseURL, relative string) (*url.URL, bool) {
	u, err := url.Parse(relative)
	if err != nil {
		return nil, false
	}
	if u.Hostname() != "" {
		return u, true
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, false
	}
	return base.ResolveReference(u), true
}

// IsInternalURL reports whether candidate belongs to the same host as seed,
// the crawl's target namespace. An empty hostname (already-relative,
// already-resolved link) is treated as internal.
func IsInternalURL(seed, candidate *url.URL) bool {
	return candidate.Hostname() == "" || candidate.Hostname() == seed.Hostname()
}
