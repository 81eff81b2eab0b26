package query

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/codepr/tse/internal/webpage"
)

// RankedDoc is a ResultDoc enriched with the metadata rendered per §4.3.4.
type RankedDoc struct {
	ResultDoc
	URL     string
	Title   string
	Snippet string
}

// maxSnippetBytes is the §4.3.4 cap on the rendered snippet length.
const maxSnippetBytes = 128

// Rank sorts results by score descending (ties broken by ascending doc id
// for determinism) and enriches each with url/title/snippet metadata loaded
// from pageDir. A document whose PageRecord cannot be loaded is rendered
// with empty metadata rather than dropped or treated as an error (§7).
func Rank(results []ResultDoc, pageDir string) []RankedDoc {
	sorted := make([]ResultDoc, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].DocID < sorted[j].DocID
	})

	ranked := make([]RankedDoc, len(sorted))
	for i, r := range sorted {
		ranked[i] = RankedDoc{ResultDoc: r}
		page, err := webpage.Load(pageDir, r.DocID)
		if err != nil {
			continue
		}
		ranked[i].URL = page.URL()
		ranked[i].Title = extractTitle(page.HTML())
		ranked[i].Snippet = extractSnippet(page.HTML())
		page.Release()
	}
	return ranked
}

// extractTitle returns the substring between the first "<title>" and the
// following "</title>", or "" if either marker is absent. §9 explicitly
// calls for substring-first-match behaviour here rather than full HTML
// parsing, so malformed or nested markup is handled the same surprising
// way a naive grep-for-the-tag would handle it.
func extractTitle(html string) string {
	lower := strings.ToLower(html)
	start := strings.Index(lower, "<title>")
	if start < 0 {
		return ""
	}
	start += len("<title>")
	end := strings.Index(lower[start:], "</title>")
	if end < 0 {
		return ""
	}
	return html[start : start+end]
}

// extractSnippet returns the content="..." attribute value of the first
// <meta name="description" ...> element, truncated to maxSnippetBytes. Like
// extractTitle, this is deliberately substring search, not HTML parsing.
func extractSnippet(html string) string {
	lower := strings.ToLower(html)
	marker := `<meta name="description"`
	start := strings.Index(lower, marker)
	if start < 0 {
		return ""
	}
	contentMarker := `content="`
	contentStart := strings.Index(lower[start:], contentMarker)
	if contentStart < 0 {
		return ""
	}
	contentStart = start + contentStart + len(contentMarker)
	end := strings.Index(html[contentStart:], `"`)
	if end < 0 {
		return ""
	}
	snippet := html[contentStart : contentStart+end]
	if len(snippet) > maxSnippetBytes {
		snippet = snippet[:maxSnippetBytes]
	}
	return snippet
}

// Render writes the ranked results to w in §4.3.4's rendering format:
//
//	title: <title>
//	rank:<score> doc:<doc_id> : <url>
//	<snippet>...
//	<blank line>
func Render(w io.Writer, docs []RankedDoc) {
	for _, d := range docs {
		fmt.Fprintf(w, "title: %s\n", d.Title)
		fmt.Fprintf(w, "rank:%s doc:%s : %s\n", strconv.Itoa(d.Score), strconv.Itoa(d.DocID), d.URL)
		fmt.Fprintf(w, "%s...\n", d.Snippet)
		fmt.Fprintln(w)
	}
}
