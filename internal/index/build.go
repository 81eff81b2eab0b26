package index

import (
	"fmt"
	"io/ioutil"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/codepr/tse/internal/webpage"
)

// Build walks pageDir, tokenises every page's words and returns the
// resulting Index, following §4.2's procedure exactly: directories are
// enumerated, filtered to integer-named entries, sorted ascending by DocId,
// then loaded and indexed in that order. A page that fails to load aborts
// the build (§4.2's failure semantics).
func Build(pageDir string) (*Index, error) {
	docIDs, err := listDocIDs(pageDir)
	if err != nil {
		return nil, fmt.Errorf("enumerating page directory: %w", err)
	}

	ix := New()
	for _, docID := range docIDs {
		page, err := webpage.Load(pageDir, docID)
		if err != nil {
			return nil, fmt.Errorf("loading page %d: %w", docID, err)
		}
		for _, word := range page.Words() {
			if normalised, ok := normalise(word); ok {
				ix.Add(normalised, docID)
			}
		}
		page.Release()
	}
	return ix, nil
}

// listDocIDs enumerates pageDir's entries whose names do not start with
// '.', parses each as a DocId, and returns them sorted ascending.
func listDocIDs(pageDir string) ([]int, error) {
	entries, err := ioutil.ReadDir(pageDir)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		id, err := strconv.Atoi(name)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

// normalise applies §4.2 step 3's word normalisation gate: a token is
// accepted iff non-empty, at least 3 runes long, and every rune is
// alphabetic, in which case it is lowercased; otherwise it is rejected.
func normalise(word string) (string, bool) {
	if len([]rune(word)) < 3 {
		return "", false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return "", false
		}
	}
	return strings.ToLower(word), true
}
