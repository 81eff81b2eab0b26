// Package index implements the inverted index: the on-disk mapping from a
// normalised word to the set of (doc id, occurrence count) postings that
// word appears in, built by the indexer and consumed read-only by the query
// engine.
package index

// Posting is a single (doc id, count) pair within an Entry.
type Posting struct {
	DocID int
	Count int
}

// Entry is one word's postings, preserving the ascending order in which the
// word was first seen across documents during indexing.
type Entry struct {
	Word     string
	postings []Posting
	pos      map[int]int // DocID -> index into postings, for O(1) increment
}

// Postings returns the entry's postings in insertion order. The returned
// slice must not be mutated by callers.
func (e *Entry) Postings() []Posting {
	return e.postings
}

func newEntry(word string) *Entry {
	return &Entry{Word: word, pos: make(map[int]int)}
}

// add increments the posting for docID, creating it with count 1 if this is
// the first time docID has been seen for this entry's word.
func (e *Entry) add(docID int) {
	if i, ok := e.pos[docID]; ok {
		e.postings[i].Count++
		return
	}
	e.pos[docID] = len(e.postings)
	e.postings = append(e.postings, Posting{DocID: docID, Count: 1})
}

// Index is a mapping from word to Entry. No two entries share a word.
type Index struct {
	entries map[string]*Entry
}

// New creates an empty Index.
func New() *Index {
	return &Index{entries: make(map[string]*Entry)}
}

// Add records one occurrence of word in docID, creating the word's Entry if
// this is its first occurrence anywhere in the index.
func (ix *Index) Add(word string, docID int) {
	e, ok := ix.entries[word]
	if !ok {
		e = newEntry(word)
		ix.entries[word] = e
	}
	e.add(docID)
}

// Lookup returns the Entry for word, if any.
func (ix *Index) Lookup(word string) (*Entry, bool) {
	e, ok := ix.entries[word]
	return e, ok
}

// Len returns the number of distinct words in the index.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Equal reports whether ix and other map the same set of words to the same
// postings (same doc ids with the same counts each); posting order is not
// compared, since §3 only requires insertion order for serialisation, not
// for index equality.
func (ix *Index) Equal(other *Index) bool {
	if ix.Len() != other.Len() {
		return false
	}
	for word, e := range ix.entries {
		oe, ok := other.entries[word]
		if !ok || len(e.postings) != len(oe.postings) {
			return false
		}
		oCounts := make(map[int]int, len(oe.postings))
		for _, p := range oe.postings {
			oCounts[p.DocID] = p.Count
		}
		for _, p := range e.postings {
			if oCounts[p.DocID] != p.Count {
				return false
			}
		}
	}
	return true
}
