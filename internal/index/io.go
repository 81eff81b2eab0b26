package index

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Save serialises ix to path, one line per Entry:
//
//	word doc_id_1 count_1 doc_id_2 count_2 ... doc_id_N count_N
//
// Entry order within a line is the word's insertion order; line order
// across the file is unspecified.
func Save(ix *Index, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for word, e := range ix.entries {
		if _, err := w.WriteString(word); err != nil {
			return fmt.Errorf("writing index: %w", err)
		}
		for _, p := range e.postings {
			if _, err := fmt.Fprintf(w, " %d %d", p.DocID, p.Count); err != nil {
				return fmt.Errorf("writing index: %w", err)
			}
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing index: %w", err)
		}
	}
	return w.Flush()
}

// Load reads an index file previously written by Save.
func Load(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading index: %w", err)
	}
	defer f.Close()

	ix := New()
	scanner := bufio.NewScanner(f)
	// Lines can be arbitrarily long for very popular words.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if err := loadLine(ix, line); err != nil {
			return nil, fmt.Errorf("reading index: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading index: %w", err)
	}
	return ix, nil
}

func loadLine(ix *Index, line string) error {
	fields := strings.Split(line, " ")
	if len(fields) < 3 || len(fields)%2 != 1 {
		return fmt.Errorf("malformed index line %q", line)
	}
	word := fields[0]
	e := newEntry(word)
	for i := 1; i < len(fields); i += 2 {
		docID, err := strconv.Atoi(fields[i])
		if err != nil {
			return fmt.Errorf("malformed doc id in line %q: %w", line, err)
		}
		count, err := strconv.Atoi(fields[i+1])
		if err != nil {
			return fmt.Errorf("malformed count in line %q: %w", line, err)
		}
		e.pos[docID] = len(e.postings)
		e.postings = append(e.postings, Posting{DocID: docID, Count: count})
	}
	ix.entries[word] = e
	return nil
}
