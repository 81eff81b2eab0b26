// Command query answers interactive boolean queries against a crawled page
// directory and its inverted index, following §4.3 and §6.4 of the search
// engine's query protocol.
//
// Usage:
//
//	query <page_dir> <index_file> [-q]
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/codepr/tse/internal/index"
	"github.com/codepr/tse/internal/query"
)

func usage() {
	os.Stderr.WriteString("usage: query <page_dir> <index_file> [-q]\n")
}

func main() {
	logger := log.New(os.Stderr, "query: ", log.LstdFlags)
	quiet := flag.Bool("q", false, "suppress the '> ' prompt")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	// flag.Parse stops at the first positional argument, so a trailing -q
	// (the documented position) is picked up here.
	if len(args) == 3 && args[2] == "-q" {
		*quiet = true
		args = args[:2]
	}
	if len(args) != 2 {
		usage()
		os.Exit(1)
	}
	pageDir, indexFile := args[0], args[1]

	info, err := os.Stat(pageDir)
	if err != nil || !info.IsDir() {
		logger.Printf("page directory %q does not exist or is not a directory", pageDir)
		os.Exit(1)
	}

	ix, err := index.Load(indexFile)
	if err != nil {
		logger.Println(err)
		os.Exit(1)
	}

	run(os.Stdin, os.Stdout, pageDir, ix, *quiet)
}

// run implements the §6.4 interactive protocol: prompt, read a query,
// validate and evaluate it, render results, repeat until EOF.
func run(in io.Reader, out io.Writer, pageDir string, ix *index.Index, quiet bool) {
	scanner := bufio.NewScanner(in)
	for {
		if !quiet {
			fmt.Fprint(out, "> ")
		}
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		tokens, err := query.Tokenize(line)
		if err != nil {
			fmt.Fprintln(out, "[invalid query]")
			continue
		}

		results, err := query.Evaluate(tokens, ix)
		if err != nil {
			fmt.Fprintln(out, "[invalid query]")
			continue
		}

		ranked := query.Rank(results, pageDir)
		query.Render(out, ranked)
	}
}
