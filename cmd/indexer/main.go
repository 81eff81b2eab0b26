// Command indexer walks a crawled page directory and builds an inverted
// index file from the words in each page.
//
// Usage:
//
//	indexer <page_dir> <index_file>
package main

import (
	"flag"
	"log"
	"os"

	"github.com/codepr/tse/internal/index"
)

func usage() {
	os.Stderr.WriteString("usage: indexer <page_dir> <index_file>\n")
}

func main() {
	logger := log.New(os.Stderr, "indexer: ", log.LstdFlags)
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
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

	ix, err := index.Build(pageDir)
	if err != nil {
		logger.Println(err)
		os.Exit(1)
	}

	if err := index.Save(ix, indexFile); err != nil {
		logger.Println(err)
		os.Exit(1)
	}
}
