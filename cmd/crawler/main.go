// Command crawler performs a concurrent breadth-first crawl of a site
// starting from a seed URL, saving every fetched page under a numbered file
// in the given page directory.
//
// Usage:
//
//	crawler <seed_url> <page_dir> <max_depth>
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"strconv"

	"github.com/codepr/tse/internal/crawler"
	"github.com/codepr/tse/internal/env"
	"github.com/codepr/tse/internal/messaging"
)

func usage() {
	os.Stderr.WriteString("usage: crawler <seed_url> <page_dir> <max_depth>\n")
}

func main() {
	logger := log.New(os.Stderr, "crawler: ", log.LstdFlags)
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) != 3 {
		usage()
		os.Exit(1)
	}

	seedURL, pageDir := args[0], args[1]
	maxDepth, err := strconv.Atoi(args[2])
	if err != nil || maxDepth < 0 {
		logger.Println("max_depth must be a non-negative integer")
		os.Exit(1)
	}

	// queue decouples the crawl loop from progress reporting: the crawler
	// produces a SavedPageEvent per persisted page, and a consumer goroutine
	// drains them independently, in the same producer/consumer shape the
	// reference crawler used its message queue for.
	var queue messaging.ProducerConsumerCloser = messaging.NewChannelQueue()
	events := make(chan []byte)
	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		for payload := range events {
			var evt crawler.SavedPageEvent
			if err := json.Unmarshal(payload, &evt); err != nil {
				continue
			}
			logger.Printf("saved doc %d at depth %d: %s", evt.DocID, evt.Depth, evt.URL)
		}
	}()
	go func() {
		defer close(events)
		if err := queue.Consume(events); err != nil {
			logger.Println("message queue consume error:", err)
		}
	}()

	settings := crawler.Settings{
		SeedURL:  seedURL,
		PageDir:  pageDir,
		MaxDepth: maxDepth,
		Workers:  env.GetEnvAsInt("TSE_CONCURRENCY", 3),
		Logger:   logger,
		Reporter: queue,
	}

	c := crawler.New(settings)
	runErr := c.Run()

	queue.Close()
	<-consumerDone

	if runErr != nil {
		logger.Println(runErr)
		os.Exit(1)
	}
}
