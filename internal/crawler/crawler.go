// Package crawler implements the concurrent breadth-first web crawler:
// starting from a seed URL, it fetches and persists every reachable page in
// the seed's internal URL namespace up to a bounded depth, using a fixed
// pool of worker goroutines sharing a single mutex-guarded frontier,
// visited set and DocId counter.
package crawler

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/codepr/tse/internal/messaging"
	"github.com/codepr/tse/internal/webpage"
)

// Default number of concurrent crawl workers, matching the reference design
// of §4.1 step 2.
const defaultWorkers = 3

// Default per-request fetch timeout.
const defaultFetchTimeout = 10 * time.Second

// Settings configures a single crawl run.
type Settings struct {
	// SeedURL is the starting point of the crawl.
	SeedURL string
	// PageDir is the directory pages are saved into, created with mode 0755
	// if it does not already exist.
	PageDir string
	// MaxDepth bounds how many link-hops from the seed a page may be at and
	// still be fetched.
	MaxDepth int
	// Workers is the number of concurrent crawl goroutines. Defaults to 3.
	Workers int
	// Fetcher retrieves page bodies. Defaults to an http.Client-backed
	// fetcher if nil.
	Fetcher webpage.Fetcher
	// Logger receives diagnostics. Defaults to a stderr logger if nil.
	Logger *log.Logger
	// Reporter receives a SavedPageEvent for every page persisted during
	// the crawl. Defaults to a no-op producer if nil.
	Reporter messaging.Producer
}

// Option mutates Settings after construction, following the reference
// crawler's functional-options pattern.
type Option func(*Settings)

// WithWorkers overrides the worker pool size.
func WithWorkers(n int) Option {
	return func(s *Settings) { s.Workers = n }
}

// WithFetcher overrides the page fetcher, primarily for tests.
func WithFetcher(f webpage.Fetcher) Option {
	return func(s *Settings) { s.Fetcher = f }
}

// WithLogger overrides the diagnostics logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Settings) { s.Logger = l }
}

// Crawler coordinates the BFS traversal described by Settings.
type Crawler struct {
	settings Settings
	logger   *log.Logger
	fetcher  webpage.Fetcher
	seed     *url.URL
	scope    *internalScope

	// mu guards every piece of shared state touched by worker goroutines:
	// the frontier, the visited set and the DocId/added/retrieved counters.
	mu        sync.Mutex
	frontier  []*webpage.Page
	visited   map[string]struct{}
	nextDocID int
	added     int
	retrieved int
	fatal     error
}

// New constructs a Crawler from settings, applying any options on top.
func New(settings Settings, opts ...Option) *Crawler {
	if settings.Workers == 0 {
		settings.Workers = defaultWorkers
	}
	for _, opt := range opts {
		opt(&settings)
	}
	if settings.Logger == nil {
		settings.Logger = log.New(os.Stderr, "crawler: ", log.LstdFlags)
	}
	if settings.Fetcher == nil {
		settings.Fetcher = webpage.NewFetcher("tse-crawler/1.0", defaultFetchTimeout)
	}
	if settings.Reporter == nil {
		settings.Reporter = noopProducer{}
	}
	return &Crawler{
		settings:  settings,
		logger:    settings.Logger,
		fetcher:   settings.Fetcher,
		visited:   make(map[string]struct{}),
		nextDocID: 1,
	}
}

// Run executes the crawl to completion, returning the first fatal error
// encountered (a failed seed fetch, a failed mkdir, or a failed save).
// Fetch failures on non-seed pages are logged and otherwise non-fatal.
func (c *Crawler) Run() error {
	seed, err := webpage.ParseSeed(c.settings.SeedURL)
	if err != nil {
		return fmt.Errorf("invalid seed url: %w", err)
	}
	c.seed = seed

	if err := os.MkdirAll(c.settings.PageDir, 0755); err != nil {
		return fmt.Errorf("creating page directory: %w", err)
	}

	seedPage := webpage.New(c.settings.SeedURL, 0)
	if err := seedPage.Fetch(c.fetcher); err != nil {
		return fmt.Errorf("fetching seed url: %w", err)
	}
	if err := seedPage.Save(c.settings.PageDir, 1); err != nil {
		return fmt.Errorf("saving seed page: %w", err)
	}
	c.report(1, c.settings.SeedURL, 0)
	c.scope = newInternalScope(c.fetcher, seed, "tse-crawler/1.0")

	c.mu.Lock()
	c.visited[c.settings.SeedURL] = struct{}{}
	c.nextDocID = 2
	c.frontier = append(c.frontier, seedPage)
	c.added = 1
	c.retrieved = 0
	c.mu.Unlock()

	var wg sync.WaitGroup
	for i := 0; i < c.settings.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.worker()
		}()
	}
	wg.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fatal
}

// worker repeatedly dequeues a page from the frontier and expands its
// outbound links, following §4.1 steps 3-5 exactly: for each discovered
// URL, the visited-set check, the network fetch, the save and the enqueue
// run under the crawler's single mutex, which is the reference design's
// critical section and the simplest way to guarantee the at-most-one-save-
// per-URL invariant. A worker stops early once a fatal error (a failed
// save, per §4.1's failure semantics) has been recorded by any worker.
func (c *Crawler) worker() {
	for {
		c.mu.Lock()
		if c.fatal != nil {
			c.mu.Unlock()
			return
		}
		if len(c.frontier) == 0 {
			done := c.retrieved >= c.added
			c.mu.Unlock()
			if done {
				return
			}
			runtime.Gosched()
			continue
		}
		page := c.frontier[0]
		c.frontier = c.frontier[1:]
		c.mu.Unlock()

		c.expand(page)

		c.mu.Lock()
		c.retrieved++
		c.mu.Unlock()
	}
}

// expand iterates page's outbound links and, for every internal,
// not-yet-visited URL, fetches and saves a new page at page.Depth()+1,
// enqueuing it for further expansion. It acquires the crawler's mutex once
// per candidate URL so that visited-set membership, DocId assignment and
// the save-and-enqueue step are a single atomic operation. A fetch failure
// is logged and the URL is left out of the visited set (§4.1's non-seed
// failure semantics); a save failure is fatal and aborts the whole crawl.
func (c *Crawler) expand(page *webpage.Page) {
	if page.Depth() >= c.settings.MaxDepth {
		return
	}
	for _, rawLink := range page.Links() {
		link, err := url.Parse(rawLink)
		if err != nil {
			continue
		}
		if !webpage.IsInternalURL(c.seed, link) {
			continue
		}
		if !c.scope.Allowed(link) {
			continue
		}

		c.mu.Lock()
		if c.fatal != nil {
			c.mu.Unlock()
			return
		}
		if _, seen := c.visited[rawLink]; seen {
			c.mu.Unlock()
			continue
		}

		child := webpage.New(rawLink, page.Depth()+1)
		if err := child.Fetch(c.fetcher); err != nil {
			c.mu.Unlock()
			c.logger.Printf("fetch failed for %s: %v", rawLink, err)
			continue
		}

		docID := c.nextDocID
		if err := child.Save(c.settings.PageDir, docID); err != nil {
			c.fatal = fmt.Errorf("saving page for %s: %w", rawLink, err)
			c.mu.Unlock()
			return
		}
		c.nextDocID++
		c.visited[rawLink] = struct{}{}
		c.frontier = append(c.frontier, child)
		c.added++
		c.mu.Unlock()
		c.report(docID, rawLink, child.Depth())
	}
}
