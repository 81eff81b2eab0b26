package crawler

import (
	"encoding/json"

	"github.com/codepr/tse/internal/messaging"
)

// SavedPageEvent describes one page as it is persisted to the page
// directory, reported through Settings.Reporter for any decoupled consumer
// (a progress bar, a log shipper, a metrics exporter) that wants to observe
// the crawl as it happens, in the same spirit as the reference crawler's
// ParsedResult events.
type SavedPageEvent struct {
	DocID int    `json:"doc_id"`
	URL   string `json:"url"`
	Depth int    `json:"depth"`
}

// noopProducer discards every event; it is the default Reporter when none
// is configured.
type noopProducer struct{}

func (noopProducer) Produce([]byte) error { return nil }

// report marshals a SavedPageEvent and sends it through reporter, logging
// (but not failing the crawl on) any producer error — event delivery is
// best-effort observability, not part of the crawl's correctness contract.
func (c *Crawler) report(docID int, url string, depth int) {
	payload, err := json.Marshal(SavedPageEvent{DocID: docID, URL: url, Depth: depth})
	if err != nil {
		return
	}
	if err := c.settings.Reporter.Produce(payload); err != nil {
		c.logger.Printf("reporter: %v", err)
	}
}

var _ messaging.Producer = noopProducer{}
