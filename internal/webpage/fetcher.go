// Package webpage implements the single-page collaborator facility used by
// the crawler, indexer and query engine: fetching a remote page, extracting
// its outbound links and words, and persisting/loading it from the page
// directory.
package webpage

import (
	"crypto/tls"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/PuerkitoBio/rehttp"
)

// Fetcher retrieves the raw bytes of a remote resource. Implementations are
// expected to apply their own timeout and retry policy.
type Fetcher interface {
	Fetch(url string) (string, error)
}

// httpFetcher is the default Fetcher, backed by the standard library's
// http.Client wrapped in a retrying transport with exponential jittered
// backoff, same shape as the transport used by the reference crawler.
type httpFetcher struct {
	userAgent string
	client    *http.Client
}

// NewFetcher creates a Fetcher with the given user agent and per-request
// timeout. It retries temporary errors up to 3 times with an exponential
// jittered delay, exactly as the crawler's original HTTP client did.
func NewFetcher(userAgent string, timeout time.Duration) Fetcher {
	transport := rehttp.NewTransport(
		&http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
		rehttp.RetryAll(rehttp.RetryMaxRetries(3), rehttp.RetryTemporaryErr()),
		rehttp.ExpJitterDelay(1, 10*time.Second),
	)
	return &httpFetcher{
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout, Transport: transport},
	}
}

// Fetch makes a GET request to url and returns its body as a string, or any
// error that occurred performing the request or reading the response.
func (f *httpFetcher) Fetch(url string) (string, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.userAgent)

	res, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("fetching %s failed: %s", url, res.Status)
	}

	body, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("fetching %s failed: %w", url, err)
	}
	return string(body), nil
}
