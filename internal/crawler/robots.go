package crawler

import (
	"net/url"

	"github.com/codepr/tse/internal/webpage"
	"github.com/temoto/robotstxt"
)

// robotsTxtPath is the well-known location robots.txt is expected at.
const robotsTxtPath = "/robots.txt"

// internalScope additionally restricts the crawl to what the seed host's
// robots.txt allows for our user agent, layered on top of the hostname
// equality check §4.1 requires. If no valid robots.txt is found, every URL
// in the seed's namespace is allowed, matching the reference crawler's "no
// robots.txt means full access" behaviour.
type internalScope struct {
	group *robotstxt.Group
}

// newInternalScope fetches and parses robots.txt for seed's host using f. A
// missing or unparsable robots.txt is not an error: it simply means no
// additional restriction is applied.
func newInternalScope(f webpage.Fetcher, seed *url.URL, userAgent string) *internalScope {
	target := *seed
	target.Path = robotsTxtPath
	target.RawQuery = ""

	body, err := f.Fetch(target.String())
	if err != nil {
		return &internalScope{}
	}
	data, err := robotstxt.FromString(body)
	if err != nil {
		return &internalScope{}
	}
	return &internalScope{group: data.FindGroup(userAgent)}
}

// Allowed reports whether link may be crawled under the scope's robots.txt
// rules. A scope with no parsed group allows everything.
func (s *internalScope) Allowed(link *url.URL) bool {
	if s == nil || s.group == nil {
		return true
	}
	return s.group.Test(link.RequestURI())
}
