// Package urlcheck probes URLs embedded in document prose for
// reachability.
package urlcheck

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/ceresdoc/cereslint/internal/document"
)

// urlRe matches the first URL-shaped substring of a line: a scheme
// prefix followed by a restricted character class.
var urlRe = regexp.MustCompile(`https?://[-A-Za-z0-9._~:/?#@!$&%+,;=()*']+`)

// Find returns the first URL on a line. Trailing periods are sentence
// punctuation, not part of the path, and are trimmed.
func Find(line string) (string, bool) {
	m := urlRe.FindString(line)
	if m == "" {
		return "", false
	}
	return strings.TrimRight(m, "."), true
}

// Fetcher performs the network probe for one URL and returns its status
// line, e.g. "HTTP/1.1 200 OK".
type Fetcher interface {
	Fetch(url string) (string, error)
}

// HTTPFetcher is the default Fetcher backed by net/http
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher creates a fetcher with a bounded request timeout
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{Timeout: timeout}}
}

// Fetch issues a GET and reconstructs the response status line
func (f *HTTPFetcher) Fetch(url string) (string, error) {
	resp, err := f.Client.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	return resp.Proto + " " + resp.Status, nil
}

// Checker scans lines for URLs and reports their reachability. Probes
// run sequentially with a deliberate pause after each one to rate-limit
// outbound requests.
type Checker struct {
	fetcher Fetcher
	delay   time.Duration
	emit    document.Emitter
}

// NewChecker creates a checker emitting through emit
func NewChecker(fetcher Fetcher, delay time.Duration, emit document.Emitter) *Checker {
	return &Checker{fetcher: fetcher, delay: delay, emit: emit}
}

// CheckLine probes the first URL on the line, if any
func (c *Checker) CheckLine(lineNo int, line string) {
	url, ok := Find(line)
	if !ok {
		return
	}

	status, err := c.fetcher.Fetch(url)
	if err != nil {
		c.emit.Errorf(lineNo, "found URL, could not access")
	} else {
		c.emit.Noticef(lineNo, "found URL, response status %s", statusCode(status))
	}

	if c.delay > 0 {
		time.Sleep(c.delay)
	}
}

// statusCode extracts the numeric code from a status line like
// "HTTP/1.1 200 OK"
func statusCode(statusLine string) string {
	fields := strings.Fields(statusLine)
	if len(fields) < 2 {
		return statusLine
	}
	return fields[1]
}
