// Package fetcher performs bounded-time HTTP fetches of single pages and
// extracts title, favicon, reachability, and outbound links from the HTML.
// Pages are fetched as static HTML only; no scripts run, no robots.txt is
// consulted.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/voidgraph/pkg/types"
)

// Fixed fetch policy.
const (
	fetchTimeout = 10 * time.Second
	maxRedirects = 5

	// maxBodyBytes limits how much of a response is read and parsed.
	maxBodyBytes = 10 * 1024 * 1024
)

// iconSelectors are tried in priority order; the first match wins.
var iconSelectors = []string{
	`link[rel="icon"]`,
	`link[rel="shortcut icon"]`,
	`link[rel="apple-touch-icon"]`,
}

// Metadata is the outcome of one page fetch. A non-success HTTP status is
// not an error: Reachable is false and everything else is empty. Title is ""
// when the page has no usable title; Favicon always carries at least the
// /favicon.ico guess for reachable pages.
type Metadata struct {
	Title     string
	Favicon   string
	Reachable bool
	Links     []string
}

// Fetcher fetches pages with a fixed timeout, redirect cap, and client
// identity.
type Fetcher struct {
	client    *http.Client
	userAgent string
	log       *zap.Logger
}

// New creates a Fetcher sending the given client identity with every request.
func New(userAgent string, log *zap.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: fetchTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// via holds the initial request too, so a strict > allows
				// exactly maxRedirects hops.
				if len(via) > maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		userAgent: userAgent,
		log:       log,
	}
}

// Fetch retrieves rawURL and extracts its metadata. With collectLinks set it
// also extracts every outbound anchor, normalized and deduplicated in
// document order. It returns an error only for transport-level failures:
// malformed URL, DNS, connect, timeout, or the redirect cap.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, collectLinks bool) (*Metadata, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, types.ErrInvalidURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		f.log.Debug("page unreachable",
			zap.String("url", rawURL),
			zap.Int("status", resp.StatusCode))
		return &Metadata{Reachable: false}, nil
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", rawURL, err)
	}

	// Relative references resolve against the final, post-redirect URL.
	final := resp.Request.URL
	base := final.Scheme + "://" + final.Host

	meta := &Metadata{
		Title:     strings.TrimSpace(doc.Find("title").First().Text()),
		Favicon:   extractFavicon(doc, base),
		Reachable: true,
	}
	if collectLinks {
		meta.Links = extractLinks(doc, base)
	}

	f.log.Debug("page fetched",
		zap.String("url", rawURL),
		zap.String("final_url", final.String()),
		zap.Int("links", len(meta.Links)))
	return meta, nil
}

// extractFavicon scans icon link elements in priority order and resolves the
// first match against the page's site root. With no icon link present it
// guesses <base>/favicon.ico without verifying it exists.
func extractFavicon(doc *goquery.Document, base string) string {
	for _, sel := range iconSelectors {
		if href, ok := doc.Find(sel).First().Attr("href"); ok {
			return resolveRef(base, href)
		}
	}
	return base + "/favicon.ico"
}

// extractLinks returns every anchor target, normalized, http(s)-only, in
// document order with duplicates removed at first occurrence.
func extractLinks(doc *goquery.Document, base string) []string {
	var links []string
	seen := make(map[string]struct{})

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		link, ok := normalizeLink(base, href)
		if !ok {
			return
		}
		if _, dup := seen[link]; dup {
			return
		}
		seen[link] = struct{}{}
		links = append(links, link)
	})

	return links
}
