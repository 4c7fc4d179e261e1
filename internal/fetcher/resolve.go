package fetcher

import (
	"net/url"
	"strings"
)

// maxLinkLen discards pathological query strings; links at or beyond this
// length are dropped.
const maxLinkLen = 500

// resolveRef resolves an href against a site root of the form scheme://host.
// Protocol-relative references get https; root-relative and bare references
// attach to the site root; absolute http(s) references pass through.
func resolveRef(base, href string) string {
	switch {
	case strings.HasPrefix(href, "//"):
		return "https:" + href
	case strings.HasPrefix(href, "/"):
		return base + href
	case strings.HasPrefix(href, "http"):
		return href
	default:
		return base + "/" + href
	}
}

// normalizeLink turns an anchor href into a canonical absolute URL, or
// reports false for targets that are not crawlable pages: fragment-only,
// javascript:, mailto:, non-http results, unparseable URLs, and over-long
// ones. Kept links lose their fragment and a single trailing slash.
func normalizeLink(base, href string) (string, bool) {
	if strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") {
		return "", false
	}

	raw := resolveRef(base, href)
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "", false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	u.Fragment = ""

	clean := strings.TrimSuffix(u.String(), "/")
	if len(clean) >= maxLinkLen {
		return "", false
	}
	return clean, true
}

// Hostname returns the host of rawURL without any port, or "" if the URL
// does not parse. Used for same-domain comparison and title placeholders.
func Hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
