package news

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	nonWordRe    = regexp.MustCompile(`[^\w\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	schemeRe     = regexp.MustCompile(`^[a-z][a-z0-9+.-]*://`)
)

// NormalizeTitle lower-cases s, drops everything that is neither a word
// character nor whitespace, and collapses whitespace runs.
func NormalizeTitle(s string) string {
	s = strings.ToLower(s)
	s = nonWordRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizeURL reduces raw to host+path for comparison: protocol, "www.",
// query string and a trailing slash are discarded. Strings that do not parse
// as absolute URLs get the same treatment at the string level.
func NormalizeURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Hostname() == "" {
		return normalizeURLString(raw)
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	return host + strings.TrimSuffix(u.Path, "/")
}

func normalizeURLString(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = schemeRe.ReplaceAllString(s, "")
	s = strings.TrimPrefix(s, "www.")
	s = strings.TrimSuffix(s, "/")
	if i := strings.Index(s, "?"); i >= 0 {
		s = s[:i]
	}
	return s
}

// DomainOf returns the lower-cased hostname of raw without "www.", or ""
// when raw has no parseable host.
func DomainOf(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
