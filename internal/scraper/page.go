// Package scraper checks that article links resolve and repairs the ones
// that do not, using page metadata and alternative candidates.
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const userAgent = "Mozilla/5.0 (compatible; telconews/1.0; +https://github.com/deusflow/telconews)"

// maxPageBytes caps how much of a page is read for metadata.
const maxPageBytes = 2 << 20

// PageMeta is the link metadata found in an article page head.
type PageMeta struct {
	Canonical string
	Image     string
	FinalURL  string
}

// head sends a HEAD request and returns the final URL after redirects.
func (r *Repairer) head(ctx context.Context, link string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, link, nil)
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	return resp.Request.URL.String(), resp.StatusCode, nil
}

// fetchMeta loads the page and extracts the canonical URL and og:image.
func (r *Repairer) fetchMeta(ctx context.Context, link string) (*PageMeta, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error loading page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML: %w", err)
	}

	final := resp.Request.URL
	meta := &PageMeta{FinalURL: final.String()}
	if c := firstAttr(doc, "href", `link[rel="canonical"]`); c != "" {
		meta.Canonical = resolve(final, c)
	} else if c := firstAttr(doc, "content", `meta[property="og:url"]`); c != "" {
		meta.Canonical = resolve(final, c)
	}
	if img := firstAttr(doc, "content", `meta[property="og:image"]`, `meta[name="twitter:image"]`); img != "" {
		meta.Image = resolve(final, img)
	}
	return meta, nil
}

func firstAttr(doc *goquery.Document, attr string, selectors ...string) string {
	for _, selector := range selectors {
		if v, ok := doc.Find(selector).First().Attr(attr); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

func resolve(base *url.URL, ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}
