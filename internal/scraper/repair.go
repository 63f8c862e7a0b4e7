package scraper

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/deusflow/telconews/internal/logger"
	"github.com/deusflow/telconews/internal/metrics"
	"github.com/deusflow/telconews/internal/news"
)

const (
	// DefaultTimeout bounds each liveness check.
	DefaultTimeout = 5 * time.Second
	// DefaultConcurrency is the number of articles checked at once.
	DefaultConcurrency = 8
	// MinCandidateSimilarity is the title similarity a candidate needs to
	// stand in for an unreachable link.
	MinCandidateSimilarity = 0.5
)

// redirectHosts are hosts that only forward to the real article.
var redirectHosts = []string{
	"vertexaisearch.cloud.google.com",
	"news.google.com",
	"google.com",
}

// Citation is a grounding source of the primary answer. URI is often a
// search redirect; Title then carries the outlet domain.
type Citation struct {
	URI   string
	Title string
}

// Candidates are the alternative links a broken article can be matched to.
type Candidates struct {
	Citations []Citation
	Articles  []news.Article
}

type Option func(*Repairer)

func WithHTTPClient(c *http.Client) Option {
	return func(r *Repairer) {
		r.httpClient = c
	}
}

// WithTimeout sets the per-request liveness timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Repairer) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func WithConcurrency(n int) Option {
	return func(r *Repairer) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// Repairer verifies article links and replaces the dead or redirecting ones.
type Repairer struct {
	httpClient  *http.Client
	timeout     time.Duration
	concurrency int
	log         *slog.Logger
}

func NewRepairer(opts ...Option) *Repairer {
	r := &Repairer{
		httpClient:  &http.Client{},
		timeout:     DefaultTimeout,
		concurrency: DefaultConcurrency,
		log:         logger.With("scraper"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Repair returns a copy of articles with every link checked. Articles are
// never dropped; the ones nothing could confirm are marked unverified.
func (r *Repairer) Repair(ctx context.Context, articles []news.Article, cands Candidates) []news.Article {
	out := make([]news.Article, len(articles))

	g := new(errgroup.Group)
	g.SetLimit(r.concurrency)
	for i := range articles {
		g.Go(func() error {
			out[i] = r.repairOne(ctx, articles[i], cands)
			metrics.RecordLink(out[i].LinkStatus)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func (r *Repairer) repairOne(ctx context.Context, a news.Article, cands Candidates) news.Article {
	if isHTTP(a.URL) {
		if fixed, ok := r.checkLive(ctx, a); ok {
			return fixed
		}
	}
	if fixed, ok := r.matchCitation(ctx, a, cands.Citations); ok {
		return fixed
	}
	if fixed, ok := matchCandidate(a, cands.Articles); ok {
		return fixed
	}

	r.log.Debug("link unverified", "title", a.Title, "url", a.URL)
	a.LinkStatus = news.LinkUnverified
	return a
}

// checkLive tries HEAD first and falls back to GET, which also yields the
// page metadata when the article lacks a thumbnail.
func (r *Repairer) checkLive(ctx context.Context, a news.Article) (news.Article, bool) {
	headCtx, cancel := context.WithTimeout(ctx, r.timeout)
	final, status, err := r.head(headCtx, a.URL)
	cancel()

	headOK := err == nil && status < 400
	if headOK && a.ThumbnailURL != "" {
		return withURL(a, final), true
	}

	getCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	meta, gerr := r.fetchMeta(getCtx, a.URL)
	if gerr == nil {
		link := meta.FinalURL
		if isHTTP(meta.Canonical) {
			link = meta.Canonical
		}
		fixed := withURL(a, link)
		if fixed.ThumbnailURL == "" {
			fixed.ThumbnailURL = meta.Image
		}
		return fixed, true
	}
	if headOK {
		return withURL(a, final), true
	}

	r.log.Debug("link check failed", "url", a.URL, "head_status", status, "error", gerr)
	return a, false
}

// withURL records link as the confirmed URL of a.
func withURL(a news.Article, link string) news.Article {
	if link == "" || news.NormalizeURL(link) == news.NormalizeURL(a.URL) {
		a.LinkStatus = news.LinkOK
		return a
	}
	a.URL = link
	if d := news.DomainOf(link); d != "" && (isRedirectHost(a.Domain) || a.Domain == news.UnknownDomain || a.Domain == "") {
		a.Domain = d
	}
	a.LinkStatus = news.LinkRepaired
	return a
}

// matchCitation picks the first citation from the article's outlet.
// Redirecting citations are followed and kept only when they land on a
// live page off the redirect host.
func (r *Repairer) matchCitation(ctx context.Context, a news.Article, cites []Citation) (news.Article, bool) {
	source := strings.ToLower(a.SourceTitle)
	for _, c := range cites {
		if !isHTTP(c.URI) {
			continue
		}
		d := citationDomain(c)
		if d == "" {
			continue
		}
		if d != a.Domain && (source == "" || !(strings.Contains(source, d) || strings.Contains(d, source))) {
			continue
		}

		link := c.URI
		if isRedirectHost(news.DomainOf(c.URI)) {
			final, ok := r.follow(ctx, c.URI)
			if !ok {
				continue
			}
			link = final
			if fd := news.DomainOf(final); fd != "" {
				d = fd
			}
		}
		a.URL = link
		a.Domain = d
		a.LinkStatus = news.LinkRepaired
		return a, true
	}
	return a, false
}

// follow resolves a redirecting link to the page it lands on.
func (r *Repairer) follow(ctx context.Context, link string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	final, status, err := r.head(ctx, link)
	if err != nil || status >= 400 || final == "" || isRedirectHost(news.DomainOf(final)) {
		r.log.Debug("citation redirect unresolved", "uri", link, "status", status, "error", err)
		return "", false
	}
	return final, true
}

// citationDomain is the outlet a citation points to: the URI host, or the
// title when the URI only redirects.
func citationDomain(c Citation) string {
	if d := news.DomainOf(c.URI); d != "" && !isRedirectHost(d) {
		return d
	}
	t := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(c.Title)), "www.")
	if t == "" || strings.ContainsAny(t, " /") || !strings.Contains(t, ".") {
		return ""
	}
	return t
}

func matchCandidate(a news.Article, pool []news.Article) (news.Article, bool) {
	best := -1
	bestScore := 0.0
	for i, c := range pool {
		if !isHTTP(c.URL) {
			continue
		}
		if s := news.TitleSimilarity(a.Title, c.Title); s >= MinCandidateSimilarity && s > bestScore {
			best, bestScore = i, s
		}
	}
	if best < 0 {
		return a, false
	}

	c := pool[best]
	a.URL = c.URL
	if c.Domain != "" {
		a.Domain = c.Domain
	}
	if a.ThumbnailURL == "" {
		a.ThumbnailURL = c.ThumbnailURL
	}
	a.LinkStatus = news.LinkRepaired
	return a, true
}

func isHTTP(link string) bool {
	l := strings.ToLower(link)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

func isRedirectHost(domain string) bool {
	for _, h := range redirectHosts {
		if domain == h || strings.HasSuffix(domain, "."+h) {
			return true
		}
	}
	return false
}
