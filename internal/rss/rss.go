// Package rss keeps the registry of allow-listed outlets and pulls their
// feeds into a candidate pool used to repair article links.
package rss

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/deusflow/telconews/internal/logger"
	"github.com/deusflow/telconews/internal/news"
)

const (
	// DefaultFeedTimeout bounds a single feed download.
	DefaultFeedTimeout = 5 * time.Second
	// DefaultFeedConcurrency is the number of feeds downloaded at once.
	DefaultFeedConcurrency = 6
)

// Outlet is one news outlet we trust as a link source.
type Outlet struct {
	Name   string `yaml:"name"`
	Domain string `yaml:"domain"`
	Feed   string `yaml:"feed"`
}

// OutletsConfig is YAML config structure
// outlets:
//   - name: Philippine Daily Inquirer
//     domain: inquirer.net
//     feed: https://...
type OutletsConfig struct {
	Outlets []Outlet `yaml:"outlets"`
}

// LoadOutlets reads the outlet registry. A missing file yields an empty
// registry.
func LoadOutlets(path string) ([]Outlet, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("outlet registry not found", "path", path)
		return []Outlet{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg OutletsConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode outlets %s: %w", path, err)
	}

	outlets := make([]Outlet, 0, len(cfg.Outlets))
	for _, o := range cfg.Outlets {
		o.Domain = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(o.Domain)), "www.")
		if o.Domain == "" && o.Feed != "" {
			o.Domain = news.DomainOf(o.Feed)
		}
		outlets = append(outlets, o)
	}
	return outlets, nil
}

// Fetcher downloads outlet feeds.
type Fetcher struct {
	timeout     time.Duration
	concurrency int
}

// NewFetcher returns a Fetcher with a per-feed timeout and a bound on
// parallel downloads; zero values select the defaults.
func NewFetcher(timeout time.Duration, concurrency int) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultFeedTimeout
	}
	if concurrency <= 0 {
		concurrency = DefaultFeedConcurrency
	}
	return &Fetcher{timeout: timeout, concurrency: concurrency}
}

// FetchCandidates downloads the outlet feeds in parallel and returns their
// items as articles in registry order. Failed feeds are logged and skipped.
func (f *Fetcher) FetchCandidates(ctx context.Context, outlets []Outlet) []news.Article {
	log := logger.With("rss")
	perOutlet := make([][]news.Article, len(outlets))
	var ok atomic.Int32

	g := new(errgroup.Group)
	g.SetLimit(f.concurrency)
	for i, o := range outlets {
		if o.Feed == "" {
			continue
		}
		g.Go(func() error {
			items, err := f.fetchOne(ctx, o)
			if err != nil {
				log.Warn("error parsing feed", "outlet", o.Name, "feed", o.Feed, "error", err)
				return nil
			}
			perOutlet[i] = items
			ok.Add(1)
			log.Debug("loaded feed items", "outlet", o.Name, "count", len(items))
			return nil
		})
	}
	_ = g.Wait()

	var all []news.Article
	for _, items := range perOutlet {
		all = append(all, items...)
	}
	log.Info("processed outlet feeds", "ok", ok.Load(), "total", len(outlets), "items", len(all))
	return all
}

func (f *Fetcher) fetchOne(ctx context.Context, o Outlet) ([]news.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	// gofeed.Parser is not safe for concurrent use.
	feed, err := gofeed.NewParser().ParseURLWithContext(o.Feed, ctx)
	if err != nil {
		return nil, err
	}

	items := make([]news.Article, 0, len(feed.Items))
	for _, it := range feed.Items {
		if it == nil || strings.TrimSpace(it.Link) == "" {
			continue
		}
		items = append(items, toArticle(o, it))
	}
	return items, nil
}

func toArticle(o Outlet, it *gofeed.Item) news.Article {
	a := news.Article{
		Title:       strings.TrimSpace(it.Title),
		URL:         strings.TrimSpace(it.Link),
		Domain:      news.DomainOf(it.Link),
		Excerpt:     strings.TrimSpace(it.Description),
		SourceTitle: o.Name,
	}
	if a.Title == "" {
		a.Title = news.UntitledTitle
	}
	if a.Domain == "" {
		a.Domain = o.Domain
	}
	if it.PublishedParsed != nil {
		a.PublishedDate = it.PublishedParsed.Format("Jan 2, 2006")
	}
	if it.Image != nil {
		a.ThumbnailURL = it.Image.URL
	}
	return a
}

// Domains returns the outlet domains in registry order.
func Domains(outlets []Outlet) []string {
	out := make([]string, 0, len(outlets))
	for _, o := range outlets {
		if o.Domain != "" {
			out = append(out, o.Domain)
		}
	}
	return out
}
