// Package slides turns an aggregation result into an ordered slide sequence
// for the presentation endpoint.
package slides

import (
	"fmt"

	"github.com/deusflow/telconews/internal/news"
)

// MaxBullets is the number of articles shown on one slide.
const MaxBullets = 4

const (
	DeckTitle   = "Philippine Telco News Briefing"
	Placeholder = "No significant news this period"
)

// Slide kinds.
const (
	KindTitle    = "title"
	KindSection  = "section"
	KindCompany  = "company"
	KindTrending = "trending"
)

// Bullet is one article line on a slide.
type Bullet struct {
	Title     string   `json:"title"`
	Source    string   `json:"source,omitempty"`
	Date      string   `json:"date,omitempty"`
	URL       string   `json:"url,omitempty"`
	Takeaways []string `json:"takeaways,omitempty"`
	Shares    int64    `json:"shares,omitempty"`
}

type Slide struct {
	Index     int      `json:"index"`
	Kind      string   `json:"kind"`
	Title     string   `json:"title"`
	Subtitle  string   `json:"subtitle,omitempty"`
	Bullets   []Bullet `json:"bullets"`
	Continued bool     `json:"continued,omitempty"`
}

// Build lays out res as: title, international, general, one slide group per
// tracked company, trending. Empty international, general and trending
// groups are left out; an empty company gets a placeholder slide.
func Build(res news.AggregateResult) []Slide {
	var deck []Slide
	deck = append(deck, Slide{
		Kind:     KindTitle,
		Title:    DeckTitle,
		Subtitle: rangeLabel(res.StartDate, res.EndDate),
		Bullets:  []Bullet{},
	})

	deck = appendGroup(deck, KindSection, "International News", res.InternationalNews, false)
	deck = appendGroup(deck, KindSection, "General Industry News", res.GeneralNews, false)

	sections := res.CompanyNews
	if len(sections) == 0 {
		sections = news.EmptyCompanySections()
	}
	for _, s := range sections {
		deck = appendGroup(deck, KindCompany, s.CompanyName, s.Articles, true)
	}

	deck = appendGroup(deck, KindTrending, "Trending Articles", res.TrendingArticles, false)

	for i := range deck {
		deck[i].Index = i + 1
	}
	return deck
}

func appendGroup(deck []Slide, kind, title string, articles []news.Article, placeholder bool) []Slide {
	if len(articles) == 0 {
		if !placeholder {
			return deck
		}
		return append(deck, Slide{Kind: kind, Title: title, Bullets: []Bullet{{Title: Placeholder}}})
	}

	for start := 0; start < len(articles); start += MaxBullets {
		end := min(start+MaxBullets, len(articles))
		s := Slide{Kind: kind, Title: title, Continued: start > 0}
		if s.Continued {
			s.Title = title + " (cont.)"
		}
		for _, a := range articles[start:end] {
			s.Bullets = append(s.Bullets, bulletFor(kind, a))
		}
		deck = append(deck, s)
	}
	return deck
}

func bulletFor(kind string, a news.Article) Bullet {
	b := Bullet{
		Title:     a.Title,
		Source:    a.SourceTitle,
		Date:      a.PublishedDate,
		Takeaways: a.Takeaways,
	}
	if b.Source == "" && a.Domain != news.UnknownDomain {
		b.Source = a.Domain
	}
	if a.URL != news.MissingURL {
		b.URL = a.URL
	}
	if kind == KindTrending {
		b.Shares = a.TotalShares()
	}
	return b
}

func rangeLabel(start, end string) string {
	r, err := news.ParseDateRange(start, end)
	if err != nil {
		if start == "" && end == "" {
			return ""
		}
		return fmt.Sprintf("%s to %s", start, end)
	}
	return r.Label()
}
