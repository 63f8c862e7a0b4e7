package display

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"

	"github.com/deusflow/telconews/internal/news"
)

func TestFormatArticle(t *testing.T) {
	a := news.Article{
		Title:         "Globe Telecom expands 5G coverage",
		URL:           "https://philstar.com/globe-5g",
		Domain:        "philstar.com",
		PublishedDate: "Jan 2, 2025",
		Takeaways:     []string{"300 new sites", "Mindanao first"},
		Engagement:    &news.Engagement{TotalShares: 1200, FacebookShares: 1000},
		LinkStatus:    news.LinkUnverified,
	}

	out := NewTerminalFormatter(120).FormatArticle(a)
	assert.Contains(t, out, "[PHILSTAR.COM] Globe Telecom expands 5G coverage")
	assert.Contains(t, out, "Jan 2, 2025")
	assert.Contains(t, out, "1200 shares • 1000 facebook")
	assert.Contains(t, out, "  - 300 new sites")
	assert.Contains(t, out, "link unverified")
	assert.Contains(t, out, "https://philstar.com/globe-5g")
}

func TestFormatArticle_MissingURLHidden(t *testing.T) {
	out := NewTerminalFormatter(0).FormatArticle(news.Article{Title: news.UntitledTitle, URL: news.MissingURL})
	assert.NotContains(t, out, "  #")
}

func TestFormatResult_Sections(t *testing.T) {
	res := news.AggregateResult{
		StartDate:   "2025-01-01",
		EndDate:     "2025-01-07",
		GeneralNews: []news.Article{{Title: "NTC spectrum auction", URL: "https://pna.gov.ph/a", Domain: "pna.gov.ph"}},
		CompanyNews: news.EmptyCompanySections(),
	}

	out := NewTerminalFormatter(80).FormatResult(res)
	assert.True(t, strings.HasPrefix(out, "Philippine Telco News (2025-01-01 to 2025-01-07)\n"))
	assert.Contains(t, out, "## International (0)\n\nNo items to display.")
	assert.Contains(t, out, "## General (1)")
	assert.Contains(t, out, "## DITO Telecommunity (0)")
	assert.Contains(t, out, "## Trending (0)")
}

func TestTruncateText(t *testing.T) {
	f := NewTerminalFormatter(10)
	assert.Equal(t, "short", f.TruncateText("short", 10))
	assert.Equal(t, "...", f.TruncateText("anything long", 3))

	got := f.TruncateText("Globe Telecom expands", 10)
	assert.Equal(t, "Globe T...", got)

	wide := f.TruncateText("日本語のニュース記事", 10)
	assert.LessOrEqual(t, runewidth.StringWidth(wide), 10)
	assert.True(t, strings.HasSuffix(wide, "..."))
}
