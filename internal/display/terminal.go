// Package display renders an aggregation result for the terminal.
package display

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/deusflow/telconews/internal/news"
)

const separator = " • "

// DefaultWidth is the line width used when none is given.
const DefaultWidth = 100

// TerminalFormatter formats articles for terminal display.
type TerminalFormatter struct {
	width int
}

// NewTerminalFormatter creates a formatter that truncates lines to width
// display cells.
func NewTerminalFormatter(width int) *TerminalFormatter {
	if width <= 0 {
		width = DefaultWidth
	}
	return &TerminalFormatter{width: width}
}

// FormatArticle formats a single article.
func (f *TerminalFormatter) FormatArticle(a news.Article) string {
	var lines []string

	// Header: [DOMAIN] Title
	lines = append(lines, f.TruncateText(fmt.Sprintf("[%s] %s", strings.ToUpper(a.Domain), a.Title), f.width))

	var meta []string
	if a.PublishedDate != "" {
		meta = append(meta, a.PublishedDate)
	}
	if a.SourceTitle != "" {
		meta = append(meta, a.SourceTitle)
	}
	if a.LinkStatus == news.LinkUnverified {
		meta = append(meta, "link unverified")
	}
	if len(meta) > 0 {
		lines = append(lines, "  "+strings.Join(meta, separator))
	}

	if engagement := formatEngagement(a.Engagement); engagement != "" {
		lines = append(lines, "  "+engagement)
	}
	for _, t := range a.Takeaways {
		lines = append(lines, f.TruncateText("  - "+t, f.width))
	}
	if a.URL != "" && a.URL != news.MissingURL {
		lines = append(lines, "  "+a.URL)
	}

	return strings.Join(lines, "\n") + "\n"
}

func formatEngagement(e *news.Engagement) string {
	if e == nil {
		return ""
	}
	var parts []string
	if e.TotalShares > 0 {
		parts = append(parts, fmt.Sprintf("%d shares", e.TotalShares))
	}
	if e.FacebookShares > 0 {
		parts = append(parts, fmt.Sprintf("%d facebook", e.FacebookShares))
	}
	if e.TwitterShares > 0 {
		parts = append(parts, fmt.Sprintf("%d x", e.TwitterShares))
	}
	if e.Backlinks > 0 {
		parts = append(parts, fmt.Sprintf("%d backlinks", e.Backlinks))
	}
	return strings.Join(parts, separator)
}

// FormatResult formats every bucket of res under a heading.
func (f *TerminalFormatter) FormatResult(res news.AggregateResult) string {
	var b strings.Builder

	title := "Philippine Telco News"
	if res.StartDate != "" {
		title += fmt.Sprintf(" (%s to %s)", res.StartDate, res.EndDate)
	}
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", min(runewidth.StringWidth(title), f.width)) + "\n\n")

	f.section(&b, "International", res.InternationalNews)
	f.section(&b, "General", res.GeneralNews)
	for _, s := range res.CompanyNews {
		f.section(&b, s.CompanyName, s.Articles)
	}
	f.section(&b, "Trending", res.TrendingArticles)
	return b.String()
}

func (f *TerminalFormatter) section(b *strings.Builder, heading string, articles []news.Article) {
	b.WriteString(fmt.Sprintf("## %s (%d)\n\n", heading, len(articles)))
	if len(articles) == 0 {
		b.WriteString("No items to display.\n\n")
		return
	}
	for _, a := range articles {
		b.WriteString(f.FormatArticle(a))
		b.WriteString("\n")
	}
}

// TruncateText truncates text to maxWidth display cells, adding "..." if
// truncated. Wide characters count as two cells.
func (f *TerminalFormatter) TruncateText(text string, maxWidth int) string {
	if runewidth.StringWidth(text) <= maxWidth {
		return text
	}
	if maxWidth <= 3 {
		return "..."
	}
	return runewidth.Truncate(text, maxWidth, "...")
}
