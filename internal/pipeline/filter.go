package pipeline

import (
	"sort"

	"github.com/deusflow/telconews/internal/metrics"
	"github.com/deusflow/telconews/internal/news"
)

// DisplayLimit is the number of secondary articles kept after ranking.
const DisplayLimit = 15

// FilterSecondary runs the secondary source chain: URL dedupe, relevance,
// importance against the outlet domains, then the DisplayLimit most shared
// articles. An empty outlets list falls back to news.MajorOutletDomains.
func FilterSecondary(articles []news.Article, outlets []string) []news.Article {
	deduped := news.DedupeByURL(articles)
	metrics.RecordFiltered("duplicate_url", len(articles)-len(deduped))

	relevant := keep(deduped, news.IsRelevant)
	metrics.RecordFiltered("irrelevant", len(deduped)-len(relevant))

	important := keep(relevant, news.IsImportant)
	if len(outlets) > 0 {
		important = keep(relevant, func(a news.Article) bool {
			return news.IsImportantWith(a, outlets)
		})
	}
	metrics.RecordFiltered("unimportant", len(relevant)-len(important))

	sort.SliceStable(important, func(i, j int) bool {
		return important[i].TotalShares() > important[j].TotalShares()
	})
	if len(important) > DisplayLimit {
		metrics.RecordFiltered("over_limit", len(important)-DisplayLimit)
		important = important[:DisplayLimit]
	}
	return important
}

func keep(in []news.Article, pred func(news.Article) bool) []news.Article {
	out := make([]news.Article, 0, len(in))
	for _, a := range in {
		if pred(a) {
			out = append(out, a)
		}
	}
	return out
}
