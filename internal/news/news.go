// Package news holds the article model shared by both sources and the pure
// filtering core: normalisation, similarity, relevance, importance and
// deduplication. Nothing in this package performs I/O or keeps state between
// calls, so every function is safe for concurrent use.
package news

import "strings"

// Link states recorded on an article after URL repair.
const (
	LinkOK         = "ok"
	LinkRepaired   = "repaired"
	LinkUnverified = "unverified"
)

// Defaults substituted when a source omits a field.
const (
	UntitledTitle = "Untitled"
	MissingURL    = "#"
	UnknownDomain = "unknown"
)

// Engagement is the social score set reported by the engagement source.
type Engagement struct {
	TotalShares     int64   `json:"totalShares"`
	FacebookShares  int64   `json:"facebookShares"`
	TwitterShares   int64   `json:"twitterShares"`
	PinterestShares int64   `json:"pinterestShares"`
	RedditShares    int64   `json:"redditShares"`
	Backlinks       int64   `json:"backlinks"`
	EvergreenScore  float64 `json:"evergreenScore"`
}

// Article is the uniform representation of a news item regardless of source.
type Article struct {
	Title         string      `json:"title"`
	URL           string      `json:"url"`
	PublishedDate string      `json:"publishedDate"`
	Domain        string      `json:"domain"`
	Excerpt       string      `json:"excerpt,omitempty"`
	Takeaways     []string    `json:"takeaways,omitempty"`
	SourceTitle   string      `json:"sourceTitle,omitempty"`
	Engagement    *Engagement `json:"engagement,omitempty"`
	ThumbnailURL  string      `json:"thumbnailUrl,omitempty"`
	LinkStatus    string      `json:"linkStatus,omitempty"`
}

// TotalShares returns the ranking score; articles without engagement score 0.
func (a Article) TotalShares() int64 {
	if a.Engagement == nil {
		return 0
	}
	return a.Engagement.TotalShares
}

// combinedText is the lower-cased title and excerpt used by context checks.
func (a Article) combinedText() string {
	return strings.ToLower(a.Title + " " + a.Excerpt)
}

// Tracked companies, in display order.
const (
	CompanyPLDTSmart = "PLDT & Smart"
	CompanyGlobe     = "Globe Telecom"
	CompanyDITO      = "DITO Telecommunity"
	CompanyConverge  = "Converge ICT"
)

// TrackedCompanies is the fixed set of company sections every result carries.
var TrackedCompanies = []string{CompanyPLDTSmart, CompanyGlobe, CompanyDITO, CompanyConverge}

// CompanySection groups the articles about one tracked company.
type CompanySection struct {
	CompanyName string    `json:"companyName"`
	Articles    []Article `json:"articles"`
}

// EmptyCompanySections returns one empty section per tracked company.
func EmptyCompanySections() []CompanySection {
	sections := make([]CompanySection, 0, len(TrackedCompanies))
	for _, name := range TrackedCompanies {
		sections = append(sections, CompanySection{CompanyName: name, Articles: []Article{}})
	}
	return sections
}

// AggregateResult is the merged output of one fetch request. It lives only
// for the duration of the request that produced it.
type AggregateResult struct {
	RunID             string           `json:"runId"`
	StartDate         string           `json:"startDate"`
	EndDate           string           `json:"endDate"`
	GeneratedAt       string           `json:"generatedAt"`
	InternationalNews []Article        `json:"internationalNews"`
	GeneralNews       []Article        `json:"generalNews"`
	CompanyNews       []CompanySection `json:"companyNews"`
	TrendingArticles  []Article        `json:"trendingArticles"`
}

// AllArticles flattens every bucket except trending, in display order.
func (r AggregateResult) AllArticles() []Article {
	all := make([]Article, 0, len(r.InternationalNews)+len(r.GeneralNews))
	all = append(all, r.InternationalNews...)
	all = append(all, r.GeneralNews...)
	for _, s := range r.CompanyNews {
		all = append(all, s.Articles...)
	}
	return all
}

// containsAny distinguishes phrases from short words so that "ai" does not
// match "said": phrases and long words match as substrings, while words of
// three characters or fewer and the WholeWordKeywords must stand alone.
func containsAny(text string, keywords []string) bool {
	text = strings.ToLower(text)

	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if strings.Contains(k, " ") || (len(k) > 3 && !isWholeWordKeyword(k)) {
			if strings.Contains(text, k) {
				return true
			}
			continue
		}
		if containsWord(text, k) {
			return true
		}
	}
	return false
}

func isWholeWordKeyword(k string) bool {
	for _, w := range WholeWordKeywords {
		if w == k {
			return true
		}
	}
	return false
}

// containsWord reports whether w occurs in text bounded by non-word bytes.
func containsWord(text, w string) bool {
	for from := 0; ; {
		i := strings.Index(text[from:], w)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(w)
		if (start == 0 || !isWordByte(text[start-1])) && (end == len(text) || !isWordByte(text[end])) {
			return true
		}
		from = start + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
