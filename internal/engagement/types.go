// Package engagement is the client for the social-engagement article search
// API used as the secondary, non-critical news source.
package engagement

import (
	"fmt"
	"strings"
	"time"
)

// Fixed request sizes for the secondary source.
const (
	// OverFetchLimit is how many results are requested before filtering.
	OverFetchLimit = 50
	// DefaultCountry restricts results to Philippine outlets.
	DefaultCountry = "PH"
)

// DefaultTerms are the boolean OR terms of the telco query.
var DefaultTerms = []string{
	"PLDT",
	"Smart Communications",
	"Globe Telecom",
	"DITO Telecommunity",
	"Converge ICT",
	"telco",
	"NTC",
	"DICT",
	"5G",
}

// DefaultExclude are the explicit negative terms of the telco query.
var DefaultExclude = []string{
	"basketball",
	"PBA",
	"volleyball",
	"PVL",
	"FiberXers",
	"Golden Globe",
}

// Query is one article search.
type Query struct {
	Terms   []string
	Exclude []string
	Begin   time.Time
	End     time.Time
	Limit   int
	Country string
}

// DefaultQuery is the telco search over [begin, end].
func DefaultQuery(begin, end time.Time) Query {
	return Query{
		Terms:   DefaultTerms,
		Exclude: DefaultExclude,
		Begin:   begin,
		End:     end,
		Limit:   OverFetchLimit,
		Country: DefaultCountry,
	}
}

// String renders the boolean query: quoted OR terms followed by -negatives.
func (q Query) String() string {
	terms := make([]string, 0, len(q.Terms))
	for _, t := range q.Terms {
		terms = append(terms, quoteTerm(t))
	}

	var b strings.Builder
	if len(terms) > 0 {
		b.WriteString("(" + strings.Join(terms, " OR ") + ")")
	}
	for _, ex := range q.Exclude {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString("-" + quoteTerm(ex))
	}
	return b.String()
}

func quoteTerm(t string) string {
	t = strings.TrimSpace(t)
	if strings.Contains(t, " ") {
		return fmt.Sprintf("%q", t)
	}
	return t
}

// apiResponse mirrors the search payload.
type apiResponse struct {
	Results      *[]apiArticle `json:"results"`
	TotalResults int           `json:"total_results"`
}

type apiArticle struct {
	Title             string  `json:"title"`
	URL               string  `json:"url"`
	PublishedDate     *int64  `json:"published_date"`
	DomainName        string  `json:"domain_name"`
	Description       string  `json:"description"`
	Thumbnail         string  `json:"thumbnail"`
	TotalShares       int64   `json:"total_shares"`
	FacebookShares    int64   `json:"total_facebook_shares"`
	TwitterShares     int64   `json:"twitter_shares"`
	PinterestShares   int64   `json:"pinterest_shares"`
	RedditEngagements int64   `json:"total_reddit_engagements"`
	LinkingDomains    int64   `json:"num_linking_domains"`
	EvergreenScore    float64 `json:"evergreen_score"`
}
