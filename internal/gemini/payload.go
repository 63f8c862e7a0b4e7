package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/deusflow/telconews/internal/news"
)

// ErrMalformedPayload is returned when the model output does not follow the
// bucketed JSON contract.
var ErrMalformedPayload = errors.New("malformed gemini payload")

// maxTakeaways is the number of takeaways kept per article.
const maxTakeaways = 2

type payload struct {
	InternationalNews *[]payloadArticle `json:"internationalNews"`
	GeneralNews       *[]payloadArticle `json:"generalNews"`
	CompanyNews       *[]payloadSection `json:"companyNews"`
}

type payloadSection struct {
	CompanyName string           `json:"companyName"`
	Articles    []payloadArticle `json:"articles"`
}

type payloadArticle struct {
	Title     string   `json:"title"`
	Date      string   `json:"date"`
	Summary   string   `json:"summary"`
	Takeaways []string `json:"takeaways"`
	Source    struct {
		Title string `json:"title"`
		URI   string `json:"uri"`
	} `json:"source"`
}

// companyAliases maps normalized company names the model may use onto the
// tracked section names.
var companyAliases = map[string]string{
	"pldt smart":           news.CompanyPLDTSmart,
	"pldt and smart":       news.CompanyPLDTSmart,
	"pldtsmart":            news.CompanyPLDTSmart,
	"pldt":                 news.CompanyPLDTSmart,
	"smart":                news.CompanyPLDTSmart,
	"smart communications": news.CompanyPLDTSmart,
	"globe":                news.CompanyGlobe,
	"globe telecom":        news.CompanyGlobe,
	"dito":                 news.CompanyDITO,
	"dito telecommunity":   news.CompanyDITO,
	"converge":             news.CompanyConverge,
	"converge ict":         news.CompanyConverge,
}

// parsePayload validates the model text against the contract. Structural
// problems fail the whole payload; missing per-article fields are defaulted.
func parsePayload(text string, log *slog.Logger) (*Result, error) {
	raw, err := extractJSONObject(text)
	if err != nil {
		return nil, err
	}

	var p payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	switch {
	case p.InternationalNews == nil:
		return nil, fmt.Errorf("%w: missing internationalNews array", ErrMalformedPayload)
	case p.GeneralNews == nil:
		return nil, fmt.Errorf("%w: missing generalNews array", ErrMalformedPayload)
	case p.CompanyNews == nil:
		return nil, fmt.Errorf("%w: missing companyNews array", ErrMalformedPayload)
	}

	result := &Result{
		International: toArticles(*p.InternationalNews),
		General:       toArticles(*p.GeneralNews),
		Companies:     news.EmptyCompanySections(),
	}

	index := make(map[string]int, len(result.Companies))
	for i, s := range result.Companies {
		index[s.CompanyName] = i
	}
	for _, section := range *p.CompanyNews {
		name, ok := companyAliases[news.NormalizeTitle(section.CompanyName)]
		if !ok {
			log.Warn("ignoring untracked company section", "company", section.CompanyName)
			continue
		}
		i := index[name]
		result.Companies[i].Articles = append(result.Companies[i].Articles, toArticles(section.Articles)...)
	}
	return result, nil
}

// extractJSONObject strips code fences and any prose around the outermost
// JSON object.
func extractJSONObject(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("%w: no JSON object in response", ErrMalformedPayload)
	}
	return text[start : end+1], nil
}

func toArticles(in []payloadArticle) []news.Article {
	out := make([]news.Article, 0, len(in))
	for _, a := range in {
		out = append(out, toArticle(a))
	}
	return out
}

func toArticle(a payloadArticle) news.Article {
	title := strings.TrimSpace(a.Title)
	if title == "" {
		title = news.UntitledTitle
	}
	link := strings.TrimSpace(a.Source.URI)
	if link == "" {
		link = news.MissingURL
	}

	takeaways := make([]string, 0, maxTakeaways)
	for _, t := range a.Takeaways {
		if t = strings.TrimSpace(t); t != "" && len(takeaways) < maxTakeaways {
			takeaways = append(takeaways, t)
		}
	}

	sourceTitle := strings.TrimSpace(a.Source.Title)
	return news.Article{
		Title:         title,
		URL:           link,
		PublishedDate: strings.TrimSpace(a.Date),
		Domain:        domainFor(sourceTitle, link),
		Excerpt:       strings.TrimSpace(a.Summary),
		Takeaways:     takeaways,
		SourceTitle:   sourceTitle,
	}
}

// domainFor prefers a source title that is itself a hostname, since grounded
// URIs usually point at a redirect service rather than the outlet.
func domainFor(sourceTitle, link string) string {
	t := strings.ToLower(sourceTitle)
	if t != "" && strings.Contains(t, ".") && !strings.ContainsAny(t, " /") {
		return strings.TrimPrefix(t, "www.")
	}
	if d := news.DomainOf(link); d != "" {
		return d
	}
	return news.UnknownDomain
}
