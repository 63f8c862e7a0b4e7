package engagement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/deusflow/telconews/internal/config"
	"github.com/deusflow/telconews/internal/logger"
	"github.com/deusflow/telconews/internal/news"
)

// ErrMalformedPayload is returned when the response is not the expected JSON.
var ErrMalformedPayload = errors.New("malformed engagement search payload")

// manila renders publish dates in Philippine time.
var manila = time.FixedZone("PHT", 8*60*60)

// HTTPClient interface for making HTTP requests (allows injection for testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL overrides the configured API base URL.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// Client searches articles ranked by social engagement.
type Client struct {
	cfg        config.SourceConfig
	httpClient HTTPClient
	baseURL    string
	policy     *bluemonday.Policy
}

// NewClient creates a client from the source configuration.
func NewClient(cfg config.SourceConfig, opts ...ClientOption) *Client {
	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		baseURL:    cfg.BaseURL,
		policy:     bluemonday.StrictPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search runs q and returns the results as articles, in API order, never
// more than q.Limit when it is set.
func (c *Client) Search(ctx context.Context, q Query) ([]news.Article, error) {
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("engagement search: %w", config.ErrMissingAPIKey)
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(q), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("engagement search request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("engagement search returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read engagement response: %w", err)
	}

	articles, err := c.parse(body)
	if err != nil {
		return nil, err
	}
	if q.Limit > 0 && len(articles) > q.Limit {
		logger.Debug("truncating engagement results", "got", len(articles), "limit", q.Limit)
		articles = articles[:q.Limit]
	}
	return articles, nil
}

func (c *Client) searchURL(q Query) string {
	params := url.Values{}
	params.Set("q", q.String())
	if !q.Begin.IsZero() {
		params.Set("begin_date", strconv.FormatInt(q.Begin.Unix(), 10))
	}
	if !q.End.IsZero() {
		params.Set("end_date", strconv.FormatInt(q.End.Unix(), 10))
	}
	if q.Limit > 0 {
		params.Set("num_results", strconv.Itoa(q.Limit))
	}
	if q.Country != "" {
		params.Set("country", q.Country)
	}
	params.Set("api_key", c.cfg.APIKey)

	return strings.TrimRight(c.baseURL, "/") + "/search/articles.json?" + params.Encode()
}

func (c *Client) parse(body []byte) ([]news.Article, error) {
	var payload apiResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if payload.Results == nil {
		return nil, fmt.Errorf("%w: missing results array", ErrMalformedPayload)
	}

	articles := make([]news.Article, 0, len(*payload.Results))
	for _, r := range *payload.Results {
		articles = append(articles, c.toArticle(r))
	}
	return articles, nil
}

func (c *Client) toArticle(r apiArticle) news.Article {
	title := html.UnescapeString(strings.TrimSpace(r.Title))
	if title == "" {
		title = news.UntitledTitle
	}
	link := strings.TrimSpace(r.URL)
	if link == "" {
		link = news.MissingURL
	}
	domain := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(r.DomainName), "www."))
	if domain == "" {
		domain = news.DomainOf(link)
	}
	if domain == "" {
		domain = news.UnknownDomain
	}

	published := ""
	if r.PublishedDate != nil && *r.PublishedDate > 0 {
		published = time.Unix(*r.PublishedDate, 0).In(manila).Format("Jan 2, 2006")
	}

	return news.Article{
		Title:         title,
		URL:           link,
		PublishedDate: published,
		Domain:        domain,
		Excerpt:       c.sanitize(r.Description),
		ThumbnailURL:  strings.TrimSpace(r.Thumbnail),
		Engagement: &news.Engagement{
			TotalShares:     r.TotalShares,
			FacebookShares:  r.FacebookShares,
			TwitterShares:   r.TwitterShares,
			PinterestShares: r.PinterestShares,
			RedditShares:    r.RedditEngagements,
			Backlinks:       r.LinkingDomains,
			EvergreenScore:  r.EvergreenScore,
		},
	}
}

// sanitize strips markup from snippets and collapses whitespace.
func (c *Client) sanitize(s string) string {
	s = html.UnescapeString(c.policy.Sanitize(s))
	return strings.Join(strings.Fields(s), " ")
}
