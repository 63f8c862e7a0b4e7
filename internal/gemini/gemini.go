// Package gemini is the primary news source: a search-grounded Gemini model
// asked to return the week's Philippine telco news as bucketed JSON.
package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/deusflow/telconews/internal/config"
	"github.com/deusflow/telconews/internal/logger"
	"github.com/deusflow/telconews/internal/news"
	"github.com/deusflow/telconews/internal/ratelimit"
)

// QuotaProvider is the quota bucket charged for each Gemini call.
const QuotaProvider = "gemini"

// Country is the country filter given to the model.
const Country = "Philippines"

// Query is the boolean search the model grounds its answer on.
const Query = `("PLDT" OR "Smart Communications" OR "Globe Telecom" OR "DITO Telecommunity" OR "Converge ICT" OR "NTC" OR "DICT" OR telco OR telecommunications)`

// generator is the slice of *genai.Models the client needs.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Citation is one Google Search source the answer was grounded on. URI is
// usually a grounding redirect; Title is the outlet domain.
type Citation struct {
	URI   string
	Title string
}

// Result is the primary source payload after schema validation.
type Result struct {
	International []news.Article
	General       []news.Article
	Companies     []news.CompanySection
	Citations     []Citation
}

type Client struct {
	models    generator
	modelName string
	cfg       config.SourceConfig
	quota     *ratelimit.Quota
	log       *slog.Logger
}

// NewClient connects to Gemini. With an empty API key no connection is made
// and Fetch reports config.ErrMissingAPIKey.
func NewClient(ctx context.Context, cfg config.SourceConfig, modelName string, quota *ratelimit.Quota) (*Client, error) {
	c := &Client{modelName: modelName, cfg: cfg, quota: quota, log: logger.With("gemini")}
	if cfg.APIKey == "" {
		return c, nil
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.BaseURL
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c.models = client.Models
	return c, nil
}

// generateConfig enables Google Search grounding. A JSON response MIME type
// cannot be combined with the search tool, so JSON is asked for in the
// prompt and extracted from the text.
func generateConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.2),
		Tools:             []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}
}

// Fetch asks the model for news published within r.
func (c *Client) Fetch(ctx context.Context, r news.DateRange) (*Result, error) {
	if c.models == nil {
		return nil, fmt.Errorf("gemini: %w", config.ErrMissingAPIKey)
	}
	if c.quota != nil {
		if err := c.quota.Use(QuotaProvider); err != nil {
			return nil, err
		}
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	resp, err := c.models.GenerateContent(ctx, c.modelName, genai.Text(buildPrompt(r)), generateConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text, citations, err := extractResponse(resp)
	if err != nil {
		return nil, err
	}

	result, err := parsePayload(text, c.log)
	if err != nil {
		c.log.Debug("rejected gemini payload", "raw", text)
		return nil, err
	}
	result.Citations = citations

	c.log.Info("gemini news fetched",
		"international", len(result.International),
		"general", len(result.General),
		"citations", len(citations))
	return result, nil
}

// extractResponse joins the text parts of the first candidate and collects
// its search grounding sources.
func extractResponse(resp *genai.GenerateContentResponse) (string, []Citation, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil, fmt.Errorf("%w: no response from Gemini", ErrMalformedPayload)
	}
	cand := resp.Candidates[0]

	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if part != nil && !part.Thought {
			b.WriteString(part.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", nil, fmt.Errorf("%w: empty response from Gemini", ErrMalformedPayload)
	}

	var citations []Citation
	if cand.GroundingMetadata != nil {
		for _, chunk := range cand.GroundingMetadata.GroundingChunks {
			if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
				continue
			}
			title := strings.TrimSpace(chunk.Web.Title)
			if title == "" {
				title = news.DomainOf(chunk.Web.URI)
			}
			citations = append(citations, Citation{URI: chunk.Web.URI, Title: title})
		}
	}
	return b.String(), citations, nil
}
