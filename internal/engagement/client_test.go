// Package engagement tests document the expected behavior of the engagement
// search client.
//
// Test requirements (this file serves as documentation):
// - Client sends the boolean query, Unix date range, cap, country and key
// - Client maps results to articles with engagement metrics
// - Results beyond the requested limit are dropped
// - Missing fields fall back to Untitled / # / derived domain / zero counts
// - HTTP failures, malformed JSON and missing results arrays are errors
// - A missing API key fails before any request is made
package engagement

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deusflow/telconews/internal/config"
	"github.com/deusflow/telconews/internal/news"
)

const validResponse = `{
  "total_results": 2,
  "results": [
    {
      "title": "Globe Telecom expands 5G coverage in Mindanao",
      "url": "https://www.philstar.com/business/2025/01/02/globe-5g",
      "published_date": 1735776000,
      "domain_name": "www.philstar.com",
      "description": "<p>Globe said it <b>added</b> 300 sites.</p>",
      "thumbnail": "https://img.philstar.com/globe.jpg",
      "total_shares": 1200,
      "total_facebook_shares": 1000,
      "twitter_shares": 150,
      "pinterest_shares": 10,
      "total_reddit_engagements": 40,
      "num_linking_domains": 12,
      "evergreen_score": 0.7
    },
    {
      "title": "",
      "url": "https://inquirer.net/x"
    }
  ]
}`

func newTestClient(serverURL string) *Client {
	return NewClient(config.SourceConfig{APIKey: "secret", BaseURL: serverURL, Timeout: 5 * time.Second})
}

func TestClient_Search_SendsQueryParameters(t *testing.T) {
	type captured struct {
		path  string
		query url.Values
	}
	requests := make(chan captured, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests <- captured{path: r.URL.Path, query: r.URL.Query()}
		fmt.Fprint(w, `{"results": []}`)
	}))
	defer server.Close()

	begin := time.Unix(1735689600, 0)
	end := time.Unix(1735775999, 0)
	_, err := newTestClient(server.URL).Search(context.Background(), DefaultQuery(begin, end))
	require.NoError(t, err)

	got := <-requests
	assert.Equal(t, "/search/articles.json", got.path)
	q := got.query
	assert.Equal(t, "1735689600", q.Get("begin_date"))
	assert.Equal(t, "1735775999", q.Get("end_date"))
	assert.Equal(t, "50", q.Get("num_results"))
	assert.Equal(t, "PH", q.Get("country"))
	assert.Equal(t, "secret", q.Get("api_key"))
	assert.Contains(t, q.Get("q"), `"Smart Communications" OR`)
	assert.Contains(t, q.Get("q"), "-basketball")
}

func TestClient_Search_MapsArticles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, validResponse)
	}))
	defer server.Close()

	articles, err := newTestClient(server.URL).Search(context.Background(), DefaultQuery(time.Time{}, time.Time{}))
	require.NoError(t, err)
	require.Len(t, articles, 2)

	first := articles[0]
	assert.Equal(t, "Globe Telecom expands 5G coverage in Mindanao", first.Title)
	assert.Equal(t, "philstar.com", first.Domain)
	assert.Equal(t, "Jan 2, 2025", first.PublishedDate)
	assert.Equal(t, "Globe said it added 300 sites.", first.Excerpt)
	assert.Equal(t, "https://img.philstar.com/globe.jpg", first.ThumbnailURL)
	require.NotNil(t, first.Engagement)
	assert.Equal(t, news.Engagement{
		TotalShares:     1200,
		FacebookShares:  1000,
		TwitterShares:   150,
		PinterestShares: 10,
		RedditShares:    40,
		Backlinks:       12,
		EvergreenScore:  0.7,
	}, *first.Engagement)
}

func TestClient_Search_TruncatesToLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results": [
			{"title": "first", "url": "https://inquirer.net/1"},
			{"title": "second", "url": "https://inquirer.net/2"},
			{"title": "third", "url": "https://inquirer.net/3"}
		]}`)
	}))
	defer server.Close()

	articles, err := newTestClient(server.URL).Search(context.Background(), Query{Limit: 2})
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "first", articles[0].Title)
	assert.Equal(t, "second", articles[1].Title)

	articles, err = newTestClient(server.URL).Search(context.Background(), Query{})
	require.NoError(t, err)
	assert.Len(t, articles, 3, "no limit keeps every result")
}

func TestClient_Search_DefaultsMissingFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results": [{"title": "", "url": "https://inquirer.net/x"}, {"title": "No link"}]}`)
	}))
	defer server.Close()

	articles, err := newTestClient(server.URL).Search(context.Background(), Query{})
	require.NoError(t, err)
	require.Len(t, articles, 2)

	assert.Equal(t, news.UntitledTitle, articles[0].Title)
	assert.Equal(t, "inquirer.net", articles[0].Domain)
	assert.Equal(t, int64(0), articles[0].TotalShares())
	assert.Empty(t, articles[0].PublishedDate)

	assert.Equal(t, news.MissingURL, articles[1].URL)
	assert.Equal(t, news.UnknownDomain, articles[1].Domain)
}

func TestClient_Search_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"server error", http.StatusInternalServerError, `{}`, nil},
		{"malformed json", http.StatusOK, `<html>oops</html>`, ErrMalformedPayload},
		{"missing results", http.StatusOK, `{"total_results": 0}`, ErrMalformedPayload},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).Search(context.Background(), Query{})
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestClient_Search_MissingAPIKey(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	c := NewClient(config.SourceConfig{BaseURL: server.URL})
	_, err := c.Search(context.Background(), Query{})

	assert.ErrorIs(t, err, config.ErrMissingAPIKey)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestClient_Search_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	c := NewClient(config.SourceConfig{APIKey: "k", BaseURL: server.URL, Timeout: 50 * time.Millisecond})
	_, err := c.Search(context.Background(), Query{})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestQuery_String(t *testing.T) {
	q := Query{Terms: []string{"PLDT", "Globe Telecom"}, Exclude: []string{"PBA", "Golden Globe"}}

	assert.Equal(t, `(PLDT OR "Globe Telecom") -PBA -"Golden Globe"`, q.String())
}
