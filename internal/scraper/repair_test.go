// Package scraper tests document the expected behavior of link repair.
//
// Test requirements (this file serves as documentation):
// - Live links are confirmed and keep their URL
// - Redirecting links are replaced by the final URL or canonical link
// - HEAD-rejecting servers fall back to GET; og:image fills missing thumbnails
// - Dead links fall back to citations, then similar candidate titles
// - Redirecting citations are matched by title and followed to the article
// - Links nothing can confirm are kept and marked unverified
package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deusflow/telconews/internal/news"
)

const articlePage = `<!doctype html>
<html><head>
<title>Globe expands 5G | Philstar</title>
<link rel="canonical" href="/business/globe-5g">
<meta property="og:image" content="https://img.example.ph/globe.jpg">
</head><body><h1>Globe expands 5G</h1></body></html>`

func newSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/business/globe-5g", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(articlePage))
		}
	})
	mux.HandleFunc("/redirect", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/business/globe-5g", http.StatusFound)
	})
	mux.HandleFunc("/no-head", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		_, _ = w.Write([]byte(articlePage))
	})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestRepairer(srv *httptest.Server) *Repairer {
	return NewRepairer(WithHTTPClient(srv.Client()), WithTimeout(2*time.Second), WithConcurrency(2))
}

func TestRepair_LiveLinkWithThumbnail(t *testing.T) {
	srv := newSite(t)
	in := news.Article{Title: "Globe expands 5G", URL: srv.URL + "/business/globe-5g", ThumbnailURL: "https://img/x.jpg"}

	out := newTestRepairer(srv).Repair(context.Background(), []news.Article{in}, Candidates{})
	require.Len(t, out, 1)
	assert.Equal(t, news.LinkOK, out[0].LinkStatus)
	assert.Equal(t, in.URL, out[0].URL)
	assert.Equal(t, "https://img/x.jpg", out[0].ThumbnailURL)
}

func TestRepair_LiveLinkFillsThumbnail(t *testing.T) {
	srv := newSite(t)
	in := news.Article{Title: "Globe expands 5G", URL: srv.URL + "/business/globe-5g"}

	out := newTestRepairer(srv).Repair(context.Background(), []news.Article{in}, Candidates{})
	assert.Equal(t, news.LinkOK, out[0].LinkStatus)
	assert.Equal(t, "https://img.example.ph/globe.jpg", out[0].ThumbnailURL)
}

func TestRepair_RedirectReplacesURL(t *testing.T) {
	srv := newSite(t)
	in := news.Article{Title: "Globe expands 5G", URL: srv.URL + "/redirect", Domain: news.UnknownDomain}

	out := newTestRepairer(srv).Repair(context.Background(), []news.Article{in}, Candidates{})
	assert.Equal(t, news.LinkRepaired, out[0].LinkStatus)
	assert.Equal(t, srv.URL+"/business/globe-5g", out[0].URL)
	assert.Equal(t, "127.0.0.1", out[0].Domain)
}

func TestRepair_HeadNotAllowedUsesCanonical(t *testing.T) {
	srv := newSite(t)
	in := news.Article{Title: "Globe expands 5G", URL: srv.URL + "/no-head"}

	out := newTestRepairer(srv).Repair(context.Background(), []news.Article{in}, Candidates{})
	assert.Equal(t, news.LinkRepaired, out[0].LinkStatus)
	assert.Equal(t, srv.URL+"/business/globe-5g", out[0].URL)
	assert.Equal(t, "https://img.example.ph/globe.jpg", out[0].ThumbnailURL)
}

func TestRepair_DeadLinkFallbacks(t *testing.T) {
	srv := newSite(t)
	dead := srv.URL + "/gone"

	cands := Candidates{
		Citations: []Citation{
			{URI: "https://vertexaisearch.cloud.google.com/grounding-api-redirect/abc", Title: "philstar.com"},
			{URI: "https://www.rappler.com/technology/dito-subscribers", Title: "rappler.com"},
		},
		Articles: []news.Article{
			{Title: "Converge ICT posts record fiber subscriber growth", URL: "https://www.bworldonline.com/converge-growth", Domain: "bworldonline.com"},
			{Title: "Unrelated headline", URL: "https://example.com/other"},
		},
	}
	in := []news.Article{
		{Title: "DITO hits 10 million subscribers", URL: dead, Domain: "rappler.com"},
		{Title: "Converge ICT posts record subscriber growth", URL: dead, Domain: news.UnknownDomain},
		{Title: "Nothing matches this one", URL: dead},
		{Title: "No link at all", URL: news.MissingURL},
	}

	out := newTestRepairer(srv).Repair(context.Background(), in, cands)
	require.Len(t, out, 4)

	assert.Equal(t, news.LinkRepaired, out[0].LinkStatus)
	assert.Equal(t, "https://www.rappler.com/technology/dito-subscribers", out[0].URL)

	assert.Equal(t, news.LinkRepaired, out[1].LinkStatus)
	assert.Equal(t, "https://www.bworldonline.com/converge-growth", out[1].URL)
	assert.Equal(t, "bworldonline.com", out[1].Domain)

	assert.Equal(t, news.LinkUnverified, out[2].LinkStatus)
	assert.Equal(t, dead, out[2].URL)

	assert.Equal(t, news.LinkUnverified, out[3].LinkStatus)
	assert.Equal(t, news.MissingURL, out[3].URL)

	assert.Equal(t, news.MissingURL, in[3].URL, "input is not mutated")
	assert.Empty(t, in[0].LinkStatus)
}

func TestRepair_Empty(t *testing.T) {
	out := NewRepairer().Repair(context.Background(), nil, Candidates{})
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

// groundingTransport sends requests for the grounding redirect host to a
// local server.
type groundingTransport struct {
	target *url.URL
}

func (t groundingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Host == "vertexaisearch.cloud.google.com" {
		req = req.Clone(req.Context())
		req.URL.Scheme = t.target.Scheme
		req.URL.Host = t.target.Host
	}
	return http.DefaultTransport.RoundTrip(req)
}

func TestRepair_GroundingRedirectCitation(t *testing.T) {
	site := newSite(t)
	redirector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/grounding-api-redirect/globe" {
			http.Redirect(w, r, site.URL+"/business/globe-5g", http.StatusFound)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer redirector.Close()
	target, err := url.Parse(redirector.URL)
	require.NoError(t, err)

	rep := NewRepairer(
		WithHTTPClient(&http.Client{Transport: groundingTransport{target: target}}),
		WithTimeout(2*time.Second),
	)
	cands := Candidates{Citations: []Citation{
		{URI: "https://vertexaisearch.cloud.google.com/grounding-api-redirect/expired", Title: "inquirer.net"},
		{URI: "https://vertexaisearch.cloud.google.com/grounding-api-redirect/globe", Title: "philstar.com"},
	}}
	in := []news.Article{
		{Title: "Globe expands 5G", URL: site.URL + "/gone", Domain: "philstar.com"},
		{Title: "PLDT fiber price cut", URL: site.URL + "/gone", Domain: "inquirer.net"},
	}

	out := rep.Repair(context.Background(), in, cands)
	require.Len(t, out, 2)

	assert.Equal(t, news.LinkRepaired, out[0].LinkStatus)
	assert.Equal(t, site.URL+"/business/globe-5g", out[0].URL)
	assert.Equal(t, "127.0.0.1", out[0].Domain)

	assert.Equal(t, news.LinkUnverified, out[1].LinkStatus, "citation redirect that does not resolve is skipped")
	assert.Equal(t, site.URL+"/gone", out[1].URL)
}

func TestCitationDomain(t *testing.T) {
	cases := []struct {
		name string
		c    Citation
		want string
	}{
		{"direct link", Citation{URI: "https://www.rappler.com/x", Title: "Rappler"}, "rappler.com"},
		{"redirect with domain title", Citation{URI: "https://vertexaisearch.cloud.google.com/r/1", Title: "www.Philstar.com"}, "philstar.com"},
		{"redirect with prose title", Citation{URI: "https://vertexaisearch.cloud.google.com/r/1", Title: "Globe expands 5G"}, ""},
		{"redirect without title", Citation{URI: "https://vertexaisearch.cloud.google.com/r/1"}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, citationDomain(tc.c))
		})
	}
}
