package news

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTitle(t *testing.T) {
	cases := map[string]string{
		"  Globe's 5G — Rollout!! ": "globes 5g rollout",
		"PLDT\tposts\n\nprofit":     "pldt posts profit",
		"???":                       "",
		"":                          "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeTitle(in), "input %q", in)
	}
}

func TestNormalizeURL_StripsProtocolWWWQueryAndSlash(t *testing.T) {
	a := NormalizeURL("https://Example.com/news/story/")
	b := NormalizeURL("https://www.example.com/news/story?utm=1")

	assert.Equal(t, "example.com/news/story", a)
	assert.Equal(t, a, b)
}

func TestNormalizeURL_DropsPort(t *testing.T) {
	assert.Equal(t, "example.com/x", NormalizeURL("http://example.com:8080/x/"))
}

func TestNormalizeURL_StringFallback(t *testing.T) {
	assert.Equal(t, "example.com/a/b", NormalizeURL("WWW.Example.com/a/b/"))
	assert.Equal(t, "%zz/news", NormalizeURL("https://%zz/news/"))
	assert.Equal(t, "#", NormalizeURL("#"))
}

func TestDomainOf(t *testing.T) {
	assert.Equal(t, "newsinfo.inquirer.net", DomainOf("https://newsinfo.inquirer.net/123/x"))
	assert.Equal(t, "philstar.com", DomainOf("https://WWW.PhilStar.com/business"))
	assert.Equal(t, "", DomainOf("not a url"))
}
