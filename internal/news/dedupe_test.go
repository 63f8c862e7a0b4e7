package news

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleArticles() []Article {
	return []Article{
		{Title: "Globe Telecom expands 5G coverage", URL: "https://philstar.com/a/"},
		{Title: "Globe expands coverage (copy)", URL: "https://www.philstar.com/a?utm_source=x"},
		{Title: "PLDT posts record profit", URL: "https://inquirer.net/b"},
		{Title: "PLDT posts record profit in first half", URL: "https://rappler.com/c"},
		{Title: "DITO adds cell sites", URL: "https://mb.com.ph/d"},
	}
}

func TestDedupeByURL_FirstOccurrenceWins(t *testing.T) {
	out := DedupeByURL(sampleArticles())

	require.Len(t, out, 4)
	assert.Equal(t, "Globe Telecom expands 5G coverage", out[0].Title)
	assert.Equal(t, "PLDT posts record profit", out[1].Title)
	assert.Equal(t, "PLDT posts record profit in first half", out[2].Title)
}

func TestDedupeByURL_Idempotent(t *testing.T) {
	once := DedupeByURL(sampleArticles())
	assert.Equal(t, once, DedupeByURL(once))
}

func TestDedupeByURL_EmptyInput(t *testing.T) {
	out := DedupeByURL(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestMergeUnique(t *testing.T) {
	existing := []Article{
		{Title: "Globe Telecom expands 5G coverage in Mindanao", URL: "https://gemini.example/1"},
	}
	candidates := []Article{
		{Title: "Globe Telecom expands 5G coverage in Mindanao region", URL: "https://philstar.com/x"},
		{Title: "Converge ICT fiber rollout reaches Samar", URL: "https://inquirer.net/y"},
		{Title: "Converge ICT fiber rollout reaches Samar towns", URL: "https://mb.com.ph/z"},
	}

	out := MergeUnique(existing, candidates)

	require.Len(t, out, 1)
	assert.Equal(t, "Converge ICT fiber rollout reaches Samar", out[0].Title)
	assert.Len(t, existing, 1, "existing must not be modified")
}
