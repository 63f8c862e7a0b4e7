package news

import "strings"

// IsRelevant rejects articles whose telco keyword is one of the known
// false-positive senses of "smart", "dito", "globe" or "converge". Every
// check must pass; articles without an ambiguous keyword are relevant.
// A "dito" inside another word, as in "editorial", is not the carrier.
func IsRelevant(a Article) bool {
	title := strings.ToLower(a.Title)
	combined := a.combinedText()

	return smartIsTelco(title, combined) &&
		ditoIsTelco(title, combined) &&
		globeIsTelco(title) &&
		convergeIsTelco(title)
}

func smartIsTelco(title, combined string) bool {
	if !strings.Contains(title, "smart") || containsAny(title, SmartExceptions) {
		return true
	}
	if !containsAny(title, SmartFalsePositives) {
		return true
	}
	return containsAny(combined, TelcoIndicators)
}

func ditoIsTelco(title, combined string) bool {
	if !strings.Contains(title, "dito") || containsAny(title, DitoExceptions) {
		return true
	}
	if containsAny(title, DitoTagalogPhrases) {
		return false
	}
	if !containsWord(title, "dito") {
		return true
	}
	if ditoFollowedByParticle(title) {
		return false
	}
	return containsAny(combined, TelcoIndicators)
}

// ditoFollowedByParticle looks at the token right after each standalone "dito".
func ditoFollowedByParticle(title string) bool {
	tokens := strings.Fields(NormalizeTitle(title))
	for i := 0; i+1 < len(tokens); i++ {
		if tokens[i] != "dito" {
			continue
		}
		for _, p := range DitoFollowers {
			if tokens[i+1] == p {
				return true
			}
		}
	}
	return false
}

func globeIsTelco(title string) bool {
	if !strings.Contains(title, "globe") || containsAny(title, GlobeExceptions) {
		return true
	}
	return !containsAny(title, GlobeFalsePositives)
}

func convergeIsTelco(title string) bool {
	if !strings.Contains(title, "converge") || containsAny(title, ConvergeExceptions) {
		return true
	}
	return !containsAny(title, ConvergeFalsePositives)
}
