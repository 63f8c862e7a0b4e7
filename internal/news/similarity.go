package news

import "strings"

// TitleSimilarity is the Jaccard index of the token sets of two normalized
// titles. Identical normalized titles score 1.
func TitleSimilarity(a, b string) float64 {
	na, nb := NormalizeTitle(a), NormalizeTitle(b)
	if na == nb {
		return 1.0
	}

	setA := tokenSet(na)
	setB := tokenSet(nb)

	inter := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(s)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// minContainedTitle is the length a normalized title must exceed before it
// can be matched by containment.
const minContainedTitle = 10

// IsDuplicate reports whether a and b are the same story: equal normalized
// URLs, equal normalized titles, or the shorter normalized title contained
// in the longer one.
func IsDuplicate(a, b Article) bool {
	if NormalizeURL(a.URL) == NormalizeURL(b.URL) {
		return true
	}

	ta, tb := NormalizeTitle(a.Title), NormalizeTitle(b.Title)
	if ta == tb {
		return true
	}

	shorter, longer := ta, tb
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	return len(shorter) > minContainedTitle && strings.Contains(longer, shorter)
}
