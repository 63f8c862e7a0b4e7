package news

// DedupeByURL keeps the first article for each normalized URL.
func DedupeByURL(articles []Article) []Article {
	seen := make(map[string]struct{}, len(articles))
	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		key := NormalizeURL(a.URL)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out
}

// MergeUnique returns the candidates that duplicate nothing in existing nor
// any candidate accepted before them. Order is preserved.
func MergeUnique(existing, candidates []Article) []Article {
	pool := make([]Article, len(existing), len(existing)+len(candidates))
	copy(pool, existing)

	accepted := make([]Article, 0, len(candidates))
	for _, c := range candidates {
		if duplicatesAny(c, pool) {
			continue
		}
		pool = append(pool, c)
		accepted = append(accepted, c)
	}
	return accepted
}

func duplicatesAny(a Article, pool []Article) bool {
	for _, p := range pool {
		if IsDuplicate(a, p) {
			return true
		}
	}
	return false
}
