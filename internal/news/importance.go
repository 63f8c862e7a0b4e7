package news

import "strings"

// IsVideoDomain reports whether the article is hosted on a video platform.
func IsVideoDomain(a Article) bool {
	host := DomainOf(a.URL)
	if host == "" {
		host = strings.ToLower(a.Domain)
	}
	for _, d := range VideoDomains {
		if strings.Contains(host, d) {
			return true
		}
	}
	return false
}

// IsImportant is IsImportantWith over MajorOutletDomains.
func IsImportant(a Article) bool {
	return IsImportantWith(a, MajorOutletDomains)
}

// IsImportantWith keeps business, regulatory, technology and incident
// coverage and drops video links, sports and promotional items. Titles
// without a high-signal keyword pass only when they come from one of
// outlets and carry no ad marker. An empty outlets list falls back to
// MajorOutletDomains.
func IsImportantWith(a Article, outlets []string) bool {
	if IsVideoDomain(a) {
		return false
	}

	title := strings.ToLower(a.Title)
	if containsAny(title, SportsKeywords) {
		return false
	}
	if containsAny(title, LowImportanceKeywords) {
		return false
	}
	if containsAny(title, HighImportanceKeywords) {
		return true
	}
	domain := a.Domain
	if domain == "" || domain == UnknownDomain {
		domain = DomainOf(a.URL)
	}
	if len(outlets) == 0 {
		outlets = MajorOutletDomains
	}
	return isOutlet(domain, outlets) && !hasAdMarker(title)
}

// isOutlet matches domain, or any subdomain of it, against outlets.
func isOutlet(domain string, outlets []string) bool {
	domain = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(domain)), "www.")
	if domain == "" {
		return false
	}
	for _, d := range outlets {
		if domain == d || strings.HasSuffix(domain, "."+d) {
			return true
		}
	}
	return false
}

// hasAdMarker is a plain substring test with no word boundaries.
func hasAdMarker(title string) bool {
	for _, m := range AdMarkers {
		if strings.Contains(title, m) {
			return true
		}
	}
	return false
}
