package gemini

import (
	"fmt"
	"strings"

	"github.com/deusflow/telconews/internal/news"
)

const systemInstruction = `You are a research assistant for a Philippine telecommunications industry briefing.
Use web search to find real, published news articles. Never invent articles or URLs.
Answer with a single JSON object and nothing else.`

func buildPrompt(r news.DateRange) string {
	return fmt.Sprintf(`Find news articles matching the search query:
%s

Published between %s and %s (inclusive). Country: %s.

Return JSON with exactly these keys:
- "internationalNews": telecom industry news from outside the Philippines that affects Philippine operators
- "generalNews": Philippine telecom industry, regulatory and policy news not specific to one operator
- "companyNews": an array with one entry for each of these companies: %s

Each entry of "companyNews" is {"companyName": "<one of the names above>", "articles": [...]}.

Every article object has this shape:
{
  "title": "<headline as published>",
  "date": "<publication date, e.g. Jan 2, 2025>",
  "summary": "<two or three sentence summary>",
  "takeaways": ["<takeaway one>", "<takeaway two>"],
  "source": {"title": "<outlet domain, e.g. inquirer.net>", "uri": "<article URL>"}
}

"takeaways" must contain exactly two strings. Use empty arrays when nothing was found.`,
		Query, r.StartString(), r.EndString(), Country, strings.Join(news.TrackedCompanies, ", "))
}
