package news

// Relevance tables. Each ambiguous trigger is checked against the title; the
// telco indicators are checked against title and excerpt together.

// TelcoIndicators confirm that an ambiguous keyword refers to telecommunications.
var TelcoIndicators = []string{
	"pldt",
	"smart communications",
	"globe telecom",
	"dito telecommunity",
	"converge ict",
	"telecom",
	"telecoms",
	"telco",
	"5g network",
	"mobile network",
	"mobile data",
	"broadband",
	"fiber internet",
	"prepaid",
	"postpaid",
	"dict",
	"ntc",
	"isp",
}

// SmartFalsePositives are consumer-tech and generic uses of "smart".
var SmartFalsePositives = []string{
	"smart meter",
	"smart grid",
	"smart city",
	"smart cities",
	"smart home",
	"smart tv",
	"smartwatch",
	"smart watch",
	"smart economics",
	"smart farming",
	"smart card",
	"smart parking",
	"smart classroom",
	"smart speaker",
	"smart glasses",
}

// SmartExceptions mark titles where "smart" is already the carrier.
var SmartExceptions = []string{"smart communications"}

// DitoTagalogPhrases are Tagalog uses of "dito" ("here").
var DitoTagalogPhrases = []string{
	"dito sa",
	"dito ang",
	"dito na",
	"dito pa",
	"dito lang",
	"dito ka",
	"nandito",
}

// DitoFollowers are particles that, directly after "dito", mark Tagalog usage.
var DitoFollowers = []string{"sa", "ang", "na", "pa", "ay"}

// DitoExceptions mark titles where "dito" is already the carrier.
var DitoExceptions = []string{"dito telecom", "dito network"}

// GlobeFalsePositives are non-telco uses of "globe".
var GlobeFalsePositives = []string{
	"golden globe",
	"vendée globe",
	"globe award",
	"around the globe",
	"across the globe",
	"globe trotter",
}

// GlobeExceptions mark titles where "globe" is already the carrier.
var GlobeExceptions = []string{"globe telecom"}

// ConvergeFalsePositives are the sports uses of "converge".
var ConvergeFalsePositives = []string{
	"basketball",
	"pba",
	"fiberxers",
	"volleyball",
}

// ConvergeExceptions mark titles where "converge" is already the carrier.
var ConvergeExceptions = []string{"converge ict"}

// Importance tables, all checked against the title.

// VideoDomains are rejected regardless of content.
var VideoDomains = []string{"youtube.com", "youtu.be"}

// SportsKeywords reject league, team and match-report titles.
var SportsKeywords = []string{
	"pba",
	"pvl",
	"uaap",
	"ncaa",
	"nba",
	"fiba",
	"gilas",
	"basketball",
	"volleyball",
	"football",
	"boxing",
	"esports",
	"tournament",
	"championship",
	"playoffs",
	"semifinals",
	"finals",
	"traded",
	"debut",
	"score",
	"fiberxers",
	"tropang",
	"bolts",
	"creamline",
	"cool smashers",
}

// LowImportanceKeywords reject promos, raffles, CSR and awards coverage.
var LowImportanceKeywords = []string{
	"promo",
	"raffle",
	"giveaway",
	"freebie",
	"discount",
	"on sale",
	"csr",
	"donation",
	"donates",
	"outreach",
	"volunteer",
	"award",
	"recognition",
	"bundle",
	"unli",
	"load deal",
	"rewards",
	"contest",
	"concert",
	"fan meet",
}

// HighImportanceKeywords accept capital, regulatory, technology, financial
// and incident coverage.
var HighImportanceKeywords = []string{
	// capital and infrastructure
	"capex",
	"investment",
	"infrastructure",
	"cell site",
	"cell tower",
	"fiber",
	"data center",
	"submarine cable",
	"network expansion",
	"rollout",
	"5g",
	// regulatory
	"ntc",
	"dict",
	"regulation",
	"regulatory",
	"franchise",
	"spectrum",
	"sim registration",
	"konektadong pinoy",
	"senate",
	"congress",
	"tax",
	// technology
	"ai",
	"cloud",
	"satellite",
	"starlink",
	"cybersecurity",
	// M&A and financial
	"merger",
	"acquisition",
	"earnings",
	"revenue",
	"net income",
	"profit",
	"ipo",
	"dividend",
	"stake",
	// incidents
	"outage",
	"data breach",
	"hack",
	"scam",
	"disruption",
}

// MajorOutletDomains are the national outlets whose titles pass without a
// high-importance keyword when no outlet registry is configured. The
// registry in configs/outlets.yaml lists the same outlets.
var MajorOutletDomains = []string{
	"inquirer.net",
	"philstar.com",
	"mb.com.ph",
	"gmanetwork.com",
	"abs-cbn.com",
	"rappler.com",
	"bworldonline.com",
	"businessmirror.com.ph",
	"manilatimes.net",
	"pna.gov.ph",
	"cnnphilippines.com",
}

// AdMarkers are matched as plain substrings of the lower-cased title, so
// "ad" also hits words such as "broadband".
var AdMarkers = []string{"ad", "sponsored"}

// WholeWordKeywords are keywords longer than three characters that still
// only match as whole words, because they sit inside common words
// ("addiction", "mistake").
var WholeWordKeywords = []string{"dict", "stake", "fiba", "uaap", "ncaa"}
