package repository

// Simplified reference universe: the largest S&P 500 members per sector.
var universeBySector = map[string][]string{
	"Technology":             {"AAPL", "MSFT", "NVDA", "AVGO", "ORCL", "ADBE", "CRM", "CSCO", "ACN", "AMD"},
	"Healthcare":             {"UNH", "LLY", "JNJ", "ABBV", "MRK", "TMO", "ABT", "AMGN", "DHR", "PFE"},
	"Financials":             {"BRK.B", "JPM", "V", "MA", "BAC", "WFC", "MS", "GS", "SPGI", "BLK"},
	"Consumer Discretionary": {"AMZN", "TSLA", "HD", "MCD", "NKE", "LOW", "SBUX", "TJX"},
	"Consumer Staples":       {"WMT", "PG", "COST", "KO", "PEP", "PM", "MO", "MDLZ"},
	"Communication Services": {"META", "GOOGL", "GOOG", "NFLX", "DIS", "CMCSA", "T", "VZ"},
	"Industrials":            {"UNP", "CAT", "RTX", "HON", "UPS", "BA", "GE", "LMT", "DE"},
	"Materials":              {"LIN", "APD", "SHW", "ECL", "FCX", "NEM", "CTVA", "DD"},
	"Energy":                 {"XOM", "CVX", "COP", "SLB", "EOG", "MPC", "PSX", "VLO"},
	"Utilities":              {"NEE", "DUK", "SO", "D", "AEP", "EXC", "SRE", "XEL"},
	"Real Estate":            {"PLD", "AMT", "EQIX", "CCI", "PSA", "SPG", "WELL", "DLR"},
}

// Safe picks for sectors where candidate filtering comes up empty.
var defaultTickerBySector = map[string]string{
	"Healthcare":       "LLY",
	"Financials":       "JPM",
	"Technology":       "MSFT",
	"Consumer Staples": "PG",
	"Industrials":      "CAT",
}

const globalDefaultTicker = "MSFT"

type universeRepository struct{}

// NewUniverseRepository creates the static reference universe.
func NewUniverseRepository() UniverseRepository {
	return universeRepository{}
}

func (universeRepository) TickersBySector(sector string) []string {
	members := universeBySector[sector]
	out := make([]string, len(members))
	copy(out, members)
	return out
}

func (universeRepository) DefaultTicker(sector string) string {
	if ticker, ok := defaultTickerBySector[sector]; ok {
		return ticker
	}
	return globalDefaultTicker
}
