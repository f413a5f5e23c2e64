package repository

import (
	"context"
	"net/http"
	"strings"
	"time"

	"stock-research-service/internal/research/config"
	"stock-research-service/pkg/logger"

	gocache "github.com/patrickmn/go-cache"
)

// The 11 GICS sectors.
var gicsSectors = []string{
	"Technology",
	"Healthcare",
	"Financials",
	"Consumer Discretionary",
	"Consumer Staples",
	"Communication Services",
	"Industrials",
	"Materials",
	"Energy",
	"Utilities",
	"Real Estate",
}

// Approximate S&P 500 sector weights used as the diversification benchmark.
var benchmarkWeights = map[string]float64{
	"Technology":             29.0,
	"Healthcare":             13.0,
	"Financials":             13.0,
	"Consumer Discretionary": 10.5,
	"Communication Services": 8.5,
	"Industrials":            8.0,
	"Consumer Staples":       6.5,
	"Energy":                 4.0,
	"Utilities":              2.5,
	"Real Estate":            2.5,
	"Materials":              2.5,
}

// Hardcoded classifications for common tickers. ETFs are mapped to the
// sector of their underlying exposure.
var tickerSectorMap = map[string]string{
	"AAPL":  "Technology",
	"MSFT":  "Technology",
	"NVDA":  "Technology",
	"GOOGL": "Technology",
	"GOOG":  "Technology",
	"AVGO":  "Technology",
	"ORCL":  "Technology",
	"ADBE":  "Technology",
	"CRM":   "Technology",
	"CSCO":  "Technology",
	"ACN":   "Technology",
	"AMD":   "Technology",
	"PLTR":  "Technology",
	"MAGS":  "Technology",

	"UNH":  "Healthcare",
	"LLY":  "Healthcare",
	"JNJ":  "Healthcare",
	"ABBV": "Healthcare",
	"MRK":  "Healthcare",
	"TMO":  "Healthcare",
	"ABT":  "Healthcare",

	"BRK.B": "Financials",
	"JPM":   "Financials",
	"V":     "Financials",
	"MA":    "Financials",
	"BAC":   "Financials",
	"WFC":   "Financials",
	"IBIT":  "Financials",

	"AMZN": "Consumer Discretionary",
	"TSLA": "Consumer Discretionary",
	"HD":   "Consumer Discretionary",
	"MCD":  "Consumer Discretionary",
	"NKE":  "Consumer Discretionary",
	"SBUX": "Consumer Discretionary",

	"WMT":  "Consumer Staples",
	"PG":   "Consumer Staples",
	"COST": "Consumer Staples",
	"KO":   "Consumer Staples",
	"PEP":  "Consumer Staples",

	"META":  "Communication Services",
	"NFLX":  "Communication Services",
	"DIS":   "Communication Services",
	"CMCSA": "Communication Services",

	"LIN": "Materials",
	"APD": "Materials",
	"FCX": "Materials",
	"NEM": "Materials",
	"URA": "Materials",
	"IAU": "Materials",
	"SLV": "Materials",

	"XOM": "Energy",
	"CVX": "Energy",
	"COP": "Energy",

	"UNP": "Industrials",
	"CAT": "Industrials",
	"BA":  "Industrials",
	"GE":  "Industrials",
}

const defaultSector = "Technology"

type sectorRepository struct {
	financialDatasetsClient
	cache *gocache.Cache
}

// NewSectorRepository creates the GICS sector classifier. Unknown tickers
// are resolved through the company facts endpoint and cached.
func NewSectorRepository(cfg *config.Config, log *logger.Logger) SectorRepository {
	return &sectorRepository{
		financialDatasetsClient: financialDatasetsClient{
			client: &http.Client{Timeout: 30 * time.Second},
			cfg:    cfg,
			logger: log,
		},
		cache: gocache.New(24*time.Hour, time.Hour),
	}
}

func (r *sectorRepository) Sectors() []string {
	sectors := make([]string, len(gicsSectors))
	copy(sectors, gicsSectors)
	return sectors
}

func (r *sectorRepository) BenchmarkWeight(sector string) float64 {
	return benchmarkWeights[sector]
}

func (r *sectorRepository) BenchmarkWeights() map[string]float64 {
	weights := make(map[string]float64, len(benchmarkWeights))
	for sector, weight := range benchmarkWeights {
		weights[sector] = weight
	}
	return weights
}

type companyFactsResponse struct {
	CompanyFacts struct {
		Sector   string `json:"sector"`
		Industry string `json:"industry"`
	} `json:"company_facts"`
}

func (r *sectorRepository) SectorOf(ticker string) string {
	ticker = strings.ToUpper(ticker)

	if sector, ok := tickerSectorMap[ticker]; ok {
		return sector
	}
	if cached, found := r.cache.Get(ticker); found {
		return cached.(string)
	}

	sector := defaultSector
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var factsResp companyFactsResponse
	if err := r.get(ctx, "/company/facts/?ticker="+ticker, &factsResp); err != nil {
		r.logger.Warn("Could not fetch sector, using default",
			logger.StringField("ticker", ticker), logger.ErrorField(err))
	} else if factsResp.CompanyFacts.Sector != "" {
		sector = normalizeSector(factsResp.CompanyFacts.Sector)
	} else if factsResp.CompanyFacts.Industry != "" {
		sector = normalizeSector(factsResp.CompanyFacts.Industry)
	}

	r.cache.Set(ticker, sector, gocache.DefaultExpiration)
	return sector
}

// normalizeSector maps free-form sector or industry names onto the GICS
// standard.
func normalizeSector(sector string) string {
	s := strings.ToLower(sector)
	switch {
	case strings.Contains(s, "tech"), strings.Contains(s, "software"), strings.Contains(s, "semiconductor"):
		return "Technology"
	case strings.Contains(s, "health"), strings.Contains(s, "pharma"), strings.Contains(s, "bio"):
		return "Healthcare"
	case strings.Contains(s, "financ"), strings.Contains(s, "bank"), strings.Contains(s, "insurance"):
		return "Financials"
	case strings.Contains(s, "consumer"):
		if strings.Contains(s, "staple") || strings.Contains(s, "defensive") {
			return "Consumer Staples"
		}
		return "Consumer Discretionary"
	case strings.Contains(s, "commun"), strings.Contains(s, "media"), strings.Contains(s, "telecom"):
		return "Communication Services"
	case strings.Contains(s, "industr"), strings.Contains(s, "aero"), strings.Contains(s, "defense"):
		return "Industrials"
	case strings.Contains(s, "material"), strings.Contains(s, "chemical"), strings.Contains(s, "mining"):
		return "Materials"
	case strings.Contains(s, "energy"), strings.Contains(s, "oil"), strings.Contains(s, "gas"):
		return "Energy"
	case strings.Contains(s, "utilit"), strings.Contains(s, "electric"), strings.Contains(s, "water"):
		return "Utilities"
	case strings.Contains(s, "real estate"), strings.Contains(s, "reit"):
		return "Real Estate"
	default:
		return defaultSector
	}
}
