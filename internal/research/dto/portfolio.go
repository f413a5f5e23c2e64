package dto

// PortfolioHoldings maps ticker to portfolio weight in percent. Weights are
// treated as independent percentages and are not normalized.
type PortfolioHoldings map[string]float64

// RiskTolerance selects the allocation sizing profile.
type RiskTolerance string

const (
	RiskToleranceConservative RiskTolerance = "conservative"
	RiskToleranceModerate     RiskTolerance = "moderate"
	RiskToleranceAggressive   RiskTolerance = "aggressive"
)

// Sector weight status relative to the benchmark.
const (
	WeightHeavilyOverweight  = "HEAVILY OVERWEIGHT"
	WeightOverweight         = "OVERWEIGHT"
	WeightBalanced           = "BALANCED"
	WeightUnderweight        = "UNDERWEIGHT"
	WeightHeavilyUnderweight = "HEAVILY UNDERWEIGHT"
	WeightMissing            = "MISSING"
	WeightAbsent             = "ABSENT"
)

// SectorWeight compares one sector's portfolio weight to the benchmark.
type SectorWeight struct {
	Sector          string  `json:"sector"`
	PortfolioWeight float64 `json:"portfolio_weight"`
	BenchmarkWeight float64 `json:"benchmark_weight"`
	Difference      float64 `json:"difference"`
	Status          string  `json:"status"`
}

// DiversificationOpportunity is an underweight sector worth adding to.
type DiversificationOpportunity struct {
	Sector          string  `json:"sector"`
	CurrentWeight   float64 `json:"current_weight"`
	BenchmarkWeight float64 `json:"benchmark_weight"`
	Gap             float64 `json:"gap"`
	Priority        string  `json:"priority"`
	Reason          string  `json:"reason"`
}

// PortfolioAnalysis is the structural view of a portfolio.
type PortfolioAnalysis struct {
	Holdings          PortfolioHoldings            `json:"holdings"`
	TotalPositions    int                          `json:"total_positions"`
	SectorExposure    map[string]float64           `json:"sector_exposure"`
	WeightAnalysis    []SectorWeight               `json:"weight_analysis"`
	Opportunities     []DiversificationOpportunity `json:"opportunities"`
	Themes            map[string][]string          `json:"themes"`
	ConcentrationRisk string                       `json:"concentration_risk"`
}

// SectorVerdict is the structured outcome of the sector debate.
type SectorVerdict struct {
	Winner     string `json:"winner"`
	Confidence int    `json:"confidence"`
	Reasoning  string `json:"reasoning"`
}

// DCATranche is one week of a dollar-cost-averaging schedule.
type DCATranche struct {
	Week       int     `json:"week"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// Projection models expected portfolio return before and after adding the
// recommended position.
type Projection struct {
	CurrentReturn            float64            `json:"current_expected_return"`
	NewReturn                float64            `json:"new_expected_return"`
	Improvement              float64            `json:"improvement"`
	NewStockReturn           float64            `json:"new_stock_return"`
	ConvictionAdjustedReturn float64            `json:"conviction_adjusted_return"`
	NewWeights               map[string]float64 `json:"new_weights"`
	RecommendedAllocationPct float64            `json:"recommended_allocation_pct"`
	InvestmentAmount         float64            `json:"investment_amount"`
	Schedule                 []DCATranche       `json:"dca_schedule"`
	Timeframe                string             `json:"timeframe"`
}

// PortfolioRecommendation is the final output of a portfolio research run.
type PortfolioRecommendation struct {
	Analysis          PortfolioAnalysis `json:"analysis"`
	Strategy          string            `json:"strategy"`
	StrategyReasoning string            `json:"strategy_reasoning"`
	WinningSector     string            `json:"winning_sector"`
	RecommendedStock  string            `json:"recommended_stock"`
	Research          *ResearchReport   `json:"research,omitempty"`
	Projection        Projection        `json:"projection"`
	RiskTolerance     RiskTolerance     `json:"risk_tolerance"`
}
