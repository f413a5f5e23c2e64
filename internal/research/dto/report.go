package dto

import "time"

// ResearchMode selects how deep a research run goes.
type ResearchMode string

const (
	ModeQuick    ResearchMode = "quick"
	ModeStandard ResearchMode = "standard"
	ModeDeep     ResearchMode = "deep"
)

// Recommended actions, ordered from most to least bullish.
const (
	ActionStrongBuy  = "STRONG BUY"
	ActionBuy        = "BUY"
	ActionHold       = "HOLD"
	ActionSell       = "SELL"
	ActionStrongSell = "STRONG SELL"
)

// RiskLevel grades one risk dimension.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskVeryHigh RiskLevel = "VERY HIGH"
	RiskExtreme  RiskLevel = "EXTREME"
)

// RiskAssessment grades the three risk dimensions of a recommendation.
type RiskAssessment struct {
	ValuationRisk  RiskLevel `json:"valuation_risk"`
	VolatilityRisk RiskLevel `json:"volatility_risk"`
	MarketRisk     RiskLevel `json:"market_risk"`
}

// ResearchReport is the final output of one research run. It is created
// once by the assembler and never mutated.
type ResearchReport struct {
	ID           string           `json:"id"`
	Ticker       string           `json:"ticker"`
	Mode         ResearchMode     `json:"mode"`
	Action       string           `json:"action"`
	Conviction   int              `json:"conviction"`
	CurrentPrice float64          `json:"current_price"`
	TargetPrice  float64          `json:"target_price"`
	UpsidePct    float64          `json:"upside_pct"`
	Headline     string           `json:"headline"`
	BullCase     Case             `json:"bull_case"`
	BearCase     Case             `json:"bear_case"`
	Debate       DebateResult     `json:"debate"`
	Scores       SpecialistScores `json:"scores"`
	Risk         RiskAssessment   `json:"risk"`
	Signals      SignalBundle     `json:"signals"`
	GeneratedAt  time.Time        `json:"generated_at"`
}
