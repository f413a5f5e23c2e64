package dto

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PortfolioRecommendationRequest is the body for a portfolio research run.
type PortfolioRecommendationRequest struct {
	Holdings       map[string]float64 `json:"holdings"`
	Preference     string             `json:"preference,omitempty"`
	RiskTolerance  string             `json:"risk_tolerance,omitempty"`
	Mode           string             `json:"mode,omitempty"`
	PortfolioValue float64            `json:"portfolio_value,omitempty"`
}
