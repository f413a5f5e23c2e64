package common

const (
	// RedisKeyResearchReport is the key prefix for the latest report per ticker.
	RedisKeyResearchReport = "research:report:"

	// DefaultPortfolioValue is the assumed portfolio size for DCA planning
	// when the caller does not supply one.
	DefaultPortfolioValue = 100000.0

	// DefaultDCAWeeks is the default number of weekly tranches.
	DefaultDCAWeeks = 4
)
