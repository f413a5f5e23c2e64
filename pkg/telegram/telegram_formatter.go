package telegram

import (
	"fmt"
	"strings"

	"stock-research-service/internal/research/dto"
)

// FormatResearchReport formats a research report into a Markdown digest for
// Telegram.
func FormatResearchReport(report *dto.ResearchReport) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("--- 📊 *Research Report: %s* ---\n\n", report.Ticker))

	var actionIcon string
	switch report.Action {
	case dto.ActionStrongBuy, dto.ActionBuy:
		actionIcon = "🟢"
	case dto.ActionStrongSell, dto.ActionSell:
		actionIcon = "🔴"
	default:
		actionIcon = "🟡"
	}
	builder.WriteString(fmt.Sprintf("%s *Action:* %s\n", actionIcon, report.Action))
	builder.WriteString(fmt.Sprintf("🎯 *Conviction:* %d/10\n", report.Conviction))

	var winnerIcon string
	if report.Debate.Winner == dto.SideBull {
		winnerIcon = "🐂"
	} else {
		winnerIcon = "🐻"
	}
	builder.WriteString(fmt.Sprintf("%s *Debate winner:* %s (%d%% confidence)\n\n",
		winnerIcon, report.Debate.Winner, report.Debate.Confidence))

	if report.CurrentPrice > 0 {
		builder.WriteString(fmt.Sprintf("💵 *Price:* $%.2f → target $%.2f (%+.1f%%)\n",
			report.CurrentPrice, report.TargetPrice, report.UpsidePct))
	}
	builder.WriteString(fmt.Sprintf("⚠️ *Risk:* valuation %s, volatility %s, market %s\n",
		report.Risk.ValuationRisk, report.Risk.VolatilityRisk, report.Risk.MarketRisk))

	if report.Headline != "" {
		builder.WriteString(fmt.Sprintf("\n💬 %s\n", report.Headline))
	}
	for _, point := range report.Debate.KeyPoints {
		builder.WriteString(fmt.Sprintf("• %s\n", point))
	}

	builder.WriteString(fmt.Sprintf("\n_mode: %s, generated %s_",
		report.Mode, report.GeneratedAt.Format("2006-01-02 15:04 MST")))

	return builder.String()
}

// FormatPortfolioRecommendation formats a portfolio recommendation into a
// Markdown digest for Telegram.
func FormatPortfolioRecommendation(rec *dto.PortfolioRecommendation) string {
	var builder strings.Builder

	builder.WriteString("--- 💼 *Portfolio Recommendation* ---\n\n")
	builder.WriteString(fmt.Sprintf("🏆 *Sector:* %s\n", rec.WinningSector))
	builder.WriteString(fmt.Sprintf("📈 *Stock:* %s\n", rec.RecommendedStock))
	builder.WriteString(fmt.Sprintf("⚖️ *Allocation:* %.1f%% ($%.2f)\n",
		rec.Projection.RecommendedAllocationPct, rec.Projection.InvestmentAmount))
	builder.WriteString(fmt.Sprintf("📊 *Expected return:* %.1f%% → %.1f%% (%+.1f%%)\n",
		rec.Projection.CurrentReturn, rec.Projection.NewReturn, rec.Projection.Improvement))

	if len(rec.Projection.Schedule) > 0 {
		builder.WriteString(fmt.Sprintf("\n🗓 *DCA plan (%d weeks):*\n", len(rec.Projection.Schedule)))
		for _, tranche := range rec.Projection.Schedule {
			builder.WriteString(fmt.Sprintf("• Week %d: $%.2f (%.1f%%)\n",
				tranche.Week, tranche.Amount, tranche.Percentage))
		}
	}

	if rec.StrategyReasoning != "" {
		builder.WriteString(fmt.Sprintf("\n💬 %s\n", rec.StrategyReasoning))
	}
	return builder.String()
}
