package repository

import (
	"fmt"
	"strings"

	"stock-research-service/internal/research/dto"
)

// FormatSignalDigest renders the gathered signals as a compact text block
// for use inside prompts. Failed signals are listed with their error so the
// analyst model knows what is missing.
func FormatSignalDigest(bundle *dto.SignalBundle) string {
	var b strings.Builder

	if r, ok := bundle.Payload(dto.SignalPrice); ok {
		p := r.Price
		b.WriteString(fmt.Sprintf("PRICE: $%.2f (%+.2f%% today), volume %d, market cap $%.0f\n",
			p.Price, p.ChangePercent, p.Volume, p.MarketCap))
	}
	if r, ok := bundle.Payload(dto.SignalFinancials); ok {
		f := r.Financials
		b.WriteString(fmt.Sprintf("FUNDAMENTALS: P/E %.1f, profit margin %.1f%%, revenue growth %.1f%%, EPS %.2f (%s), debt/equity %.2f\n",
			f.PERatio, f.ProfitMargin, f.RevenueGrowth, f.EPS, f.EPSPeriod, f.DebtToEquity))
	}
	if r, ok := bundle.Payload(dto.SignalNews); ok {
		b.WriteString(fmt.Sprintf("NEWS (%d recent articles):\n", r.News.Count))
		for i, a := range r.News.Articles {
			if i >= 5 {
				break
			}
			b.WriteString(fmt.Sprintf("  - %s (%s)\n", a.Title, a.Source))
		}
	}
	if r, ok := bundle.Payload(dto.SignalReddit); ok {
		s := r.Sentiment
		b.WriteString(fmt.Sprintf("REDDIT SENTIMENT: %.2f (%s), %d mentions, trending=%t\n",
			s.Score, s.Label, s.MentionVolume, s.Trending))
	}
	if r, ok := bundle.Payload(dto.SignalTwitter); ok {
		s := r.Sentiment
		b.WriteString(fmt.Sprintf("TWITTER SENTIMENT: %.2f (%s), %d mentions\n",
			s.Score, s.Label, s.MentionVolume))
	}
	if r, ok := bundle.Payload(dto.SignalInstitutional); ok {
		inst := r.Institutional
		b.WriteString(fmt.Sprintf("INSTITUTIONAL (13F): %s (new %d, increased %d, decreased %d, exited %d)\n",
			inst.ActivityLevel, inst.NewPositions, inst.Increased, inst.Decreased, inst.Exited))
	}
	if r, ok := bundle.Payload(dto.SignalInsider); ok {
		b.WriteString(fmt.Sprintf("INSIDER TRADES: %d recent transactions\n", r.Insider.Count))
	}
	if r, ok := bundle.Payload(dto.SignalOptions); ok {
		o := r.Options
		if o.Detected {
			b.WriteString(fmt.Sprintf("UNUSUAL OPTIONS: detected, bias %s (%s)\n",
				o.Bias, strings.Join(o.ActivityTypes, ", ")))
		} else {
			b.WriteString("UNUSUAL OPTIONS: none detected\n")
		}
	}

	for _, kind := range []dto.SignalKind{
		dto.SignalPrice, dto.SignalFinancials, dto.SignalNews,
		dto.SignalReddit, dto.SignalTwitter, dto.SignalInstitutional,
		dto.SignalInsider, dto.SignalOptions,
	} {
		if r, ok := bundle.Get(kind); ok && r.Failed() {
			b.WriteString(fmt.Sprintf("UNAVAILABLE: %s (%s)\n", kind, r.Error))
		}
	}

	if b.Len() == 0 {
		return "No signal data available.\n"
	}
	return b.String()
}

// FormatTranscript renders the debate transcript for embedding in rebuttal
// and judge prompts.
func FormatTranscript(transcript []dto.DebateRound) string {
	if len(transcript) == 0 {
		return "No previous rounds."
	}
	var b strings.Builder
	for _, round := range transcript {
		b.WriteString(fmt.Sprintf("--- Round %d ---\n", round.Round))
		b.WriteString(fmt.Sprintf("BULL: %s\n", round.BullRebuttal))
		b.WriteString(fmt.Sprintf("BEAR: %s\n", round.BearRebuttal))
	}
	return strings.TrimRight(b.String(), "\n")
}

// BuildBullCasePrompt creates the prompt for the opening bull case.
func BuildBullCasePrompt(ticker string, bundle *dto.SignalBundle, scores dto.SpecialistScores) string {
	return fmt.Sprintf(`You are a BULL analyst researching %s. Build the strongest possible case FOR buying this stock.

RESEARCH DATA:
%s
SPECIALIST SCORES (0-10):
- Fundamental: %.1f
- Technical: %.1f
- Sentiment: %.1f

Write a persuasive bull case in 3-5 short paragraphs. Ground every claim in the data above. Acknowledge nothing from the bear side.`,
		ticker, FormatSignalDigest(bundle), scores.Fundamental, scores.Technical, scores.Sentiment)
}

// BuildBearCasePrompt creates the prompt for the opening bear case.
func BuildBearCasePrompt(ticker string, bundle *dto.SignalBundle, scores dto.SpecialistScores) string {
	return fmt.Sprintf(`You are a BEAR analyst researching %s. Build the strongest possible case AGAINST buying this stock.

RESEARCH DATA:
%s
SPECIALIST SCORES (0-10):
- Fundamental: %.1f
- Technical: %.1f
- Sentiment: %.1f

Write a persuasive bear case in 3-5 short paragraphs. Ground every claim in the data above. Acknowledge nothing from the bull side.`,
		ticker, FormatSignalDigest(bundle), scores.Fundamental, scores.Technical, scores.Sentiment)
}

// BuildRebuttalPrompt creates the prompt for one side's rebuttal in a round.
func BuildRebuttalPrompt(ticker string, side dto.Side, round int, bullCase, bearCase dto.Case, transcript []dto.DebateRound) string {
	stance := "Rebut the BEAR analyst's strongest points and reinforce the bull thesis."
	if side == dto.SideBear {
		stance = "Rebut the BULL analyst's strongest points and reinforce the bear thesis."
	}
	return fmt.Sprintf(`You are the %s analyst for %s in round %d of a structured debate.

OPENING BULL CASE:
%s

OPENING BEAR CASE:
%s

PREVIOUS DEBATE:
%s

%s Be specific and concise (2-3 paragraphs). Do not repeat earlier arguments verbatim.`,
		strings.ToUpper(string(side)), ticker, round, bullCase.Text, bearCase.Text,
		FormatTranscript(transcript), stance)
}

// BuildJudgePrompt creates the judging prompt. The response format matters:
// the verdict parser keys on the labeled lines.
func BuildJudgePrompt(ticker string, bullCase, bearCase dto.Case, transcript []dto.DebateRound) string {
	return fmt.Sprintf(`You are an impartial judge evaluating a structured investment debate about %s.

OPENING BULL CASE:
%s

OPENING BEAR CASE:
%s

DEBATE TRANSCRIPT:
%s

Evaluate both sides on evidence quality and reasoning. Respond EXACTLY in this format:
WINNER: [bull or bear]
CONFIDENCE: [number 0-100]
BEST_ARGUMENT: [one sentence summarizing the winning side's strongest argument]
KEY_POINT_1: [key takeaway]
KEY_POINT_2: [key takeaway]
KEY_POINT_3: [key takeaway]`,
		ticker, bullCase.Text, bearCase.Text, FormatTranscript(transcript))
}

// BuildSectorDebatePrompt creates the single-call sector debate prompt. The
// response is requested as JSON so the verdict can be parsed structurally.
func BuildSectorDebatePrompt(sectorA, sectorB string, analysis dto.PortfolioAnalysis) string {
	var exposure strings.Builder
	for sector, weight := range analysis.SectorExposure {
		exposure.WriteString(fmt.Sprintf("- %s: %.1f%%\n", sector, weight))
	}
	if exposure.Len() == 0 {
		exposure.WriteString("- (no sector exposure data)\n")
	}
	return fmt.Sprintf(`Two analysts are debating which sector a portfolio should add next.

Analyst A argues for: %s
Analyst B argues for: %s

CURRENT PORTFOLIO SECTOR EXPOSURE:
%s
CONCENTRATION: %s

Consider diversification benefit, sector outlook, and fit with the existing holdings. Decide which sector wins.

Respond ONLY with JSON in exactly this shape:
{"winner": "<%s or %s>", "confidence": <0-100>, "reasoning": "<one sentence>"}`,
		sectorA, sectorB, exposure.String(), analysis.ConcentrationRisk, sectorA, sectorB)
}

// BuildStockDebatePrompt ranks candidate tickers within the winning sector.
func BuildStockDebatePrompt(sector string, candidates []string) string {
	return fmt.Sprintf(`You are ranking %s stocks for a portfolio that is underweight the sector.

CANDIDATES: %s

Rank the top 3 candidates by overall attractiveness (fundamentals, moat, momentum). Respond EXACTLY in this format:
TOP_1: [ticker]
TOP_2: [ticker]
TOP_3: [ticker]`,
		sector, strings.Join(candidates, ", "))
}
