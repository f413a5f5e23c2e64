package service

import (
	"strconv"
	"strings"

	"stock-research-service/internal/research/dto"
	"stock-research-service/pkg/logger"
)

// JudgeVerdictParser extracts a verdict from the judge's free-text reply.
// Implementations must be tolerant: a malformed reply yields defaults, not
// an error.
type JudgeVerdictParser interface {
	Parse(ticker, response string) dto.JudgeVerdict
}

type judgeVerdictParser struct {
	logger *logger.Logger
}

// NewJudgeVerdictParser creates the labeled-line verdict parser.
func NewJudgeVerdictParser(log *logger.Logger) JudgeVerdictParser {
	return &judgeVerdictParser{logger: log}
}

// Parse scans the reply line by line for the labeled fields. Labels are
// matched case-insensitively after stripping whitespace and markdown
// decoration. Anything missing falls back to winner=bull, confidence=50.
func (p *judgeVerdictParser) Parse(ticker, response string) dto.JudgeVerdict {
	verdict := dto.JudgeVerdict{
		Winner:     dto.SideBull,
		Confidence: 50,
	}
	winnerFound := false
	confidenceFound := false

	for _, line := range strings.Split(response, "\n") {
		line = strings.Trim(strings.TrimSpace(line), "*#` ")
		label, value, ok := splitLabel(line)
		if !ok {
			continue
		}

		switch label {
		case "WINNER":
			side := strings.ToLower(value)
			if strings.Contains(side, "bear") {
				verdict.Winner = dto.SideBear
				winnerFound = true
			} else if strings.Contains(side, "bull") {
				verdict.Winner = dto.SideBull
				winnerFound = true
			}
		case "CONFIDENCE":
			if n, err := strconv.Atoi(digitsPrefix(value)); err == nil {
				if n < 0 {
					n = 0
				}
				if n > 100 {
					n = 100
				}
				verdict.Confidence = n
				confidenceFound = true
			}
		case "BEST_ARGUMENT":
			verdict.WinningArgument = value
		case "KEY_POINT_1", "KEY_POINT_2", "KEY_POINT_3":
			if value != "" {
				verdict.KeyPoints = append(verdict.KeyPoints, value)
			}
		}
	}

	if !winnerFound || !confidenceFound {
		p.logger.Warn("Judge verdict incomplete, using defaults",
			logger.StringField("ticker", ticker),
			logger.Field("winner_found", winnerFound),
			logger.Field("confidence_found", confidenceFound),
		)
	}
	return verdict
}

// splitLabel splits "LABEL: value" and normalizes the label.
func splitLabel(line string) (label, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", "", false
	}
	label = strings.ToUpper(strings.TrimSpace(line[:idx]))
	label = strings.ReplaceAll(label, " ", "_")
	value = strings.TrimSpace(line[idx+1:])
	value = strings.Trim(value, "[]")
	return label, value, true
}

// digitsPrefix returns the leading integer portion of a string, so
// "85 out of 100" parses as 85.
func digitsPrefix(s string) string {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end]
}
