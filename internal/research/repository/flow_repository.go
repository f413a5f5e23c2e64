package repository

import (
	"context"
	"fmt"
	"strings"

	"stock-research-service/internal/research/dto"
	"stock-research-service/pkg/logger"
)

// classifyActivity maps 13F change counts to an activity level. Strong
// levels are checked before the net levels.
func classifyActivity(newPositions, increased, decreased, exited int) string {
	buying := newPositions + increased
	selling := decreased + exited

	switch {
	case buying > selling*2:
		return dto.ActivityStrongBuying
	case buying > selling:
		return dto.ActivityNetBuying
	case selling > buying*2:
		return dto.ActivityStrongSelling
	case selling > buying:
		return dto.ActivityNetSelling
	default:
		return dto.ActivityNeutral
	}
}

type institutionalRepository struct {
	search SearchClient
	logger *logger.Logger
}

// NewInstitutionalRepository creates the 13F change signal provider.
func NewInstitutionalRepository(search SearchClient, log *logger.Logger) SignalProvider {
	return &institutionalRepository{search: search, logger: log}
}

func (r *institutionalRepository) Kind() dto.SignalKind {
	return dto.SignalInstitutional
}

func (r *institutionalRepository) Fetch(ctx context.Context, ticker string) (*dto.SignalResult, error) {
	results, err := r.search.Search(ctx, SearchQuery{
		Query:          fmt.Sprintf("%s 13F filing increases new position institutional buying hedge fund", ticker),
		NumResults:     25,
		IncludeDomains: []string{"whalewisdom.com", "fintel.io", "dataroma.com", "gurufocus.com", "13f.info"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to track 13F changes: %w", err)
	}

	var newPositions, increased, decreased, exited int
	for _, filing := range results {
		combined := strings.ToLower(filing.Title + " " + filing.Text)
		switch {
		case containsAny(combined, "new position", "initiates", "new stake", "adds"):
			newPositions++
		case containsAny(combined, "increases", "adds to", "boost", "doubles"):
			increased++
		case containsAny(combined, "reduces", "trims", "cuts", "decreases"):
			decreased++
		case containsAny(combined, "exits", "sells out", "liquidates", "closes"):
			exited++
		}
	}

	return &dto.SignalResult{
		Kind: dto.SignalInstitutional,
		Institutional: &dto.InstitutionalActivity{
			ActivityLevel: classifyActivity(newPositions, increased, decreased, exited),
			NewPositions:  newPositions,
			Increased:     increased,
			Decreased:     decreased,
			Exited:        exited,
		},
	}, nil
}

// classifyUnusualActivity maps flow mentions to activity types and a bias.
func classifyUnusualActivity(results []SearchResult) *dto.UnusualOptionsActivity {
	var unusualCalls, unusualPuts, darkPool, largeBlocks bool
	for _, a := range results {
		title := strings.ToLower(a.Title)
		combined := title + " " + strings.ToLower(a.Text)
		if strings.Contains(title, "call") {
			unusualCalls = true
		}
		if strings.Contains(title, "put") {
			unusualPuts = true
		}
		if strings.Contains(combined, "dark pool") {
			darkPool = true
		}
		if strings.Contains(title, "block") {
			largeBlocks = true
		}
	}

	var activityTypes []string
	if unusualCalls {
		activityTypes = append(activityTypes, "UNUSUAL CALL BUYING")
	}
	if unusualPuts {
		activityTypes = append(activityTypes, "UNUSUAL PUT BUYING")
	}
	if darkPool {
		activityTypes = append(activityTypes, "DARK POOL ACTIVITY")
	}
	if largeBlocks {
		activityTypes = append(activityTypes, "LARGE BLOCK TRADES")
	}

	bias := dto.BiasMixed
	if unusualCalls && !unusualPuts {
		bias = dto.BiasBullish
	} else if unusualPuts && !unusualCalls {
		bias = dto.BiasBearish
	}

	return &dto.UnusualOptionsActivity{
		Detected:      len(activityTypes) > 0,
		Bias:          bias,
		ActivityTypes: activityTypes,
	}
}

type optionsFlowRepository struct {
	search SearchClient
	logger *logger.Logger
}

// NewOptionsFlowRepository creates the unusual options activity provider.
func NewOptionsFlowRepository(search SearchClient, log *logger.Logger) SignalProvider {
	return &optionsFlowRepository{search: search, logger: log}
}

func (r *optionsFlowRepository) Kind() dto.SignalKind {
	return dto.SignalOptions
}

func (r *optionsFlowRepository) Fetch(ctx context.Context, ticker string) (*dto.SignalResult, error) {
	results, err := r.search.Search(ctx, SearchQuery{
		Query:      fmt.Sprintf("%s unusual options activity dark pool whales large orders flow", ticker),
		NumResults: 20,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan unusual activity: %w", err)
	}

	return &dto.SignalResult{
		Kind:    dto.SignalOptions,
		Options: classifyUnusualActivity(results),
	}, nil
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
