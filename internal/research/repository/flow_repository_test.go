package repository

import (
	"context"
	"testing"

	"stock-research-service/internal/research/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyActivity(t *testing.T) {
	tests := []struct {
		name                                       string
		newPositions, increased, decreased, exited int
		expected                                   string
	}{
		{"strong buying", 5, 4, 2, 1, dto.ActivityStrongBuying},
		{"net buying", 3, 2, 2, 2, dto.ActivityNetBuying},
		{"strong selling", 1, 0, 2, 1, dto.ActivityStrongSelling},
		{"net selling", 2, 1, 3, 1, dto.ActivityNetSelling},
		{"balanced is neutral", 2, 2, 2, 2, dto.ActivityNeutral},
		{"no filings is neutral", 0, 0, 0, 0, dto.ActivityNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level := classifyActivity(tt.newPositions, tt.increased, tt.decreased, tt.exited)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestInstitutionalFetchCategorizesFilings(t *testing.T) {
	search := &fakeSearch{results: []SearchResult{
		{Title: "Fund initiates new position in ACME", Text: ""},
		{Title: "Berkshire boosts its stake", Text: ""},
		{Title: "Manager trims ACME holding", Text: ""},
		{Title: "Hedge fund exits ACME entirely", Text: ""},
		{Title: "ACME quarterly results", Text: "nothing relevant"},
	}}
	repo := NewInstitutionalRepository(search, newTestLogger())

	assert.Equal(t, dto.SignalInstitutional, repo.Kind())

	result, err := repo.Fetch(context.Background(), "ACME")
	require.NoError(t, err)
	require.NotNil(t, result.Institutional)

	activity := result.Institutional
	assert.Equal(t, 1, activity.NewPositions)
	assert.Equal(t, 1, activity.Increased)
	assert.Equal(t, 1, activity.Decreased)
	assert.Equal(t, 1, activity.Exited)
	assert.Equal(t, dto.ActivityNeutral, activity.ActivityLevel)
}

func TestClassifyUnusualActivity(t *testing.T) {
	tests := []struct {
		name         string
		results      []SearchResult
		wantDetected bool
		wantBias     string
		wantTypes    []string
	}{
		{
			name:         "nothing unusual",
			results:      []SearchResult{{Title: "Quiet session for ACME", Text: ""}},
			wantDetected: false,
			wantBias:     dto.BiasMixed,
		},
		{
			name:         "call buying only",
			results:      []SearchResult{{Title: "Unusual call sweep spotted", Text: ""}},
			wantDetected: true,
			wantBias:     dto.BiasBullish,
			wantTypes:    []string{"UNUSUAL CALL BUYING"},
		},
		{
			name:         "put buying only",
			results:      []SearchResult{{Title: "Heavy put volume today", Text: ""}},
			wantDetected: true,
			wantBias:     dto.BiasBearish,
			wantTypes:    []string{"UNUSUAL PUT BUYING"},
		},
		{
			name: "calls and puts is mixed",
			results: []SearchResult{
				{Title: "call sweeps", Text: ""},
				{Title: "put sweeps", Text: ""},
			},
			wantDetected: true,
			wantBias:     dto.BiasMixed,
			wantTypes:    []string{"UNUSUAL CALL BUYING", "UNUSUAL PUT BUYING"},
		},
		{
			name:         "dark pool in body text counts",
			results:      []SearchResult{{Title: "Quiet tape", Text: "dark pool prints surged"}},
			wantDetected: true,
			wantBias:     dto.BiasMixed,
			wantTypes:    []string{"DARK POOL ACTIVITY"},
		},
		{
			name:         "block trades in title only",
			results:      []SearchResult{{Title: "Large block crossed at the close", Text: ""}},
			wantDetected: true,
			wantBias:     dto.BiasMixed,
			wantTypes:    []string{"LARGE BLOCK TRADES"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			activity := classifyUnusualActivity(tt.results)
			assert.Equal(t, tt.wantDetected, activity.Detected)
			assert.Equal(t, tt.wantBias, activity.Bias)
			assert.Equal(t, tt.wantTypes, activity.ActivityTypes)
		})
	}
}

func TestOptionsFlowFetch(t *testing.T) {
	search := &fakeSearch{results: []SearchResult{
		{Title: "Unusual call activity detected", Text: ""},
	}}
	repo := NewOptionsFlowRepository(search, newTestLogger())

	assert.Equal(t, dto.SignalOptions, repo.Kind())

	result, err := repo.Fetch(context.Background(), "ACME")
	require.NoError(t, err)
	require.NotNil(t, result.Options)
	assert.True(t, result.Options.Detected)
	assert.Equal(t, dto.BiasBullish, result.Options.Bias)
	assert.Equal(t, 20, search.last.NumResults)
	assert.Empty(t, search.last.IncludeDomains)
}
