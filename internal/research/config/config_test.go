package config

import (
	"testing"

	"stock-research-service/internal/research/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsForMode(t *testing.T) {
	tests := []struct {
		name        string
		mode        dto.ResearchMode
		rounds      int
		signalCount int
		contains    []dto.SignalKind
		excludes    []dto.SignalKind
	}{
		{
			name:        "quick runs one round on core signals",
			mode:        dto.ModeQuick,
			rounds:      1,
			signalCount: 3,
			contains:    []dto.SignalKind{dto.SignalPrice, dto.SignalFinancials, dto.SignalNews},
			excludes:    []dto.SignalKind{dto.SignalReddit, dto.SignalOptions},
		},
		{
			name:        "standard adds sentiment and ownership signals",
			mode:        dto.ModeStandard,
			rounds:      2,
			signalCount: 7,
			contains:    []dto.SignalKind{dto.SignalReddit, dto.SignalTwitter, dto.SignalInstitutional, dto.SignalInsider},
			excludes:    []dto.SignalKind{dto.SignalOptions},
		},
		{
			name:        "deep enables everything",
			mode:        dto.ModeDeep,
			rounds:      3,
			signalCount: 8,
			contains:    []dto.SignalKind{dto.SignalOptions},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings, err := SettingsForMode(tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.rounds, settings.Rounds)
			assert.Len(t, settings.Signals, tt.signalCount)
			for _, kind := range tt.contains {
				assert.Contains(t, settings.Signals, kind)
			}
			for _, kind := range tt.excludes {
				assert.NotContains(t, settings.Signals, kind)
			}
		})
	}
}

func TestSettingsForModeUnknown(t *testing.T) {
	_, err := SettingsForMode(dto.ResearchMode("exhaustive"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exhaustive")
}
