package repository

import (
	"context"
	"errors"

	"stock-research-service/internal/research/dto"
)

// OracleRepository defines the interface for the AI reasoning provider.
// Complete is stateless: every call carries its full prompt.
type OracleRepository interface {
	Complete(ctx context.Context, prompt string, opts dto.OracleOptions) (string, error)
}

// SignalProvider fetches one kind of research signal for a ticker.
type SignalProvider interface {
	Kind() dto.SignalKind
	Fetch(ctx context.Context, ticker string) (*dto.SignalResult, error)
}

// SignalRegistry resolves signal providers by kind. It is assembled
// explicitly at wiring time.
type SignalRegistry struct {
	providers map[dto.SignalKind]SignalProvider
}

// NewSignalRegistry builds a registry from the given providers. A later
// provider for the same kind replaces an earlier one.
func NewSignalRegistry(providers ...SignalProvider) *SignalRegistry {
	m := make(map[dto.SignalKind]SignalProvider, len(providers))
	for _, p := range providers {
		m[p.Kind()] = p
	}
	return &SignalRegistry{providers: m}
}

// Provider returns the provider registered for a kind.
func (r *SignalRegistry) Provider(kind dto.SignalKind) (SignalProvider, bool) {
	p, ok := r.providers[kind]
	return p, ok
}

// ErrReportNotFound is returned when no report exists for a ticker.
var ErrReportNotFound = errors.New("research report not found")

// ReportRepository persists research reports. Save is last-write-wins per
// ticker.
type ReportRepository interface {
	Save(ctx context.Context, report *dto.ResearchReport) error
	GetLatest(ctx context.Context, ticker string) (*dto.ResearchReport, error)
}

// SectorRepository classifies tickers into GICS sectors and exposes the
// benchmark sector weights.
type SectorRepository interface {
	SectorOf(ticker string) string
	Sectors() []string
	BenchmarkWeight(sector string) float64
	BenchmarkWeights() map[string]float64
}

// WatchlistRepository manages the tickers re-researched on a schedule.
type WatchlistRepository interface {
	Add(ctx context.Context, ticker, mode string) error
	Remove(ctx context.Context, ticker string) error
	GetActive(ctx context.Context) ([]WatchlistEntry, error)
}

// WatchlistEntry is one active watchlist row.
type WatchlistEntry struct {
	Ticker string
	Mode   string
}

// UniverseRepository exposes the reference stock universe.
type UniverseRepository interface {
	TickersBySector(sector string) []string
	DefaultTicker(sector string) string
}
