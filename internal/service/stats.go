package service

import (
	"sort"

	"vocidrill/internal/domain"
	"vocidrill/internal/repository"

	"go.uber.org/zap"
)

// StatsService computes statistics and persists counter snapshots
type StatsService struct {
	store    repository.PairStore
	pairRepo repository.PairRepository
	logger   *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(store repository.PairStore, pairRepo repository.PairRepository, logger *zap.Logger) *StatsService {
	return &StatsService{
		store:    store,
		pairRepo: pairRepo,
		logger:   logger,
	}
}

// Summarize returns one entry per pair in store order
func (s *StatsService) Summarize() []domain.PairStats {
	pairs := s.store.AllPairs()

	stats := make([]domain.PairStats, 0, len(pairs))
	for _, p := range pairs {
		stats = append(stats, p.Stats())
	}
	return stats
}

// PersistSnapshot writes the current counters to durable storage
func (s *StatsService) PersistSnapshot() error {
	pairs := s.store.AllPairs()

	s.logger.Debug("Persisting stats snapshot", zap.Int("pairs", len(pairs)))

	if err := s.pairRepo.SaveStats(pairs); err != nil {
		s.logger.Error("Failed to persist stats snapshot", zap.Error(err))
		return err
	}

	s.logger.Info("Stats snapshot persisted", zap.Int("pairs", len(pairs)))
	return nil
}

// Totals holds counters summed over all pairs
type Totals struct {
	Correct   int
	Incorrect int
}

// Score returns the overall fraction of correct attempts, 0 without attempts
func (t Totals) Score() float64 {
	if t.Correct+t.Incorrect == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Correct+t.Incorrect)
}

// SumTotals adds up the counters of a summary
func SumTotals(stats []domain.PairStats) Totals {
	var t Totals
	for _, st := range stats {
		t.Correct += st.Correct
		t.Incorrect += st.Incorrect
	}
	return t
}

// SortByRecency returns a copy of stats ordered weakest first.
// Ties keep their summary order.
func SortByRecency(stats []domain.PairStats) []domain.PairStats {
	sorted := make([]domain.PairStats, len(stats))
	copy(sorted, stats)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Recency < sorted[j].Recency
	})
	return sorted
}
