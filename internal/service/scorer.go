package service

import (
	"fmt"

	"vocidrill/internal/domain"
	"vocidrill/internal/repository"
)

// ScoreUpdater applies verdicts to the pair counters.
// Callers must apply each judged attempt exactly once.
type ScoreUpdater struct {
	store repository.PairStore
}

// NewScoreUpdater creates an updater writing to store
func NewScoreUpdater(store repository.PairStore) *ScoreUpdater {
	return &ScoreUpdater{store: store}
}

// Apply records verdict for word1
func (u *ScoreUpdater) Apply(word1 string, verdict domain.Verdict) error {
	if err := u.store.RecordOutcome(word1, verdict.Correct); err != nil {
		return fmt.Errorf("failed to record outcome: %w", err)
	}
	return nil
}
