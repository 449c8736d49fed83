package service

import (
	"strings"

	"vocidrill/internal/domain"
	"vocidrill/internal/repository"
)

// Judge compares submitted translations with the stored ones
type Judge struct {
	store repository.PairStore
}

// NewJudge creates a judge reading from store
func NewJudge(store repository.PairStore) *Judge {
	return &Judge{store: store}
}

// Judge checks submitted against the canonical translation of word1.
// Surrounding whitespace is ignored, comparison is case-sensitive.
// An empty submission is simply incorrect.
func (j *Judge) Judge(word1, submitted string) (domain.Verdict, error) {
	pair, err := j.store.GetPair(word1)
	if err != nil {
		return domain.Verdict{}, err
	}

	return domain.Verdict{
		Correct:        strings.TrimSpace(submitted) == pair.Word2,
		CanonicalWord2: pair.Word2,
	}, nil
}
