package repository

import (
	"vocidrill/internal/domain"
)

// PairStore is the source of truth for word pairs and their counters
type PairStore interface {
	GetPair(word1 string) (domain.WordPair, error)
	AllPairs() []domain.WordPair
	RecordOutcome(word1 string, correct bool) error
}

// PairRepository defines durable word pair operations
type PairRepository interface {
	LoadPairs() ([]domain.WordPair, error)
	CountPairs() (int, error)
	InsertPairs(pairs []domain.WordPair) error
	SaveStats(pairs []domain.WordPair) error
}
