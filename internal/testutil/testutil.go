package testutil

import (
	"testing"

	"vocidrill/internal/domain"
	"vocidrill/internal/repository/memory"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestPair creates a test word pair without attempts
func NewTestPair(word1, word2 string) domain.WordPair {
	return domain.WordPair{
		Word1: word1,
		Word2: word2,
	}
}

// TestPairs returns the default test vocabulary
func TestPairs() []domain.WordPair {
	return []domain.WordPair{
		NewTestPair("Baum", "tree"),
		NewTestPair("Blume", "flower"),
		NewTestPair("Fisch", "fish"),
	}
}

// NewTestStore creates an in-memory store holding pairs
func NewTestStore(t *testing.T, pairs ...domain.WordPair) *memory.Store {
	t.Helper()

	store, err := memory.NewStore(pairs)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}
