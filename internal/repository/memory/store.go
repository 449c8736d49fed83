package memory

import (
	"fmt"
	"strings"
	"sync"

	"vocidrill/internal/domain"
)

type entry struct {
	mu   sync.Mutex
	pair domain.WordPair
}

// Store implements repository.PairStore in memory.
// The set of pairs is fixed at construction; only counters change afterwards.
type Store struct {
	entries []*entry
	index   map[string]*entry
}

// NewStore creates a store holding the given pairs in order.
// Later duplicates of a word1 are rejected, as are blank or padded words.
func NewStore(pairs []domain.WordPair) (*Store, error) {
	s := &Store{
		entries: make([]*entry, 0, len(pairs)),
		index:   make(map[string]*entry, len(pairs)),
	}

	for _, p := range pairs {
		if p.Word1 == "" || p.Word2 == "" {
			return nil, fmt.Errorf("word pair %q with empty word", p.Word1)
		}
		if strings.TrimSpace(p.Word1) != p.Word1 || strings.TrimSpace(p.Word2) != p.Word2 {
			return nil, fmt.Errorf("word pair %q has surrounding whitespace", p.Word1)
		}
		if p.Correct < 0 || p.Incorrect < 0 {
			return nil, fmt.Errorf("negative counters for %q", p.Word1)
		}
		if _, exists := s.index[p.Word1]; exists {
			return nil, fmt.Errorf("duplicate word pair %q", p.Word1)
		}
		e := &entry{pair: p}
		s.entries = append(s.entries, e)
		s.index[p.Word1] = e
	}

	return s, nil
}

// GetPair returns a copy of the pair for word1
func (s *Store) GetPair(word1 string) (domain.WordPair, error) {
	e, ok := s.index[word1]
	if !ok {
		return domain.WordPair{}, fmt.Errorf("%w: %q", domain.ErrNotFound, word1)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pair, nil
}

// AllPairs returns copies of all pairs in insertion order.
// Each pair is read under its own lock, so the result is consistent per pair only.
func (s *Store) AllPairs() []domain.WordPair {
	pairs := make([]domain.WordPair, 0, len(s.entries))
	for _, e := range s.entries {
		e.mu.Lock()
		pairs = append(pairs, e.pair)
		e.mu.Unlock()
	}
	return pairs
}

// RecordOutcome increments the correct or incorrect counter of word1
func (s *Store) RecordOutcome(word1 string, correct bool) error {
	e, ok := s.index[word1]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrNotFound, word1)
	}

	e.mu.Lock()
	e.pair.Record(correct)
	e.mu.Unlock()
	return nil
}

// Len returns the number of pairs
func (s *Store) Len() int {
	return len(s.entries)
}
