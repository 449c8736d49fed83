package service

import (
	"fmt"
	"math/rand"
	"slices"
	"sync"
	"time"

	"vocidrill/internal/domain"
	"vocidrill/internal/repository"
)

// Selection strategy names accepted by NewSelector
const (
	StrategySequential = "sequential"
	StrategyRandom     = "random"
	StrategyScore      = "score"
)

// Strategies lists every strategy name NewSelector accepts
var Strategies = []string{StrategySequential, StrategyRandom, StrategyScore}

// IsStrategy reports whether name is a known selection strategy
func IsStrategy(name string) bool {
	return slices.Contains(Strategies, name)
}

// perfectWeight is the selection weight of a fully learned pair relative to a fresh one
const perfectWeight = 0.1

// Selector chooses the next pair to present
type Selector interface {
	SelectNext(store repository.PairStore) (domain.WordPair, error)
}

// NewSelector builds a selector for the named strategy.
// A zero seed seeds the random strategies from the clock.
func NewSelector(strategy string, seed int64) (Selector, error) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	switch strategy {
	case StrategySequential:
		return NewSequentialSelector(), nil
	case StrategyRandom:
		return NewRandomSelector(seed), nil
	case StrategyScore:
		return NewScoreSelector(seed), nil
	default:
		return nil, fmt.Errorf("unknown selection strategy %q", strategy)
	}
}

// SequentialSelector walks all pairs in store order, wrapping around
type SequentialSelector struct {
	mu   sync.Mutex
	next int
}

// NewSequentialSelector creates a round-robin selector
func NewSequentialSelector() *SequentialSelector {
	return &SequentialSelector{}
}

// SelectNext returns the next pair in order
func (s *SequentialSelector) SelectNext(store repository.PairStore) (domain.WordPair, error) {
	pairs := store.AllPairs()
	if len(pairs) == 0 {
		return domain.WordPair{}, domain.ErrEmptyStore
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pair := pairs[s.next%len(pairs)]
	s.next = (s.next + 1) % len(pairs)
	return pair, nil
}

// RandomSelector picks a pair uniformly at random
type RandomSelector struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// NewRandomSelector creates a uniform selector with a fixed seed
func NewRandomSelector(seed int64) *RandomSelector {
	return &RandomSelector{rand: rand.New(rand.NewSource(seed))}
}

// SelectNext returns a uniformly chosen pair
func (s *RandomSelector) SelectNext(store repository.PairStore) (domain.WordPair, error) {
	pairs := store.AllPairs()
	if len(pairs) == 0 {
		return domain.WordPair{}, domain.ErrEmptyStore
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return pairs[s.rand.Intn(len(pairs))], nil
}

// ScoreSelector picks pairs at random, weighted towards poorly learned ones.
// The weight is linear in the recency score and a perfect pair keeps
// perfectWeight of the weight of a pair that was never answered correctly.
type ScoreSelector struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// NewScoreSelector creates a weighted selector with a fixed seed
func NewScoreSelector(seed int64) *ScoreSelector {
	return &ScoreSelector{rand: rand.New(rand.NewSource(seed))}
}

// SelectNext returns a pair chosen with weight 1/(1-perfectWeight) - recency
func (s *ScoreSelector) SelectNext(store repository.PairStore) (domain.WordPair, error) {
	pairs := store.AllPairs()
	if len(pairs) == 0 {
		return domain.WordPair{}, domain.ErrEmptyStore
	}

	weights := make([]float64, len(pairs))
	total := 0.0
	for i, p := range pairs {
		weights[i] = pairWeight(p.Recency)
		total += weights[i]
	}

	s.mu.Lock()
	target := s.rand.Float64() * total
	s.mu.Unlock()

	for i, w := range weights {
		if target < w {
			return pairs[i], nil
		}
		target -= w
	}
	// rounding can leave target just above the last bucket
	return pairs[len(pairs)-1], nil
}

func pairWeight(recency float64) float64 {
	if recency < 0 {
		recency = 0
	}
	if recency > 1 {
		recency = 1
	}
	return 1/(1-perfectWeight) - recency
}
