package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"vocidrill/internal/domain"
	"vocidrill/internal/repository"

	"go.uber.org/zap"
)

// maxReselect bounds the attempts to avoid presenting the same pair twice in a row
const maxReselect = 8

// Session drives a single learner through the prompt/answer loop.
// Only one answer is judged at a time; a concurrent Submit is rejected.
type Session struct {
	id       string
	store    repository.PairStore
	selector Selector
	judge    *Judge
	updater  *ScoreUpdater
	logger   *zap.Logger

	mu         sync.Mutex
	state      domain.SessionState
	current    domain.WordPair
	lastActive time.Time
}

// NewSession creates a session awaiting an answer for a freshly selected pair
func NewSession(
	id string,
	store repository.PairStore,
	selector Selector,
	judge *Judge,
	updater *ScoreUpdater,
	logger *zap.Logger,
) (*Session, error) {
	first, err := selector.SelectNext(store)
	if err != nil {
		return nil, fmt.Errorf("failed to select first pair: %w", err)
	}

	return &Session{
		id:         id,
		store:      store,
		selector:   selector,
		judge:      judge,
		updater:    updater,
		logger:     logger.With(zap.String("session_id", id)),
		state:      domain.StateAwaitingAnswer,
		current:    first,
		lastActive: time.Now(),
	}, nil
}

// ID returns the session id
func (s *Session) ID() string {
	return s.id
}

// Current returns the pair currently being asked
func (s *Session) Current() domain.WordPair {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// State returns the session state
func (s *Session) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastActive returns when the session was last used
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastActive = now
	s.mu.Unlock()
}

// Submit judges guess against the current prompt
func (s *Session) Submit(guess string) (domain.SubmitResult, error) {
	return s.submit("", guess)
}

// SubmitFor judges guess for word1, which must be the current prompt
func (s *Session) SubmitFor(word1, guess string) (domain.SubmitResult, error) {
	if word1 == "" {
		return domain.SubmitResult{}, domain.ErrStalePrompt
	}
	return s.submit(word1, guess)
}

func (s *Session) submit(word1, guess string) (domain.SubmitResult, error) {
	current, err := s.begin(word1)
	if err != nil {
		return domain.SubmitResult{}, err
	}

	next := current
	defer func() { s.finish(next) }()

	verdict, err := s.judge.Judge(current.Word1, guess)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("Current prompt is unknown to the store, selecting a fresh pair",
				zap.String("word1", current.Word1),
			)
			if fresh, selErr := s.selectNext(current); selErr == nil {
				next = fresh
			}
		}
		return domain.SubmitResult{}, err
	}

	if err := s.updater.Apply(current.Word1, verdict); err != nil {
		return domain.SubmitResult{}, err
	}

	fresh, err := s.selectNext(current)
	if err != nil {
		return domain.SubmitResult{}, fmt.Errorf("answer recorded, failed to select next pair: %w", err)
	}
	next = fresh

	return domain.SubmitResult{
		Word1:   current.Word1,
		Verdict: verdict,
		Next:    fresh,
	}, nil
}

// begin moves the session into judging, checking the single-flight and prompt rules
func (s *Session) begin(word1 string) (domain.WordPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == domain.StateJudging {
		return domain.WordPair{}, domain.ErrSubmissionInFlight
	}
	if word1 != "" && word1 != s.current.Word1 {
		if _, err := s.store.GetPair(word1); err != nil {
			return domain.WordPair{}, err
		}
		return domain.WordPair{}, fmt.Errorf("%w: asked %q, got %q", domain.ErrStalePrompt, s.current.Word1, word1)
	}

	s.state = domain.StateJudging
	return s.current, nil
}

func (s *Session) finish(next domain.WordPair) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = next
	s.state = domain.StateAwaitingAnswer
}

// selectNext picks the next pair, avoiding last when there is an alternative
func (s *Session) selectNext(last domain.WordPair) (domain.WordPair, error) {
	pair, err := s.selector.SelectNext(s.store)
	if err != nil {
		return domain.WordPair{}, err
	}
	if len(s.store.AllPairs()) < 2 {
		return pair, nil
	}

	for i := 0; i < maxReselect && pair.Word1 == last.Word1; i++ {
		pair, err = s.selector.SelectNext(s.store)
		if err != nil {
			return domain.WordPair{}, err
		}
	}
	return pair, nil
}
