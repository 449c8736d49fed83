package service

import (
	"sync"
	"time"

	"vocidrill/internal/domain"
	"vocidrill/internal/repository"

	"go.uber.org/zap"
)

// QuizService keeps one Session per client and exposes the drill operations
type QuizService struct {
	store    repository.PairStore
	selector Selector
	judge    *Judge
	updater  *ScoreUpdater
	stats    *StatsService
	logger   *zap.Logger
	now      func() time.Time

	sessions   map[string]*Session
	sessionMux sync.RWMutex
}

// NewQuizService creates a new quiz service
func NewQuizService(
	store repository.PairStore,
	selector Selector,
	stats *StatsService,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		store:    store,
		selector: selector,
		judge:    NewJudge(store),
		updater:  NewScoreUpdater(store),
		stats:    stats,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// StartSession creates a fresh session for id, replacing any existing one
func (s *QuizService) StartSession(id string) (domain.WordPair, error) {
	session, err := NewSession(id, s.store, s.selector, s.judge, s.updater, s.logger)
	if err != nil {
		return domain.WordPair{}, err
	}
	session.touch(s.now())

	s.sessionMux.Lock()
	s.sessions[id] = session
	s.sessionMux.Unlock()

	s.logger.Info("Session started", zap.String("session_id", id))
	return session.Current(), nil
}

// GetNextWord returns the prompt of session id, starting the session if needed
func (s *QuizService) GetNextWord(id string) (string, error) {
	if session, ok := s.session(id); ok {
		session.touch(s.now())
		return session.Current().Word1, nil
	}

	s.sessionMux.Lock()
	defer s.sessionMux.Unlock()

	// another caller may have created it since the read lock was released
	if session, ok := s.sessions[id]; ok {
		session.touch(s.now())
		return session.Current().Word1, nil
	}

	session, err := NewSession(id, s.store, s.selector, s.judge, s.updater, s.logger)
	if err != nil {
		return "", err
	}
	session.touch(s.now())
	s.sessions[id] = session

	s.logger.Info("Session started", zap.String("session_id", id))
	return session.Current().Word1, nil
}

// HasSession reports whether id has an active session
func (s *QuizService) HasSession(id string) bool {
	_, ok := s.session(id)
	return ok
}

// SubmitAnswer judges submittedWord2 for word1 in session id and advances the session
func (s *QuizService) SubmitAnswer(id, word1, submittedWord2 string) (domain.SubmitResult, error) {
	session, ok := s.session(id)
	if !ok {
		return domain.SubmitResult{}, domain.ErrSessionNotFound
	}
	session.touch(s.now())

	result, err := session.SubmitFor(word1, submittedWord2)
	if err != nil {
		s.logger.Warn("Answer rejected",
			zap.String("session_id", id),
			zap.String("word1", word1),
			zap.Error(err),
		)
		return domain.SubmitResult{}, err
	}

	s.logger.Info("Answer judged",
		zap.String("session_id", id),
		zap.String("word1", result.Word1),
		zap.Bool("correct", result.Verdict.Correct),
	)
	return result, nil
}

// GetStats returns the statistics summary
func (s *QuizService) GetStats() []domain.PairStats {
	return s.stats.Summarize()
}

// EndSession drops session id
func (s *QuizService) EndSession(id string) {
	s.sessionMux.Lock()
	delete(s.sessions, id)
	s.sessionMux.Unlock()

	s.logger.Info("Session ended", zap.String("session_id", id))
}

// ExpireIdle drops sessions unused for longer than maxIdle and returns how many were dropped
func (s *QuizService) ExpireIdle(maxIdle time.Duration) int {
	now := s.now()

	s.sessionMux.Lock()
	defer s.sessionMux.Unlock()

	expired := 0
	for id, session := range s.sessions {
		if now.Sub(session.LastActive()) > maxIdle {
			delete(s.sessions, id)
			expired++
		}
	}

	if expired > 0 {
		s.logger.Info("Idle sessions expired", zap.Int("count", expired), zap.Int("active", len(s.sessions)))
	}
	return expired
}

// ActiveSessions returns the number of live sessions
func (s *QuizService) ActiveSessions() int {
	s.sessionMux.RLock()
	defer s.sessionMux.RUnlock()
	return len(s.sessions)
}

func (s *QuizService) session(id string) (*Session, bool) {
	s.sessionMux.RLock()
	defer s.sessionMux.RUnlock()

	session, ok := s.sessions[id]
	return session, ok
}
