package testutil

import (
	"vocidrill/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockPairRepository is a mock for PairRepository
type MockPairRepository struct {
	mock.Mock
}

func (m *MockPairRepository) LoadPairs() ([]domain.WordPair, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WordPair), args.Error(1)
}

func (m *MockPairRepository) CountPairs() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

func (m *MockPairRepository) InsertPairs(pairs []domain.WordPair) error {
	args := m.Called(pairs)
	return args.Error(0)
}

func (m *MockPairRepository) SaveStats(pairs []domain.WordPair) error {
	args := m.Called(pairs)
	return args.Error(0)
}

// MockPairStore is a mock for PairStore
type MockPairStore struct {
	mock.Mock
}

func (m *MockPairStore) GetPair(word1 string) (domain.WordPair, error) {
	args := m.Called(word1)
	return args.Get(0).(domain.WordPair), args.Error(1)
}

func (m *MockPairStore) AllPairs() []domain.WordPair {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.WordPair)
}

func (m *MockPairStore) RecordOutcome(word1 string, correct bool) error {
	args := m.Called(word1, correct)
	return args.Error(0)
}
