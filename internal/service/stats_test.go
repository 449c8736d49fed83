package service

import (
	"fmt"
	"testing"

	"vocidrill/internal/domain"
	"vocidrill/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsService_Summarize(t *testing.T) {
	store := testutil.NewTestStore(t,
		domain.WordPair{Word1: "Baum", Word2: "tree", Correct: 3, Incorrect: 1, Recency: 0.8},
		testutil.NewTestPair("Blume", "flower"),
	)
	service := NewStatsService(store, new(testutil.MockPairRepository), testutil.NewTestLogger())

	stats := service.Summarize()

	assert.Equal(t, []domain.PairStats{
		{Word1: "Baum", Word2: "tree", Score: 0.75, Correct: 3, Incorrect: 1, Recency: 0.8},
		{Word1: "Blume", Word2: "flower", Score: 0, Correct: 0, Incorrect: 0, Recency: 0},
	}, stats)
}

func TestStatsService_SummarizeEmpty(t *testing.T) {
	store := testutil.NewTestStore(t)
	service := NewStatsService(store, new(testutil.MockPairRepository), testutil.NewTestLogger())

	stats := service.Summarize()

	assert.NotNil(t, stats)
	assert.Empty(t, stats)
}

func TestStatsService_CorrectOutcomeRaisesScore(t *testing.T) {
	store := testutil.NewTestStore(t,
		domain.WordPair{Word1: "Baum", Word2: "tree", Correct: 1, Incorrect: 1},
	)
	service := NewStatsService(store, new(testutil.MockPairRepository), testutil.NewTestLogger())
	before := service.Summarize()[0]

	require.NoError(t, store.RecordOutcome("Baum", true))
	after := service.Summarize()[0]

	assert.Greater(t, after.Score, before.Score)
	assert.Equal(t, before.Correct+1, after.Correct)
	assert.Equal(t, before.Incorrect, after.Incorrect)
}

func TestStatsService_PersistSnapshot(t *testing.T) {
	tests := []struct {
		name          string
		mockError     error
		expectedError bool
	}{
		{
			name:          "successful snapshot",
			mockError:     nil,
			expectedError: false,
		},
		{
			name:          "database error",
			mockError:     fmt.Errorf("db error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.NewTestStore(t, testutil.TestPairs()...)
			require.NoError(t, store.RecordOutcome("Fisch", true))

			mockRepo := new(testutil.MockPairRepository)
			mockRepo.On("SaveStats", store.AllPairs()).Return(tt.mockError)

			service := NewStatsService(store, mockRepo, testutil.NewTestLogger())

			err := service.PersistSnapshot()

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestSumTotals(t *testing.T) {
	totals := SumTotals([]domain.PairStats{
		{Word1: "Baum", Correct: 3, Incorrect: 1},
		{Word1: "Blume", Correct: 0, Incorrect: 4},
	})

	assert.Equal(t, Totals{Correct: 3, Incorrect: 5}, totals)
	assert.InDelta(t, 0.375, totals.Score(), 1e-9)
	assert.Equal(t, 0.0, SumTotals(nil).Score())
}

func TestSortByRecency(t *testing.T) {
	stats := []domain.PairStats{
		{Word1: "Baum", Recency: 0.75},
		{Word1: "Blume", Recency: 0},
		{Word1: "Fisch", Recency: 0.5},
		{Word1: "Vogel", Recency: 0},
	}

	sorted := SortByRecency(stats)

	var order []string
	for _, s := range sorted {
		order = append(order, s.Word1)
	}
	assert.Equal(t, []string{"Blume", "Vogel", "Fisch", "Baum"}, order)
	assert.Equal(t, "Baum", stats[0].Word1, "input is left untouched")
}
