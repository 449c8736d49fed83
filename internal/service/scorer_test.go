package service

import (
	"fmt"
	"testing"

	"vocidrill/internal/domain"
	"vocidrill/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreUpdater_Apply(t *testing.T) {
	tests := []struct {
		name              string
		verdict           domain.Verdict
		expectedCorrect   int
		expectedIncorrect int
	}{
		{
			name:            "correct verdict",
			verdict:         domain.Verdict{Correct: true, CanonicalWord2: "tree"},
			expectedCorrect: 1,
		},
		{
			name:              "incorrect verdict",
			verdict:           domain.Verdict{Correct: false, CanonicalWord2: "tree"},
			expectedIncorrect: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.NewTestStore(t, testutil.TestPairs()...)
			updater := NewScoreUpdater(store)

			err := updater.Apply("Baum", tt.verdict)

			require.NoError(t, err)
			pair, err := store.GetPair("Baum")
			require.NoError(t, err)
			assert.Equal(t, tt.expectedCorrect, pair.Correct)
			assert.Equal(t, tt.expectedIncorrect, pair.Incorrect)
		})
	}
}

func TestScoreUpdater_UnknownWord(t *testing.T) {
	store := testutil.NewTestStore(t, testutil.TestPairs()...)
	before := store.AllPairs()

	err := NewScoreUpdater(store).Apply("Katze", domain.Verdict{Correct: true})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, before, store.AllPairs())
}

func TestScoreUpdater_StoreError(t *testing.T) {
	store := new(testutil.MockPairStore)
	store.On("RecordOutcome", "Baum", false).Return(fmt.Errorf("boom"))

	err := NewScoreUpdater(store).Apply("Baum", domain.Verdict{Correct: false, CanonicalWord2: "tree"})

	assert.Error(t, err)
	store.AssertExpectations(t)
}
