package service

import (
	"sync"
	"testing"

	"vocidrill/internal/domain"
	"vocidrill/internal/repository/memory"
	"vocidrill/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, store *memory.Store) *Session {
	t.Helper()

	session, err := NewSession("test", store, NewSequentialSelector(), NewJudge(store), NewScoreUpdater(store), testutil.NewTestLogger())
	require.NoError(t, err)
	return session
}

func TestNewSession_EmptyStore(t *testing.T) {
	store := testutil.NewTestStore(t)

	_, err := NewSession("test", store, NewSequentialSelector(), NewJudge(store), NewScoreUpdater(store), testutil.NewTestLogger())

	assert.ErrorIs(t, err, domain.ErrEmptyStore)
}

func TestNewSession_InitialState(t *testing.T) {
	session := newTestSession(t, testutil.NewTestStore(t, testutil.TestPairs()...))

	assert.Equal(t, "test", session.ID())
	assert.Equal(t, domain.StateAwaitingAnswer, session.State())
	assert.Equal(t, "Baum", session.Current().Word1)
}

func TestSession_SubmitScenarios(t *testing.T) {
	tests := []struct {
		name              string
		guess             string
		expectedCorrect   bool
		expectedCorrectN  int
		expectedIncorrect int
		expectedScore     float64
	}{
		{
			name:             "correct answer",
			guess:            "hello",
			expectedCorrect:  true,
			expectedCorrectN: 1,
			expectedScore:    1.0,
		},
		{
			name:              "incorrect answer",
			guess:             "helo",
			expectedCorrect:   false,
			expectedIncorrect: 1,
			expectedScore:     0.0,
		},
		{
			name:              "empty answer is scored",
			guess:             "",
			expectedCorrect:   false,
			expectedIncorrect: 1,
			expectedScore:     0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.NewTestStore(t, testutil.NewTestPair("hola", "hello"))
			session := newTestSession(t, store)

			result, err := session.SubmitFor("hola", tt.guess)

			require.NoError(t, err)
			assert.Equal(t, domain.Verdict{Correct: tt.expectedCorrect, CanonicalWord2: "hello"}, result.Verdict)
			assert.Equal(t, "hola", result.Word1)
			assert.Equal(t, "hola", result.Next.Word1)

			pair, err := store.GetPair("hola")
			require.NoError(t, err)
			assert.Equal(t, tt.expectedCorrectN, pair.Correct)
			assert.Equal(t, tt.expectedIncorrect, pair.Incorrect)

			stats := NewStatsService(store, nil, testutil.NewTestLogger()).Summarize()
			require.Len(t, stats, 1)
			assert.Equal(t, tt.expectedScore, stats[0].Score)
		})
	}
}

func TestSession_SubmitAdvances(t *testing.T) {
	store := testutil.NewTestStore(t, testutil.TestPairs()...)
	session := newTestSession(t, store)

	result, err := session.Submit("tree")

	require.NoError(t, err)
	assert.True(t, result.Verdict.Correct)
	assert.Equal(t, "Baum", result.Word1)
	assert.Equal(t, "Blume", result.Next.Word1)
	assert.Equal(t, "Blume", session.Current().Word1)
	assert.Equal(t, domain.StateAwaitingAnswer, session.State())
}

func TestSession_ExactlyOneCounterPerSubmit(t *testing.T) {
	store := testutil.NewTestStore(t, testutil.TestPairs()...)
	session := newTestSession(t, store)

	total := func() int {
		n := 0
		for _, p := range store.AllPairs() {
			n += p.Attempts()
		}
		return n
	}

	for i := 0; i < 12; i++ {
		before := total()
		_, err := session.Submit("tree")
		require.NoError(t, err)
		assert.Equal(t, before+1, total())
	}
}

func TestSession_StalePrompt(t *testing.T) {
	store := testutil.NewTestStore(t, testutil.TestPairs()...)
	session := newTestSession(t, store)
	before := store.AllPairs()

	_, err := session.SubmitFor("Fisch", "fish")

	assert.ErrorIs(t, err, domain.ErrStalePrompt)
	assert.Equal(t, before, store.AllPairs())
	assert.Equal(t, "Baum", session.Current().Word1)
	assert.Equal(t, domain.StateAwaitingAnswer, session.State())
}

func TestSession_UnknownWord(t *testing.T) {
	store := testutil.NewTestStore(t, testutil.NewTestPair("hola", "hello"))
	session := newTestSession(t, store)
	before := store.AllPairs()

	_, err := session.SubmitFor("unknown", "x")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "hola", session.Current().Word1)
	assert.Equal(t, before, store.AllPairs())
}

func TestSession_PromptVanishedFromStore(t *testing.T) {
	store := new(testutil.MockPairStore)
	pairs := []domain.WordPair{testutil.NewTestPair("Baum", "tree"), testutil.NewTestPair("Blume", "flower")}
	store.On("AllPairs").Return(pairs)
	store.On("GetPair", "Baum").Return(domain.WordPair{}, domain.ErrNotFound)

	session, err := NewSession("test", store, NewSequentialSelector(), NewJudge(store), NewScoreUpdater(store), testutil.NewTestLogger())
	require.NoError(t, err)

	_, err = session.Submit("tree")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Blume", session.Current().Word1)
	store.AssertNotCalled(t, "RecordOutcome", "Baum", true)
}

func TestSession_AvoidsImmediateRepeat(t *testing.T) {
	store := testutil.NewTestStore(t, testutil.NewTestPair("Baum", "tree"), testutil.NewTestPair("Blume", "flower"))
	session, err := NewSession("test", store, NewRandomSelector(3), NewJudge(store), NewScoreUpdater(store), testutil.NewTestLogger())
	require.NoError(t, err)

	repeats := 0
	for i := 0; i < 100; i++ {
		last := session.Current().Word1
		result, err := session.Submit("x")
		require.NoError(t, err)
		if result.Next.Word1 == last {
			repeats++
		}
	}

	assert.Less(t, repeats, 5)
}

type blockingStore struct {
	*memory.Store
	entered chan struct{}
	release chan struct{}
}

func (s *blockingStore) GetPair(word1 string) (domain.WordPair, error) {
	s.entered <- struct{}{}
	<-s.release
	return s.Store.GetPair(word1)
}

func TestSession_RejectsConcurrentSubmit(t *testing.T) {
	store := &blockingStore{
		Store:   testutil.NewTestStore(t, testutil.TestPairs()...),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	session, err := NewSession("test", store, NewSequentialSelector(), NewJudge(store), NewScoreUpdater(store), testutil.NewTestLogger())
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := session.Submit("tree")
		assert.NoError(t, err)
	}()

	<-store.entered
	assert.Equal(t, domain.StateJudging, session.State())

	_, err = session.Submit("tree")
	assert.ErrorIs(t, err, domain.ErrSubmissionInFlight)

	close(store.release)
	wg.Wait()

	pair, err := store.Store.GetPair("Baum")
	require.NoError(t, err)
	assert.Equal(t, 1, pair.Correct)
	assert.Equal(t, domain.StateAwaitingAnswer, session.State())
}

func TestSessions_ConcurrentOnSharedStore(t *testing.T) {
	store := testutil.NewTestStore(t, testutil.NewTestPair("hola", "hello"))

	const sessions = 20
	const answers = 25

	var wg sync.WaitGroup
	for i := 0; i < sessions; i++ {
		session := newTestSession(t, store)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < answers; j++ {
				_, err := session.Submit("hello")
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	pair, err := store.GetPair("hola")
	require.NoError(t, err)
	assert.Equal(t, sessions*answers, pair.Correct)
}
