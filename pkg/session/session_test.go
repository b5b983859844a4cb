package session

import (
	"fmt"
	"testing"
	"time"

	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func newSession(t *testing.T, opts Options) *Session {
	t.Helper()
	c := suggest.NewCompleter(suggest.Options{MaxLimit: 20})
	c.Seed([]dictionary.Entry{
		{Word: "app", Frequency: 5},
		{Word: "apple", Frequency: 3},
		{Word: "apply", Frequency: 2},
		{Word: "application", Frequency: 1},
	})
	s := New(c, opts)
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	return s
}

func words(suggestions []suggest.Suggestion) []string {
	out := make([]string, len(suggestions))
	for i, s := range suggestions {
		out[i] = s.Word
	}
	return out
}

func TestSuggestUsesSessionDefaults(t *testing.T) {
	s := newSession(t, Options{Limit: 2, RankBy: dictionary.RankByAlphabetical})
	assert.Equal(t, []string{"app", "apple"}, words(s.Suggest("app")))
}

func TestAcceptIncrementsAndRecords(t *testing.T) {
	s := newSession(t, Options{})

	got, err := s.Accept(" Apply ")
	require.NoError(t, err)
	assert.Equal(t, suggest.Suggestion{Word: "apply", Frequency: 3}, got)

	_, err = s.Accept("appl")
	assert.ErrorIs(t, err, ErrUnknownWord)
	_, err = s.Accept("")
	assert.ErrorIs(t, err, ErrEmptyWord)

	assert.Equal(t, Counters{Accepted: 1}, s.Counters())
	assert.Equal(t, []Activity{{
		Type:      ActivityAccepted,
		Word:      "apply",
		Timestamp: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}}, s.Activities())
}

func TestRejectHidesWithoutMutating(t *testing.T) {
	s := newSession(t, Options{Limit: 3})

	require.NoError(t, s.Reject("APPLE"))
	assert.Equal(t, []string{"app", "apply", "application"}, words(s.Suggest("app")))

	snap := s.Snapshot()
	assert.Equal(t, 4, snap.Stats.TotalWords)
	assert.Equal(t, Counters{Rejected: 1}, snap.Counters)

	// accepting brings the word back
	_, err := s.Accept("apple")
	require.NoError(t, err)
	assert.Contains(t, words(s.Suggest("app")), "apple")

	assert.ErrorIs(t, s.Reject("  "), ErrEmptyWord)
}

func TestAdd(t *testing.T) {
	s := newSession(t, Options{})

	require.NoError(t, s.Add(" Banana"))
	assert.ErrorIs(t, s.Add("banana"), ErrWordExists)
	assert.ErrorIs(t, s.Add("app"), ErrWordExists)
	assert.ErrorIs(t, s.Add(""), ErrEmptyWord)

	got := s.SuggestN("ban", 5, dictionary.RankByFrequency)
	assert.Equal(t, []suggest.Suggestion{{Word: "banana", Frequency: 1}}, got)
	assert.Equal(t, Counters{Added: 1}, s.Counters())
}

func TestActivityFeedIsBoundedNewestFirst(t *testing.T) {
	s := newSession(t, Options{MaxActivities: 3})
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Add(fmt.Sprintf("word%d", i)))
	}

	feed := s.Activities()
	require.Len(t, feed, 3)
	assert.Equal(t, "word4", feed[0].Word)
	assert.Equal(t, "word2", feed[2].Word)
	assert.Equal(t, 5, s.Counters().Added)

	feed[0].Word = "mutated"
	assert.Equal(t, "word4", s.Activities()[0].Word)
}
