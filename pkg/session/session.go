/*
Package session models one user typing against a completer.

A Session forwards prefix queries and turns the three user reactions into
dictionary updates:

  - accept: the word's frequency goes up by one
  - reject: nothing changes in the dictionary, the word is hidden from this
    session's later suggestions
  - add: an unknown word is inserted with frequency 1

Every reaction is recorded in a bounded activity feed, newest first.
*/
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/bastiangx/wordtrie/internal/logger"
	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/log"
)

var (
	ErrEmptyWord   = errors.New("session: empty word")
	ErrUnknownWord = errors.New("session: word not in dictionary")
	ErrWordExists  = errors.New("session: word already in dictionary")
)

// DefaultMaxActivities is the feed length kept when none is configured.
const DefaultMaxActivities = 50

// ActivityType names a user reaction.
type ActivityType string

const (
	ActivityAccepted ActivityType = "accepted"
	ActivityRejected ActivityType = "rejected"
	ActivityAdded    ActivityType = "added"
)

// Activity is one entry of the feed.
type Activity struct {
	Type      ActivityType `json:"type" msgpack:"type"`
	Word      string       `json:"word" msgpack:"word"`
	Timestamp time.Time    `json:"timestamp" msgpack:"ts"`
}

// Counters totals reactions since the session started.
type Counters struct {
	Accepted int `json:"accepted" msgpack:"accepted"`
	Rejected int `json:"rejected" msgpack:"rejected"`
	Added    int `json:"added" msgpack:"added"`
}

// Snapshot is everything a dashboard needs in one read.
type Snapshot struct {
	Counters   Counters      `json:"counters" msgpack:"counters"`
	Activities []Activity    `json:"activities" msgpack:"activities"`
	Stats      suggest.Stats `json:"stats" msgpack:"stats"`
}

// Options configures a Session.
type Options struct {
	Limit         int
	RankBy        dictionary.RankBy
	MaxActivities int
}

// Session is safe for concurrent use.
type Session struct {
	mu            sync.Mutex
	completer     suggest.ICompleter
	limit         int
	rankBy        dictionary.RankBy
	maxActivities int
	activities    []Activity
	counters      Counters
	rejected      map[string]bool
	now           func() time.Time
	log           *log.Logger
}

// New starts a session over completer.
func New(completer suggest.ICompleter, opts Options) *Session {
	if opts.MaxActivities <= 0 {
		opts.MaxActivities = DefaultMaxActivities
	}
	if opts.RankBy == "" {
		opts.RankBy = dictionary.RankByFrequency
	}
	return &Session{
		completer:     completer,
		limit:         opts.Limit,
		rankBy:        opts.RankBy,
		maxActivities: opts.MaxActivities,
		rejected:      make(map[string]bool),
		now:           time.Now,
		log:           logger.New("session"),
	}
}

// Suggest returns completions for prefix using the session's limit and
// ranking, minus anything rejected earlier.
func (s *Session) Suggest(prefix string) []suggest.Suggestion {
	return s.SuggestN(prefix, s.limit, s.rankBy)
}

// SuggestN is Suggest with explicit limit and ranking.
func (s *Session) SuggestN(prefix string, limit int, rankBy dictionary.RankBy) []suggest.Suggestion {
	s.mu.Lock()
	exclude := make([]string, 0, len(s.rejected))
	for w := range s.rejected {
		exclude = append(exclude, w)
	}
	s.mu.Unlock()

	if len(exclude) == 0 {
		return s.completer.Complete(prefix, limit, rankBy)
	}

	// over-fetch so hidden words do not shrink the result
	want := s.completer.ClampLimit(limit)
	candidates := s.completer.Complete(prefix, want+len(exclude), rankBy)

	filter := utils.NewSuggestionFilter(exclude...)
	results := make([]suggest.Suggestion, 0, want)
	for _, c := range candidates {
		if len(results) == want {
			break
		}
		if filter.ShouldInclude(c.Word) {
			results = append(results, c)
		}
	}
	return results
}

// Accept bumps word and clears any earlier rejection of it.
func (s *Session) Accept(word string) (suggest.Suggestion, error) {
	key := utils.NormalizeWord(word)
	if key == "" {
		return suggest.Suggestion{}, ErrEmptyWord
	}

	accepted, ok := s.completer.Accept(key)
	if !ok {
		return suggest.Suggestion{}, ErrUnknownWord
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rejected, key)
	s.counters.Accepted++
	s.record(ActivityAccepted, key)
	s.log.Debug("accepted", "word", key, "frequency", accepted.Frequency)
	return accepted, nil
}

// Reject hides word from this session's suggestions. The dictionary is untouched.
func (s *Session) Reject(word string) error {
	key := utils.NormalizeWord(word)
	if key == "" {
		return ErrEmptyWord
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejected[key] = true
	s.counters.Rejected++
	s.record(ActivityRejected, key)
	s.log.Debug("rejected", "word", key)
	return nil
}

// Add inserts a new word with frequency 1.
func (s *Session) Add(word string) error {
	key := utils.NormalizeWord(word)
	if key == "" {
		return ErrEmptyWord
	}
	if !s.completer.AddIfAbsent(key) {
		return ErrWordExists
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rejected, key)
	s.counters.Added++
	s.record(ActivityAdded, key)
	s.log.Debug("added", "word", key)
	return nil
}

// record must be called with mu held.
func (s *Session) record(kind ActivityType, word string) {
	s.activities = append([]Activity{{Type: kind, Word: word, Timestamp: s.now()}}, s.activities...)
	if len(s.activities) > s.maxActivities {
		s.activities = s.activities[:s.maxActivities]
	}
}

// Activities returns the feed, newest first.
func (s *Session) Activities() []Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Activity, len(s.activities))
	copy(out, s.activities)
	return out
}

// Counters returns reaction totals.
func (s *Session) Counters() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters
}

// Snapshot bundles counters, the feed and dictionary stats.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Counters:   s.Counters(),
		Activities: s.Activities(),
		Stats:      s.completer.Stats(),
	}
}
