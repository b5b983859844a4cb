package suggest

import (
	"strings"
	"sync"
	"unicode"

	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/charmbracelet/log"
)

const (
	// DefaultLimit is used when a caller passes a non-positive limit.
	DefaultLimit = 5
	// DefaultMaxLimit caps any requested limit.
	DefaultMaxLimit = 64
	// DefaultHotCacheSize is the number of recently accepted words kept.
	DefaultHotCacheSize = 256
)

// Suggestion is a ranked completion ready for display.
type Suggestion struct {
	Word      string
	Frequency int
}

// Stats combines tree shape and hot cache occupancy.
type Stats struct {
	dictionary.Stats
	HotCache CacheStats `json:"hotCache" msgpack:"hot_cache"`
}

// Options configures a Completer.
type Options struct {
	DefaultLimit int
	MaxLimit     int
	HotCacheSize int
}

// Completer serializes access to a Dictionary: writers take the write lock,
// lookups share the read lock.
type Completer struct {
	mu           sync.RWMutex
	dict         *dictionary.Dictionary
	hotCache     *HotCache
	defaultLimit int
	maxLimit     int
}

// NewCompleter returns a Completer over an empty dictionary.
func NewCompleter(opts Options) *Completer {
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = DefaultLimit
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = DefaultMaxLimit
	}
	if opts.DefaultLimit > opts.MaxLimit {
		opts.DefaultLimit = opts.MaxLimit
	}
	if opts.HotCacheSize == 0 {
		opts.HotCacheSize = DefaultHotCacheSize
	}

	return &Completer{
		dict:         dictionary.New(),
		hotCache:     NewHotCache(opts.HotCacheSize),
		defaultLimit: opts.DefaultLimit,
		maxLimit:     opts.MaxLimit,
	}
}

// Seed bulk-loads entries.
func (c *Completer) Seed(entries []dictionary.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dict.Seed(entries)
	log.Debugf("Seeded %d entries, %d distinct words", len(entries), c.dict.WordCount())
}

// AddWord adds frequency to word, creating it if needed.
func (c *Completer) AddWord(word string, frequency int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.dict.InsertChecked(word, frequency); err != nil {
		log.Warnf("Ignoring %q: %v", word, err)
	}
}

// AddIfAbsent inserts word with frequency 1 and reports whether it was new.
func (c *Completer) AddIfAbsent(word string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if utils.NormalizeWord(word) == "" || c.dict.Search(word) {
		return false
	}
	c.dict.Insert(word, 1)
	return true
}

// Accept increments an existing word and remembers it in the hot cache.
func (c *Completer) Accept(word string) (Suggestion, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.dict.Search(word) {
		return Suggestion{}, false
	}
	c.dict.IncrementFrequency(word)
	entry, _ := c.dict.Lookup(word)
	c.hotCache.Touch(entry.Word)
	return Suggestion{Word: entry.Word, Frequency: entry.Frequency}, true
}

// Contains reports whether word exists.
func (c *Completer) Contains(word string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dict.Search(word)
}

// Lookup returns the stored entry for word.
func (c *Completer) Lookup(word string) (dictionary.Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dict.Lookup(word)
}

// ClampLimit maps a requested limit into [1, maxLimit].
// Non-positive requests get the default.
func (c *Completer) ClampLimit(limit int) int {
	if limit <= 0 {
		return c.defaultLimit
	}
	if limit > c.maxLimit {
		return c.maxLimit
	}
	return limit
}

// Complete returns suggestions for prefix. Returned words copy the
// capitalization of the typed prefix.
func (c *Completer) Complete(prefix string, limit int, rankBy dictionary.RankBy) []Suggestion {
	limit = c.ClampLimit(limit)

	c.mu.RLock()
	entries := c.dict.Suggest(prefix, limit, rankBy)
	c.mu.RUnlock()

	return toSuggestions(entries, prefix)
}

// Recent returns recently accepted words under prefix, newest first.
func (c *Completer) Recent(prefix string, limit int) []Suggestion {
	limit = c.ClampLimit(limit)
	words := c.hotCache.Search(utils.NormalizeWord(prefix), limit)

	c.mu.RLock()
	entries := make([]dictionary.Entry, 0, len(words))
	for _, w := range words {
		if e, ok := c.dict.Lookup(w); ok {
			entries = append(entries, e)
		}
	}
	c.mu.RUnlock()

	return toSuggestions(entries, prefix)
}

func toSuggestions(entries []dictionary.Entry, prefix string) []Suggestion {
	// positions must line up with the trimmed, stored word
	capitals := utils.CapitalPositions(strings.TrimLeftFunc(prefix, unicode.IsSpace))
	suggestions := make([]Suggestion, len(entries))
	for i, e := range entries {
		suggestions[i] = Suggestion{
			Word:      utils.ApplyCapitalization(e.Word, capitals),
			Frequency: e.Frequency,
		}
	}
	return suggestions
}

// WordCount returns the number of distinct words.
func (c *Completer) WordCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dict.WordCount()
}

// Stats walks the dictionary and reports hot cache usage.
func (c *Completer) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Stats{
		Stats:    c.dict.Stats(),
		HotCache: c.hotCache.Stats(),
	}
}

// Reset clears the dictionary and the hot cache.
func (c *Completer) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dict.Clear()
	c.hotCache.Reset()
	log.Debug("Completer reset")
}
