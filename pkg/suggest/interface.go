// Package suggest wraps the prefix dictionary for concurrent callers and adds
// the display concerns the dictionary leaves out: limit clamping, capitalization
// that follows the typed prefix, and a cache of recently accepted words.
package suggest

import "github.com/bastiangx/wordtrie/pkg/dictionary"

// ICompleter defines the interface for word completion engines
type ICompleter interface {
	// Complete returns ranked suggestions for a prefix
	Complete(prefix string, limit int, rankBy dictionary.RankBy) []Suggestion

	// AddWord adds frequency to word, creating it if needed
	AddWord(word string, frequency int)

	// AddIfAbsent inserts word with frequency 1 unless it already exists
	AddIfAbsent(word string) bool

	// Accept bumps the frequency of an existing word
	Accept(word string) (Suggestion, bool)

	// Contains reports whether the word exists
	Contains(word string) bool

	// Recent returns recently accepted words under a prefix
	Recent(prefix string, limit int) []Suggestion

	// ClampLimit maps a requested limit into the supported range
	ClampLimit(limit int) int

	// Stats returns statistics about the loaded dictionary
	Stats() Stats
}
