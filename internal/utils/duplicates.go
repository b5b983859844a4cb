package utils

// SuggestionFilter drops words that were already seen or explicitly excluded.
type SuggestionFilter struct {
	seenWords map[string]bool
}

// NewSuggestionFilter creates a filter that rejects every word in exclude.
func NewSuggestionFilter(exclude ...string) *SuggestionFilter {
	seenWords := make(map[string]bool, len(exclude))
	for _, w := range exclude {
		seenWords[NormalizeWord(w)] = true
	}
	return &SuggestionFilter{seenWords: seenWords}
}

// ShouldInclude checks if a word should be included in results (not a duplicate)
// Returns true if the word should be included, false if it's a duplicate
func (f *SuggestionFilter) ShouldInclude(word string) bool {
	key := NormalizeWord(word)
	if f.seenWords[key] {
		return false
	}
	f.seenWords[key] = true
	return true
}
