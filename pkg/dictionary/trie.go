/*
Package dictionary implements the prefix dictionary behind every completion.

A Dictionary is a rune-keyed trie. Each terminal node carries the normalized
word that ends there and an accumulated usage frequency. Words are lowercased
and trimmed before any traversal, so " Java " and "JAVA" address the same
entry.

	d := dictionary.New()
	d.Insert("app", 5)
	d.Insert("apple", 3)
	d.Suggest("ap", 5, dictionary.RankByFrequency)

A Dictionary is not safe for concurrent use; see pkg/suggest for a locked
facade.
*/
package dictionary

import (
	"errors"
	"sort"

	"github.com/bastiangx/wordtrie/internal/utils"
)

// ErrNegativeFrequency is returned by InsertChecked for frequencies below zero.
var ErrNegativeFrequency = errors.New("dictionary: negative frequency")

// RankBy selects the ordering used by Suggest.
type RankBy string

const (
	// RankByFrequency orders by frequency descending, ties by word ascending.
	RankByFrequency RankBy = "frequency"
	// RankByAlphabetical orders by word ascending.
	RankByAlphabetical RankBy = "alphabetical"
)

// ParseRankBy maps user input to a RankBy. Unknown values fall back to frequency.
func ParseRankBy(s string) RankBy {
	if RankBy(utils.NormalizeWord(s)) == RankByAlphabetical {
		return RankByAlphabetical
	}
	return RankByFrequency
}

// Entry is a snapshot of a terminal node.
type Entry struct {
	Word      string `json:"word" msgpack:"w"`
	Frequency int    `json:"frequency" msgpack:"f"`
}

// Stats describes the shape of the tree.
type Stats struct {
	TotalWords int `json:"totalWords" msgpack:"total_words"`
	TotalNodes int `json:"totalNodes" msgpack:"total_nodes"`
	MaxDepth   int `json:"maxDepth" msgpack:"max_depth"`
}

type node struct {
	children  map[rune]*node
	terminal  bool
	frequency int
	word      string
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

// Dictionary is a frequency-carrying trie.
type Dictionary struct {
	root      *node
	wordCount int
}

// New returns an empty Dictionary.
func New() *Dictionary {
	return &Dictionary{root: newNode()}
}

// Insert adds frequency to word, creating it when absent.
// Empty words and negative frequencies are ignored.
func (d *Dictionary) Insert(word string, frequency int) {
	_ = d.InsertChecked(word, frequency)
}

// InsertChecked is Insert with the negative frequency case reported.
func (d *Dictionary) InsertChecked(word string, frequency int) error {
	if frequency < 0 {
		return ErrNegativeFrequency
	}
	word = utils.NormalizeWord(word)
	if word == "" {
		return nil
	}

	n := d.root
	for _, r := range word {
		child, ok := n.children[r]
		if !ok {
			child = newNode()
			n.children[r] = child
		}
		n = child
	}

	if !n.terminal {
		d.wordCount++
	}
	n.terminal = true
	n.frequency += frequency
	n.word = word
	return nil
}

// Seed inserts every entry in order.
func (d *Dictionary) Seed(entries []Entry) {
	for _, e := range entries {
		d.Insert(e.Word, e.Frequency)
	}
}

// find walks the exact path of an already normalized key.
func (d *Dictionary) find(key string) *node {
	n := d.root
	for _, r := range key {
		child, ok := n.children[r]
		if !ok {
			return nil
		}
		n = child
	}
	return n
}

// Search reports whether word was inserted.
func (d *Dictionary) Search(word string) bool {
	word = utils.NormalizeWord(word)
	if word == "" {
		return false
	}
	n := d.find(word)
	return n != nil && n.terminal
}

// Lookup returns a copy of the entry for word.
func (d *Dictionary) Lookup(word string) (Entry, bool) {
	word = utils.NormalizeWord(word)
	if word == "" {
		return Entry{}, false
	}
	n := d.find(word)
	if n == nil || !n.terminal {
		return Entry{}, false
	}
	return Entry{Word: n.word, Frequency: n.frequency}, true
}

// IncrementFrequency bumps an existing word by one. Unknown words are left alone.
func (d *Dictionary) IncrementFrequency(word string) {
	word = utils.NormalizeWord(word)
	if word == "" {
		return
	}
	if n := d.find(word); n != nil && n.terminal {
		n.frequency++
	}
}

// Suggest returns up to limit words starting with prefix, ordered by rankBy.
func (d *Dictionary) Suggest(prefix string, limit int, rankBy RankBy) []Entry {
	prefix = utils.NormalizeWord(prefix)
	if prefix == "" || limit <= 0 {
		return []Entry{}
	}
	start := d.find(prefix)
	if start == nil {
		return []Entry{}
	}

	entries := collect(start)
	sortEntries(entries, rankBy)

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// collect gathers every terminal node under n, n included.
func collect(n *node) []Entry {
	var entries []Entry
	stack := []*node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.terminal {
			entries = append(entries, Entry{Word: cur.word, Frequency: cur.frequency})
		}
		for _, child := range cur.children {
			stack = append(stack, child)
		}
	}
	return entries
}

func sortEntries(entries []Entry, rankBy RankBy) {
	if rankBy == RankByAlphabetical {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Word < entries[j].Word
		})
		return
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Frequency != entries[j].Frequency {
			return entries[i].Frequency > entries[j].Frequency
		}
		return entries[i].Word < entries[j].Word
	})
}

// WordCount returns the number of distinct words.
func (d *Dictionary) WordCount() int {
	return d.wordCount
}

// Stats walks the whole tree. Root counts as a node at depth 0.
func (d *Dictionary) Stats() Stats {
	type frame struct {
		n     *node
		depth int
	}

	stats := Stats{TotalWords: d.wordCount}
	stack := []frame{{d.root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		stats.TotalNodes++
		if f.depth > stats.MaxDepth {
			stats.MaxDepth = f.depth
		}
		for _, child := range f.n.children {
			stack = append(stack, frame{child, f.depth + 1})
		}
	}
	return stats
}

// Entries returns every word in alphabetical order.
func (d *Dictionary) Entries() []Entry {
	entries := collect(d.root)
	sortEntries(entries, RankByAlphabetical)
	return entries
}

// Clear drops every word.
func (d *Dictionary) Clear() {
	d.root = newNode()
	d.wordCount = 0
}
