package suggest

import (
	"math"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// HotCache indexes recently accepted words by prefix.
// The least recently accepted word is evicted once maxWords is reached.
type HotCache struct {
	hotTrie     *patricia.Trie
	accessTime  map[string]int64
	accessCount int64
	hits        int64
	maxWords    int
	mu          sync.Mutex
}

// NewHotCache returns an empty cache holding at most maxWords words.
// A non-positive size disables the cache.
func NewHotCache(maxWords int) *HotCache {
	if maxWords < 0 {
		maxWords = 0
	}
	return &HotCache{
		hotTrie:    patricia.NewTrie(),
		accessTime: make(map[string]int64, maxWords),
		maxWords:   maxWords,
	}
}

// Touch records word as just accepted.
func (hc *HotCache) Touch(word string) {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	if hc.maxWords == 0 || word == "" {
		return
	}
	if _, ok := hc.accessTime[word]; !ok && len(hc.accessTime) >= hc.maxWords {
		hc.evictLRU()
	}

	tick := hc.getNextAccessTime()
	hc.accessTime[word] = tick
	hc.hotTrie.Set(patricia.Prefix(word), tick)
}

// Search returns up to limit cached words under lowerPrefix, most recent first.
func (hc *HotCache) Search(lowerPrefix string, limit int) []string {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	if lowerPrefix == "" || limit <= 0 {
		return nil
	}

	type hit struct {
		word string
		tick int64
	}
	var hits []hit

	err := hc.hotTrie.VisitSubtree(patricia.Prefix(lowerPrefix), func(p patricia.Prefix, item patricia.Item) error {
		hits = append(hits, hit{word: string(p), tick: item.(int64)})
		return nil
	})
	if err != nil {
		log.Errorf("Error searching hot cache: %v", err)
		return nil
	}

	sort.Slice(hits, func(i, j int) bool {
		return hits[i].tick > hits[j].tick
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}

	words := make([]string, len(hits))
	for i, h := range hits {
		words[i] = h.word
	}
	if len(words) > 0 {
		hc.hits++
	}
	return words
}

// Reset empties the cache.
func (hc *HotCache) Reset() {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	hc.hotTrie = patricia.NewTrie()
	hc.accessTime = make(map[string]int64, hc.maxWords)
}

// CacheStats reports cache occupancy.
type CacheStats struct {
	Words    int   `json:"hotCacheWords" msgpack:"hot_cache_words"`
	MaxWords int   `json:"maxHotWords" msgpack:"max_hot_words"`
	Hits     int64 `json:"hotCacheHits" msgpack:"hot_cache_hits"`
}

// Stats returns current cache statistics.
func (hc *HotCache) Stats() CacheStats {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	return CacheStats{
		Words:    len(hc.accessTime),
		MaxWords: hc.maxWords,
		Hits:     hc.hits,
	}
}

func (hc *HotCache) getNextAccessTime() int64 {
	hc.accessCount++
	return hc.accessCount
}

func (hc *HotCache) evictLRU() {
	var oldestWord string
	var oldestTime int64 = math.MaxInt64

	for word, accessTime := range hc.accessTime {
		if accessTime < oldestTime {
			oldestTime = accessTime
			oldestWord = word
		}
	}

	if oldestWord != "" {
		delete(hc.accessTime, oldestWord)
		hc.hotTrie.Delete(patricia.Prefix(oldestWord))
		log.Debugf("Evicted word '%s' from hot cache", oldestWord)
	}
}
