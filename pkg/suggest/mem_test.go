package suggest

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/bastiangx/wordtrie/pkg/dictionary"
)

var testPrefixes = []string{
	"a", "ab", "abc",
	"d", "da", "dat", "data",
	"p", "pr", "pro", "prog", "program",
	"t", "th", "the",
	"c", "co", "com", "comp", "computer",
}

func TestMemoryStableUnderQueries(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping memory test in short mode")
	}

	c := NewCompleter(Options{})
	c.Seed(dictionary.DefaultEntries())

	for _, iterations := range []int{100, 1000} {
		t.Run(fmt.Sprintf("iterations_%d", iterations), func(t *testing.T) {
			var baseline runtime.MemStats
			runtime.GC()
			runtime.ReadMemStats(&baseline)
			baselineGoroutines := runtime.NumGoroutine()

			for i := 0; i < iterations; i++ {
				for _, prefix := range testPrefixes {
					_ = c.Complete(prefix, 10, dictionary.RankByFrequency)
				}
			}

			var final runtime.MemStats
			runtime.GC()
			runtime.ReadMemStats(&final)

			memDelta := int64(final.HeapAlloc) - int64(baseline.HeapAlloc)
			totalOps := iterations * len(testPrefixes)
			memPerOp := float64(memDelta) / float64(totalOps)
			goroutineDelta := runtime.NumGoroutine() - baselineGoroutines

			t.Logf("ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d",
				totalOps, memDelta, memPerOp, goroutineDelta)

			if memPerOp > 1000 {
				t.Errorf("excessive retained memory per operation: %.2f bytes", memPerOp)
			}
			if goroutineDelta > 2 {
				t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
			}
		})
	}
}
