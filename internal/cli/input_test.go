package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/bastiangx/wordtrie/pkg/session"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func runLines(t *testing.T, opts Options, lines ...string) (string, *InputHandler, *suggest.Completer) {
	t.Helper()
	completer := suggest.NewCompleter(suggest.Options{})
	completer.Seed([]dictionary.Entry{
		{Word: "app", Frequency: 5},
		{Word: "apple", Frequency: 3},
		{Word: "apply", Frequency: 2000},
	})
	sess := session.New(completer, session.Options{})

	var out bytes.Buffer
	h := NewInputHandler(sess, completer, opts, strings.NewReader(strings.Join(lines, "\n")), &out)
	require.NoError(t, h.Start())
	return out.String(), h, completer
}

func TestPrefixLines(t *testing.T) {
	out, h, _ := runLines(t, Options{MinPrefix: 2, Limit: 2}, "app", "", "a", "zz", strings.Repeat("b", 61))

	assert.Equal(t, 4, h.RequestCount())
	assert.Contains(t, out, "apply")
	assert.Contains(t, out, "2,000")
	assert.Contains(t, out, "app")
	assert.NotContains(t, out, "apple")
	assert.Contains(t, out, "prefix too short: a")
	assert.Contains(t, out, "no suggestions for 'zz'")
	assert.Contains(t, out, "prefix too long")
}

func TestFilter(t *testing.T) {
	out, _, _ := runLines(t, Options{MinPrefix: 1}, "123")
	assert.Contains(t, out, "no suggestions for '123'")
}

func TestCommands(t *testing.T) {
	out, _, completer := runLines(t, Options{MinPrefix: 1, Limit: 5},
		":accept apple",
		":accept nothing",
		":add banana",
		":add banana",
		":reject app",
		":recent ap",
		":stats",
		":bogus",
		":accept",
	)

	e, ok := completer.Lookup("apple")
	require.True(t, ok)
	assert.Equal(t, 4, e.Frequency)
	assert.True(t, completer.Contains("banana"))

	assert.Contains(t, out, "accepted")
	assert.Contains(t, out, "'nothing' is not in the dictionary")
	assert.Contains(t, out, "added")
	assert.Contains(t, out, "'banana' is already in the dictionary")
	assert.Contains(t, out, "rejected")
	assert.Contains(t, out, "words: 4")
	assert.Contains(t, out, "accepted: 1  rejected: 1  added: 1")
	assert.Contains(t, out, `unknown command "bogus"`)
	assert.Contains(t, out, "missing word")
}

func TestRejectedWordHidden(t *testing.T) {
	out, _, _ := runLines(t, Options{MinPrefix: 1, Limit: 5}, ":reject apply", "app")
	idx := strings.Index(out, "rejected")
	require.GreaterOrEqual(t, idx, 0)
	assert.NotContains(t, out[idx+len("rejected apply"):], "apply")
}
