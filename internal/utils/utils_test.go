package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWord(t *testing.T) {
	assert.Equal(t, "java", NormalizeWord(" Java "))
	assert.Equal(t, "", NormalizeWord(" \t\n"))
	assert.Equal(t, "über", NormalizeWord("ÜBER"))
}

func TestIsValidInput(t *testing.T) {
	testCases := []struct {
		input string
		want  bool
	}{
		{"", false},
		{"123", false},
		{"he!lo", false},
		{"aaaa", false},
		{"aa", true},
		{"hello", true},
		{"user-name", true},
		{"word2vec", true},
		{"ünï", true},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, IsValidInput(tc.input))
		})
	}
}

func TestFormatWithCommas(t *testing.T) {
	assert.Equal(t, "0", FormatWithCommas(0))
	assert.Equal(t, "999", FormatWithCommas(999))
	assert.Equal(t, "1,000", FormatWithCommas(1000))
	assert.Equal(t, "65,535", FormatWithCommas(65535))
	assert.Equal(t, "1,234,567", FormatWithCommas(1234567))
	assert.Equal(t, "-1,000", FormatWithCommas(-1000))
}

func TestApplyCapitalization(t *testing.T) {
	assert.Equal(t, "JAva", ApplyCapitalization("java", CapitalPositions("JA")))
	assert.Equal(t, "Über", ApplyCapitalization("über", CapitalPositions("Üb")))
	assert.Equal(t, "java", ApplyCapitalization("java", CapitalPositions("ja")))
	assert.Equal(t, "GO", ApplyCapitalization("go", CapitalPositions("GOPHER")))
	assert.Equal(t, "java", ApplyCapitalization("java", nil))
}

func TestSuggestionFilter(t *testing.T) {
	f := NewSuggestionFilter("Apple")
	assert.False(t, f.ShouldInclude("apple"))
	assert.True(t, f.ShouldInclude("apply"))
	assert.False(t, f.ShouldInclude("APPLY"))
}

func TestCreateRankList(t *testing.T) {
	assert.Equal(t, []uint16{1, 2, 3}, CreateRankList(3))
	assert.Empty(t, CreateRankList(0))
}

func TestPathResolverResolveFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("go 1\n"), 0644))

	pr, err := NewPathResolver("wordtrie-test")
	require.NoError(t, err)

	got, err := pr.ResolveFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	_, err = pr.ResolveFile(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
	assert.Len(t, pr.Candidates("rel.txt"), 3)
}

func TestTOMLRoundTrip(t *testing.T) {
	type section struct {
		Limit int  `toml:"limit"`
		On    bool `toml:"on"`
	}
	type doc struct {
		Main section `toml:"main"`
	}

	path := filepath.Join(t.TempDir(), "c.toml")
	require.NoError(t, SaveTOMLFile(doc{Main: section{Limit: 7, On: true}}, path))
	assert.True(t, FileExists(path))

	var got doc
	require.NoError(t, LoadTOMLFile(path, &got))
	assert.Equal(t, 7, got.Main.Limit)

	raw, err := ParseTOMLWithRecovery(path)
	require.NoError(t, err)
	main, ok := ExtractSection(raw, "main")
	require.True(t, ok)
	limit, ok := ExtractInt(main, "limit")
	assert.True(t, ok)
	assert.Equal(t, 7, limit)
	on, ok := ExtractBool(main, "on")
	assert.True(t, ok)
	assert.True(t, on)
}

func TestExtractHelpersRejectWrongTypes(t *testing.T) {
	data := map[string]any{"name": "trie", "n": int64(3), "flag": "yes"}

	s, ok := ExtractString(data, "name")
	assert.True(t, ok)
	assert.Equal(t, "trie", s)

	_, ok = ExtractString(data, "n")
	assert.False(t, ok)
	_, ok = ExtractInt(data, "name")
	assert.False(t, ok)
	_, ok = ExtractBool(data, "flag")
	assert.False(t, ok)
	_, ok = ExtractSection(data, "name")
	assert.False(t, ok)
}

func TestDirHelpers(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	status := CheckDirStatus(dir)
	require.NoError(t, status.Error)
	assert.True(t, status.Exists)
	assert.True(t, status.Writable)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "write probe must clean up")

	assert.Equal(t, "unknown", AbsPath(""))
	assert.True(t, filepath.IsAbs(AbsPath("x.toml")))
}
