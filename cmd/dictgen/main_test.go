package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeEntries(t *testing.T) {
	merged := mergeEntries([]dictionary.Entry{
		{Word: "Go", Frequency: 2},
		{Word: "rust", Frequency: 5},
		{Word: "go", Frequency: 4},
		{Word: "c", Frequency: 5},
	})
	assert.Equal(t, []dictionary.Entry{
		{Word: "go", Frequency: 6},
		{Word: "c", Frequency: 5},
		{Word: "rust", Frequency: 5},
	}, merged)
}

func TestBuildAndInfo(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "words.txt")
	output := filepath.Join(dir, "out", "dict_0001.bin")
	require.NoError(t, os.WriteFile(input, []byte("go 3\nGo 1\ngopher 2\n"), 0644))

	build := createBuildCmd()
	build.SetArgs([]string{input, "-o", output})
	require.NoError(t, build.Execute())

	entries, err := dictionary.LoadFile(output)
	require.NoError(t, err)
	assert.Equal(t, []dictionary.Entry{
		{Word: "go", Frequency: 4},
		{Word: "gopher", Frequency: 2},
	}, entries)

	var out bytes.Buffer
	info := createInfoCmd()
	info.SetOut(&out)
	info.SetArgs([]string{output, "-n", "1"})
	require.NoError(t, info.Execute())

	assert.Contains(t, out.String(), "Binary Chunk Dictionary")
	assert.Contains(t, out.String(), "words:     2")
	assert.Contains(t, out.String(), "  1. go")
	assert.NotContains(t, out.String(), "gopher ")
}
