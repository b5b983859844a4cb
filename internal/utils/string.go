package utils

import (
	"fmt"
	"strings"
	"unicode"
)

// FormatWithCommas formats an integer with comma separators
func FormatWithCommas(n int) string {
	if n < 0 {
		return "-" + FormatWithCommas(-n)
	}
	str := fmt.Sprintf("%d", n)
	if n < 1000 {
		return str
	}

	var b strings.Builder
	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(char)
	}
	return b.String()
}

// CapitalPositions marks which runes of s are upper case.
func CapitalPositions(s string) []bool {
	runes := []rune(s)
	positions := make([]bool, len(runes))
	for i, r := range runes {
		positions[i] = unicode.IsUpper(r)
	}
	return positions
}

// ApplyCapitalization upper-cases the runes of word flagged in positions.
func ApplyCapitalization(word string, positions []bool) string {
	if len(positions) == 0 {
		return word
	}

	changed := false
	wordRunes := []rune(word)
	for i := 0; i < len(wordRunes) && i < len(positions); i++ {
		if positions[i] && unicode.IsLower(wordRunes[i]) {
			wordRunes[i] = unicode.ToUpper(wordRunes[i])
			changed = true
		}
	}
	if !changed {
		return word
	}
	return string(wordRunes)
}
