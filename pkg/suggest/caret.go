package suggest

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Caret is where a suggestion surface should be anchored. Hosts that draw in
// pixels convert it themselves.
type Caret struct {
	Line   int // zero-based line of the offset
	Column int // display cells from the start of the line
}

// CaretMeasurer resolves a rune offset in text to a Caret.
type CaretMeasurer func(text string, offset int) Caret

// ColumnMeasurer measures in terminal cells, counting wide glyphs as two.
func ColumnMeasurer(text string, offset int) Caret {
	runes := []rune(text)
	if offset > len(runes) {
		offset = len(runes)
	}
	if offset < 0 {
		offset = 0
	}
	before := string(runes[:offset])
	line := strings.Count(before, "\n")
	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		before = before[i+1:]
	}
	return Caret{Line: line, Column: runewidth.StringWidth(before)}
}
