// Package trigger detects in-progress shortcode triggers in a text buffer.
//
// A trigger is a delimiter that starts a word, followed by a query with no
// whitespace, optionally closed by a second delimiter:
//
//	"see you at the :piz"    open trigger, query "piz"
//	"see you at the :pizza:" complete trigger, query "pizza"
//
// Offsets are rune offsets. Find is pure; it never allocates state.
package trigger

import "unicode"

// DefaultDelimiter opens and closes a shortcode.
const DefaultDelimiter = ':'

// Match describes a trigger ending at the cursor.
type Match struct {
	Start    int    // offset of the opening delimiter
	End      int    // exclusive, always the cursor
	Query    string // text after the opener, closing delimiter excluded
	Complete bool   // closed by a second delimiter
}

// Range returns the replaced span.
func (m Match) Range() Range {
	return Range{Start: m.Start, End: m.End}
}

// Range is a half-open rune span [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the span length in runes.
func (r Range) Len() int {
	return r.End - r.Start
}

// Find looks for a trigger ending at cursor. The bool is false when there is
// none; that is not an error, it only means no session should open.
func Find(text string, cursor int, delim rune) (Match, bool) {
	return FindRunes([]rune(text), cursor, delim)
}

// FindRunes is Find over a decoded buffer.
func FindRunes(runes []rune, cursor int, delim rune) (Match, bool) {
	if cursor <= 0 || cursor > len(runes) {
		return Match{}, false
	}

	// A delimiter right before the cursor may close a trigger.
	if runes[cursor-1] == delim {
		if m, ok := scan(runes, cursor, cursor-1, delim); ok {
			m.Complete = true
			return m, true
		}
	}
	return scan(runes, cursor, cursor, delim)
}

// scan finds the nearest opener before queryEnd and validates the query
// runes[opener+1:queryEnd].
func scan(runes []rune, cursor, queryEnd int, delim rune) (Match, bool) {
	opener := -1
	for i := queryEnd - 1; i >= 0; i-- {
		if runes[i] == delim {
			opener = i
			break
		}
	}
	if opener < 0 {
		return Match{}, false
	}

	// Delimiters inside a word are not openers ("10:30", "a:b").
	if opener > 0 && !unicode.IsSpace(runes[opener-1]) {
		return Match{}, false
	}

	query := runes[opener+1 : queryEnd]
	if len(query) == 0 {
		return Match{}, false
	}
	for _, r := range query {
		if unicode.IsSpace(r) {
			return Match{}, false
		}
	}

	return Match{
		Start: opener,
		End:   cursor,
		Query: string(query),
	}, true
}
