/*
Package suggest is the core autocomplete engine: it watches a text buffer for
shortcode triggers, keeps the suggestion session for one input field and
proposes edits that substitute a trigger with its glyph.

The engine never owns the text. Hosts feed it ChangeEvent and KeyEvent values
and apply the Edit returned in a Result, if any:

	eng := suggest.NewEngine(symbols.Default(), suggest.WithUpdateFunc(redraw))
	defer eng.Close()

	res := eng.HandleChange(suggest.ChangeEvent{Text: value, Cursor: pos})
	if res.Edit != nil {
		value, pos = res.Edit.Text, res.Edit.Cursor
	}

Closed triggers (":fire:") with a known code are substituted immediately.
Open triggers (":fir") open a session whose candidates are recomputed after a
debounce delay; every edit restarts the delay and only the newest query is
ever applied.
*/
package suggest

import "github.com/bastiangx/glyphserve/pkg/symbols"

// Session is the contract hosts program against.
type Session interface {
	// HandleChange reacts to a new text value and cursor.
	HandleChange(ev ChangeEvent) Result

	// HandleKey routes navigation keys while a session is open.
	HandleKey(ev KeyEvent) Result

	// Commit replaces the active trigger with entry's glyph.
	Commit(entry symbols.Entry) Result

	// Blur closes the session on focus loss.
	Blur()

	// Snapshot returns the render-time view of the session.
	Snapshot() Snapshot

	// Close cancels pending work; the session is unusable afterwards.
	Close()
}
