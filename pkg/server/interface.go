/*
Package server implements msgpack IPC for shortcode completion and markup
preview.

The server reads a stream of msgpack maps from stdin and writes msgpack maps to
stdout. Every request carries an id and an op; the response echoes the id.

# IPC

Markup preview turns a message body into a safe HTML fragment:

	{"id": "r1", "op": "render", "m": "*hi* :tada:"}
	{"id": "r1", "h": "<p><strong>hi</strong> :tada:</p>", "p": false, "t": 42}

One-shot symbol search, without a session:

	{"id": "q1", "op": "search", "q": "fir", "l": 8}
	{"id": "q1", "s": [{"g": "🔥", "c": "fire"}, {"g": "🧯", "c": "fire_extinguisher"}], "c": 2, "t": 12}

Sessions mirror one input field of the client. The client forwards every
change and every navigation key while a session is open, and applies the edit
returned when a glyph is substituted:

	{"id": "e1", "op": "edit", "s": "compose", "text": "so :fir", "cur": 7}
	{"id": "e1", "s": "compose", "o": true, "r": [3, 7], "a": [0, 3], "pd": true}

Candidates arrive once the debounce delay passes, as a push without an id:

	{"id": "", "s": "compose", "o": true, "q": "fir", "cs": [...], "push": true}

	{"id": "k1", "op": "key", "s": "compose", "k": "enter"}
	{"id": "k1", "s": "compose", "o": false, "hd": true, "ed": {"text": "so 🔥", "cur": 4}}

Other session ops are commit (by candidate index), blur and close.

Errors carry a message and an HTTP-like status code:

	{"id": "x", "e": "unknown session: compose", "c": 404}

config updates the engine section of the config file; new sessions pick the
values up, open sessions keep theirs.
*/
package server

import "github.com/bastiangx/glyphserve/pkg/suggest"

// Request is the envelope of every op. Fields unused by an op are ignored.
type Request struct {
	ID string `msgpack:"id"`
	Op string `msgpack:"op"`

	// render
	Markup string `msgpack:"m,omitempty"`

	// search
	Query string `msgpack:"q,omitempty"`
	Limit int    `msgpack:"l,omitempty"`

	// session ops
	Session string `msgpack:"s,omitempty"`
	Text    string `msgpack:"text,omitempty"`
	Cursor  int    `msgpack:"cur,omitempty"`
	Key     string `msgpack:"k,omitempty"`
	Index   int    `msgpack:"i,omitempty"`

	// config
	DebounceMs    *int `msgpack:"debounce_ms,omitempty"`
	GridColumns   *int `msgpack:"grid_columns,omitempty"`
	MaxCandidates *int `msgpack:"max_candidates,omitempty"`
}

// RenderResponse - markup preview
type RenderResponse struct {
	ID          string `msgpack:"id"`
	HTML        string `msgpack:"h"`
	Placeholder bool   `msgpack:"p"`
	TimeTaken   int64  `msgpack:"t"` // microseconds
}

// Candidate - minimal symbol in responses
type Candidate struct {
	Glyph string `msgpack:"g"`
	Code  string `msgpack:"c"`
}

// SearchResponse - one-shot search
type SearchResponse struct {
	ID         string      `msgpack:"id"`
	Candidates []Candidate `msgpack:"s"`
	Count      int         `msgpack:"c"`
	TimeTaken  int64       `msgpack:"t"`
}

// EditResult is a proposed buffer value the client should apply.
type EditResult struct {
	Text   string `msgpack:"text"`
	Cursor int    `msgpack:"cur"`
}

// SessionResponse is the view of one session after an op or a debounce push.
type SessionResponse struct {
	ID          string      `msgpack:"id"`
	Session     string      `msgpack:"s"`
	Open        bool        `msgpack:"o"`
	SearchTerm  string      `msgpack:"q,omitempty"`
	Candidates  []Candidate `msgpack:"cs,omitempty"`
	Highlighted int         `msgpack:"hl"`
	Range       []int       `msgpack:"r,omitempty"` // [start, end) in runes
	Anchor      []int       `msgpack:"a,omitempty"` // [line, column]
	Pending     bool        `msgpack:"pd,omitempty"`
	Handled     bool        `msgpack:"hd,omitempty"`
	Edit        *EditResult `msgpack:"ed,omitempty"`
	Push        bool        `msgpack:"push,omitempty"`
}

// StatusResponse answers health, close and config.
type StatusResponse struct {
	ID       string `msgpack:"id"`
	Status   string `msgpack:"status"`
	Sessions int    `msgpack:"sessions,omitempty"`
	Symbols  int    `msgpack:"symbols,omitempty"`
}

// ErrorResponse holds basic error information
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

// Status codes used in ErrorResponse.
const (
	CodeBadRequest    = 400
	CodeNotFound      = 404
	CodeTooLarge      = 413
	CodeInternalError = 500
)

func candidatesOf(snap suggest.Snapshot) []Candidate {
	if len(snap.Candidates) == 0 {
		return nil
	}
	out := make([]Candidate, len(snap.Candidates))
	for i, e := range snap.Candidates {
		out[i] = Candidate{Glyph: e.Glyph, Code: e.Code()}
	}
	return out
}

func sessionResponse(id, session string, res suggest.Result) SessionResponse {
	snap := res.Snapshot
	resp := SessionResponse{
		ID:          id,
		Session:     session,
		Open:        snap.Open,
		SearchTerm:  snap.SearchTerm,
		Candidates:  candidatesOf(snap),
		Highlighted: snap.Highlighted,
		Pending:     snap.Pending,
		Handled:     res.Handled,
	}
	if snap.Open {
		resp.Range = []int{snap.Range.Start, snap.Range.End}
		resp.Anchor = []int{snap.Anchor.Line, snap.Anchor.Column}
	}
	if res.Edit != nil {
		resp.Edit = &EditResult{Text: res.Edit.Text, Cursor: res.Edit.Cursor}
	}
	return resp
}
