package suggest

import (
	"sync"

	"github.com/bastiangx/glyphserve/internal/utils"
	"github.com/bastiangx/glyphserve/pkg/symbols"
	"github.com/bastiangx/glyphserve/pkg/trigger"
	"github.com/charmbracelet/log"
)

// Snapshot is the render-time view of a session.
type Snapshot struct {
	Open        bool
	SearchTerm  string
	Candidates  []symbols.Entry
	Highlighted int
	Range       trigger.Range // valid when Open
	Anchor      Caret         // caret at Range.Start
	Pending     bool          // a recomputation is scheduled

	// Generation identifies the session state the view was taken from.
	Generation uint64
}

// Empty reports an open session with nothing to show.
func (s Snapshot) Empty() bool {
	return s.Open && len(s.Candidates) == 0
}

// Selected returns the highlighted candidate.
func (s Snapshot) Selected() (symbols.Entry, bool) {
	if !s.Open || s.Highlighted < 0 || s.Highlighted >= len(s.Candidates) {
		return symbols.Entry{}, false
	}
	return s.Candidates[s.Highlighted], true
}

// Engine holds the autocomplete session of one input field.
type Engine struct {
	mu    sync.Mutex
	table symbols.Lookuper
	opts  options

	text        []rune // last observed buffer
	open        bool
	query       string // newest open-trigger query, applied on debounce
	searchTerm  string
	candidates  []symbols.Entry
	highlighted int
	active      trigger.Range
	anchor      Caret
	closed      bool
	gen         uint64 // bumped by every state change

	debouncer *Debouncer
}

var _ Session = (*Engine)(nil)

// NewEngine creates an engine over a read-only symbol table.
func NewEngine(table symbols.Lookuper, opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	e := &Engine{
		table: table,
		opts:  o,
	}
	e.debouncer = NewDebouncer(o.delay, e.refresh)
	return e
}

// HandleChange reacts to a new buffer value.
//
// A closed trigger whose query is a known code is substituted at once and the
// proposed Edit returned. A closed trigger with an unknown code leaves the
// text alone. An open trigger opens the session and schedules a debounced
// recomputation of the candidates; anything else closes the session.
func (e *Engine) HandleChange(ev ChangeEvent) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return Result{Snapshot: e.snapshotLocked()}
	}

	runes := []rune(ev.Text)
	cursor := utils.ClampRune(ev.Cursor, len(runes))
	e.text = runes
	e.gen++

	var res Result
	m, ok := trigger.FindRunes(runes, cursor, e.opts.delim)
	switch {
	case !ok:
		e.closeLocked()
	case m.Complete:
		e.closeLocked()
		if entry, found := e.table.Lookup(m.Query); found {
			edit := e.replaceLocked(m.Range(), entry.Glyph)
			res.Edit = &edit
			log.Debugf("Substituted :%s: with %s", m.Query, entry.Glyph)
		} else {
			log.Debugf("No symbol for closed trigger %q", m.Query)
		}
	default:
		if !e.open {
			log.Debugf("Session opened at %d", m.Start)
		}
		e.open = true
		e.active = m.Range()
		e.query = m.Query
		e.anchor = e.opts.measure(ev.Text, m.Start)
		e.debouncer.Call()
	}

	res.Snapshot = e.snapshotLocked()
	return res
}

// HandleKey applies grid navigation while the session is open.
// Keys are only consumed when they act on the session.
func (e *Engine) HandleKey(ev KeyEvent) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || !e.open {
		return Result{Snapshot: e.snapshotLocked()}
	}

	var res Result
	n := len(e.candidates)
	switch ev.Key {
	case KeyEscape:
		e.closeLocked()
		res.Handled = true
	case KeyRight:
		if n > 0 {
			e.highlighted = (e.highlighted + 1) % n
			res.Handled = true
		}
	case KeyLeft:
		if n > 0 {
			e.highlighted = (e.highlighted - 1 + n) % n
			res.Handled = true
		}
	case KeyDown:
		if n > 0 {
			e.highlighted = (e.highlighted + e.opts.stride) % n
			res.Handled = true
		}
	case KeyUp:
		if n > 0 {
			e.highlighted = ((e.highlighted-e.opts.stride)%n + n) % n
			res.Handled = true
		}
	case KeyEnter:
		if n > 0 {
			res.Edit = e.commitLocked(e.candidates[e.highlighted])
			res.Handled = true
		}
	}

	if res.Handled {
		e.gen++
	}
	res.Snapshot = e.snapshotLocked()
	return res
}

// Commit replaces the active trigger range with entry's glyph.
// The range is the one recorded by the edit that last updated the trigger,
// so keystrokes typed while the debounce was pending are replaced too.
func (e *Engine) Commit(entry symbols.Entry) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return Result{Snapshot: e.snapshotLocked()}
	}
	res := Result{Edit: e.commitLocked(entry)}
	res.Snapshot = e.snapshotLocked()
	return res
}

// CommitIndex commits the i-th current candidate.
func (e *Engine) CommitIndex(i int) (Result, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || !e.open || i < 0 || i >= len(e.candidates) {
		return Result{Snapshot: e.snapshotLocked()}, false
	}
	res := Result{Edit: e.commitLocked(e.candidates[i])}
	res.Snapshot = e.snapshotLocked()
	return res, true
}

// Blur closes the session on focus loss.
func (e *Engine) Blur() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closeLocked()
}

// Flush runs a pending recomputation now and returns the resulting view.
func (e *Engine) Flush() Snapshot {
	e.debouncer.CallImmediate()
	return e.Snapshot()
}

// Close tears the engine down. Pending timers are cancelled and later
// callbacks are ignored.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closeLocked()
	e.closed = true
}

// Snapshot returns the current view.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Current reports whether snap still describes the session. A view pushed
// by the debounce timer goes stale once a later edit, key or close lands.
func (e *Engine) Current(snap Snapshot) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.closed && snap.Generation == e.gen
}

// refresh is the debounced recomputation. It always applies the newest query,
// so a timer that lost a race with a later edit cannot publish stale results.
func (e *Engine) refresh() {
	e.mu.Lock()
	if e.closed || !e.open {
		e.mu.Unlock()
		return
	}
	e.searchTerm = utils.NormalizeTerm(e.query)
	e.candidates = e.table.Search(e.searchTerm)
	if e.opts.limit > 0 && len(e.candidates) > e.opts.limit {
		e.candidates = e.candidates[:e.opts.limit]
	}
	e.highlighted = 0
	e.gen++
	snap := e.snapshotLocked()
	onUpdate := e.opts.onUpdate
	e.mu.Unlock()

	log.Debugf("Recomputed %d candidates for %q", len(snap.Candidates), snap.SearchTerm)
	if onUpdate != nil {
		onUpdate(snap)
	}
}

func (e *Engine) commitLocked(entry symbols.Entry) *Edit {
	if !e.open {
		return nil
	}
	edit := e.replaceLocked(e.active, entry.Glyph)
	e.closeLocked()
	return &edit
}

// replaceLocked splices glyph over r in the last observed text.
func (e *Engine) replaceLocked(r trigger.Range, glyph string) Edit {
	start := utils.ClampRune(r.Start, len(e.text))
	end := utils.ClampRune(r.End, len(e.text))
	if end < start {
		end = start
	}

	g := []rune(glyph)
	next := make([]rune, 0, len(e.text)-(end-start)+len(g))
	next = append(next, e.text[:start]...)
	next = append(next, g...)
	next = append(next, e.text[end:]...)
	e.text = next

	return Edit{Text: string(next), Cursor: start + len(g)}
}

func (e *Engine) closeLocked() {
	e.debouncer.Cancel()
	e.gen++
	e.open = false
	e.query = ""
	e.searchTerm = ""
	e.candidates = nil
	e.highlighted = 0
	e.active = trigger.Range{}
	e.anchor = Caret{}
}

func (e *Engine) snapshotLocked() Snapshot {
	snap := Snapshot{
		Open:        e.open,
		SearchTerm:  e.searchTerm,
		Highlighted: e.highlighted,
		Range:       e.active,
		Anchor:      e.anchor,
		Pending:     e.debouncer.IsPending(),
		Generation:  e.gen,
	}
	if len(e.candidates) > 0 {
		snap.Candidates = make([]symbols.Entry, len(e.candidates))
		copy(snap.Candidates, e.candidates)
	}
	return snap
}
