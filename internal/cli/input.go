// Package cli handles cmd line input for debugging the renderer and the
// shortcode engine in real-time.
package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/glyphserve/internal/logger"
	"github.com/bastiangx/glyphserve/pkg/mrkdwn"
	"github.com/bastiangx/glyphserve/pkg/suggest"
	"github.com/bastiangx/glyphserve/pkg/symbols"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	// triggerPrefix marks a line that is fed to the engine instead of the renderer.
	triggerPrefix = "?"
	// cursorMark places the cursor inside a trigger line; the default is the end.
	cursorMark = "|"
)

var (
	codeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	highlightStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
)

// InputHandler reads lines from stdin. A plain line is rendered and the HTML
// fragment printed; "\n" in the line stands for a line break. A line starting
// with "?" is a text buffer for the engine, with the cursor at the end or at
// "|".
type InputHandler struct {
	engine   *suggest.Engine
	renderer *mrkdwn.Renderer
	in       io.Reader
	out      *log.Logger
}

// NewInputHandler creates a handler on stdin, printing to stderr.
func NewInputHandler(table symbols.Lookuper, renderer *mrkdwn.Renderer, opts ...suggest.Option) *InputHandler {
	return NewInputHandlerWithIO(table, renderer, os.Stdin, os.Stderr, opts...)
}

// NewInputHandlerWithIO is NewInputHandler over arbitrary streams.
func NewInputHandlerWithIO(table symbols.Lookuper, renderer *mrkdwn.Renderer, in io.Reader, out io.Writer, opts ...suggest.Option) *InputHandler {
	if renderer == nil {
		renderer = mrkdwn.NewRenderer(mrkdwn.Options{})
	}
	return &InputHandler{
		engine:   suggest.NewEngine(table, opts...),
		renderer: renderer,
		in:       in,
		out:      logger.NewWithWriter(out, ""),
	}
}

// Start begins the CLI input loop. It returns nil at EOF.
func (h *InputHandler) Start() error {
	defer h.engine.Close()

	h.out.Print("GlyphServe CLI [DBG]")
	h.out.Print("type markup to render it, or ?text to run the shortcode engine (Ctrl+C to exit):")

	reader := bufio.NewReader(h.in)
	for {
		line, err := reader.ReadString('\n')
		if line = strings.TrimRight(line, "\r\n"); strings.TrimSpace(line) != "" {
			h.handleInput(line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func (h *InputHandler) handleInput(line string) {
	if text, ok := strings.CutPrefix(line, triggerPrefix); ok {
		h.handleTrigger(text)
		return
	}
	h.handleRender(strings.ReplaceAll(line, `\n`, "\n"))
}

func (h *InputHandler) handleRender(markup string) {
	start := time.Now()
	html, placeholder := h.renderer.Display(markup)
	log.Debugf("Rendered %d bytes in [ %v ]", len(markup), time.Since(start))

	if placeholder {
		h.out.Warn("nothing to render")
	}
	h.out.Print(html)
}

func (h *InputHandler) handleTrigger(text string) {
	cursor := utf8.RuneCountInString(text)
	if i := strings.Index(text, cursorMark); i >= 0 {
		cursor = utf8.RuneCountInString(text[:i])
		text = text[:i] + text[i+len(cursorMark):]
	}

	start := time.Now()
	res := h.engine.HandleChange(suggest.ChangeEvent{Text: text, Cursor: cursor})
	if res.Edit != nil {
		log.Debugf("Took [ %v ] to substitute", time.Since(start))
		h.out.Printf("substituted: %s", res.Edit.Text)
		h.out.Printf("cursor: %d", res.Edit.Cursor)
		return
	}
	if !res.Snapshot.Open {
		h.out.Warnf("no trigger at cursor %d in %q", cursor, text)
		return
	}

	snap := h.engine.Flush()
	log.Debugf("Took [ %v ] for query '%s'", time.Since(start), snap.SearchTerm)

	h.out.Printf("trigger [%d, %d) query '%s' anchored at line %d col %d",
		snap.Range.Start, snap.Range.End, snap.SearchTerm, snap.Anchor.Line, snap.Anchor.Column)
	if snap.Empty() {
		h.out.Warnf("no matches for '%s'", snap.SearchTerm)
		return
	}

	h.out.Printf("Found %d candidates for '%s':", len(snap.Candidates), snap.SearchTerm)
	for i, e := range snap.Candidates {
		glyph := e.Glyph
		if i == snap.Highlighted {
			glyph = highlightStyle.Render(glyph)
		}
		h.out.Printf("%2d. %s  %s", i+1, glyph, codeStyle.Render(strings.Join(e.Codes, ", ")))
	}
}
