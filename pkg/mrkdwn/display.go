package mrkdwn

import "strings"

// DefaultPlaceholder is shown for empty input.
const DefaultPlaceholder = "Nothing to preview yet."

// Options configures a Renderer.
type Options struct {
	// Placeholder replaces the fragment when the trimmed input is empty.
	Placeholder string
}

// Renderer layers the display policy over Render.
type Renderer struct {
	opts Options
}

// NewRenderer creates a Renderer; an empty placeholder uses the default.
func NewRenderer(opts Options) *Renderer {
	if opts.Placeholder == "" {
		opts.Placeholder = DefaultPlaceholder
	}
	return &Renderer{opts: opts}
}

// Display renders markup for a content pane. The bool reports whether the
// placeholder was used instead.
func (r *Renderer) Display(markup string) (string, bool) {
	if strings.TrimSpace(markup) == "" {
		return `<p class="empty">` + Escape(r.opts.Placeholder) + `</p>`, true
	}
	return Render(markup), false
}

// Render is the pure conversion, without the empty-state policy.
func (r *Renderer) Render(markup string) string {
	return Render(markup)
}
