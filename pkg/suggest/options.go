package suggest

import (
	"time"

	"github.com/bastiangx/glyphserve/pkg/config"
	"github.com/bastiangx/glyphserve/pkg/trigger"
)

const (
	// DefaultDebounce is the quiet period before candidates are recomputed.
	DefaultDebounce = 300 * time.Millisecond
	// DefaultGridColumns is the row width used by up/down navigation.
	DefaultGridColumns = 8
)

type options struct {
	delim    rune
	delay    time.Duration
	stride   int
	limit    int
	measure  CaretMeasurer
	onUpdate func(Snapshot)
}

func defaultOptions() options {
	return options{
		delim:   trigger.DefaultDelimiter,
		delay:   DefaultDebounce,
		stride:  DefaultGridColumns,
		measure: ColumnMeasurer,
	}
}

// Option configures an Engine.
type Option func(*options)

// WithDelimiter sets the rune that opens and closes a shortcode.
func WithDelimiter(delim rune) Option {
	return func(o *options) {
		o.delim = delim
	}
}

// WithDebounce sets the quiet period before candidates are recomputed.
// Zero still defers the work to the timer goroutine.
func WithDebounce(delay time.Duration) Option {
	return func(o *options) {
		if delay >= 0 {
			o.delay = delay
		}
	}
}

// WithGridColumns sets the stride of up/down navigation.
func WithGridColumns(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.stride = n
		}
	}
}

// WithLimit caps the number of candidates. Zero means no cap.
func WithLimit(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.limit = n
		}
	}
}

// WithMeasurer injects the caret measurer used for the popover anchor.
func WithMeasurer(m CaretMeasurer) Option {
	return func(o *options) {
		if m != nil {
			o.measure = m
		}
	}
}

// WithUpdateFunc registers a callback invoked after every debounced
// recomputation. It runs on the timer goroutine, outside the engine lock.
func WithUpdateFunc(fn func(Snapshot)) Option {
	return func(o *options) {
		o.onUpdate = fn
	}
}

// ConfigOptions translates the [engine] config section.
func ConfigOptions(c config.EngineConfig) []Option {
	opts := []Option{
		WithDebounce(time.Duration(c.DebounceMs) * time.Millisecond),
		WithGridColumns(c.GridColumns),
		WithLimit(c.MaxCandidates),
	}
	if d := c.DelimiterRune(); d != 0 {
		opts = append(opts, WithDelimiter(d))
	}
	return opts
}
