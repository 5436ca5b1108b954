package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bastiangx/glyphserve/pkg/suggest"
)

// snapshotMsg carries a debounced recomputation from the engine's timer
// goroutine into the program loop.
type snapshotMsg suggest.Snapshot

// statusMsg is a one-line notice for the footer.
type statusMsg struct {
	msg string
}

// updates is a latest-wins mailbox between the engine and the program.
type updates chan suggest.Snapshot

func newUpdates() updates {
	return make(updates, 1)
}

// offer replaces any unread snapshot with s. It never blocks the timer
// goroutine.
func (u updates) offer(s suggest.Snapshot) {
	for {
		select {
		case u <- s:
			return
		default:
		}
		select {
		case <-u:
		default:
		}
	}
}

// wait is the tea.Cmd that delivers the next snapshot.
func (u updates) wait() tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(<-u)
	}
}
