package internal

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"stopwatch_tui/internal/clock"
)

// MsgTick asks the program to redraw after the readout changed.
type MsgTick struct{}

// Readout holds the running-time text. The clock writes it from its own
// goroutine; the program is woken through a one-slot channel so a write
// never blocks, even when it happens inside Update.
type Readout struct {
	mu      sync.Mutex
	text    string
	changed chan struct{}
}

func NewReadout() *Readout {
	return &Readout{
		text:    clock.Zero,
		changed: make(chan struct{}, 1),
	}
}

func (r *Readout) ShowTime(text string) {
	r.mu.Lock()
	r.text = text
	r.mu.Unlock()

	select {
	case r.changed <- struct{}{}:
	default:
	}
}

func (r *Readout) Text() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.text
}

func waitForReadout(r *Readout) tea.Cmd {
	return func() tea.Msg {
		<-r.changed
		return MsgTick{}
	}
}
