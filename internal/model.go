package internal

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"stopwatch_tui/internal/button"
	"stopwatch_tui/internal/clock"
	"stopwatch_tui/internal/controller"
	"stopwatch_tui/internal/record"
	"stopwatch_tui/internal/store"
)

// Options configures NewModel.
type Options struct {
	// Key is the store key holding the list; empty means record.Key
	Key string
	// Interval is the readout refresh interval while recording
	Interval time.Duration
	Logger   *log.Logger
	// Now replaces the wall clock for record timestamps and the readout
	Now func() time.Time
}

// Model is the stopwatch screen. It is also the view surface the controller
// draws on: the record list, the note input, and the record/stop control.
type Model struct {
	ctrl    *controller.Controller
	readout *Readout
	keys    KeyMap

	Note    textinput.Model
	Records []string
	Face    button.Face
	Err     error

	width  int
	height int
}

var _ controller.View = (*Model)(nil)

func NewModel(st store.Store, opts Options) (*Model, error) {
	ti := textinput.New()
	ti.Placeholder = "메모..."
	ti.CharLimit = 200
	ti.Width = 50
	ti.Focus()

	m := &Model{
		readout: NewReadout(),
		keys:    DefaultKeyMap(),
		Note:    ti,
		Face:    button.ReadyFace,
	}

	tc := clock.New(m.readout, clock.WithInterval(opts.Interval), clock.WithNow(opts.Now))
	m.ctrl = controller.New(st, m, tc,
		controller.WithKey(opts.Key),
		controller.WithLogger(opts.Logger),
		controller.WithNow(opts.Now),
	)
	if err := m.ctrl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}

	return m, nil
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForReadout(m.readout))
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MsgTick:
		return m, waitForReadout(m.readout)
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	var cmd tea.Cmd
	m.Note, cmd = m.Note.Update(msg)
	return m, cmd
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.Release()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		m.Err = m.ctrl.Toggle()
		return m, nil
	case key.Matches(msg, m.keys.Clear):
		m.Err = m.ctrl.Clear()
		return m, nil
	}

	var cmd tea.Cmd
	m.Note, cmd = m.Note.Update(msg)
	return m, cmd
}

func (m *Model) View() string {
	return m.mainView()
}

// Recording reports whether a session is in progress.
func (m *Model) Recording() bool {
	return m.ctrl.Recording()
}

// Stored returns the controller's list.
func (m *Model) Stored() []record.Record {
	return m.ctrl.Records()
}

// Close discards a running session so the clock goroutine exits.
func (m *Model) Close() error {
	m.ctrl.Release()
	return nil
}

func (m *Model) SetFace(f button.Face) {
	m.Face = f
}

func (m *Model) AppendRecord(text string) {
	m.Records = append(m.Records, text)
}

func (m *Model) ClearRecords() {
	m.Records = nil
}

func (m *Model) Input() string {
	return m.Note.Value()
}

func (m *Model) ClearInput() {
	m.Note.SetValue("")
}
