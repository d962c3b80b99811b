package button

import "stopwatch_tui/internal/clock"

// Button is an activatable control with start and stop hooks.
type Button interface {
	// Prepare applies the face for the control's resting mode.
	Prepare()
	// Activate handles one user activation.
	Activate() error
	OnStart() error
	OnStop() error
}

type Style int

const (
	StyleReady Style = iota
	StyleRecording
)

// Face is what a Surface draws for the control.
type Face struct {
	Label string
	Style Style
}

var (
	ReadyFace     = Face{Label: "기록하기", Style: StyleReady}
	RecordingFace = Face{Label: "중지", Style: StyleRecording}
)

// Surface renders a button face.
type Surface interface {
	SetFace(Face)
}

// RecordButton toggles between ready and recording, driving a TimeClock.
type RecordButton struct {
	surface   Surface
	clock     *clock.TimeClock
	onStart   func() error
	onStop    func(elapsed int) error
	recording bool
}

var _ Button = (*RecordButton)(nil)

// NewRecordButton wires the control. onStart runs on the start transition,
// onStop receives the elapsed seconds on the stop transition. Either may be
// nil.
func NewRecordButton(surface Surface, c *clock.TimeClock, onStart func() error, onStop func(elapsed int) error) *RecordButton {
	return &RecordButton{
		surface: surface,
		clock:   c,
		onStart: onStart,
		onStop:  onStop,
	}
}

func (b *RecordButton) Prepare() {
	b.setFace(ReadyFace)
}

// Activate resets the face to ready before toggling, so a start transition
// briefly shows the ready label.
func (b *RecordButton) Activate() error {
	b.Prepare()
	if !b.recording {
		return b.OnStart()
	}
	return b.OnStop()
}

func (b *RecordButton) OnStart() error {
	var err error
	if b.onStart != nil {
		err = b.onStart()
	}
	b.clock.Start()
	b.setFace(RecordingFace)
	b.recording = true
	return err
}

func (b *RecordButton) OnStop() error {
	elapsed := b.release()
	if b.onStop != nil {
		return b.onStop(elapsed)
	}
	return nil
}

// Release forces the ready state and stops the clock without reporting the
// elapsed time.
func (b *RecordButton) Release() {
	b.release()
}

func (b *RecordButton) release() int {
	b.Prepare()
	elapsed := b.clock.Stop()
	b.recording = false
	return elapsed
}

func (b *RecordButton) Recording() bool {
	return b.recording
}

func (b *RecordButton) setFace(f Face) {
	if b.surface != nil {
		b.surface.SetFace(f)
	}
}
