// Package controller owns the record list. It turns record/stop activations
// into formatted records, keeps the list view in step with the list, and
// writes the whole list to the store after every change.
package controller

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"stopwatch_tui/internal/button"
	"stopwatch_tui/internal/clock"
	"stopwatch_tui/internal/record"
	"stopwatch_tui/internal/store"
)

var ErrNotInitialized = errors.New("controller not initialized")

// View is the display surface the controller drives.
type View interface {
	button.Surface
	// AppendRecord adds one element to the end of the record list region.
	AppendRecord(text string)
	// ClearRecords empties the record list region.
	ClearRecords()
	// Input returns the current free-text annotation.
	Input() string
	ClearInput()
}

type Controller struct {
	store   store.Store
	key     string
	view    View
	clock   *clock.TimeClock
	now     func() time.Time
	logger  *log.Logger
	records []record.Record
	button  *button.RecordButton
}

type Option func(*Controller)

// WithKey sets the store key holding the list. Defaults to record.Key.
func WithKey(key string) Option {
	return func(c *Controller) {
		if key != "" {
			c.key = key
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithNow replaces the clock used for record timestamps.
func WithNow(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

func New(st store.Store, view View, tc *clock.TimeClock, opts ...Option) *Controller {
	c := &Controller{
		store:   st,
		key:     record.Key,
		view:    view,
		clock:   tc,
		now:     time.Now,
		logger:  log.Default(),
		records: []record.Record{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init loads the stored list, renders it and creates the record button.
// Absent, null and unparsable stored values all start an empty list; only a
// failing store is an error.
func (c *Controller) Init() error {
	value, ok, err := c.store.GetItem(c.key)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	records, err := record.Decode(value)
	if err != nil {
		c.logger.Warn("stored records unreadable, starting empty", "key", c.key, "err", err)
		records = []record.Record{}
	}
	c.records = records
	c.logger.Debug("loaded records", "key", c.key, "present", ok, "count", len(records))

	c.Load()

	c.button = button.NewRecordButton(c.view, c.clock, c.Record, c.EndRecord)
	c.button.Prepare()
	return nil
}

// Load redraws the list view from the in-memory list.
func (c *Controller) Load() {
	c.view.ClearRecords()
	for _, r := range c.records {
		c.view.AppendRecord(string(r))
	}
}

// Record appends a start record.
func (c *Controller) Record() error {
	return c.add(record.Start(c.now(), c.view.Input()))
}

// EndRecord appends a stop record for a session of elapsed seconds.
func (c *Controller) EndRecord(elapsed int) error {
	return c.add(record.Stop(c.now(), elapsed, c.view.Input()))
}

func (c *Controller) add(r record.Record) error {
	c.records = append(c.records, r)
	c.view.AppendRecord(string(r))
	c.logger.Info("record added", "record", string(r), "count", len(c.records))
	return c.persist()
}

func (c *Controller) persist() error {
	value, err := record.Encode(c.records)
	if err != nil {
		return err
	}
	if err := c.store.SetItem(c.key, value); err != nil {
		c.logger.Error("failed to save records", "key", c.key, "err", err)
		return fmt.Errorf("failed to save records: %w", err)
	}
	return nil
}

// Clear drops every record. A running session is discarded without a stop
// record. The store keeps the key with the null marker.
func (c *Controller) Clear() error {
	if c.button != nil {
		c.button.Release()
	}
	c.view.ClearRecords()
	c.view.ClearInput()
	c.records = []record.Record{}

	c.logger.Info("records cleared", "key", c.key)
	if err := c.store.SetItem(c.key, record.Null); err != nil {
		c.logger.Error("failed to clear records", "key", c.key, "err", err)
		return fmt.Errorf("failed to clear records: %w", err)
	}
	return nil
}

// Toggle activates the record/stop control.
func (c *Controller) Toggle() error {
	if c.button == nil {
		return ErrNotInitialized
	}
	return c.button.Activate()
}

// Recording reports whether a session is in progress.
func (c *Controller) Recording() bool {
	return c.button != nil && c.button.Recording()
}

// Release ends a running session without recording it, stopping the clock.
func (c *Controller) Release() {
	if c.button != nil && c.button.Recording() {
		c.button.Release()
	}
}

// Records returns a copy of the list.
func (c *Controller) Records() []record.Record {
	out := make([]record.Record, len(c.records))
	copy(out, c.records)
	return out
}
