// Package midi adapts an external MIDI controller into chordium input: note
// on/off events become pointer down/up streams for the gesture classifier or
// direct chord triggers.
package midi

import (
	"errors"
	"fmt"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
	"go.uber.org/zap"
)

type (
	// Event is a note being pressed or released on the controller.
	Event struct {
		On       bool
		Note     uint8
		Velocity uint8
	}

	// Context owns the rtmidi driver and at most one open input device.
	Context struct {
		driver *rtmididrv.Driver
		in     drivers.In
		events chan Event
		log    *zap.Logger
	}
)

// NewContext opens the rtmidi driver. If no driver is available the context
// still works, it just never delivers events; there is not much we can do
// about a missing backend at this level.
func NewContext(log *zap.Logger) *Context {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Context{events: make(chan Event, 1024), log: log}
	var err error
	c.driver, err = rtmididrv.New()
	if err != nil {
		c.log.Warn("no MIDI driver available", zap.Error(err))
		c.driver = nil
	}
	return c
}

// InputDevices lists the names of the available MIDI inputs.
func (c *Context) InputDevices() []string {
	if c.driver == nil {
		return nil
	}
	ins, err := c.driver.Ins()
	if err != nil {
		return nil
	}
	names := make([]string, len(ins))
	for i, in := range ins {
		names[i] = in.String()
	}
	return names
}

// TryToOpenBy opens the first input whose name starts with namePrefix, or
// just the first input if takeFirst is set. The previously open input, if
// any, is closed first.
func (c *Context) TryToOpenBy(namePrefix string, takeFirst bool) error {
	if c.driver == nil {
		return errors.New("no driver available")
	}
	ins, err := c.driver.Ins()
	if err != nil {
		return fmt.Errorf("cannot list MIDI inputs: %w", err)
	}
	for _, in := range ins {
		if takeFirst || strings.HasPrefix(in.String(), namePrefix) {
			return c.open(in)
		}
	}
	return fmt.Errorf("no MIDI input matching %q", namePrefix)
}

func (c *Context) open(in drivers.In) error {
	if c.in != nil && c.in.IsOpen() {
		c.in.Close()
	}
	c.in = in
	if err := in.Open(); err != nil {
		c.in = nil
		return fmt.Errorf("opening MIDI input failed: %w", err)
	}
	if _, err := midi.ListenTo(in, c.handleMessage); err != nil {
		in.Close()
		c.in = nil
		return fmt.Errorf("listening to MIDI input failed: %w", err)
	}
	c.log.Info("MIDI input open", zap.String("device", in.String()))
	return nil
}

// Events returns the stream of note events of the open input.
func (c *Context) Events() <-chan Event {
	return c.events
}

func (c *Context) handleMessage(msg midi.Message, timestampms int32) {
	var channel, key, velocity uint8
	var e Event
	switch {
	case msg.GetNoteOn(&channel, &key, &velocity):
		e = Event{On: true, Note: key, Velocity: velocity}
	case msg.GetNoteOff(&channel, &key, &velocity):
		e = Event{On: false, Note: key}
	default:
		return
	}
	select {
	case c.events <- e: // if the channel is full, just drop the event
	default:
	}
}

// Close closes the open input and the driver.
func (c *Context) Close() {
	if c.driver == nil {
		return
	}
	if c.in != nil && c.in.IsOpen() {
		c.in.Close()
	}
	c.driver.Close()
}
