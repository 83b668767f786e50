package trigger

import (
	"fmt"
	"sync/atomic"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// NoteGate uses a note held on an external MIDI input as the button: the
// gate is active from note on to note off. Lets any MIDI keyboard stand in
// for a sensor.
type NoteGate struct {
	note uint8
	held atomic.Bool
	stop func()
}

// OpenNoteGate listens on the named input port for the given note.
func OpenNoteGate(portName string, note uint8) (*NoteGate, error) {
	var inPort drivers.In
	for _, port := range gomidi.GetInPorts() {
		if port.String() == portName {
			inPort = port
			break
		}
	}
	if inPort == nil {
		return nil, fmt.Errorf("midi input %q not found", portName)
	}

	g := &NoteGate{note: note}
	stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
		var channel, key, velocity uint8
		if msg.GetNoteOn(&channel, &key, &velocity) && key == g.note {
			g.held.Store(velocity > 0) // velocity 0 is note off
		} else if msg.GetNoteOff(&channel, &key, &velocity) && key == g.note {
			g.held.Store(false)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	g.stop = stop

	return g, nil
}

func (g *NoteGate) Sample() bool {
	return g.held.Load()
}

func (g *NoteGate) Close() error {
	if g.stop != nil {
		g.stop()
	}
	return nil
}
