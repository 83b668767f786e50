package midi

import (
	"context"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// PortEvent is emitted when the configured output port appears/disappears
type PortEvent struct {
	Type PortEventType
	Name string
}

type PortEventType int

const (
	PortConnected PortEventType = iota
	PortDisconnected
)

// PortWatcher handles hot-plug detection of the configured MIDI output,
// so the bridge can attach its port sink when the interface shows up late
// and drop it cleanly when the cable goes away.
type PortWatcher struct {
	portName string
	present  bool
	events   chan PortEvent
	pollRate time.Duration
}

// NewPortWatcher watches for the named output port.
func NewPortWatcher(portName string) *PortWatcher {
	return &PortWatcher{
		portName: portName,
		events:   make(chan PortEvent, 8),
		pollRate: time.Second,
	}
}

// Events returns a channel of port connect/disconnect events
func (w *PortWatcher) Events() <-chan PortEvent {
	return w.events
}

// Run starts the polling loop (blocking - run in goroutine)
func (w *PortWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.pollRate)
	defer ticker.Stop()

	// Initial scan
	w.scan()

	for {
		select {
		case <-ctx.Done():
			close(w.events)
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

func (w *PortWatcher) scan() {
	// List ports with timeout (CoreMIDI can hang)
	ch := make(chan []drivers.Out, 1)
	go func() {
		ch <- gomidi.GetOutPorts()
	}()

	var outPorts []drivers.Out
	select {
	case outPorts = <-ch:
	case <-time.After(3 * time.Second):
		// MIDI backend is hung - skip this scan
		return
	}

	found := false
	for _, port := range outPorts {
		if port.String() == w.portName {
			found = true
			break
		}
	}

	if found && !w.present {
		w.present = true
		w.events <- PortEvent{Type: PortConnected, Name: w.portName}
	} else if !found && w.present {
		w.present = false
		w.events <- PortEvent{Type: PortDisconnected, Name: w.portName}
	}
}
