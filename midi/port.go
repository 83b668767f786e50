package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// PortSink sends events to a real MIDI output port via rtmidi.
type PortSink struct {
	port drivers.Out
	send func(gomidi.Message) error
}

// OpenPort opens the named MIDI output port.
func OpenPort(portName string) (*PortSink, error) {
	for _, port := range gomidi.GetOutPorts() {
		if port.String() == portName {
			send, err := gomidi.SendTo(port)
			if err != nil {
				return nil, fmt.Errorf("open output %s: %w", portName, err)
			}
			return &PortSink{port: port, send: send}, nil
		}
	}
	return nil, fmt.Errorf("midi output %q not found", portName)
}

func (p *PortSink) Name() string {
	return p.port.String()
}

func (p *PortSink) Send(e Event) error {
	ch := e.Channel - 1 // gomidi counts channels 0-15
	switch e.Type {
	case NoteOn:
		return p.send(gomidi.NoteOn(ch, e.Note, e.Velocity))
	case NoteOff:
		return p.send(gomidi.NoteOff(ch, e.Note))
	case ProgramChange:
		return p.send(gomidi.ProgramChange(ch, e.Note))
	}
	return nil
}

func (p *PortSink) Close() error {
	return p.port.Close()
}
