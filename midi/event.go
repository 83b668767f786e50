package midi

import "fmt"

// MIDI status bytes (high nibble - the low nibble carries channel-1)
const (
	NoteOn        uint8 = 0x90
	NoteOff       uint8 = 0x80
	ProgramChange uint8 = 0xC0
)

// Event is one outgoing MIDI message.
// Channel uses the musician's 1-16 numbering; the wire form carries
// channel-1 in the status low nibble.
type Event struct {
	Type     uint8 // NoteOn, NoteOff, ProgramChange
	Channel  uint8 // 1-16
	Note     uint8 // note number, or program number for ProgramChange
	Velocity uint8 // 0-127 (unused for ProgramChange)
}

// NewNoteOn builds a note-on event.
func NewNoteOn(channel, note, velocity uint8) Event {
	return Event{Type: NoteOn, Channel: channel, Note: note, Velocity: velocity}
}

// NewNoteOff builds a note-off event.
func NewNoteOff(channel, note, velocity uint8) Event {
	return Event{Type: NoteOff, Channel: channel, Note: note, Velocity: velocity}
}

// NewProgramChange builds a program (instrument) change event.
func NewProgramChange(channel, program uint8) Event {
	return Event{Type: ProgramChange, Channel: channel, Note: program}
}

// Encode returns the raw wire bytes: 3 for note events, 2 for a program
// change. Data bytes are masked to 7 bits.
func (e Event) Encode() []byte {
	status := e.Type | ((e.Channel - 1) & 0x0F)
	if e.Type == ProgramChange {
		return []byte{status, e.Note & 0x7F}
	}
	return []byte{status, e.Note & 0x7F, e.Velocity & 0x7F}
}

func (e Event) String() string {
	switch e.Type {
	case NoteOn:
		return fmt.Sprintf("on  ch%02d n%03d v%03d", e.Channel, e.Note, e.Velocity)
	case NoteOff:
		return fmt.Sprintf("off ch%02d n%03d v%03d", e.Channel, e.Note, e.Velocity)
	case ProgramChange:
		return fmt.Sprintf("pgm ch%02d p%03d", e.Channel, e.Note)
	}
	return fmt.Sprintf("?%02x ch%02d", e.Type, e.Channel)
}
