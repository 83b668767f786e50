package trigger

// Channel binds one physical input to its voice: the note and MIDI channel
// it plays, plus fixed on/off velocities. Immutable once configured.
type Channel struct {
	Name        string
	Note        uint8 // 0-127
	MIDIChannel uint8 // 1-16
	OnVelocity  uint8 // sent with note on, default 127
	OffVelocity uint8 // sent with note off, normally 0
	Program     int   // program change sent at startup, -1 = none
}

// NewChannel creates a channel with the default velocities and no program.
func NewChannel(name string, note, midiChannel uint8) Channel {
	return Channel{
		Name:        name,
		Note:        note,
		MIDIChannel: midiChannel,
		OnVelocity:  127,
		OffVelocity: 0,
		Program:     -1,
	}
}
