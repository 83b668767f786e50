package trigger

import "go-trigger/midi"

// Translator turns raw "is the sensor active right now?" samples into
// discrete note on/off events: a rising edge plays the channel's note, a
// falling edge releases it, and nothing repeats while the sample holds
// steady. One boolean flag per channel is the whole state machine - the
// flag the hardware sketches keep per button, made generic.
type Translator struct {
	channels []Channel
	active   []bool
}

// NewTranslator creates a translator for the given channels, all idle.
func NewTranslator(channels ...Channel) *Translator {
	return &Translator{
		channels: channels,
		active:   make([]bool, len(channels)),
	}
}

// Poll feeds one already-thresholded sample for channel idx and reports
// the event it produced, if any. Only a state transition emits:
//
//	idle + active sample   -> note on, remember pressed
//	pressed + idle sample  -> note off, remember idle
//	anything else          -> nothing
func (t *Translator) Poll(idx int, rawSample bool) (midi.Event, bool) {
	if idx < 0 || idx >= len(t.channels) {
		return midi.Event{}, false
	}
	ch := t.channels[idx]
	switch {
	case rawSample && !t.active[idx]:
		t.active[idx] = true
		return midi.NewNoteOn(ch.MIDIChannel, ch.Note, ch.OnVelocity), true
	case !rawSample && t.active[idx]:
		t.active[idx] = false
		return midi.NewNoteOff(ch.MIDIChannel, ch.Note, ch.OffVelocity), true
	}
	return midi.Event{}, false
}

// Active reports whether channel idx last sampled pressed.
func (t *Translator) Active(idx int) bool {
	if idx < 0 || idx >= len(t.active) {
		return false
	}
	return t.active[idx]
}

// Channels returns the configured channels.
func (t *Translator) Channels() []Channel {
	return t.channels
}
