package midi

import (
	"bytes"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		want []byte
	}{
		{
			name: "note on channel 10",
			ev:   NewNoteOn(10, 35, 127),
			want: []byte{0x99, 0x23, 0x7F},
		},
		{
			name: "note on channel 1",
			ev:   NewNoteOn(1, 60, 127),
			want: []byte{0x90, 0x3C, 0x7F},
		},
		{
			name: "note off channel 1",
			ev:   NewNoteOff(1, 60, 0),
			want: []byte{0x80, 0x3C, 0x00},
		},
		{
			name: "note off channel 16",
			ev:   NewNoteOff(16, 127, 0),
			want: []byte{0x8F, 0x7F, 0x00},
		},
		{
			name: "program change is two bytes",
			ev:   NewProgramChange(10, 19),
			want: []byte{0xC9, 0x13},
		},
		{
			name: "data bytes masked to 7 bits",
			ev:   Event{Type: NoteOn, Channel: 1, Note: 200, Velocity: 255},
			want: []byte{0x90, 0x48, 0x7F},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.ev.Encode()
			if !bytes.Equal(got, tt.want) {
				t.Fatalf("got % X, want % X", got, tt.want)
			}
		})
	}
}

func TestEventString(t *testing.T) {
	if s := NewNoteOn(10, 35, 127).String(); s != "on  ch10 n035 v127" {
		t.Fatalf("note on string: %q", s)
	}
	if s := NewNoteOff(1, 60, 0).String(); s != "off ch01 n060 v000" {
		t.Fatalf("note off string: %q", s)
	}
	if s := NewProgramChange(2, 19).String(); s != "pgm ch02 p019" {
		t.Fatalf("program change string: %q", s)
	}
}
