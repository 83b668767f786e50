package midi

import (
	"fmt"
	"io"
	"os"
)

// SerialSink writes raw encoded MIDI bytes to a serial-style byte stream,
// the way the original hardware setups drive a sound module over UART.
// Line parameters (31250 baud, 8N1) are configured out of band, e.g. stty -
// this code only ever writes bytes.
type SerialSink struct {
	name string
	w    io.Writer
}

// NewSerialSink wraps an already-open byte stream.
func NewSerialSink(name string, w io.Writer) *SerialSink {
	return &SerialSink{name: name, w: w}
}

// OpenSerial opens a serial device file (e.g. /dev/ttyUSB0, /dev/midi1)
// for writing.
func OpenSerial(path string) (*SerialSink, error) {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", path, err)
	}
	return &SerialSink{name: path, w: f}, nil
}

func (s *SerialSink) Name() string {
	return s.name
}

func (s *SerialSink) Send(e Event) error {
	_, err := s.w.Write(e.Encode())
	return err
}

func (s *SerialSink) Close() error {
	if c, ok := s.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
