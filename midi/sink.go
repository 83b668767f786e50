package midi

// Sink receives translated events. Implementations choose their own
// encoding - the rest of the program never looks inside.
type Sink interface {
	Send(Event) error
	Close() error
}

// Multi fans each event out to several sinks (e.g. serial + port).
// Send tries every sink and returns the first error seen.
type Multi []Sink

func (m Multi) Send(e Event) error {
	var first error
	for _, s := range m {
		if err := s.Send(e); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m Multi) Close() error {
	var first error
	for _, s := range m {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
