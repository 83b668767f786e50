package trigger

import (
	"context"
	"sync"
	"testing"
	"time"

	"go-trigger/midi"
)

// captureSink records everything sent to it.
type captureSink struct {
	mu     sync.Mutex
	events []midi.Event
}

func (c *captureSink) Send(e midi.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
	return nil
}

func (c *captureSink) Close() error { return nil }

func (c *captureSink) sent() []midi.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]midi.Event(nil), c.events...)
}

// stepSource replays a fixed sample script, holding the last value.
type stepSource struct {
	samples []bool
	i       int
}

func (s *stepSource) Sample() bool {
	if s.i < len(s.samples) {
		v := s.samples[s.i]
		s.i++
		return v
	}
	if len(s.samples) == 0 {
		return false
	}
	return s.samples[len(s.samples)-1]
}

func TestPollerTickTranslatesEdges(t *testing.T) {
	sink := &captureSink{}
	src := &stepSource{samples: []bool{false, true, true, false}}
	p := NewPoller([]Binding{{Channel: NewChannel("pad", 60, 1), Source: src}}, sink, time.Millisecond)

	for i := 0; i < 4; i++ {
		p.tick()
	}

	got := sink.sent()
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d: %v", len(got), got)
	}
	if got[0].Type != midi.NoteOn || got[1].Type != midi.NoteOff {
		t.Fatalf("expected on then off, got %v", got)
	}
}

func TestPollerSendsProgramsFirst(t *testing.T) {
	sink := &captureSink{}
	ch := NewChannel("perc", 35, 10)
	ch.Program = 19
	src := &stepSource{samples: []bool{true}}
	p := NewPoller([]Binding{{Channel: ch, Source: src}}, sink, time.Millisecond)

	p.sendPrograms()
	p.tick()

	got := sink.sent()
	if len(got) != 2 {
		t.Fatalf("expected program change + note on, got %v", got)
	}
	if got[0].Type != midi.ProgramChange || got[0].Note != 19 || got[0].Channel != 10 {
		t.Fatalf("first event should be the program change, got %v", got[0])
	}
	if got[1].Type != midi.NoteOn {
		t.Fatalf("second event should be the note on, got %v", got[1])
	}
}

func TestPollerEventsMirror(t *testing.T) {
	sink := &captureSink{}
	src := &stepSource{samples: []bool{true, false}}
	p := NewPoller([]Binding{{Channel: NewChannel("pad", 60, 1), Source: src}}, sink, time.Millisecond)

	p.tick()
	p.tick()

	select {
	case ev := <-p.Events():
		if ev.Type != midi.NoteOn {
			t.Fatalf("first mirrored event should be note on, got %v", ev)
		}
	default:
		t.Fatal("no event on the monitor channel")
	}
	select {
	case ev := <-p.Events():
		if ev.Type != midi.NoteOff {
			t.Fatalf("second mirrored event should be note off, got %v", ev)
		}
	default:
		t.Fatal("note off missing from the monitor channel")
	}
}

func TestPollerNilSink(t *testing.T) {
	src := &stepSource{samples: []bool{true}}
	p := NewPoller([]Binding{{Channel: NewChannel("pad", 60, 1), Source: src}}, nil, time.Millisecond)

	// Must not panic; events still reach the monitor channel
	p.tick()
	select {
	case ev := <-p.Events():
		if ev.Type != midi.NoteOn {
			t.Fatalf("got %v", ev)
		}
	default:
		t.Fatal("no mirrored event with nil sink")
	}
}

func TestPollerSetSink(t *testing.T) {
	first := &captureSink{}
	second := &captureSink{}
	src := &stepSource{samples: []bool{true, true, false}}
	p := NewPoller([]Binding{{Channel: NewChannel("pad", 60, 1), Source: src}}, first, time.Millisecond)

	p.tick() // note on -> first
	p.SetSink(second)
	p.tick() // held, nothing
	p.tick() // note off -> second

	if got := first.sent(); len(got) != 1 || got[0].Type != midi.NoteOn {
		t.Fatalf("first sink: %v", got)
	}
	if got := second.sent(); len(got) != 1 || got[0].Type != midi.NoteOff {
		t.Fatalf("second sink: %v", got)
	}
}

func TestPollerMultiChannelIteration(t *testing.T) {
	sink := &captureSink{}
	a := &stepSource{samples: []bool{true, false}}
	b := &stepSource{samples: []bool{false, false}}
	p := NewPoller([]Binding{
		{Channel: NewChannel("a", 60, 1), Source: a},
		{Channel: NewChannel("b", 35, 10), Source: b},
	}, sink, time.Millisecond)

	p.tick()
	p.tick()

	got := sink.sent()
	if len(got) != 2 {
		t.Fatalf("expected 2 events (all from a), got %v", got)
	}
	for _, ev := range got {
		if ev.Note != 60 || ev.Channel != 1 {
			t.Fatalf("channel b leaked an event: %v", ev)
		}
	}
	if p.Active(1) {
		t.Fatal("channel b should be idle")
	}
}

func TestPollerRunStopsOnCancel(t *testing.T) {
	sink := &captureSink{}
	src := &stepSource{samples: []bool{true}}
	p := NewPoller([]Binding{{Channel: NewChannel("pad", 60, 1), Source: src}}, sink, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	// Let it tick at least once, then cancel
	deadline := time.After(time.Second)
	for len(sink.sent()) == 0 {
		select {
		case <-deadline:
			t.Fatal("poller never ticked")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
