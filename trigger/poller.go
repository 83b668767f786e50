package trigger

import (
	"context"
	"sync"
	"time"

	"go-trigger/debug"
	"go-trigger/midi"
)

// DefaultInterval is the poll cadence when the config doesn't set one.
// Anywhere in the 10-100ms range the hardware sketches use works; it only
// affects latency, never which events come out.
const DefaultInterval = 20 * time.Millisecond

// Binding pairs a configured channel with its sample source.
type Binding struct {
	Channel Channel
	Source  Source
}

// Poller drives the translator: one goroutine samples every binding at a
// fixed cadence and forwards each translated event to the sink. Bindings
// are sampled in order within a tick - order is irrelevant since each
// channel's state is independent.
type Poller struct {
	bindings []Binding
	tr       *Translator
	interval time.Duration

	sink midi.Sink
	mu   sync.RWMutex // guards sink and translator state

	// Mirror of sent events for the TUI (best-effort, drops when full)
	events chan midi.Event
}

// NewPoller creates a poller over the given bindings. A nil sink is fine -
// events still show on the monitor channel until a sink is attached.
func NewPoller(bindings []Binding, sink midi.Sink, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	channels := make([]Channel, len(bindings))
	for i, b := range bindings {
		channels[i] = b.Channel
	}
	return &Poller{
		bindings: bindings,
		tr:       NewTranslator(channels...),
		interval: interval,
		sink:     sink,
		events:   make(chan midi.Event, 64),
	}
}

// Events returns the monitor channel of sent events.
func (p *Poller) Events() <-chan midi.Event {
	return p.events
}

// Bindings returns the configured bindings.
func (p *Poller) Bindings() []Binding {
	return p.bindings
}

// Interval returns the poll cadence.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Active reports whether binding idx last sampled pressed.
func (p *Poller) Active(idx int) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.tr.Active(idx)
}

// SetSink swaps the output sink (used for port hot-plug).
func (p *Poller) SetSink(s midi.Sink) {
	p.mu.Lock()
	p.sink = s
	p.mu.Unlock()
}

// Run blocks polling until ctx is done.
func (p *Poller) Run(ctx context.Context) {
	p.sendPrograms()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick()
		}
	}
}

// sendPrograms pushes one program change per channel that selects an
// instrument, before any notes go out.
func (p *Poller) sendPrograms() {
	for _, b := range p.bindings {
		prog := b.Channel.Program
		if prog >= 0 && prog <= 127 {
			p.send(midi.NewProgramChange(b.Channel.MIDIChannel, uint8(prog)))
		}
	}
}

// tick samples every binding once and sends whatever edges produced.
func (p *Poller) tick() {
	// Translate under the lock, send after - sinks can be slow
	var out []midi.Event
	p.mu.Lock()
	for i, b := range p.bindings {
		sample := b.Source.Sample()
		if ev, ok := p.tr.Poll(i, sample); ok {
			out = append(out, ev)
		}
	}
	p.mu.Unlock()

	debug.LogEvery(500, "poll", "tick, %d bindings", len(p.bindings))

	for _, ev := range out {
		p.send(ev)
	}
}

func (p *Poller) send(ev midi.Event) {
	p.mu.RLock()
	sink := p.sink
	p.mu.RUnlock()

	if sink != nil {
		if err := sink.Send(ev); err != nil {
			// Keep polling; a wedged sink shouldn't eat edges
			debug.Log("sink", "send %s failed: %v", ev, err)
		}
	}

	select {
	case p.events <- ev:
	default:
		// Monitor fell behind, drop
	}
}
