package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-trigger/debug"
	"go-trigger/midi"
	"go-trigger/theme"
	"go-trigger/trigger"
)

// How many sent events the log pane keeps
const eventLogLen = 8

type Model struct {
	Poller  *trigger.Poller
	Watcher *midi.PortWatcher // nil when no output port is configured
	Theme   *theme.Theme

	sims     []*trigger.SimSource // index-aligned with bindings, nil for non-sim
	labels   []string             // source kind per binding ("sim", "note", ...)
	baseSink midi.Multi           // static sinks (serial etc.)
	portSink *midi.PortSink       // attached on hot-plug
	portName string

	recent   []midi.Event // newest first
	quitting bool
}

type EventMsg midi.Event

type PortEventMsg midi.PortEvent

func NewModel(poller *trigger.Poller, watcher *midi.PortWatcher, th *theme.Theme,
	sims []*trigger.SimSource, labels []string, baseSink midi.Multi, portName string) Model {
	return Model{
		Poller:   poller,
		Watcher:  watcher,
		Theme:    th,
		sims:     sims,
		labels:   labels,
		baseSink: baseSink,
		portName: portName,
	}
}

func ListenForEvents(poller *trigger.Poller) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-poller.Events()
		if !ok {
			return nil
		}
		return EventMsg(ev)
	}
}

func ListenForPorts(watcher *midi.PortWatcher) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-watcher.Events()
		if !ok {
			return nil
		}
		return PortEventMsg(ev)
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{ListenForEvents(m.Poller)}
	if m.Watcher != nil {
		cmds = append(cmds, ListenForPorts(m.Watcher))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			idx := int(msg.String()[0] - '1')
			if idx < len(m.sims) && m.sims[idx] != nil {
				m.sims[idx].Toggle()
			}
		}

	case EventMsg:
		m.recent = append([]midi.Event{midi.Event(msg)}, m.recent...)
		if len(m.recent) > eventLogLen {
			m.recent = m.recent[:eventLogLen]
		}
		return m, ListenForEvents(m.Poller)

	case PortEventMsg:
		event := midi.PortEvent(msg)
		if event.Type == midi.PortConnected {
			ps, err := midi.OpenPort(event.Name)
			if err != nil {
				debug.Log("port", "open %s failed: %v", event.Name, err)
			} else {
				m.portSink = ps
				sink := append(append(midi.Multi{}, m.baseSink...), ps)
				m.Poller.SetSink(sink)
			}
		} else if event.Type == midi.PortDisconnected {
			if m.portSink != nil {
				m.portSink.Close()
				m.portSink = nil
			}
			m.Poller.SetSink(m.baseSink)
		}
		return m, ListenForPorts(m.Watcher)
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Styles
	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	activeStyle := lipgloss.NewStyle().Foreground(m.Theme.Active())
	okStyle := lipgloss.NewStyle().Foreground(m.Theme.Success())
	warnStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())

	// Header with sink status
	out := "no output"
	if len(m.baseSink) > 0 {
		out = "serial"
	}
	outStyle := warnStyle
	if m.portSink != nil {
		if out == "serial" {
			out += "+"
		} else {
			out = ""
		}
		out += m.portName
		outStyle = okStyle
	}
	header := headerStyle.Render(fmt.Sprintf("go-trigger  poll:%s  ", m.Poller.Interval())) +
		outStyle.Render("out:"+out)

	// One row per channel
	var rows strings.Builder
	for i, b := range m.Poller.Bindings() {
		sym := string(m.Theme.Symbols.Released)
		style := dimStyle
		if m.Poller.Active(i) {
			sym = string(m.Theme.Symbols.Pressed)
			style = activeStyle
		}
		label := "ext"
		if i < len(m.labels) {
			label = m.labels[i]
		}
		rows.WriteString(style.Render(fmt.Sprintf(" %d %s %-12s ch%02d n%03d %s",
			i+1, sym, b.Channel.Name, b.Channel.MIDIChannel, b.Channel.Note, label)))
		rows.WriteString("\n")
	}

	// Event log, newest first
	var log strings.Builder
	for _, ev := range m.recent {
		edge := string(m.Theme.Symbols.RiseEdge)
		if ev.Type == midi.NoteOff {
			edge = string(m.Theme.Symbols.FallEdge)
		}
		log.WriteString(dimStyle.Render(fmt.Sprintf("   %s %s  % x", edge, ev, ev.Encode())))
		log.WriteString("\n")
	}

	help := dimStyle.Render("1-9:toggle button  q:quit")

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(header)
	b.WriteString("\n\n")
	b.WriteString(rows.String())
	b.WriteString("\n")
	b.WriteString(log.String())
	b.WriteString("\n")
	b.WriteString(help)

	return b.String()
}
