package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"go-trigger/config"
	"go-trigger/debug"
	"go-trigger/midi"
	"go-trigger/theme"
	"go-trigger/trigger"
	"go-trigger/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("config: %v\n", err)
		os.Exit(1)
	}

	if os.Getenv("GO_TRIGGER_DEBUG") != "" {
		debug.Enable()
		defer debug.Disable()
	}

	palette := theme.DefaultPalette()
	if cfg.UI.Palette != "" {
		if p, err := theme.LoadGPL(cfg.UI.Palette); err == nil {
			palette = p
		}
	}
	th := theme.New(palette)

	bindings, sims, labels, err := buildBindings(cfg)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// Static sinks open now; the port sink is attached by the watcher once
	// the output port shows up
	var baseSink midi.Multi
	if cfg.Output.SerialPath != "" {
		ss, err := midi.OpenSerial(cfg.Output.SerialPath)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		baseSink = append(baseSink, ss)
		defer ss.Close()
	}

	poller := trigger.NewPoller(bindings, baseSink, cfg.Interval())

	var watcher *midi.PortWatcher
	if cfg.Output.PortName != "" {
		watcher = midi.NewPortWatcher(cfg.Output.PortName)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go poller.Run(ctx)
	if watcher != nil {
		go watcher.Run(ctx)
	}

	m := tui.NewModel(poller, watcher, th, sims, labels, baseSink, cfg.Output.PortName)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// buildBindings turns channel configs into poller bindings, plus the sim
// sources the TUI can press (index-aligned, nil where the source is real).
func buildBindings(cfg *config.Config) ([]trigger.Binding, []*trigger.SimSource, []string, error) {
	var bindings []trigger.Binding
	var sims []*trigger.SimSource
	var labels []string

	for _, cc := range cfg.Channels {
		ch := trigger.NewChannel(cc.Name, clamp7(cc.Note), uint8(clampRange(cc.Channel, 1, 16)))
		if cc.OnVelocity > 0 {
			ch.OnVelocity = clamp7(cc.OnVelocity)
		}
		if cc.OffVelocity > 0 {
			ch.OffVelocity = clamp7(cc.OffVelocity)
		}
		if cc.Program != nil {
			ch.Program = clampRange(*cc.Program, 0, 127)
		}

		var src trigger.Source
		label := string(cc.Source.Type)
		switch cc.Source.Type {
		case config.SourceNote:
			gate, err := trigger.OpenNoteGate(cc.Source.PortName, clamp7(cc.Source.Note))
			if err != nil {
				return nil, nil, nil, fmt.Errorf("channel %s: %w", cc.Name, err)
			}
			src = gate
			sims = append(sims, nil)

		case config.SourceDemo:
			period := 3 * time.Second
			if cc.Source.Period != "" {
				if d, err := time.ParseDuration(cc.Source.Period); err == nil && d > 0 {
					period = d
				}
			}
			threshold := cc.Source.Threshold
			if threshold <= 0 {
				threshold = trigger.DefaultThreshold
			}
			src = trigger.AnalogSource{
				Read:      trigger.DemoKnock(period, 100*time.Millisecond, 100, 900),
				Threshold: threshold,
			}
			sims = append(sims, nil)

		default: // sim
			s := trigger.NewSimSource()
			src = s
			sims = append(sims, s)
			label = "sim"
		}

		labels = append(labels, label)
		bindings = append(bindings, trigger.Binding{Channel: ch, Source: src})
	}

	return bindings, sims, labels, nil
}

func clamp7(v int) uint8 {
	return uint8(clampRange(v, 0, 127))
}

func clampRange(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
