package trigger

import (
	"sync/atomic"
	"time"
)

// Source delivers already-thresholded binary samples. For analog inputs the
// source owns the threshold comparison; the translator only ever sees bools.
type Source interface {
	Sample() bool
}

// SimSource is a software button - the desktop stand-in for a physical
// switch, toggled from the TUI.
type SimSource struct {
	pressed atomic.Bool
}

func NewSimSource() *SimSource {
	return &SimSource{}
}

func (s *SimSource) Set(pressed bool) {
	s.pressed.Store(pressed)
}

// Toggle flips the button and returns the new state.
func (s *SimSource) Toggle() bool {
	for {
		old := s.pressed.Load()
		if s.pressed.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

func (s *SimSource) Sample() bool {
	return s.pressed.Load()
}

// DefaultThreshold matches the knock-sensor setups this tool grew out of
// (10-bit ADC, trigger on the upper half).
const DefaultThreshold = 500

// AnalogSource thresholds a raw reading: active while reading > threshold.
type AnalogSource struct {
	Read      func() int
	Threshold int
}

func (a AnalogSource) Sample() bool {
	return a.Read() > a.Threshold
}

// DemoKnock returns a synthetic knock-sensor reading: quiet, with a spike
// above peak for width out of every period. Useful for demos and soak
// testing without hardware.
func DemoKnock(period, width time.Duration, quiet, peak int) func() int {
	start := time.Now()
	return func() int {
		if time.Since(start)%period < width {
			return peak
		}
		return quiet
	}
}
