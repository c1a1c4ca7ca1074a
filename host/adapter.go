// Package host adapts the core synth engine to a live audio/MIDI
// transport. The engine itself knows nothing about drivers; it only
// exposes on_rate_change/on_audio/on_shutdown-shaped hooks, mirroring the
// callback-driven transport of the original hardware plugin this system
// was modeled after.
package host

import "github.com/cwbudde/waveguide-piano/piano"

// Event is a MIDI message carrying the sample offset within the block it
// must apply at.
type Event = piano.MIDIEvent

// Adapter wraps a *piano.Synth with the three lifecycle hooks a host
// audio framework drives it through.
type Adapter struct {
	synth *piano.Synth
	rate  float64
}

// NewAdapter wraps an already-constructed synth.
func NewAdapter(s *piano.Synth) *Adapter {
	return &Adapter{synth: s}
}

// OnRateChange is invoked before any audio callback, and again whenever
// the host's sample rate changes.
func (a *Adapter) OnRateChange(rate float64) {
	a.rate = rate
	a.synth.SetRate(rate)
}

// OnAudio produces frames samples into out, interleaving MIDI event
// application at each event's sample-accurate offset. events must be
// ordered by Offset.
func (a *Adapter) OnAudio(frames int, events []Event, out []float64) {
	if len(out) < frames {
		frames = len(out)
	}
	cursor := 0
	for _, ev := range events {
		if ev.Offset < cursor || ev.Offset > frames {
			continue
		}
		a.synth.ProcessBlock(out[cursor:ev.Offset])
		a.synth.ApplyMIDI(ev)
		cursor = ev.Offset
	}
	a.synth.ProcessBlock(out[cursor:frames])
}

// OnShutdown releases adapter-held resources. The engine itself holds no
// OS resources; shutdown is a no-op hook kept for symmetry with the
// three-callback contract backends are expected to implement.
func (a *Adapter) OnShutdown() {}
