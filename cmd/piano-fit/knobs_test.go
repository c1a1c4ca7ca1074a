package main

import (
	"math"
	"testing"

	"github.com/cwbudde/waveguide-piano/piano"
)

func TestApplyCandidateMapsNormalizedRange(t *testing.T) {
	defs := pianoKnobs()
	vals := make([]float64, len(defs))
	for i := range vals {
		vals[i] = 0.5
	}
	base := piano.DefaultParams()
	p := applyCandidate(base, defs, candidate{Vals: vals})

	for _, d := range defs {
		want := lerp(0.5, d.Min, d.Max)
		switch d.Name {
		case "volume":
			if math.Abs(p.Volume-want) > 1e-9 {
				t.Fatalf("volume mismatch: got=%v want=%v", p.Volume, want)
			}
		case "sympathetic_resonance":
			if math.Abs(p.SympatheticResonance-want) > 1e-9 {
				t.Fatalf("sympathetic_resonance mismatch: got=%v want=%v", p.SympatheticResonance, want)
			}
		}
	}
}

func TestApplyCandidateClampsOutOfRangeInputs(t *testing.T) {
	defs := pianoKnobs()
	vals := make([]float64, len(defs))
	for i := range vals {
		vals[i] = 5.0 // out of [0,1], must clamp to 1.0 before lerp
	}
	base := piano.DefaultParams()
	p := applyCandidate(base, defs, candidate{Vals: vals})

	for _, d := range defs {
		if d.Name == "volume" && p.Volume != d.Max {
			t.Fatalf("expected volume clamped to max %v, got %v", d.Max, p.Volume)
		}
	}
}

func TestApplyIRCandidateOffsetsPastPianoDims(t *testing.T) {
	pianoDefs := pianoKnobs()
	irDefs := bodyIRKnobs()

	vals := make([]float64, len(pianoDefs)+len(irDefs))
	for i := range vals {
		vals[i] = 0.0
	}
	vals[len(pianoDefs)] = 1.0 // first IR dim at max

	base := irSynthParams{Brightness: 1.0, Density: 2.0, LowDecayS: 2.4, HighDecayS: 0.35}
	out := applyIRCandidate(base, irDefs, candidate{Vals: vals}, len(pianoDefs))

	if out.Brightness != irDefs[0].Max {
		t.Fatalf("expected brightness at max %v, got %v", irDefs[0].Max, out.Brightness)
	}
}

func TestKnobNamesMatchDefs(t *testing.T) {
	defs := pianoKnobs()
	names := knobNames(defs)
	if len(names) != len(defs) {
		t.Fatalf("expected %d names, got %d", len(defs), len(names))
	}
	for i, d := range defs {
		if names[i] != d.Name {
			t.Fatalf("name mismatch at %d: got=%q want=%q", i, names[i], d.Name)
		}
	}
}

func TestRandomCandidateIsWithinUnitRange(t *testing.T) {
	seqIdx := 0
	seq := []float64{0.1, 0.9, 0.0, 1.0}
	uniform := func() float64 {
		v := seq[seqIdx%len(seq)]
		seqIdx++
		return v
	}
	c := randomCandidate(4, uniform)
	for _, v := range c.Vals {
		if v < 0 || v > 1 {
			t.Fatalf("candidate value out of range: %v", v)
		}
	}
}
