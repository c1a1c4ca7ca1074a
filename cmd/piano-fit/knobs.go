package main

import "github.com/cwbudde/waveguide-piano/piano"

// knobDef names one scalar of piano.Params the optimizer is allowed to
// move, together with the range it may move it across and the setter that
// writes a denormalized value back into a Params value.
type knobDef struct {
	Name  string
	Min   float64
	Max   float64
	Apply func(p *piano.Params, v float64)
}

// pianoKnobs is the fixed set of waveguide tunables the fitting tool
// searches over. Every dimension here is a field of piano.Params, so a
// winning candidate is always a valid preset on its own.
func pianoKnobs() []knobDef {
	return []knobDef{
		{"sympathetic_resonance", 1.0, 20.0, func(p *piano.Params, v float64) { p.SympatheticResonance = v }},
		{"volume", 0.5, 4.0, func(p *piano.Params, v float64) { p.Volume = v }},
		{"bridge_coefficient_bypass_min", 0.0, 0.3, func(p *piano.Params, v float64) { p.BridgeCoefficientBypassMin = v }},
		{"bridge_coefficient_bypass_max", 0.0, 0.3, func(p *piano.Params, v float64) { p.BridgeCoefficientBypassMax = v }},
		{"resonance_body", 0.0, 1.0, func(p *piano.Params, v float64) { p.ResonanceBody = v }},
		{"cutoff_bridge_min", 100.0, 4000.0, func(p *piano.Params, v float64) { p.CutoffBridgeMin = v }},
		{"cutoff_bridge_max", 4000.0, 24000.0, func(p *piano.Params, v float64) { p.CutoffBridgeMax = v }},
		{"cutoff_damper", 100.0, 4000.0, func(p *piano.Params, v float64) { p.CutoffDamper = v }},
		{"cutoff_finger", 100.0, 4000.0, func(p *piano.Params, v float64) { p.CutoffFinger = v }},
		{"coefficient_transition_finger_min", 1.0, 500.0, func(p *piano.Params, v float64) { p.CoefficientTransitionFingerMin = v }},
		{"coefficient_transition_finger_max", 500.0, 200000.0, func(p *piano.Params, v float64) { p.CoefficientTransitionFingerMax = v }},
		{"coefficient_transition_finger_note_off", 1.0, 200.0, func(p *piano.Params, v float64) { p.CoefficientTransitionFingerNoteOff = v }},
		{"coefficient_transition_damper", 1.0, 200.0, func(p *piano.Params, v float64) { p.CoefficientTransitionDamper = v }},
		{"hammer_strike_position_center", 0.05, 0.95, func(p *piano.Params, v float64) { p.HammerStrikePositionCenter = v }},
		{"hammer_strike_position_variation", 0.0, 0.3, func(p *piano.Params, v float64) { p.HammerStrikePositionVariation = v }},
	}
}

// bodyIRKnobs extends the search to the parameters of the synthetic body
// impulse response (irsynth.Config) when -synthesize-ir is set, instead of
// holding the base preset's body IR fixed.
func bodyIRKnobs() []irKnobDef {
	return []irKnobDef{
		{"ir_brightness", 0.2, 3.0, func(c *irSynthParams, v float64) { c.Brightness = v }},
		{"ir_density", 0.5, 4.0, func(c *irSynthParams, v float64) { c.Density = v }},
		{"ir_low_decay_s", 0.3, 4.0, func(c *irSynthParams, v float64) { c.LowDecayS = v }},
		{"ir_high_decay_s", 0.05, 1.5, func(c *irSynthParams, v float64) { c.HighDecayS = v }},
	}
}

type irSynthParams struct {
	Brightness float64
	Density    float64
	LowDecayS  float64
	HighDecayS float64
}

type irKnobDef struct {
	Name  string
	Min   float64
	Max   float64
	Apply func(c *irSynthParams, v float64)
}

// candidate is a point in the optimizer's normalized [0,1]^n search space.
type candidate struct {
	Vals []float64
}

func randomCandidate(dims int, uniform func() float64) candidate {
	vals := make([]float64, dims)
	for i := range vals {
		vals[i] = uniform()
	}
	return candidate{Vals: vals}
}

func lerp(t, lo, hi float64) float64 {
	return lo + t*(hi-lo)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// applyCandidate denormalizes cand against defs and writes every resulting
// value into a copy of base, returning the fully-resolved params.
func applyCandidate(base piano.Params, defs []knobDef, cand candidate) piano.Params {
	p := base
	for i, d := range defs {
		if i >= len(cand.Vals) {
			break
		}
		d.Apply(&p, lerp(clamp01(cand.Vals[i]), d.Min, d.Max))
	}
	return p
}

// applyIRCandidate denormalizes the IR-synthesis tail of cand (the
// dimensions past len(pianoDefs)) into an irSynthParams overlay on base.
func applyIRCandidate(base irSynthParams, defs []irKnobDef, cand candidate, offset int) irSynthParams {
	out := base
	for i, d := range defs {
		idx := offset + i
		if idx >= len(cand.Vals) {
			break
		}
		d.Apply(&out, lerp(clamp01(cand.Vals[idx]), d.Min, d.Max))
	}
	return out
}

func knobNames(defs []knobDef) []string {
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}
	return names
}
