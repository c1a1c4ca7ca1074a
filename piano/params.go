package piano

// Params collects every tunable constant that the build-time defaults in
// constants.go can be overridden with at load time, via a preset file.
// Zero-value Params is meaningless on its own; always start from
// DefaultParams and layer overrides on top.
type Params struct {
	SympatheticResonance float64
	BendRange            float64
	Volume               float64

	BridgeCoefficientBypassMin float64
	BridgeCoefficientBypassMax float64
	ResonanceBody              float64

	CutoffDCBlocker float64
	CutoffBridgeMin float64
	CutoffBridgeMax float64
	CutoffDamper    float64
	CutoffFinger    float64

	CoefficientTransitionFingerInterpolationExponent float64
	CoefficientTransitionFingerMax                    float64
	CoefficientTransitionFingerMin                     float64
	CoefficientTransitionFingerNoteOff                 float64
	CoefficientTransitionDamper                        float64

	HammerStrikePositionCenter    float64
	HammerStrikePositionVariation float64

	BodyIRPath string
	Seed       int64
}

// DefaultParams returns the build-time constants as a Params value, ready
// to have a preset file's overrides applied on top.
func DefaultParams() Params {
	return Params{
		SympatheticResonance:       SympatheticResonance,
		BendRange:                  BendRange,
		Volume:                     Volume,
		BridgeCoefficientBypassMin: BridgeCoefficientBypassMin,
		BridgeCoefficientBypassMax: BridgeCoefficientBypassMax,
		ResonanceBody:              ResonanceBody,
		CutoffDCBlocker:            CutoffDCBlocker,
		CutoffBridgeMin:            CutoffBridgeMin,
		CutoffBridgeMax:            CutoffBridgeMax,
		CutoffDamper:               CutoffDamper,
		CutoffFinger:               CutoffFinger,
		CoefficientTransitionFingerInterpolationExponent: CoefficientTransitionFingerInterpolationExponent,
		CoefficientTransitionFingerMax:                    CoefficientTransitionFingerMax,
		CoefficientTransitionFingerMin:                     CoefficientTransitionFingerMin,
		CoefficientTransitionFingerNoteOff:                 CoefficientTransitionFingerNoteOff,
		CoefficientTransitionDamper:                        CoefficientTransitionDamper,
		HammerStrikePositionCenter:                         HammerStrikePositionCenter,
		HammerStrikePositionVariation:                       HammerStrikePositionVariation,
		Seed: 1,
	}
}

// NewSynthFromParams builds a synth whose voices honor every override in
// p instead of the package's build-time constants.
func NewSynthFromParams(rate float64, p Params) *Synth {
	s := &Synth{
		rate:                 rate,
		resonator:            NewResonator(),
		rng:                  newRNG(p.Seed),
		sustain:              1,
		sympatheticResonance: p.SympatheticResonance,
		volume:               p.Volume,
		bendRange:            p.BendRange,
	}
	s.resonator.body = p.ResonanceBody
	for note := VoiceMin; note < VoiceMax; note++ {
		v := NewVoice(note, rate, s.rng)
		v.applyParams(p)
		s.voices[note] = v
	}
	return s
}

// applyParams overrides a voice's per-construction derived values (bridge
// bypass/cutoff range, hammer strike jitter) and re-derives everything
// that depends on them.
func (v *Voice) applyParams(p Params) {
	v.hammerCenter = p.HammerStrikePositionCenter
	v.hammerVariation = p.HammerStrikePositionVariation
	v.coefficientTransitionFinger = p.CoefficientTransitionFingerNoteOff
	v.transitionFingerNoteOff = p.CoefficientTransitionFingerNoteOff
	v.cutoffDCBlocker = p.CutoffDCBlocker
	v.cutoffDamper = p.CutoffDamper
	v.cutoffFinger = p.CutoffFinger
	v.coefficientTransitionDamper = p.CoefficientTransitionDamper
	v.bridgeBypassMin = p.BridgeCoefficientBypassMin
	v.bridgeBypassMax = p.BridgeCoefficientBypassMax
	v.cutoffBridgeMin = p.CutoffBridgeMin
	v.cutoffBridgeMax = p.CutoffBridgeMax
	v.interpExponent = p.CoefficientTransitionFingerInterpolationExponent
	v.transitionFingerMin = p.CoefficientTransitionFingerMin
	v.transitionFingerMax = p.CoefficientTransitionFingerMax
	v.deriveCoefficients()
}
