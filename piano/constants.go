package piano

// Tunable build-time constants for the waveguide engine.
const (
	NVoices    = 128
	VoiceMin   = 36
	VoiceMax   = 97
	NDelaySamples = 8000

	SympatheticResonance = 5.0
	BendRange             = 2.0
	Volume                = 2.0

	BridgeCoefficientBypassMin = 0.0
	BridgeCoefficientBypassMax = 0.0
	ResonanceBody              = 1.0

	CutoffDCBlocker = 20.0
	CutoffBridgeMin = 500.0
	CutoffBridgeMax = 24000.0
	CutoffDamper    = 600.0
	CutoffFinger    = 500.0

	CoefficientTransitionFingerInterpolationExponent = 15.0
	CoefficientTransitionFingerMax                    = 100000.0
	CoefficientTransitionFingerMin                    = 10.0
	CoefficientTransitionFingerNoteOff                = 20.0
	CoefficientTransitionDamper                       = 10.0

	HammerStrikePositionCenter    = 0.5
	HammerStrikePositionVariation = 0.05
)
