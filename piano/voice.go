package piano

import "math"

// Voice models one key of the keyboard as an excited, damped, terminated
// waveguide: a delay line closed by frequency-dependent filters standing
// in for the string's damper, the player's finger, and the bridge.
type Voice struct {
	note      int
	frequency float64
	rate      float64

	delay *Delay

	filterDCBlocker        *Filter
	filterDamper           *Filter
	filterFinger           *Filter
	filterTransitionDamper *Filter
	filterTransitionFinger *Filter

	bridgeInput  *Bridge
	bridgeOutput *Bridge

	targetCoefficientDamper    float64
	targetCoefficientFinger    float64
	coefficientTransitionFinger float64
	sustain                    float64

	output float64

	rng *rng

	// Per-voice tunables, seeded from the package constants and
	// overridable via applyParams.
	hammerCenter                float64
	hammerVariation             float64
	cutoffDCBlocker             float64
	cutoffDamper                float64
	cutoffFinger                float64
	coefficientTransitionDamper float64
	bridgeBypassMin             float64
	bridgeBypassMax             float64
	cutoffBridgeMin             float64
	cutoffBridgeMax             float64
	interpExponent              float64
	transitionFingerMin         float64
	transitionFingerMax         float64
	transitionFingerNoteOff     float64
}

// NewVoice constructs a voice for a MIDI note at the given sample rate. The
// synth creates one voice per note in [VoiceMin, VoiceMax) once at
// initialization and never destroys it until teardown.
func NewVoice(note int, rate float64, r *rng) *Voice {
	v := &Voice{
		note:                        note,
		rate:                        rate,
		delay:                       NewDelay(NDelaySamples),
		filterDCBlocker:             NewFilter(CutoffDCBlocker, rate),
		filterDamper:                NewFilter(CutoffDamper, rate),
		filterFinger:                NewFilter(CutoffFinger, rate),
		filterTransitionDamper:      NewFilter(CoefficientTransitionDamper, rate),
		filterTransitionFinger:      NewFilter(CoefficientTransitionFingerNoteOff, rate),
		targetCoefficientFinger:     1,
		coefficientTransitionFinger: CoefficientTransitionFingerNoteOff,
		sustain:                     1,
		rng:                         r,

		hammerCenter:                HammerStrikePositionCenter,
		hammerVariation:             HammerStrikePositionVariation,
		cutoffDCBlocker:             CutoffDCBlocker,
		cutoffDamper:                CutoffDamper,
		cutoffFinger:                CutoffFinger,
		coefficientTransitionDamper: CoefficientTransitionDamper,
		bridgeBypassMin:             BridgeCoefficientBypassMin,
		bridgeBypassMax:             BridgeCoefficientBypassMax,
		cutoffBridgeMin:             CutoffBridgeMin,
		cutoffBridgeMax:             CutoffBridgeMax,
		interpExponent:              CoefficientTransitionFingerInterpolationExponent,
		transitionFingerMin:         CoefficientTransitionFingerMin,
		transitionFingerMax:         CoefficientTransitionFingerMax,
		transitionFingerNoteOff:     CoefficientTransitionFingerNoteOff,
	}
	v.frequency = noteFrequency(note)

	bypass := expInterpByNote(note, v.bridgeBypassMin, v.bridgeBypassMax)
	cutoff := expInterpByNote(note, v.cutoffBridgeMin, v.cutoffBridgeMax)
	v.bridgeInput = NewBridge(cutoff, bypass, rate)
	v.bridgeOutput = NewBridge(cutoff, bypass, rate)

	v.deriveCoefficients()
	return v
}

// deriveCoefficients re-derives the delay length and every filter
// coefficient from the voice's current frequency, rate, and transition
// cutoffs. Called whenever the rate changes and whenever a target cutoff
// changes (note-on, note-off).
func (v *Voice) deriveCoefficients() {
	v.delay.SetLengthFromFrequency(v.frequency, v.rate)

	v.filterDCBlocker.SetCutoff(v.cutoffDCBlocker, v.rate)
	v.filterDamper.SetCutoff(v.cutoffDamper, v.rate)
	v.filterFinger.SetCutoff(v.cutoffFinger, v.rate)
	v.filterTransitionDamper.SetCutoff(v.coefficientTransitionDamper, v.rate)
	v.filterTransitionFinger.SetCutoff(v.coefficientTransitionFinger, v.rate)

	bypass := expInterpByNote(v.note, v.bridgeBypassMin, v.bridgeBypassMax)
	cutoff := expInterpByNote(v.note, v.cutoffBridgeMin, v.cutoffBridgeMax)
	v.bridgeInput.SetCutoff(cutoff, v.rate)
	v.bridgeInput.coefficientBypass = bypass
	v.bridgeOutput.SetCutoff(cutoff, v.rate)
	v.bridgeOutput.coefficientBypass = bypass
}

// SetRate updates the voice's sample rate and re-derives every coefficient.
func (v *Voice) SetRate(rate float64) {
	v.rate = rate
	v.deriveCoefficients()
}

// Output returns the sample this voice exposed to the bus on the most
// recent Process call.
func (v *Voice) Output() float64 {
	return v.output
}

// Process runs one iteration of the voice's signal path. input is the
// bus feedback delivered by the synth for this sample (the distributed
// sympathetic-resonance term).
func (v *Voice) Process(input float64) {
	d := v.delay.Peek()

	cd := v.filterTransitionDamper.Process(v.targetCoefficientDamper)
	cf := v.filterTransitionFinger.Process(v.sustain * v.targetCoefficientFinger)

	dcb := v.filterDCBlocker.ProcessHighPass(d)

	dampedD := cd * dcb
	undampedD := dcb - dampedD
	reflDamper := v.filterDamper.Process(dampedD)
	preTermination := reflDamper + undampedD

	dampedF := cf * preTermination
	undampedF := preTermination - dampedF
	reflFinger := v.filterFinger.Process(dampedF)
	termination := reflFinger + undampedF

	reflOut := v.bridgeOutput.Process(termination)
	v.output = termination - reflOut

	transIn := v.bridgeInput.Process(input)

	v.delay.Process(transIn + reflOut)
}

// NoteOn triggers the hammer strike and shapes the finger-release
// transition. High-velocity strikes transition faster (harder attack).
func (v *Voice) NoteOn(velocity int) {
	v.targetCoefficientFinger = 0
	v.filterTransitionFinger.state = 1

	v.excite(float64(velocity) / 127.0)

	vNorm := clamp(float64(velocity)/127.0, 0, 1)
	exponent := math.Pow(vNorm, v.interpExponent)
	v.coefficientTransitionFinger = lerp(exponent, v.transitionFingerMin, v.transitionFingerMax)

	v.deriveCoefficients()
}

// NoteOff releases the key: the finger lifts back onto the string.
func (v *Voice) NoteOff(velocity int) {
	_ = velocity
	v.targetCoefficientFinger = 1
	v.coefficientTransitionFinger = v.transitionFingerNoteOff
	v.deriveCoefficients()
}

// SetDamper sets the external damper coefficient (mod wheel). The smoother
// applies it at audio rate; no forced re-derive is needed.
func (v *Voice) SetDamper(x float64) {
	v.targetCoefficientDamper = clamp(x, 0, 1)
}

// SetSustain sets the sustain-pedal scale applied to the finger target
// every sample. sustain=0 pins the finger coefficient at 0 (pedal down,
// strings free); sustain=1 allows the stored target to apply.
func (v *Voice) SetSustain(x float64) {
	v.sustain = clamp(x, 0, 1)
}

// excite synthesizes a one-period triangular hammer shape into the delay
// and superimposes it onto whatever is already there.
func (v *Voice) excite(velocity float64) {
	strikePos := v.hammerCenter + v.hammerVariation*v.rng.uniform()
	if strikePos <= 0 {
		strikePos = 1e-6
	}
	if strikePos >= 1 {
		strikePos = 1 - 1e-6
	}

	length := v.delay.Length()
	for i := 0; i < length; i++ {
		p := 2.0 * float64(i) / float64(length)
		sample := velocity
		if p > 1 {
			p = 2 - p
			sample = -velocity
		}
		if p < strikePos {
			sample *= p / strikePos
		} else {
			sample *= 1 - (p-strikePos)/(1-strikePos)
		}
		v.delay.Process(v.delay.Peek() + sample/2)
	}
}
