package piano

// Synth owns the full fixed voice pool plus the shared resonance bus and
// body resonator. All voices are allocated once at construction and live
// for the lifetime of the synth; NoteOn/NoteOff only flip a voice's
// internal state, they never allocate or free a voice.
type Synth struct {
	rate float64

	voices [NVoices]*Voice

	resonator *Resonator
	rng       *rng

	damper  float64
	sustain float64

	sympatheticResonance float64
	volume               float64
	bendRange            float64
}

// NewSynth constructs a synth with every voice in [VoiceMin, VoiceMax)
// pre-built at the given sample rate. seed drives the shared hammer-jitter
// PRNG so renders are reproducible.
func NewSynth(rate float64, seed int64) *Synth {
	s := &Synth{
		rate:                 rate,
		resonator:            NewResonator(),
		rng:                  newRNG(seed),
		sustain:              1,
		sympatheticResonance: SympatheticResonance,
		volume:               Volume,
		bendRange:            BendRange,
	}
	for note := VoiceMin; note < VoiceMax; note++ {
		s.voices[note] = NewVoice(note, rate, s.rng)
	}
	return s
}

// SetRate propagates a sample-rate change to every voice, re-deriving all
// delay lengths and filter coefficients.
func (s *Synth) SetRate(rate float64) {
	s.rate = rate
	for note := VoiceMin; note < VoiceMax; note++ {
		s.voices[note].SetRate(rate)
	}
}

// SetBodyIR installs a new impulse response on the shared body resonator.
func (s *Synth) SetBodyIR(ir []float64) {
	s.resonator.SetIR(ir)
}

// NoteOn strikes the voice for note, if note falls within the supported
// range. Notes outside [VoiceMin, VoiceMax) are silently ignored.
func (s *Synth) NoteOn(note, velocity int) {
	v := s.voiceFor(note)
	if v == nil {
		return
	}
	v.NoteOn(velocity)
}

// NoteOff releases the voice for note.
func (s *Synth) NoteOff(note, velocity int) {
	v := s.voiceFor(note)
	if v == nil {
		return
	}
	v.NoteOff(velocity)
}

// SetDamper applies a continuous damper coefficient (CC1) to every voice.
func (s *Synth) SetDamper(x float64) {
	s.damper = clamp(x, 0, 1)
	for note := VoiceMin; note < VoiceMax; note++ {
		s.voices[note].SetDamper(s.damper)
	}
}

// SetSustain applies the sustain pedal (CC64) to every voice.
func (s *Synth) SetSustain(x float64) {
	s.sustain = clamp(x, 0, 1)
	for note := VoiceMin; note < VoiceMax; note++ {
		s.voices[note].SetSustain(s.sustain)
	}
}

func (s *Synth) voiceFor(note int) *Voice {
	if note < VoiceMin || note >= VoiceMax {
		return nil
	}
	return s.voices[note]
}

// Process advances every voice by one sample, sums their outputs into the
// shared sympathetic-resonance bus, feeds the distributed bus term back
// into every voice, and returns the final resonator-filtered output.
//
// The feedback term follows reflection = SympatheticResonance * bus,
// distributed = reflection / NVoices: the bus is scaled up by the
// coupling constant and then divided back down across every voice it
// feeds, not merely divided by the coupling constant.
func (s *Synth) Process() float64 {
	var bus float64
	for note := VoiceMin; note < VoiceMax; note++ {
		bus += s.voices[note].Output()
	}

	feedback := bus * s.sympatheticResonance / NVoices

	var out float64
	for note := VoiceMin; note < VoiceMax; note++ {
		v := s.voices[note]
		v.Process(feedback)
		out += v.Output()
	}

	return s.resonator.Process(out * s.volume)
}

// ProcessBlock fills out with n samples of silence-to-signal audio,
// advancing the synth one sample per element. len(out) determines n.
func (s *Synth) ProcessBlock(out []float64) {
	for i := range out {
		out[i] = s.Process()
	}
}
