package piano

import (
	"math"
	"testing"
)

const testRate = 44100.0

func renderVoice(v *Voice, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		v.Process(0)
		out[i] = v.Output()
	}
	return out
}

func TestVoiceStrikeProducesFundamental(t *testing.T) {
	r := newRNG(1)
	v := NewVoice(60, testRate, r)
	v.NoteOn(100)

	samples := renderVoice(v, 8192)
	got := measureFundamentalFreq(samples, testRate)
	want := noteFrequency(60)

	if math.Abs(got-want)/want > 0.05 {
		t.Fatalf("fundamental mismatch: want ~%v got %v", want, got)
	}
}

func TestVoiceIsSilentBeforeStrike(t *testing.T) {
	r := newRNG(1)
	v := NewVoice(60, testRate, r)
	samples := renderVoice(v, 1000)
	if rms := windowRMS(samples); rms > 1e-9 {
		t.Fatalf("expected silence before any strike, rms=%v", rms)
	}
}

func TestVoiceNoteOffDecaysFaster(t *testing.T) {
	r := newRNG(1)
	v := NewVoice(60, testRate, r)
	v.NoteOn(100)
	renderVoice(v, 4000)

	sustained := newRNG(1)
	sv := NewVoice(60, testRate, sustained)
	sv.NoteOn(100)
	renderVoice(sv, 4000)

	v.NoteOff(64)

	beforeRMS := windowRMS(renderVoice(v, 2000))
	afterDampedRMS := windowRMS(renderVoice(v, 20000))
	afterSustainedRMS := windowRMS(renderVoice(sv, 20000))

	if afterDampedRMS >= beforeRMS {
		t.Fatalf("expected decay after note-off, before=%v after=%v", beforeRMS, afterDampedRMS)
	}
	if afterDampedRMS >= afterSustainedRMS {
		t.Fatalf("expected released voice to decay faster than a held one: released=%v held=%v", afterDampedRMS, afterSustainedRMS)
	}
}

func TestVoiceSustainPedalPreventsDamping(t *testing.T) {
	r := newRNG(1)
	v := NewVoice(60, testRate, r)
	v.SetSustain(0)
	v.NoteOn(100)
	renderVoice(v, 4000)
	v.NoteOff(64)

	earlyRMS := windowRMS(renderVoice(v, 2000))
	lateRMS := windowRMS(renderVoice(v, 2000))

	if lateRMS < earlyRMS*0.5 {
		t.Fatalf("expected sustain pedal to keep the string ringing, early=%v late=%v", earlyRMS, lateRMS)
	}
}

func TestVoiceRateChangeRederivesDelayLength(t *testing.T) {
	r := newRNG(1)
	v := NewVoice(60, testRate, r)
	before := v.delay.Length()
	v.SetRate(testRate * 2)
	after := v.delay.Length()
	if after <= before {
		t.Fatalf("expected delay length to roughly double with sample rate: before=%d after=%d", before, after)
	}
}

func TestVoiceHammerJitterIsDeterministicPerSeed(t *testing.T) {
	a := NewVoice(60, testRate, newRNG(42))
	a.NoteOn(100)
	outA := renderVoice(a, 2000)

	b := NewVoice(60, testRate, newRNG(42))
	b.NoteOn(100)
	outB := renderVoice(b, 2000)

	if maxAbsDiff(outA, outB) > 1e-12 {
		t.Fatalf("same seed should produce identical strikes")
	}
}
