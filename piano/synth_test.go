package piano

import (
	"math"
	"testing"
)

func renderSynth(s *Synth, n int) []float64 {
	out := make([]float64, n)
	s.ProcessBlock(out)
	return out
}

func TestSynthNoteOnOutOfRangeIsIgnored(t *testing.T) {
	s := NewSynth(testRate, 1)
	s.NoteOn(10, 100)
	s.NoteOn(VoiceMax+5, 100)
	out := renderSynth(s, 1000)
	if rms := windowRMS(out); rms > 1e-9 {
		t.Fatalf("expected out-of-range notes to produce silence, rms=%v", rms)
	}
}

func TestSynthSingleNoteProducesFundamental(t *testing.T) {
	s := NewSynth(testRate, 1)
	s.NoteOn(69, 100)
	out := renderSynth(s, 8192)
	got := measureFundamentalFreq(out, testRate)
	want := noteFrequency(69)
	if math.Abs(got-want)/want > 0.05 {
		t.Fatalf("fundamental mismatch: want ~%v got %v", want, got)
	}
}

func TestSynthSympatheticResonanceExcitesOtherVoices(t *testing.T) {
	s := NewSynth(testRate, 1)
	s.NoteOn(69, 120)
	renderSynth(s, 20000)

	other := s.voiceFor(69 - 12)
	if other == nil {
		t.Fatalf("expected octave-below voice to exist")
	}
	if windowRMS(renderVoice(other, 2000)) <= 0 {
		t.Fatalf("expected sympathetic energy to have reached an undamped neighboring string")
	}
}

func TestSynthRateChangePropagatesToEveryVoice(t *testing.T) {
	s := NewSynth(testRate, 1)
	s.SetRate(testRate * 2)
	for note := VoiceMin; note < VoiceMax; note++ {
		v := s.voices[note]
		want := int(math.Round(v.rate / noteFrequency(note)))
		if v.delay.Length() != want {
			t.Fatalf("voice %d: expected delay length %d at new rate, got %d", note, want, v.delay.Length())
		}
	}
}

func TestSynthDamperAndSustainApplyToAllVoices(t *testing.T) {
	s := NewSynth(testRate, 1)
	s.SetDamper(0.5)
	s.SetSustain(0)
	for note := VoiceMin; note < VoiceMax; note++ {
		v := s.voices[note]
		if v.targetCoefficientDamper != 0.5 {
			t.Fatalf("voice %d: expected damper target 0.5, got %v", note, v.targetCoefficientDamper)
		}
		if v.sustain != 0 {
			t.Fatalf("voice %d: expected sustain 0, got %v", note, v.sustain)
		}
	}
}
