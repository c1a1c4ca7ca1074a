package piano

import (
	"math"
	"testing"
)

func TestResonatorDefaultIsWetOnly(t *testing.T) {
	r := NewResonator()
	r.SetIR([]float64{0.5})
	got := r.Process(2.0)
	if math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("expected full-body mix to equal pure convolution output, got %v", got)
	}
}

func TestResonatorDryBypass(t *testing.T) {
	r := NewResonator()
	r.body = 0
	r.SetIR([]float64{0.5})
	got := r.Process(2.0)
	if math.Abs(got-2.0) > 1e-9 {
		t.Fatalf("expected body=0 to pass input through dry, got %v", got)
	}
}
