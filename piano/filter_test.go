package piano

import (
	"math"
	"testing"
)

func TestFilterConvergesToDCInput(t *testing.T) {
	f := NewFilter(500, 44100)
	var out float64
	for i := 0; i < 5000; i++ {
		out = f.Process(1.0)
	}
	if math.Abs(out-1.0) > 1e-6 {
		t.Fatalf("expected low-pass to converge to 1.0, got %v", out)
	}
}

func TestFilterHighPassComplementsLowPass(t *testing.T) {
	lp := NewFilter(500, 44100)
	hp := NewFilter(500, 44100)
	for i := 0; i < 1000; i++ {
		x := math.Sin(float64(i) * 0.1)
		l := lp.Process(x)
		h := hp.ProcessHighPass(x)
		if math.Abs((l+h)-x) > 1e-9 {
			t.Fatalf("lowpass + highpass should reconstruct input, got lp=%v hp=%v x=%v", l, h, x)
		}
	}
}

func TestFilterZeroRateIsAllPass(t *testing.T) {
	f := NewFilter(500, 0)
	got := f.Process(0.5)
	if math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("coefficient 1 should pass input straight through, got %v", got)
	}
}

func TestFilterResetZerosState(t *testing.T) {
	f := NewFilter(500, 44100)
	for i := 0; i < 100; i++ {
		f.Process(1.0)
	}
	f.Reset()
	if f.state != 0 {
		t.Fatalf("expected state reset to 0, got %v", f.state)
	}
}

func TestFilterHigherCutoffConvergesFaster(t *testing.T) {
	slow := NewFilter(100, 44100)
	fast := NewFilter(5000, 44100)
	var sOut, fOut float64
	for i := 0; i < 10; i++ {
		sOut = slow.Process(1.0)
		fOut = fast.Process(1.0)
	}
	if fOut <= sOut {
		t.Fatalf("higher cutoff should converge faster: slow=%v fast=%v", sOut, fOut)
	}
}
