package piano

import (
	"math"
	"testing"
)

func TestBridgeZeroBypassIsFullyReflective(t *testing.T) {
	b := NewBridge(1000, 0, 44100)
	var out float64
	for i := 0; i < 2000; i++ {
		out = b.Process(1.0)
	}
	if math.Abs(out-1.0) > 1e-6 {
		t.Fatalf("expected zero-bypass bridge to converge to full reflection 1.0, got %v", out)
	}
}

func TestBridgeFullBypassReflectsNothing(t *testing.T) {
	b := NewBridge(1000, 1, 44100)
	var out float64
	for i := 0; i < 2000; i++ {
		out = b.Process(1.0)
	}
	if math.Abs(out) > 1e-6 {
		t.Fatalf("expected full-bypass bridge to converge to 0 reflection, got %v", out)
	}
}
