package piano

import "testing"

func TestDelayRoundTrip(t *testing.T) {
	d := NewDelay(100)
	d.SetLength(10)
	for i := 0; i < 10; i++ {
		d.Process(float64(i))
	}
	for i := 0; i < 10; i++ {
		got := d.Peek()
		if got != float64(i) {
			t.Fatalf("peek %d: expected %v, got %v", i, float64(i), got)
		}
		d.Process(0)
	}
}

func TestDelaySetLengthFromFrequency(t *testing.T) {
	d := NewDelay(NDelaySamples)
	d.SetLengthFromFrequency(441, 44100)
	if d.Length() != 100 {
		t.Fatalf("expected length 100 for 441Hz at 44100Hz, got %d", d.Length())
	}
}

func TestDelayGrowZerosNewTail(t *testing.T) {
	d := NewDelay(100)
	d.SetLength(5)
	for i := 0; i < 5; i++ {
		d.Process(9.0)
	}
	d.SetLength(20)
	for i := 5; i < 20; i++ {
		if d.buffer[i] != 0 {
			t.Fatalf("expected newly exposed tail cell %d to be zero, got %v", i, d.buffer[i])
		}
	}
}

func TestDelayCapacityClampsLength(t *testing.T) {
	d := NewDelay(50)
	d.SetLength(1000)
	if d.Length() != 50 {
		t.Fatalf("expected length clamped to capacity 50, got %d", d.Length())
	}
}

func TestDelayMinimumLengthIsOne(t *testing.T) {
	d := NewDelay(10)
	d.SetLength(0)
	if d.Length() != 1 {
		t.Fatalf("expected minimum length 1, got %d", d.Length())
	}
}
