package piano

import (
	"math"
)

// noteFrequency returns the equal-tempered frequency of a MIDI note number,
// A4 (note 69) = 440 Hz.
func noteFrequency(note int) float64 {
	const a4Freq = 440.0
	const a4Note = 69
	exponent := float64(note-a4Note) / 12.0
	return a4Freq * pow2(exponent)
}

// pow2 computes 2^x to double precision. algo-approx.FastExp is a
// float32-precision approximation and cannot meet the tuning system's
// within-1-ULP-of-double accuracy requirement, so the tuning path uses
// math.Pow directly instead.
func pow2(x float64) float64 {
	return math.Pow(2, x)
}

// clamp restricts v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// lerp is the linear interpolation a + t*(b-a).
func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

// expInterpByNote exponentially interpolates between lo and hi as note
// ranges over [0, 127]. Used for the bridge bypass/cutoff ranges, which
// are chosen per-voice at construction as an exponential interpolation by
// note index.
func expInterpByNote(note int, lo, hi float64) float64 {
	t := clamp(float64(note)/127.0, 0, 1)
	if lo <= 0 {
		lo = 1e-9
	}
	if hi <= 0 {
		hi = 1e-9
	}
	return lo * pow2(t*math.Log2(hi/lo))
}
