package piano

import (
	"math"

	dspcore "github.com/cwbudde/algo-dsp/dsp/core"
)

// Filter is a one-pole IIR low-pass. A high-pass is derived from the same
// instance by subtracting the low-pass output from the input.
type Filter struct {
	state       float64
	coefficient float64
	cutoff      float64
	rate        float64
}

// NewFilter creates a filter with its cutoff already derived for rate.
func NewFilter(cutoff, rate float64) *Filter {
	f := &Filter{}
	f.SetCutoff(cutoff, rate)
	return f
}

// SetCutoff re-derives the filter coefficient from a cutoff frequency and
// sample rate. Idempotent: never touches state.
func (f *Filter) SetCutoff(cutoff, rate float64) {
	f.cutoff = cutoff
	f.rate = rate
	if rate <= 0 {
		f.coefficient = 1
		return
	}
	f.coefficient = 1 - math.Exp(-2*math.Pi*cutoff/rate)
}

// Process advances the low-pass by one sample and returns the new state.
func (f *Filter) Process(x float64) float64 {
	f.state += f.coefficient * (x - f.state)
	f.state = dspcore.FlushDenormals(f.state)
	return f.state
}

// ProcessHighPass advances the same one-pole state and returns the
// complementary high-pass output.
func (f *Filter) ProcessHighPass(x float64) float64 {
	return x - f.Process(x)
}

// Reset zeros the filter's accumulator without touching its coefficient.
func (f *Filter) Reset() {
	f.state = 0
}
