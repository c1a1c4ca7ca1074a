package piano

// Bridge is a string termination: a frequency-dependent reflection
// coefficient. It both reflects (the return value, sent back into the
// string) and transmits (the portion the caller derives as input minus
// reflection, which reaches the shared bridge bus).
type Bridge struct {
	filter           *Filter
	coefficientBypass float64
}

// NewBridge creates a bridge with the given bypass coefficient and a
// filter already derived at cutoff/rate.
func NewBridge(cutoff, bypass, rate float64) *Bridge {
	return &Bridge{
		filter:            NewFilter(cutoff, rate),
		coefficientBypass: bypass,
	}
}

// SetCutoff re-derives the bridge's internal filter.
func (b *Bridge) SetCutoff(cutoff, rate float64) {
	b.filter.SetCutoff(cutoff, rate)
}

// Process returns the reflection: lowpass(x - bypass*x).
func (b *Bridge) Process(x float64) float64 {
	return b.filter.Process(x - b.coefficientBypass*x)
}
