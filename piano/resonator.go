package piano

// Resonator wraps the body convolver and blends wet convolution with the
// dry bridge sum. With ResonanceBody = 1 the authoritative behavior is
// pure convolution (wet-only); the lerp is kept so the mix stays tunable.
type Resonator struct {
	convolver *Convolver
	body      float64
}

// NewResonator creates a resonator with the default ResonanceBody mix.
func NewResonator() *Resonator {
	return &Resonator{
		convolver: NewConvolver(),
		body:      ResonanceBody,
	}
}

// SetIR installs a new body impulse response.
func (r *Resonator) SetIR(ir []float64) {
	r.convolver.SetIR(ir)
}

// Process returns lerp(body, x, convolver.Process(x)).
func (r *Resonator) Process(x float64) float64 {
	wet := r.convolver.Process(x)
	return x + r.body*(wet-x)
}
