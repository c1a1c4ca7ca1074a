package piano

import "math/rand"

// rng is a per-synth pseudo-random source, seeded once at construction
// rather than drawn from the package-level global generator, so that
// renders are reproducible run to run (the same seed always produces the
// same hammer strike-position jitter).
type rng struct {
	src *rand.Rand
}

func newRNG(seed int64) *rng {
	return &rng{src: rand.New(rand.NewSource(seed))}
}

// uniform returns a sample from U(-1, 1).
func (r *rng) uniform() float64 {
	return r.src.Float64()*2.0 - 1.0
}
