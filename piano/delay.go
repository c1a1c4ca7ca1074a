package piano

import "math"

// Delay is a fixed-capacity circular buffer with a movable logical length.
// It is the waveguide substrate of every string: reading "the current
// output" means reading the cell at the write pointer (the oldest sample
// within the active window) before it gets overwritten.
type Delay struct {
	buffer   []float64
	writePos int
	length   int
}

// NewDelay allocates a delay line of the given capacity (N_DELAY_SAMPLES
// doubles per voice) with an initial active length of 1.
func NewDelay(capacity int) *Delay {
	return &Delay{
		buffer: make([]float64, capacity),
		length: 1,
	}
}

// SetLength updates the active length. Growing zeros the newly exposed
// tail; shrinking simply stops reading/writing past the new boundary and
// leaves the stale tail unread until it is grown again.
func (d *Delay) SetLength(length int) {
	if length < 1 {
		length = 1
	}
	if length > len(d.buffer) {
		length = len(d.buffer)
	}
	if length > d.length {
		for i := d.length; i < length; i++ {
			d.buffer[i] = 0
		}
	}
	d.length = length
	if d.writePos >= d.length {
		d.writePos = 0
	}
}

// SetLengthFromFrequency sets the active length from a target frequency at
// a given sample rate: L = round(rate/f).
func (d *Delay) SetLengthFromFrequency(freq, rate float64) {
	if freq <= 0 {
		d.SetLength(len(d.buffer))
		return
	}
	d.SetLength(int(math.Round(rate / freq)))
}

// Peek reads the cell at the write pointer: the sample delayed by exactly
// length samples from the last write.
func (d *Delay) Peek() float64 {
	return d.buffer[d.writePos]
}

// Process writes x to the cell at the write pointer then advances the
// pointer modulo length.
func (d *Delay) Process(x float64) {
	d.buffer[d.writePos] = x
	d.writePos++
	if d.writePos >= d.length {
		d.writePos = 0
	}
}

// Length reports the current active length.
func (d *Delay) Length() int {
	return d.length
}

// Capacity reports the fixed buffer capacity.
func (d *Delay) Capacity() int {
	return len(d.buffer)
}
