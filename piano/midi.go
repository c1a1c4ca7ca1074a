package piano

// MIDIEvent is a single 3-byte MIDI 1.0 channel-voice message together
// with its sample-accurate offset within the current audio block.
type MIDIEvent struct {
	Offset int
	Status byte
	Data1  byte
	Data2  byte
}

const (
	statusNoteOff         = 0x80
	statusNoteOn          = 0x90
	statusControlChange   = 0xB0
	statusPitchBend       = 0xE0

	ccDamper     = 1
	ccExpression = 11
	ccSustain    = 64
)

// ApplyMIDI dispatches one decoded event against the synth. Running
// status is not supported: every event carries its own status byte.
// Unrecognized status nibbles and unrecognized controller numbers are
// silently ignored, matching the permissive behavior of the original
// hardware driver.
func (s *Synth) ApplyMIDI(ev MIDIEvent) {
	switch ev.Status & 0xF0 {
	case statusNoteOff:
		s.NoteOff(int(ev.Data1), int(ev.Data2))
	case statusNoteOn:
		// No velocity-0-means-note-off special case: velocity 0 runs the
		// ordinary note-on path, whose hammer shape then has zero amplitude.
		s.NoteOn(int(ev.Data1), int(ev.Data2))
	case statusControlChange:
		switch ev.Data1 {
		case ccDamper:
			s.SetDamper(float64(ev.Data2) / 127.0)
		case ccSustain:
			// Continuous: no half-pedaling is lost to a 64-threshold cut.
			s.SetSustain(float64(ev.Data2) / 127.0)
		case ccExpression:
			// No-op: expression is accepted on the wire but does not
			// feed into the model.
		}
	case statusPitchBend:
		// Pitch bend is decoded but the waveguide model has no per-voice
		// detune path; accepted and discarded like CC11.
		_ = s.decodePitchBend(ev.Data1, ev.Data2)
	}
}

// decodePitchBend reconstructs the signed bend amount in
// [-bendRange, bendRange] from the 14-bit pitch-bend payload.
func (s *Synth) decodePitchBend(lsb, msb byte) float64 {
	value := int(msb)<<7 | int(lsb)
	return (float64(value)/0x2000 - 1) * s.bendRange
}

// DecodeMIDI3 parses a raw 3-byte MIDI message at the given sample
// offset. It performs no validation beyond slice length: malformed or
// truncated messages are the caller's responsibility to filter.
func DecodeMIDI3(offset int, b [3]byte) MIDIEvent {
	return MIDIEvent{
		Offset: offset,
		Status: b[0],
		Data1:  b[1],
		Data2:  b[2],
	}
}
