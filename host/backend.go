package host

import (
	"fmt"
	"io"
	"sync"

	"github.com/ebitengine/oto/v3"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

const (
	sampleRate   = 48000
	channelCount = 1
	bitDepth     = 2 // 16-bit signed LE, the format oto.FormatSignedInt16LE expects
	blockFrames  = 256
)

// Backend opens one real MIDI input port and one real audio output
// device, and drives the Adapter's OnAudio callback from oto's pull-based
// player loop. It is the realtime counterpart of cmd/piano-render's
// offline block loop.
type Backend struct {
	adapter *Adapter
	otoCtx  *oto.Context
	player  *oto.Player
	stop    func()

	mu      sync.Mutex
	pending []Event
}

// Open registers a MIDI input port (the first one found) and an audio
// output device, and begins streaming. It mirrors the JACK plugin's
// register-ports-then-block lifecycle from the original C driver, using
// portable cross-platform backends instead of JACK.
func Open(s *Adapter) (*Backend, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channelCount,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("host: open audio output: %w", err)
	}
	<-ready

	b := &Backend{adapter: s, otoCtx: ctx}
	s.OnRateChange(sampleRate)

	b.player = ctx.NewPlayer(&pullReader{backend: b})
	b.player.Play()

	ins, err := midi.InPorts()
	if err != nil || len(ins) == 0 {
		return b, nil
	}

	stop, err := midi.ListenTo(ins[0], b.handleMIDI, midi.UseSysEx())
	if err != nil {
		return b, fmt.Errorf("host: listen to %s: %w", ins[0], err)
	}
	b.stop = stop
	return b, nil
}

// handleMIDI decodes a raw incoming MIDI message and queues it for
// application at the start of the next audio block. Real-time input has
// no meaningful sub-block sample offset, so every event is stamped at
// offset 0 of the block it arrives before.
func (b *Backend) handleMIDI(msg midi.Message, timestampms int32) {
	raw := msg.Bytes()
	if len(raw) < 3 {
		return
	}
	b.mu.Lock()
	b.pending = append(b.pending, Event{Offset: 0, Status: raw[0], Data1: raw[1], Data2: raw[2]})
	b.mu.Unlock()
}

type pullReader struct {
	backend *Backend
}

// Read implements io.Reader: oto pulls 16-bit mono PCM samples from here
// on its own callback thread.
func (r *pullReader) Read(buf []byte) (int, error) {
	b := r.backend
	frames := len(buf) / bitDepth
	if frames > blockFrames {
		frames = blockFrames
	}

	b.mu.Lock()
	events := b.pending
	b.pending = nil
	b.mu.Unlock()

	out := make([]float64, frames)
	b.adapter.OnAudio(frames, events, out)

	for i, v := range out {
		s := int16(v * 32767)
		buf[i*2] = byte(s)
		buf[i*2+1] = byte(s >> 8)
	}
	return frames * bitDepth, nil
}

// Close stops the MIDI listener and audio player, releasing host
// resources.
func (b *Backend) Close() error {
	if b.stop != nil {
		b.stop()
	}
	if b.player != nil {
		b.player.Close()
	}
	b.adapter.OnShutdown()
	return nil
}

var _ io.Reader = (*pullReader)(nil)
