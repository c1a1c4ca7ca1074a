package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/cwbudde/waveguide-piano/irfile"
	"github.com/cwbudde/waveguide-piano/piano"
	"github.com/cwbudde/waveguide-piano/preset"
	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"
)

func main() {
	note := flag.Int("note", 69, "MIDI note number (69 = A4 = 440 Hz)")
	velocity := flag.Int("velocity", 100, "MIDI velocity (0-127)")
	duration := flag.Float64("duration", 2.0, "Duration in seconds")
	decayDBFS := flag.Float64("decay-dbfs", math.Inf(1), "Auto-stop when block RMS falls below this dBFS (e.g. -90). Disabled by default")
	decayHoldBlocks := flag.Int("decay-hold-blocks", 6, "Consecutive below-threshold blocks required to stop in auto-decay mode")
	minDuration := flag.Float64("min-duration", 0.5, "Minimum render duration in seconds when using -decay-dbfs")
	maxDuration := flag.Float64("max-duration", 20.0, "Maximum render duration in seconds when using -decay-dbfs")
	releaseAfter := flag.Float64("release-after", 0.12, "Send NoteOff after this many seconds in auto-decay mode")
	sampleRate := flag.Int("sample-rate", 48000, "Render sample rate in Hz")
	presetPath := flag.String("preset", "assets/presets/default.json", "Preset JSON file path")
	irPath := flag.String("ir", "", "Body IR file path override (optional)")
	output := flag.String("output", "output.wav", "Output WAV file path")
	flag.Parse()

	params, err := preset.LoadJSON(*presetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading preset %q: %v\n", *presetPath, err)
		os.Exit(1)
	}
	if *irPath != "" {
		params.BodyIRPath = *irPath
	}

	fmt.Printf("Rendering note %d, velocity %d, for %.2f seconds at %d Hz (preset: %s)...\n", *note, *velocity, *duration, *sampleRate, *presetPath)

	s := piano.NewSynthFromParams(float64(*sampleRate), params)
	if params.BodyIRPath != "" {
		ir, err := irfile.Load(params.BodyIRPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading body IR %q: %v\n", params.BodyIRPath, err)
			os.Exit(1)
		}
		s.SetBodyIR(ir)
	}

	s.NoteOn(*note, *velocity)

	blockSize := 128
	autoStop := !math.IsInf(*decayDBFS, 1)

	var totalFrames int
	if !autoStop {
		totalFrames = int(float64(*sampleRate) * (*duration))
		if totalFrames < 1 {
			totalFrames = 1
		}
	}

	initialFrames := totalFrames
	if autoStop {
		initialFrames = int(float64(*sampleRate) * (*minDuration))
		if initialFrames < blockSize {
			initialFrames = blockSize
		}
	}
	samples := make([]float32, 0, initialFrames)

	framesRendered := 0
	block := make([]float64, blockSize)

	if autoStop {
		minFrames := int(float64(*sampleRate) * (*minDuration))
		maxFrames := int(float64(*sampleRate) * (*maxDuration))
		releaseAtFrame := int(float64(*sampleRate) * (*releaseAfter))
		if releaseAtFrame < 0 {
			releaseAtFrame = 0
		}
		if maxFrames < minFrames {
			maxFrames = minFrames
		}
		if maxFrames < 1 {
			maxFrames = blockSize
		}

		thresholdLin := math.Pow(10.0, *decayDBFS/20.0)
		noteReleased := false
		belowCount := 0
		if *decayHoldBlocks < 1 {
			*decayHoldBlocks = 1
		}
		for framesRendered < maxFrames {
			framesToRender := blockSize
			if framesRendered+framesToRender > maxFrames {
				framesToRender = maxFrames - framesRendered
			}

			if !noteReleased && framesRendered >= releaseAtFrame {
				s.NoteOff(*note, 64)
				noteReleased = true
			}

			buf := block[:framesToRender]
			s.ProcessBlock(buf)
			for _, v := range buf {
				samples = append(samples, float32(v))
			}
			framesRendered += framesToRender

			if framesRendered >= minFrames {
				if blockRMS(buf) < thresholdLin {
					belowCount++
					if belowCount >= *decayHoldBlocks {
						break
					}
				} else {
					belowCount = 0
				}
			}
		}
		totalFrames = framesRendered
		fmt.Printf("Auto-stop at %d frames (%.3fs), threshold %.1f dBFS\n", totalFrames, float64(totalFrames)/float64(*sampleRate), *decayDBFS)
	} else {
		for framesRendered < totalFrames {
			framesToRender := blockSize
			if framesRendered+framesToRender > totalFrames {
				framesToRender = totalFrames - framesRendered
			}
			buf := block[:framesToRender]
			s.ProcessBlock(buf)
			for _, v := range buf {
				samples = append(samples, float32(v))
			}
			framesRendered += framesToRender
		}
	}

	file, err := os.Create(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	encoder := wav.NewEncoder(file, *sampleRate, 16, 1, 1)
	defer encoder.Close()

	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  *sampleRate,
			NumChannels: 1,
		},
		Data:           samples,
		SourceBitDepth: 16,
	}

	if err := encoder.Write(buf); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing WAV file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully wrote %s (%d frames)\n", *output, totalFrames)
}

func blockRMS(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(samples)))
}
