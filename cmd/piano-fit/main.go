// Command piano-fit searches for the Params that make the waveguide piano's
// rendered note best match a recorded reference note, using the mayfly
// metaheuristic family to drive the search and the analysis package's
// spectral/envelope/decay metrics to score each candidate.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cwbudde/waveguide-piano/internal/fitcommon"
	"github.com/cwbudde/waveguide-piano/piano"
	"github.com/cwbudde/waveguide-piano/preset"
)

func main() {
	referencePath := flag.String("reference", "", "Reference WAV recording to fit against (required)")
	presetPath := flag.String("preset", "", "Base preset JSON to start from (optional, defaults to piano.DefaultParams)")
	outputPreset := flag.String("output-preset", "fitted.json", "Path to write the best-found preset JSON")
	note := flag.Int("note", 69, "MIDI note number to strike")
	velocity := flag.Int("velocity", 100, "MIDI velocity to strike with")
	releaseAfter := flag.Float64("release-after", 0.12, "Seconds after strike to send NoteOff")
	sampleRate := flag.Int("sample-rate", 48000, "Render sample rate in Hz")
	seed := flag.Int64("seed", 1, "RNG seed for both the synth and the optimizer")
	variant := flag.String("mayfly-variant", "desma", "Mayfly variant: ma, desma, olce, eobbma, gsasma, mpma, aoblmoa")
	pop := flag.Int("mayfly-pop", 24, "Mayfly population size")
	maxEvals := flag.Int("max-evals", 2000, "Maximum candidate evaluations")
	timeBudget := flag.Duration("time-budget", 2*time.Minute, "Wall-clock budget for the search")
	topK := flag.Int("top-k", 5, "Number of top candidates to report")
	synthIR := flag.Bool("synthesize-ir", false, "Search the synthetic body-IR parameters alongside the piano knobs instead of holding the preset's body IR fixed")
	workersFlag := flag.String("workers", "1", "Reserved for future concurrent evaluation; accepts an integer or 'auto'")
	flag.Parse()

	if *referencePath == "" {
		fmt.Fprintln(os.Stderr, "Error: -reference is required")
		os.Exit(1)
	}
	if _, err := fitcommon.ParseWorkers(*workersFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: -workers %v\n", err)
		os.Exit(1)
	}

	reference, refRate, err := fitcommon.ReadWAVMono(*referencePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading reference %q: %v\n", *referencePath, err)
		os.Exit(1)
	}
	reference, err = fitcommon.ResampleIfNeeded(reference, refRate, *sampleRate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resampling reference: %v\n", err)
		os.Exit(1)
	}

	base, err := loadBaseParams(*presetPath, *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading base preset: %v\n", err)
		os.Exit(1)
	}

	cfg := &optimizationConfig{
		reference:    reference,
		sampleRate:   *sampleRate,
		note:         *note,
		velocity:     *velocity,
		releaseAfter: *releaseAfter,
		baseParams:   base,
		pianoDefs:    pianoKnobs(),
		irDefs:       bodyIRKnobs(),
		baseIR:       irSynthParams{Brightness: 1.0, Density: 2.0, LowDecayS: 2.4, HighDecayS: 0.35},
		synthIR:      *synthIR,
		seed:         *seed,
		variant:      *variant,
		pop:          *pop,
		maxEvals:     *maxEvals,
		timeBudget:   *timeBudget,
		topK:         *topK,
	}

	fmt.Printf("Fitting note %d against %s (%d dims, variant=%s, budget=%s)\n",
		*note, *referencePath, dimsFor(cfg), *variant, *timeBudget)

	result, err := runOptimization(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error during optimization: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Done: %d evals in %.1fs, best score=%.4f\n", result.evals, result.elapsed, result.best.Score)
	for i, sc := range result.top {
		fmt.Printf("  #%d eval=%d score=%.4f\n", i+1, sc.Eval, sc.Score)
	}

	if err := preset.SaveJSON(*outputPreset, result.best.Params); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", *outputPreset, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote best preset to %s\n", *outputPreset)
}

func loadBaseParams(path string, seed int64) (piano.Params, error) {
	if path == "" {
		p := piano.DefaultParams()
		p.Seed = seed
		return p, nil
	}
	p, err := preset.LoadJSON(path)
	if err != nil {
		return piano.Params{}, err
	}
	p.Seed = seed
	return p, nil
}

func dimsFor(cfg *optimizationConfig) int {
	n := len(cfg.pianoDefs)
	if cfg.synthIR {
		n += len(cfg.irDefs)
	}
	return n
}
