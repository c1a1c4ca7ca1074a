package main

import (
	"math"
	"testing"

	"github.com/cwbudde/waveguide-piano/piano"
)

func testConfig() *optimizationConfig {
	rate := 8000
	reference := make([]float64, rate/10)
	for i := range reference {
		reference[i] = 0.1 * math.Sin(2*math.Pi*440*float64(i)/float64(rate))
	}
	return &optimizationConfig{
		reference:    reference,
		sampleRate:   rate,
		note:         69,
		velocity:     100,
		releaseAfter: 0.05,
		baseParams:   piano.DefaultParams(),
		pianoDefs:    pianoKnobs(),
		irDefs:       bodyIRKnobs(),
		baseIR:       irSynthParams{Brightness: 1.0, Density: 2.0, LowDecayS: 2.4, HighDecayS: 0.35},
		seed:         1,
		variant:      "desma",
		pop:          4,
		maxEvals:     8,
		topK:         3,
	}
}

func midCandidate(n int) candidate {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = 0.5
	}
	return candidate{Vals: vals}
}

func TestRenderCandidateProducesNonSilentOutput(t *testing.T) {
	cfg := testConfig()
	_, out := renderCandidate(cfg, midCandidate(len(cfg.pianoDefs)))
	if len(out) == 0 {
		t.Fatalf("expected non-empty render")
	}
	var peak float64
	for _, v := range out {
		if math.Abs(v) > peak {
			peak = math.Abs(v)
		}
	}
	if peak == 0 {
		t.Fatalf("expected non-silent render, got all zeros")
	}
}

func TestRenderCandidateWithSynthesizedIRDoesNotPanic(t *testing.T) {
	cfg := testConfig()
	cfg.synthIR = true
	dims := len(cfg.pianoDefs) + len(cfg.irDefs)
	_, out := renderCandidate(cfg, midCandidate(dims))
	if len(out) == 0 {
		t.Fatalf("expected non-empty render with synthesized IR")
	}
}

func TestEvaluateCandidateScoreIsFinite(t *testing.T) {
	cfg := testConfig()
	sc := evaluateCandidate(cfg, midCandidate(len(cfg.pianoDefs)))
	if math.IsNaN(sc.Score) || math.IsInf(sc.Score, 0) {
		t.Fatalf("expected finite score, got %v", sc.Score)
	}
	if sc.Score < 0 || sc.Score > 1 {
		t.Fatalf("expected score in [0,1], got %v", sc.Score)
	}
}

func TestNewMayflyConfigRejectsUnknownVariant(t *testing.T) {
	if _, err := newMayflyConfig("bogus", 4, 2, 1); err == nil {
		t.Fatalf("expected error for unknown variant")
	}
}

func TestNewMayflyConfigSetsProblemDimensions(t *testing.T) {
	cfg, err := newMayflyConfig("desma", 10, 5, 3)
	if err != nil {
		t.Fatalf("newMayflyConfig: %v", err)
	}
	if cfg.ProblemSize != 5 {
		t.Fatalf("expected ProblemSize=5, got %v", cfg.ProblemSize)
	}
	if cfg.LowerBound != 0.0 || cfg.UpperBound != 1.0 {
		t.Fatalf("expected normalized bounds, got [%v,%v]", cfg.LowerBound, cfg.UpperBound)
	}
}

func TestRunOptimizationWithZeroBudget(t *testing.T) {
	cfg := testConfig()
	cfg.timeBudget = 0 // the deadline has already passed when the round loop starts, so no round runs
	result, err := runOptimization(cfg)
	if err != nil {
		// With a zero time budget the search may legitimately find nothing;
		// that is an acceptable outcome here, not a bug.
		return
	}
	if result.evals == 0 {
		t.Fatalf("expected at least one evaluation")
	}
}
