package main

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/cwbudde/mayfly"
	"github.com/cwbudde/waveguide-piano/analysis"
	"github.com/cwbudde/waveguide-piano/irfile"
	"github.com/cwbudde/waveguide-piano/irsynth"
	"github.com/cwbudde/waveguide-piano/piano"
)

// optimizationConfig collects everything a round of fitting needs to score
// a candidate against the reference render.
type optimizationConfig struct {
	reference    []float64
	sampleRate   int
	note         int
	velocity     int
	releaseAfter float64

	baseParams piano.Params
	pianoDefs  []knobDef
	irDefs     []irKnobDef
	baseIR     irSynthParams
	synthIR    bool

	seed       int64
	variant    string
	pop        int
	maxEvals   int
	timeBudget time.Duration
	topK       int
}

type scoredCandidate struct {
	Eval   int
	Score  float64
	Params piano.Params
	Cand   candidate
}

type optimizationResult struct {
	best   scoredCandidate
	top    []scoredCandidate
	evals  int
	elapsed float64
}

// renderCandidate builds a synth from the candidate's denormalized params,
// strikes the fitting note, and returns the rendered mono waveform.
func renderCandidate(cfg *optimizationConfig, cand candidate) (piano.Params, []float64) {
	params := applyCandidate(cfg.baseParams, cfg.pianoDefs, cand)

	s := piano.NewSynthFromParams(float64(cfg.sampleRate), params)

	if cfg.synthIR {
		irp := applyIRCandidate(cfg.baseIR, cfg.irDefs, cand, len(cfg.pianoDefs))
		irCfg := irsynth.DefaultConfig()
		irCfg.SampleRate = cfg.sampleRate
		irCfg.Brightness = irp.Brightness
		irCfg.Density = irp.Density
		irCfg.LowDecayS = irp.LowDecayS
		irCfg.HighDecayS = irp.HighDecayS
		irCfg.Seed = cfg.seed
		if bodyIR, _, err := synthBody(irCfg); err == nil {
			s.SetBodyIR(bodyIR)
		}
	} else if params.BodyIRPath != "" {
		if ir, err := irfile.Load(params.BodyIRPath); err == nil {
			s.SetBodyIR(ir)
		}
	}

	s.NoteOn(cfg.note, cfg.velocity)

	frames := len(cfg.reference)
	if frames < cfg.sampleRate/4 {
		frames = cfg.sampleRate / 4
	}
	releaseAt := int(cfg.releaseAfter * float64(cfg.sampleRate))
	out := make([]float64, frames)
	block := make([]float64, 256)
	released := false
	rendered := 0
	for rendered < frames {
		n := len(block)
		if rendered+n > frames {
			n = frames - rendered
		}
		if !released && rendered >= releaseAt {
			s.NoteOff(cfg.note, 64)
			released = true
		}
		buf := block[:n]
		s.ProcessBlock(buf)
		copy(out[rendered:], buf)
		rendered += n
	}
	return params, out
}

// synthBody generates a mono body IR from cfg, converting irsynth's
// float32 output into the float64 samples piano.Synth.SetBodyIR expects.
// irsynth.BodyConfig has no density setting, so cfg.Density is not carried
// over and the ir_density knob does not change the generated body IR.
func synthBody(cfg irsynth.Config) ([]float64, []float32, error) {
	bodyCfg := irsynth.DefaultBodyConfig()
	bodyCfg.SampleRate = cfg.SampleRate
	bodyCfg.Seed = cfg.Seed
	bodyCfg.Brightness = cfg.Brightness
	bodyCfg.LowDecayS = cfg.LowDecayS
	bodyCfg.HighDecayS = cfg.HighDecayS
	f32, err := irsynth.GenerateBody(bodyCfg)
	if err != nil {
		return nil, nil, err
	}
	out := make([]float64, len(f32))
	for i, v := range f32 {
		out[i] = float64(v)
	}
	return out, f32, nil
}

func evaluateCandidate(cfg *optimizationConfig, cand candidate) scoredCandidate {
	params, rendered := renderCandidate(cfg, cand)
	metrics := analysis.Compare(cfg.reference, rendered, cfg.sampleRate)
	return scoredCandidate{Score: metrics.Score, Params: params, Cand: cand}
}

func newMayflyConfig(variant string, pop int, dims int, iters int) (*mayfly.Config, error) {
	var cfg *mayfly.Config
	switch variant {
	case "ma":
		cfg = mayfly.NewDefaultConfig()
	case "desma":
		cfg = mayfly.NewDESMAConfig()
	case "olce":
		cfg = mayfly.NewOLCEConfig()
	case "eobbma":
		cfg = mayfly.NewEOBBMAConfig()
	case "gsasma":
		cfg = mayfly.NewGSASMAConfig()
	case "mpma":
		cfg = mayfly.NewMPMAConfig()
	case "aoblmoa":
		cfg = mayfly.NewAOBLMOAConfig()
	default:
		return nil, fmt.Errorf("unsupported mayfly variant %q", variant)
	}
	cfg.ProblemSize = dims
	cfg.LowerBound = 0.0
	cfg.UpperBound = 1.0
	cfg.MaxIterations = iters
	cfg.NPop = pop
	cfg.NPopF = pop
	cfg.NC = 2 * pop
	cfg.NM = maxInt(1, int(math.Round(0.05*float64(pop))))
	return cfg, nil
}

func runMayfly(cfg *mayfly.Config) (result *mayfly.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mayfly panic: %v", r)
		}
	}()
	return mayfly.Optimize(cfg)
}

// runOptimization runs successive bounded mayfly rounds until maxEvals or
// timeBudget is exhausted, tracking the best candidate seen across rounds
// and a top-K leaderboard for the report.
func runOptimization(cfg *optimizationConfig) (*optimizationResult, error) {
	dims := len(cfg.pianoDefs)
	if cfg.synthIR {
		dims += len(cfg.irDefs)
	}

	start := time.Now()
	deadline := start.Add(cfg.timeBudget)
	evals := 0
	round := 0

	var best scoredCandidate
	haveBest := false
	var top []scoredCandidate

	for evals < cfg.maxEvals && time.Now().Before(deadline) {
		round++
		remaining := cfg.maxEvals - evals
		roundBudget := minInt(remaining, 8*cfg.pop)
		iters := maxInt(1, roundBudget/(2*cfg.pop))

		mcfg, err := newMayflyConfig(cfg.variant, cfg.pop, dims, iters)
		if err != nil {
			return nil, err
		}
		mcfg.Rand = rand.New(rand.NewSource(cfg.seed + int64(round)*7919))
		mcfg.ObjectiveFunc = func(pos []float64) float64 {
			if evals >= cfg.maxEvals || time.Now().After(deadline) {
				if haveBest {
					return best.Score + 1.0
				}
				return 1.0
			}
			evals++
			cand := candidate{Vals: append([]float64(nil), pos...)}
			sc := evaluateCandidate(cfg, cand)
			sc.Eval = evals

			top = append(top, sc)
			sort.Slice(top, func(i, j int) bool { return top[i].Score < top[j].Score })
			if len(top) > cfg.topK {
				top = top[:cfg.topK]
			}
			if !haveBest || sc.Score < best.Score {
				best = sc
				haveBest = true
				fmt.Printf("improved eval=%d score=%.4f\n", sc.Eval, sc.Score)
			}
			return sc.Score
		}

		if _, err := runMayfly(mcfg); err != nil {
			fmt.Printf("mayfly round %d failed: %v\n", round, err)
		}
	}

	if !haveBest {
		return nil, fmt.Errorf("no candidate evaluated before deadline")
	}
	return &optimizationResult{best: best, top: top, evals: evals, elapsed: time.Since(start).Seconds()}, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
