package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/waveguide-piano/piano"
)

// File is the JSON schema for piano presets. Every field is optional; a
// field left out of the JSON file leaves the corresponding default
// untouched.
type File struct {
	SympatheticResonance *float64 `json:"sympathetic_resonance"`
	BendRange            *float64 `json:"bend_range"`
	Volume               *float64 `json:"volume"`

	BridgeCoefficientBypassMin *float64 `json:"bridge_coefficient_bypass_min"`
	BridgeCoefficientBypassMax *float64 `json:"bridge_coefficient_bypass_max"`
	ResonanceBody              *float64 `json:"resonance_body"`

	CutoffDCBlocker *float64 `json:"cutoff_dc_blocker"`
	CutoffBridgeMin *float64 `json:"cutoff_bridge_min"`
	CutoffBridgeMax *float64 `json:"cutoff_bridge_max"`
	CutoffDamper    *float64 `json:"cutoff_damper"`
	CutoffFinger    *float64 `json:"cutoff_finger"`

	CoefficientTransitionFingerInterpolationExponent *float64 `json:"coefficient_transition_finger_interpolation_exponent"`
	CoefficientTransitionFingerMax                    *float64 `json:"coefficient_transition_finger_max"`
	CoefficientTransitionFingerMin                     *float64 `json:"coefficient_transition_finger_min"`
	CoefficientTransitionFingerNoteOff                 *float64 `json:"coefficient_transition_finger_note_off"`
	CoefficientTransitionDamper                        *float64 `json:"coefficient_transition_damper"`

	HammerStrikePositionCenter    *float64 `json:"hammer_strike_position_center"`
	HammerStrikePositionVariation *float64 `json:"hammer_strike_position_variation"`

	BodyIRPath string `json:"body_ir_path"`
	Seed       *int64 `json:"seed"`
}

// LoadJSON loads a preset JSON file and applies it on top of
// piano.DefaultParams.
func LoadJSON(path string) (piano.Params, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return piano.Params{}, err
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return piano.Params{}, err
	}

	p := piano.DefaultParams()
	if err := ApplyFile(&p, &f); err != nil {
		return piano.Params{}, err
	}

	if p.BodyIRPath != "" && !filepath.IsAbs(p.BodyIRPath) {
		base := filepath.Dir(path)
		p.BodyIRPath = filepath.Clean(filepath.Join(base, p.BodyIRPath))
	}
	return p, nil
}

// ApplyFile applies a parsed preset file onto an existing params value.
func ApplyFile(dst *piano.Params, f *File) error {
	if dst == nil {
		return fmt.Errorf("nil destination params")
	}
	if f == nil {
		return nil
	}

	if f.SympatheticResonance != nil {
		if *f.SympatheticResonance <= 0 {
			return fmt.Errorf("sympathetic_resonance must be > 0")
		}
		dst.SympatheticResonance = *f.SympatheticResonance
	}
	if f.BendRange != nil {
		if *f.BendRange < 0 {
			return fmt.Errorf("bend_range must be >= 0")
		}
		dst.BendRange = *f.BendRange
	}
	if f.Volume != nil {
		if *f.Volume <= 0 {
			return fmt.Errorf("volume must be > 0")
		}
		dst.Volume = *f.Volume
	}
	if f.BridgeCoefficientBypassMin != nil {
		if *f.BridgeCoefficientBypassMin < 0 || *f.BridgeCoefficientBypassMin > 1 {
			return fmt.Errorf("bridge_coefficient_bypass_min must be in [0,1]")
		}
		dst.BridgeCoefficientBypassMin = *f.BridgeCoefficientBypassMin
	}
	if f.BridgeCoefficientBypassMax != nil {
		if *f.BridgeCoefficientBypassMax < 0 || *f.BridgeCoefficientBypassMax > 1 {
			return fmt.Errorf("bridge_coefficient_bypass_max must be in [0,1]")
		}
		dst.BridgeCoefficientBypassMax = *f.BridgeCoefficientBypassMax
	}
	if f.ResonanceBody != nil {
		if *f.ResonanceBody < 0 || *f.ResonanceBody > 1 {
			return fmt.Errorf("resonance_body must be in [0,1]")
		}
		dst.ResonanceBody = *f.ResonanceBody
	}
	if f.CutoffDCBlocker != nil {
		if *f.CutoffDCBlocker <= 0 {
			return fmt.Errorf("cutoff_dc_blocker must be > 0")
		}
		dst.CutoffDCBlocker = *f.CutoffDCBlocker
	}
	if f.CutoffBridgeMin != nil {
		if *f.CutoffBridgeMin <= 0 {
			return fmt.Errorf("cutoff_bridge_min must be > 0")
		}
		dst.CutoffBridgeMin = *f.CutoffBridgeMin
	}
	if f.CutoffBridgeMax != nil {
		if *f.CutoffBridgeMax <= 0 {
			return fmt.Errorf("cutoff_bridge_max must be > 0")
		}
		dst.CutoffBridgeMax = *f.CutoffBridgeMax
	}
	if f.CutoffDamper != nil {
		if *f.CutoffDamper <= 0 {
			return fmt.Errorf("cutoff_damper must be > 0")
		}
		dst.CutoffDamper = *f.CutoffDamper
	}
	if f.CutoffFinger != nil {
		if *f.CutoffFinger <= 0 {
			return fmt.Errorf("cutoff_finger must be > 0")
		}
		dst.CutoffFinger = *f.CutoffFinger
	}
	if f.CoefficientTransitionFingerInterpolationExponent != nil {
		if *f.CoefficientTransitionFingerInterpolationExponent <= 0 {
			return fmt.Errorf("coefficient_transition_finger_interpolation_exponent must be > 0")
		}
		dst.CoefficientTransitionFingerInterpolationExponent = *f.CoefficientTransitionFingerInterpolationExponent
	}
	if f.CoefficientTransitionFingerMax != nil {
		if *f.CoefficientTransitionFingerMax <= 0 {
			return fmt.Errorf("coefficient_transition_finger_max must be > 0")
		}
		dst.CoefficientTransitionFingerMax = *f.CoefficientTransitionFingerMax
	}
	if f.CoefficientTransitionFingerMin != nil {
		if *f.CoefficientTransitionFingerMin <= 0 {
			return fmt.Errorf("coefficient_transition_finger_min must be > 0")
		}
		dst.CoefficientTransitionFingerMin = *f.CoefficientTransitionFingerMin
	}
	if f.CoefficientTransitionFingerNoteOff != nil {
		if *f.CoefficientTransitionFingerNoteOff <= 0 {
			return fmt.Errorf("coefficient_transition_finger_note_off must be > 0")
		}
		dst.CoefficientTransitionFingerNoteOff = *f.CoefficientTransitionFingerNoteOff
	}
	if f.CoefficientTransitionDamper != nil {
		if *f.CoefficientTransitionDamper <= 0 {
			return fmt.Errorf("coefficient_transition_damper must be > 0")
		}
		dst.CoefficientTransitionDamper = *f.CoefficientTransitionDamper
	}
	if f.HammerStrikePositionCenter != nil {
		if *f.HammerStrikePositionCenter <= 0 || *f.HammerStrikePositionCenter >= 1 {
			return fmt.Errorf("hammer_strike_position_center must be in (0,1)")
		}
		dst.HammerStrikePositionCenter = *f.HammerStrikePositionCenter
	}
	if f.HammerStrikePositionVariation != nil {
		if *f.HammerStrikePositionVariation < 0 {
			return fmt.Errorf("hammer_strike_position_variation must be >= 0")
		}
		dst.HammerStrikePositionVariation = *f.HammerStrikePositionVariation
	}
	if f.BodyIRPath != "" {
		dst.BodyIRPath = strings.TrimSpace(f.BodyIRPath)
	}
	if f.Seed != nil {
		dst.Seed = *f.Seed
	}

	return nil
}

// ptr is a tiny helper for populating File's optional pointer fields from a
// concrete Params value.
func ptr(v float64) *float64 { return &v }

// ToFile converts a fully-resolved Params value into a File with every
// field populated, suitable for writing back out as a preset.
func ToFile(p piano.Params) *File {
	return &File{
		SympatheticResonance:       ptr(p.SympatheticResonance),
		BendRange:                  ptr(p.BendRange),
		Volume:                     ptr(p.Volume),
		BridgeCoefficientBypassMin: ptr(p.BridgeCoefficientBypassMin),
		BridgeCoefficientBypassMax: ptr(p.BridgeCoefficientBypassMax),
		ResonanceBody:              ptr(p.ResonanceBody),
		CutoffDCBlocker:            ptr(p.CutoffDCBlocker),
		CutoffBridgeMin:            ptr(p.CutoffBridgeMin),
		CutoffBridgeMax:            ptr(p.CutoffBridgeMax),
		CutoffDamper:               ptr(p.CutoffDamper),
		CutoffFinger:               ptr(p.CutoffFinger),
		CoefficientTransitionFingerInterpolationExponent: ptr(p.CoefficientTransitionFingerInterpolationExponent),
		CoefficientTransitionFingerMax:                    ptr(p.CoefficientTransitionFingerMax),
		CoefficientTransitionFingerMin:                     ptr(p.CoefficientTransitionFingerMin),
		CoefficientTransitionFingerNoteOff:                 ptr(p.CoefficientTransitionFingerNoteOff),
		CoefficientTransitionDamper:                        ptr(p.CoefficientTransitionDamper),
		HammerStrikePositionCenter:                         ptr(p.HammerStrikePositionCenter),
		HammerStrikePositionVariation:                       ptr(p.HammerStrikePositionVariation),
		BodyIRPath:                                          p.BodyIRPath,
		Seed:                                                &p.Seed,
	}
}

// SaveJSON writes p out as an indented preset JSON file, creating parent
// directories as needed.
func SaveJSON(path string, p piano.Params) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(ToFile(p), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
