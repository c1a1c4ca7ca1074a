package preset

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadJSONAppliesOverrides(t *testing.T) {
	dir := t.TempDir()
	irPath := filepath.Join(dir, "ir.raw")
	if err := os.WriteFile(irPath, []byte("fake"), 0o644); err != nil {
		t.Fatalf("write ir: %v", err)
	}
	presetPath := filepath.Join(dir, "preset.json")
	content := `{
  "sympathetic_resonance": 6.5,
  "bend_range": 1.5,
  "volume": 1.8,
  "bridge_coefficient_bypass_min": 0.0,
  "bridge_coefficient_bypass_max": 0.1,
  "resonance_body": 0.9,
  "cutoff_dc_blocker": 25,
  "cutoff_bridge_min": 600,
  "cutoff_bridge_max": 20000,
  "cutoff_damper": 700,
  "cutoff_finger": 450,
  "coefficient_transition_finger_interpolation_exponent": 12,
  "coefficient_transition_finger_max": 90000,
  "coefficient_transition_finger_min": 8,
  "coefficient_transition_finger_note_off": 18,
  "coefficient_transition_damper": 9,
  "hammer_strike_position_center": 0.48,
  "hammer_strike_position_variation": 0.04,
  "body_ir_path": "ir.raw",
  "seed": 7
}`
	if err := os.WriteFile(presetPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}

	p, err := LoadJSON(presetPath)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if p.SympatheticResonance != 6.5 {
		t.Fatalf("sympathetic_resonance mismatch: %v", p.SympatheticResonance)
	}
	if p.BodyIRPath != irPath {
		t.Fatalf("ir path mismatch: got=%q want=%q", p.BodyIRPath, irPath)
	}
	if p.Seed != 7 {
		t.Fatalf("seed mismatch: %v", p.Seed)
	}
	if p.CutoffDamper != 700 || p.CutoffFinger != 450 {
		t.Fatalf("cutoff fields mismatch: %+v", p)
	}
}

func TestLoadJSONMissingFieldsKeepDefaults(t *testing.T) {
	dir := t.TempDir()
	presetPath := filepath.Join(dir, "sparse.json")
	if err := os.WriteFile(presetPath, []byte(`{"volume": 3.0}`), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}

	p, err := LoadJSON(presetPath)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if p.Volume != 3.0 {
		t.Fatalf("expected volume override applied, got %v", p.Volume)
	}
	if p.CutoffDamper != 600 {
		t.Fatalf("expected default cutoff_damper untouched, got %v", p.CutoffDamper)
	}
}

func TestLoadJSONRejectsInvalidValue(t *testing.T) {
	dir := t.TempDir()
	presetPath := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(presetPath, []byte(`{"volume": -1}`), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}
	if _, err := LoadJSON(presetPath); err == nil {
		t.Fatalf("expected error for negative volume")
	}
}

func TestLoadJSONMissingFileErrors(t *testing.T) {
	if _, err := LoadJSON("/nonexistent/preset.json"); err == nil {
		t.Fatalf("expected error for missing preset file")
	}
}
