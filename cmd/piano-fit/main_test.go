package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/waveguide-piano/piano"
)

func TestLoadBaseParamsDefaultsWhenNoPath(t *testing.T) {
	p, err := loadBaseParams("", 42)
	if err != nil {
		t.Fatalf("loadBaseParams: %v", err)
	}
	if p.Seed != 42 {
		t.Fatalf("expected seed override 42, got %v", p.Seed)
	}
	if p.Volume != piano.DefaultParams().Volume {
		t.Fatalf("expected default volume carried through")
	}
}

func TestLoadBaseParamsFromPresetFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preset.json")
	if err := os.WriteFile(path, []byte(`{"volume": 2.5}`), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}
	p, err := loadBaseParams(path, 1)
	if err != nil {
		t.Fatalf("loadBaseParams: %v", err)
	}
	if p.Volume != 2.5 {
		t.Fatalf("expected preset volume override, got %v", p.Volume)
	}
}

func TestDimsForIncludesIRDimsOnlyWhenEnabled(t *testing.T) {
	cfg := &optimizationConfig{pianoDefs: pianoKnobs(), irDefs: bodyIRKnobs()}
	without := dimsFor(cfg)
	if without != len(cfg.pianoDefs) {
		t.Fatalf("expected %d dims without IR search, got %d", len(cfg.pianoDefs), without)
	}
	cfg.synthIR = true
	with := dimsFor(cfg)
	if with != len(cfg.pianoDefs)+len(cfg.irDefs) {
		t.Fatalf("expected %d dims with IR search, got %d", len(cfg.pianoDefs)+len(cfg.irDefs), with)
	}
}
