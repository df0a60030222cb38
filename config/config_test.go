package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
	def := DefaultConfig()
	if cfg.Language != def.Language || cfg.PageSegMode != def.PageSegMode {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestValidate_ClampsBadValues(t *testing.T) {
	cfg := &Config{
		CaptureIndex:      -3,
		CaptureIntervalMs: 0,
		PageSegMode:       42,
		OCRTimeoutSeconds: -1,
		BilateralDiameter: 4, // even; must become odd
		AdaptiveBlockSize: 2,
		MinConfidence:     1.5,
	}
	_ = cfg.Validate()
	if cfg.CaptureIndex != 0 {
		t.Fatalf("capture index not clamped: %d", cfg.CaptureIndex)
	}
	if cfg.PageSegMode != 6 {
		t.Fatalf("psm not reset: %d", cfg.PageSegMode)
	}
	if cfg.BilateralDiameter%2 == 0 {
		t.Fatalf("bilateral diameter should be odd: %d", cfg.BilateralDiameter)
	}
	if cfg.AdaptiveBlockSize%2 == 0 || cfg.AdaptiveBlockSize < 3 {
		t.Fatalf("adaptive block size invalid: %d", cfg.AdaptiveBlockSize)
	}
	if cfg.MinConfidence != 0.10 {
		t.Fatalf("min confidence not reset: %f", cfg.MinConfidence)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := DefaultConfig()
	cfg.CaptureIndex = 1
	cfg.Language = "deu"
	cfg.LastDir = "/tmp/scans"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.CaptureIndex != 1 || got.Language != "deu" || got.LastDir != "/tmp/scans" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestLoad_BadJSONReturnsDefaultsWithError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if cfg == nil || cfg.Language != "eng" {
		t.Fatalf("expected defaults on error, got %+v", cfg)
	}
}
