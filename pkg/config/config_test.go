package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTuning(t *testing.T) {
	tn := DefaultTuning()

	if tn.Ring.BaseSpacing <= 0 {
		t.Errorf("expected positive base spacing, got %f", tn.Ring.BaseSpacing)
	}
	if tn.Pack.ColumnCap <= 0 {
		t.Errorf("expected positive column cap, got %d", tn.Pack.ColumnCap)
	}
	if tn.Gesture.PanDecay <= 0 || tn.Gesture.PanDecay >= 1 {
		t.Errorf("pan decay must be in (0,1), got %f", tn.Gesture.PanDecay)
	}
	if len(tn.Palette) == 0 {
		t.Error("expected non-empty palette")
	}
}

func TestLoadTuning_NonExistent(t *testing.T) {
	tn, err := LoadTuning("/nonexistent/path/tuning.yaml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if tn.Ring.BaseSpacing != DefaultTuning().Ring.BaseSpacing {
		t.Errorf("expected default tuning, got base spacing %f", tn.Ring.BaseSpacing)
	}
}

func TestLoadTuning_PartialFileFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")

	content := `
ring:
  base_spacing: 400
pack:
  column_cap: 6
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	tn, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tn.Ring.BaseSpacing != 400 {
		t.Errorf("expected base spacing 400, got %f", tn.Ring.BaseSpacing)
	}
	if tn.Pack.ColumnCap != 6 {
		t.Errorf("expected column cap 6, got %d", tn.Pack.ColumnCap)
	}
	// Unset knobs fall back to defaults.
	if tn.Pack.Padding != DefaultTuning().Pack.Padding {
		t.Errorf("expected default padding, got %f", tn.Pack.Padding)
	}
	if len(tn.Palette) == 0 {
		t.Error("expected default palette for sparse file")
	}
}

func TestLoadTuning_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	if err := os.WriteFile(path, []byte("ring: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTuning(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "tuning.yaml")

	tn := DefaultTuning()
	tn.Ring.BaseSpacing = 512
	tn.Pack.GroupsPerRow = 5

	if err := SaveTuning(path, tn); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Ring.BaseSpacing != 512 {
		t.Errorf("round trip lost base spacing: %f", got.Ring.BaseSpacing)
	}
	if got.Pack.GroupsPerRow != 5 {
		t.Errorf("round trip lost groups per row: %d", got.Pack.GroupsPerRow)
	}
}

func TestDepthConstants(t *testing.T) {
	if MaxDateDepth != 2 {
		t.Errorf("date depth bound = %d, want 2", MaxDateDepth)
	}
	if MaxLocationDepth != 5 {
		t.Errorf("location depth bound = %d, want 5", MaxLocationDepth)
	}
}
