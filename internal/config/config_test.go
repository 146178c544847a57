package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/brim/internal/core"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Root.Type != "RollingDisc" {
		t.Errorf("expected root RollingDisc, got %s", cfg.Root.Type)
	}
	if len(cfg.Root.Slots) != 3 {
		t.Errorf("expected 3 slots, got %d", len(cfg.Root.Slots))
	}
}

func TestPresetsAreValid(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
	if GetPreset("unknown") != nil {
		t.Error("expected nil for an unknown preset")
	}
}

func TestGetPresetReturnsCopy(t *testing.T) {
	cfg := GetPreset("rolling_disc")
	cfg.Root.Slots["disc"].Type = "ToroidalWheel"
	cfg.Root.Slots["tyre"].Options = map[string]any{"on_ground": false}

	again := GetPreset("rolling_disc")
	if again.Root.Slots["disc"].Type != "KnifeEdgeWheel" {
		t.Errorf("preset was modified through a copy: %s", again.Root.Slots["disc"].Type)
	}
	if again.Root.Slots["tyre"].Options != nil {
		t.Error("preset options were modified through a copy")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	cfg := GetPreset("rider_arms")
	cfg.Params = "params.yaml"
	cfg.Root.Slots["pelvis"].Options = map[string]any{"label": "p"}

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Params != "params.yaml" {
		t.Errorf("expected params path, got %q", loaded.Params)
	}
	arm := loaded.Root.Slots["left_arm"]
	if arm == nil || len(arm.LoadGroups) != 1 || arm.LoadGroups[0].Type != "PinElbowTorque" {
		t.Fatalf("load groups not restored: %+v", arm)
	}
	if loaded.Root.Slots["pelvis"].Options["label"] != "p" {
		t.Errorf("options not restored: %v", loaded.Root.Slots["pelvis"].Options)
	}
}

func TestLoadRejectsInvalidGraph(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing type", "root:\n  name: disc\n"},
		{"invalid name", "root:\n  type: RollingDisc\n  name: 1disc\n"},
		{"invalid child", "root:\n  type: RollingDisc\n  name: disc\n  slots:\n    tyre:\n      name: tyre\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "model.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected an error")
			}
		})
	}

	path := filepath.Join(t.TempDir(), "model.yaml")
	_ = os.WriteFile(path, []byte("root:\n  type: RollingDisc\n  name: bad-name\n"), 0644)
	if _, err := Load(path); !errors.Is(err, core.ErrInvalidName) {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}
}
