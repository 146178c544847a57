package params

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBenchmark(t *testing.T) {
	d := Benchmark()
	if v, ok := d.BicycleValue("rR"); !ok || v != 0.3 {
		t.Errorf("expected rR 0.3, got %v (%v)", v, ok)
	}
	if _, ok := d.RiderValue("l_thigh"); !ok {
		t.Error("expected l_thigh in rider parameters")
	}
	var nilData *Data
	if _, ok := nilData.BicycleValue("rR"); ok {
		t.Error("nil data should have no values")
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	if err := Save(path, Benchmark()); err != nil {
		t.Fatalf("save: %v", err)
	}
	d, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if d.Bicycle["IFyy"] != 0.28 {
		t.Errorf("expected IFyy 0.28, got %v", d.Bicycle["IFyy"])
	}
	if d.Name != "benchmark" {
		t.Errorf("expected name benchmark, got %q", d.Name)
	}
}

func TestLoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("bicycle:\n  rR: 0.4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	d, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if d.Gravity != 9.81 {
		t.Errorf("expected default gravity, got %v", d.Gravity)
	}
	if d.Rider == nil {
		t.Error("expected empty rider map")
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("bicycle: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
