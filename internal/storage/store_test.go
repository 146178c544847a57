package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/brim/internal/config"
	"github.com/san-kum/brim/internal/experiment"
)

func build(t *testing.T, preset string) *experiment.Result {
	t.Helper()
	quiet := experiment.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	res, err := experiment.New(config.GetPreset(preset), quiet).Run(context.Background())
	if err != nil {
		t.Fatalf("build %s: %v", preset, err)
	}
	return res
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	res := build(t, "rolling_disc")
	runID, err := st.Save(res)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID != res.ID {
		t.Errorf("expected run id %s, got %s", res.ID, runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Name != "rolling_disc" || meta.RootType != "RollingDisc" {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Counts["coordinates"] != 5 || meta.Counts["nonholonomic"] != 2 {
		t.Errorf("unexpected counts %v", meta.Counts)
	}
	if len(meta.Coordinates) != 5 || meta.Coordinates[0] != "rolling_disc_q1" {
		t.Errorf("unexpected coordinates %v", meta.Coordinates)
	}

	symbols, err := st.LoadSymbols(runID)
	if err != nil {
		t.Fatalf("load symbols failed: %v", err)
	}
	want := Symbols(res)
	if len(symbols) != len(want) {
		t.Fatalf("expected %d symbols, got %d", len(want), len(symbols))
	}
	found := false
	for i, rec := range symbols {
		if rec != want[i] {
			t.Errorf("symbol %d: got %+v, want %+v", i, rec, want[i])
		}
		if rec.Name == "rolling_disc_g" {
			found = true
			if !rec.HasValue || rec.Value != 9.81 {
				t.Errorf("gravity not stored: %+v", rec)
			}
		}
	}
	if !found {
		t.Error("gravity symbol missing")
	}
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runs, err := New(filepath.Join(dir, "missing")).List()
	if err != nil || len(runs) != 0 {
		t.Fatalf("expected an empty list for a missing directory, got %v, %v", runs, err)
	}

	for _, preset := range []string{"rolling_disc", "rider"} {
		if _, err := st.Save(build(t, preset)); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "not_a_run"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Name != "rolling_disc" {
		t.Errorf("expected the oldest run first, got %s", runs[0].Name)
	}
}

func TestExportJSON(t *testing.T) {
	res := build(t, "rolling_disc")
	var buf bytes.Buffer
	if err := ExportJSON(&buf, res); err != nil {
		t.Fatal(err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatal(err)
	}
	if data.ID != res.ID {
		t.Errorf("expected id %s, got %s", res.ID, data.ID)
	}
	if len(data.Kinematic) != 5 || len(data.Nonholonomic) != 2 || len(data.Holonomic) != 0 {
		t.Errorf("unexpected equations: %d kdes, %d nonholonomic, %d holonomic",
			len(data.Kinematic), len(data.Nonholonomic), len(data.Holonomic))
	}
	if len(data.Symbols) == 0 {
		t.Error("no symbols exported")
	}
}
