package models

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/san-kum/brim/internal/bicycle"
	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/mechanics"
	"github.com/san-kum/brim/internal/params"
	"github.com/san-kum/brim/internal/sym"
)

func buildRollingDisc(t *testing.T) (*RollingDisc, *mechanics.System) {
	t.Helper()
	disc := NewRollingDisc("rolling_disc")
	if err := disc.SetDisc(bicycle.NewKnifeEdgeWheel("disc")); err != nil {
		t.Fatal(err)
	}
	if err := disc.SetTyre(bicycle.NewNonHolonomicTyre("tyre")); err != nil {
		t.Fatal(err)
	}
	if err := disc.SetGround(bicycle.NewFlatGround("ground")); err != nil {
		t.Fatal(err)
	}

	pipeline := core.NewPipeline(core.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err := pipeline.Build(context.Background(), disc); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	sys, err := core.ToSystem(disc)
	if err != nil {
		t.Fatal(err)
	}
	return disc, sys
}

func TestRollingDiscNonholonomic(t *testing.T) {
	disc, sys := buildRollingDisc(t)

	vals := sym.Values{}
	q := []float64{0.1, 0.3, 0.8, -0.4, 2.5}
	u := []float64{-0.3135180192062244, -0.3228102409047853, 0.4, 0.9, 1.0}
	for i, qi := range disc.Q() {
		vals.Set(qi, q[i])
	}
	for i, ui := range disc.U() {
		vals.Set(ui, u[i])
	}
	m, r := 1.23, 0.45
	wheel := disc.Disc()
	vals.Set(wheel.Body().Mass, m)
	vals.Set(wheel.Radius(), r)
	vals.Set(wheel.Core().Symbol("ixx"), m*r*r/4)
	vals.Set(wheel.Core().Symbol("iyy"), m*r*r/2)
	vals.Set(disc.Gravity(), 9.81)

	kdd, err := sys.KinDiffDict()
	if err != nil {
		t.Fatal(err)
	}

	fnh := sys.Nonholonomic()
	if len(fnh) != 2 {
		t.Fatalf("expected 2 nonholonomic constraints, got %d", len(fnh))
	}
	if len(sys.Holonomic()) != 0 {
		t.Errorf("expected no holonomic constraints, got %d", len(sys.Holonomic()))
	}
	for i, c := range fnh {
		got, err := sym.Eval(sym.Subs(c, kdd), vals)
		if err != nil {
			t.Fatalf("constraint %d: %v", i, err)
		}
		if math.Abs(got) > 1e-8 {
			t.Errorf("constraint %d = %g, want 0", i, got)
		}
	}
}

func TestRollingDiscSystem(t *testing.T) {
	disc, sys := buildRollingDisc(t)

	if err := sys.Validate(); err != nil {
		t.Fatal(err)
	}
	if len(sys.Q()) != 5 || len(sys.U()) != 5 {
		t.Errorf("expected 5 coordinates and speeds, got %d and %d", len(sys.Q()), len(sys.U()))
	}
	if len(sys.Loads()) != 1 {
		t.Errorf("expected one gravity load, got %d", len(sys.Loads()))
	}
	if _, ok := sys.GetBody("disc"); !ok {
		t.Error("disc body missing from the system")
	}
	if got := disc.DependentSpeeds(); len(got) != 2 || got[0] != disc.U()[0] {
		t.Errorf("unexpected dependent speeds %v", got)
	}
	if disc.State() != core.ConstraintsDefined {
		t.Errorf("expected state %v, got %v", core.ConstraintsDefined, disc.State())
	}
}

func TestRollingDiscDescriptions(t *testing.T) {
	disc, _ := buildRollingDisc(t)
	desc := disc.Descriptions()

	for _, qi := range disc.Q() {
		if desc[qi] == "" {
			t.Errorf("no description for %s", qi)
		}
	}
	for _, ui := range disc.U() {
		if desc[ui] == "" {
			t.Errorf("no description for %s", ui)
		}
	}
	if desc[disc.Disc().Radius()] == "" {
		t.Error("descriptions of the disc are not aggregated")
	}
}

func TestTyreDescriptionsIncludeWheelAndGround(t *testing.T) {
	disc, _ := buildRollingDisc(t)
	desc := disc.Tyre().Core().Descriptions()

	if desc[disc.Disc().Radius()] == "" {
		t.Error("tyre descriptions miss the radius of its wheel")
	}
	for e, d := range disc.Ground().Core().Descriptions() {
		if desc[e] != d {
			t.Errorf("tyre descriptions miss %s of the ground", e)
		}
	}
}

func TestRollingDiscParamValues(t *testing.T) {
	disc, _ := buildRollingDisc(t)
	d := params.Benchmark()
	d.Gravity = 9.80665

	vals := core.ParamValues(disc, d)
	if vals[disc.Gravity().String()] != 9.80665 {
		t.Errorf("expected gravity 9.80665, got %v", vals[disc.Gravity().String()])
	}
}

func TestRollingDiscMissingTyre(t *testing.T) {
	disc := NewRollingDisc("rolling_disc")
	_ = disc.SetDisc(bicycle.NewKnifeEdgeWheel("disc"))
	_ = disc.SetGround(bicycle.NewFlatGround("ground"))

	err := core.DefineConnections(disc)
	if err == nil {
		t.Fatal("expected an error for the missing tyre")
	}
	var slotErr *core.SlotError
	if !errors.As(err, &slotErr) || slotErr.Slot != "tyre" {
		t.Errorf("expected a slot error for tyre, got %v", err)
	}
}

func TestRollingDiscRejectsWrongSlotType(t *testing.T) {
	disc := NewRollingDisc("rolling_disc")
	err := disc.SetSlot("disc", bicycle.NewFlatGround("ground"))
	if err == nil {
		t.Fatal("expected a type mismatch")
	}
}
