package core

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/brim/internal/params"
	"github.com/san-kum/brim/internal/sym"
)

type fakeRecorder struct {
	mu         sync.Mutex
	phases     []string
	failed     []string
	components map[string]int
}

func (r *fakeRecorder) ObservePhase(phase string, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.phases = append(r.phases, phase)
	if err != nil {
		r.failed = append(r.failed, phase)
	}
}

func (r *fakeRecorder) ObserveComponents(kind string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.components == nil {
		r.components = make(map[string]int)
	}
	r.components[kind] = n
}

func newTestPipeline(buf *bytes.Buffer, rec Recorder) *Pipeline {
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewPipeline(WithLogger(logger), WithRecorder(rec))
}

func TestPipelineBuild(t *testing.T) {
	var buf bytes.Buffer
	rec := &fakeRecorder{}
	vehicle, wheel, _, _ := vehicleTree(&[]string{})
	require.NoError(t, wheel.AddLoadGroups(newFixture(testBrake, "brake", &[]string{})))

	require.NoError(t, newTestPipeline(&buf, rec).Build(context.Background(), vehicle))

	assert.Equal(t, []string{"define_connections", "define_objects", "define_kinematics", "define_loads", "define_constraints"}, rec.phases)
	assert.Empty(t, rec.failed)
	assert.Equal(t, map[string]int{"model": 3, "connection": 1, "load group": 1}, rec.components)
	assert.Contains(t, buf.String(), "model built")
	assert.Contains(t, buf.String(), "phase done")

	sys, err := ToSystem(vehicle)
	require.NoError(t, err)
	assert.Len(t, sys.Holonomic(), 5)
	assert.Same(t, vehicle.System().Frame(), sys.Frame())
}

func TestPipelineBuildFailure(t *testing.T) {
	var buf bytes.Buffer
	rec := &fakeRecorder{}
	vehicle, _, _, tyre := vehicleTree(&[]string{})
	tyre.fail = LoadsDefined

	err := newTestPipeline(&buf, rec).Build(context.Background(), vehicle)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, []string{"define_loads"}, rec.failed)
	assert.Len(t, rec.phases, 4)
	assert.Contains(t, buf.String(), "phase failed")
	assert.Equal(t, KinematicsDefined, vehicle.State())
}

func TestCheckNames(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		vehicle, _, _, _ := vehicleTree(&[]string{})
		counts, err := CheckNames(vehicle)
		require.NoError(t, err)
		assert.Equal(t, 3, counts[KindModel])
		assert.Equal(t, 1, counts[KindConnection])
	})
	t.Run("duplicate", func(t *testing.T) {
		vehicle, _, _, _ := vehicleTree(&[]string{})
		mustSet(vehicle, "spare_wheel", newFixture(testWheel, "wheel", &[]string{}))
		_, err := CheckNames(vehicle)
		assert.ErrorIs(t, err, ErrDuplicateName)
	})
	t.Run("shared instance", func(t *testing.T) {
		vehicle, wheel, _, _ := vehicleTree(&[]string{})
		mustSet(vehicle, "spare_wheel", wheel)
		_, err := CheckNames(vehicle)
		assert.ErrorIs(t, err, ErrDuplicateName)
	})
	t.Run("invalid", func(t *testing.T) {
		vehicle, _, _, _ := vehicleTree(&[]string{})
		mustSet(vehicle, "spare_wheel", newFixture(testWheel, "spare wheel", &[]string{}))
		_, err := CheckNames(vehicle)
		assert.ErrorIs(t, err, ErrInvalidName)
	})
}

func TestBuildRejectsInvalidTreeBeforePhases(t *testing.T) {
	log := &[]string{}
	vehicle, _, _, _ := vehicleTree(log)
	mustSet(vehicle, "spare_wheel", newFixture(testWheel, "ground", log))

	err := NewPipeline(WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))).Build(context.Background(), vehicle)
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.Empty(t, *log)
}

func TestToSystemNeedsObjects(t *testing.T) {
	vehicle, _, _, _ := vehicleTree(&[]string{})
	_, err := ToSystem(vehicle)
	assert.ErrorIs(t, err, ErrNoSystem)
}

func TestParamValuesParentOverrides(t *testing.T) {
	vehicle, wheel, ground, _ := vehicleTree(&[]string{})
	wheel.params = sym.Values{"wheel_r": 0.3, "shared": 1}
	ground.params = sym.Values{"ground_g": 9.81}
	vehicle.params = sym.Values{"shared": 2}

	got := ParamValues(vehicle, params.Benchmark())
	assert.Equal(t, sym.Values{"wheel_r": 0.3, "ground_g": 9.81, "shared": 2}, got)
}

func TestSetOptions(t *testing.T) {
	wheel := newFixture(testWheel, "wheel", &[]string{})

	require.NoError(t, SetOptions(wheel, nil))
	require.NoError(t, SetOptions(wheel, map[string]any{"color": "red"}))
	assert.Equal(t, "red", wheel.options["color"])

	err := SetOptions(wheel, map[string]any{"size": 3})
	assert.ErrorIs(t, err, ErrUnknownOption)
	assert.Contains(t, err.Error(), "wheel")

	lg := &LoadGroup{}
	lg.Init(lg, LoadGroupBaseType, "plain")
	assert.ErrorIs(t, SetOptions(lg, map[string]any{"color": "red"}), ErrUnknownOption)
}

func TestSetOptionsReportsFirstNameInOrder(t *testing.T) {
	wheel := newFixture(testWheel, "wheel", &[]string{})
	opts := map[string]any{"weight": 1, "size": 2, "alpha": 3, "zeta": 4}
	for range 20 {
		err := SetOptions(wheel, opts)
		require.ErrorIs(t, err, ErrUnknownOption)
		assert.Contains(t, err.Error(), `"alpha"`)
	}

	lg := &LoadGroup{}
	lg.Init(lg, LoadGroupBaseType, "plain")
	for range 20 {
		assert.ErrorContains(t, SetOptions(lg, opts), `"alpha"`)
	}
}
