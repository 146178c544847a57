package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Recorder receives build measurements. internal/metrics provides the
// Prometheus implementation.
type Recorder interface {
	ObservePhase(phase string, d time.Duration, err error)
	ObserveComponents(kind string, n int)
}

type nopRecorder struct{}

func (nopRecorder) ObservePhase(string, time.Duration, error) {}
func (nopRecorder) ObserveComponents(string, int)             {}

// Pipeline runs the five build phases over a component tree with logging,
// tracing and metrics.
type Pipeline struct {
	logger   *slog.Logger
	tracer   trace.Tracer
	recorder Recorder
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

func WithLogger(l *slog.Logger) PipelineOption {
	return func(p *Pipeline) { p.logger = l }
}

func WithTracer(t trace.Tracer) PipelineOption {
	return func(p *Pipeline) { p.tracer = t }
}

func WithRecorder(r Recorder) PipelineOption {
	return func(p *Pipeline) { p.recorder = r }
}

func NewPipeline(opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		logger:   slog.Default(),
		tracer:   noop.NewTracerProvider().Tracer("brim/core"),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Build validates the names in the tree and runs all five phases on root.
// It stops at the first error.
func (p *Pipeline) Build(ctx context.Context, root Component) error {
	ctx, span := p.tracer.Start(ctx, "brim.build", trace.WithAttributes(
		attribute.String("brim.root", root.Name()),
		attribute.String("brim.root_type", root.Type().Name),
	))
	defer span.End()

	counts, err := CheckNames(root)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.logger.Error("invalid model tree", "root", root.Name(), "error", err)
		return err
	}
	total := 0
	for kind, n := range counts {
		p.recorder.ObserveComponents(kind.String(), n)
		total += n
	}
	span.SetAttributes(attribute.Int("brim.components", total))

	for _, phase := range Phases {
		if err := p.runPhase(ctx, root, phase); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}
	p.logger.Info("model built", "root", root.Name(), "components", total)
	return nil
}

func (p *Pipeline) runPhase(ctx context.Context, root Component, phase Phase) error {
	_, span := p.tracer.Start(ctx, phase.String())
	defer span.End()

	start := time.Now()
	err := Run(root, phase)
	elapsed := time.Since(start)
	p.recorder.ObservePhase(phase.String(), elapsed, err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.logger.Error("phase failed", "root", root.Name(), "phase", phase.String(), "error", err)
		return err
	}
	p.logger.Debug("phase done", "root", root.Name(), "phase", phase.String(), "duration", elapsed)
	return nil
}

// CheckNames verifies that every component in the tree has an identifier
// name that no other component uses. It returns the number of components
// per kind.
func CheckNames(root Component) (map[Kind]int, error) {
	seen := make(map[string]Component)
	counts := make(map[Kind]int)
	err := Walk(root, func(c Component) error {
		name := c.Name()
		if !IsIdentifier(name) {
			return fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
		if other, ok := seen[name]; ok {
			if other == c {
				return fmt.Errorf("%w: %s appears twice in the tree", ErrDuplicateName, name)
			}
			return fmt.Errorf("%w: %s", ErrDuplicateName, name)
		}
		seen[name] = c
		counts[c.Type().Kind]++
		return nil
	})
	return counts, err
}
