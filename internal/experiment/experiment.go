package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/san-kum/brim/internal/config"
	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/mechanics"
	"github.com/san-kum/brim/internal/params"
	"github.com/san-kum/brim/internal/sym"

	// Component types register themselves on import.
	_ "github.com/san-kum/brim/internal/bicycle"
	_ "github.com/san-kum/brim/internal/models"
	_ "github.com/san-kum/brim/internal/rider"
)

// SystemObserver is implemented by recorders that also track the size of
// assembled systems.
type SystemObserver interface {
	ObserveSystem(s *mechanics.System)
}

// Result is a built model.
type Result struct {
	ID         string
	Name       string
	Root       core.Component
	System     *mechanics.System
	Components map[string]int
	Params     sym.Values
	Started    time.Time
	Duration   time.Duration
}

type Experiment struct {
	cfg      *config.Config
	registry *core.Registry
	params   *params.Data
	logger   *slog.Logger
	tracer   trace.Tracer
	recorder core.Recorder
}

type Option func(*Experiment)

// WithRegistry replaces the default registry used to resolve type names.
func WithRegistry(r *core.Registry) Option {
	return func(e *Experiment) { e.registry = r }
}

// WithParams sets the parameter data, overriding the config's params file.
func WithParams(d *params.Data) Option {
	return func(e *Experiment) { e.params = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Experiment) { e.logger = l }
}

func WithTracer(t trace.Tracer) Option {
	return func(e *Experiment) { e.tracer = t }
}

func WithRecorder(r core.Recorder) Option {
	return func(e *Experiment) { e.recorder = r }
}

func New(cfg *config.Config, opts ...Option) *Experiment {
	e := &Experiment{
		cfg:      cfg,
		registry: core.DefaultRegistry(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Assemble instantiates the configured graph through the registry, applies
// options, fills slots and attaches load groups. No phase runs.
func (e *Experiment) Assemble() (core.Component, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	return e.assemble(&e.cfg.Root, e.cfg.Root.Name)
}

func (e *Experiment) assemble(c *config.ComponentConfig, path string) (core.Component, error) {
	comp, err := e.registry.Instantiate(c.Type, c.Name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := core.SetOptions(comp, c.Options); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	slots := make([]string, 0, len(c.Slots))
	for slot := range c.Slots {
		slots = append(slots, slot)
	}
	sort.Strings(slots)
	for _, slot := range slots {
		child, err := e.assemble(c.Slots[slot], path+"."+slot)
		if err != nil {
			return nil, err
		}
		if err := comp.Core().SetSlot(slot, child); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	for _, lgc := range c.LoadGroups {
		lg, err := e.assemble(lgc, path+"."+lgc.Name)
		if err != nil {
			return nil, err
		}
		if err := comp.Core().AddLoadGroups(lg); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return comp, nil
}

func (e *Experiment) loadParams() (*params.Data, error) {
	if e.params != nil {
		return e.params, nil
	}
	if e.cfg.Params == "" {
		return params.Benchmark(), nil
	}
	return params.Load(e.cfg.Params)
}

// Run assembles the graph, builds it and merges the resulting system.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	root, err := e.Assemble()
	if err != nil {
		return nil, err
	}
	d, err := e.loadParams()
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	opts := []core.PipelineOption{core.WithLogger(e.logger.With("build_id", id))}
	if e.tracer != nil {
		opts = append(opts, core.WithTracer(e.tracer))
	}
	if e.recorder != nil {
		opts = append(opts, core.WithRecorder(e.recorder))
	}

	start := time.Now()
	if err := core.NewPipeline(opts...).Build(ctx, root); err != nil {
		return nil, err
	}
	sys, err := core.ToSystem(root)
	if err != nil {
		return nil, err
	}
	if so, ok := e.recorder.(SystemObserver); ok {
		so.ObserveSystem(sys)
	}

	counts, err := core.CheckNames(root)
	if err != nil {
		return nil, err
	}
	components := make(map[string]int, len(counts))
	for kind, n := range counts {
		components[kind.String()] = n
	}

	return &Result{
		ID:         id,
		Name:       e.cfg.Name,
		Root:       root,
		System:     sys,
		Components: components,
		Params:     core.ParamValues(root, d),
		Started:    start,
		Duration:   time.Since(start),
	}, nil
}
