package core

import (
	"fmt"
	"sort"
	"sync"
)

// Registry is a catalog of component types split into three disjoint sets:
// models, connections and load groups.
//
// Registration happens during package initialisation, before any concurrent
// use, and the registry is append-only afterwards, so reads take no locks.
type Registry struct {
	models      []*Type
	connections []*Type
	loadGroups  []*Type
	byName      map[string]*Type
}

// NewRegistry returns an empty registry. Most code uses DefaultRegistry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Type)}
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry that Define writes to.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Define registers t in the default registry and returns it. It is meant to
// initialise package-level type variables and panics when t is invalid or
// its name is already taken by another type.
func Define(t *Type) *Type {
	if err := DefaultRegistry().Register(t); err != nil {
		panic(err)
	}
	return t
}

// Register adds t to the set matching its kind. Registering the same type
// again is a no-op.
func (r *Registry) Register(t *Type) error {
	if t == nil || t.Name == "" {
		return fmt.Errorf("core: register: type without a name")
	}
	if existing, ok := r.byName[t.Name]; ok {
		if existing == t {
			return nil
		}
		return fmt.Errorf("core: register %s: %w", t.Name, ErrDuplicateType)
	}
	if !t.Abstract && t.New == nil {
		return fmt.Errorf("core: register %s: concrete type without constructor", t.Name)
	}
	if t.Base != nil && t.Base.Kind != t.Kind {
		return fmt.Errorf("core: register %s: base %s is a %s", t.Name, t.Base.Name, t.Base.Kind)
	}
	switch t.Kind {
	case KindModel:
		r.models = append(r.models, t)
	case KindConnection:
		r.connections = append(r.connections, t)
	case KindLoadGroup:
		r.loadGroups = append(r.loadGroups, t)
	default:
		return fmt.Errorf("core: register %s: %w", t.Name, ErrUnsupportedRequirementKind)
	}
	r.byName[t.Name] = t
	return nil
}

func (r *Registry) Models() []*Type      { return sorted(r.models) }
func (r *Registry) Connections() []*Type { return sorted(r.connections) }
func (r *Registry) LoadGroups() []*Type  { return sorted(r.loadGroups) }

func sorted(ts []*Type) []*Type {
	out := append([]*Type(nil), ts...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup finds a registered type by name.
func (r *Registry) Lookup(name string) (*Type, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Instantiate creates a component of the named type.
func (r *Registry) Instantiate(typeName, name string) (Component, error) {
	t, ok := r.byName[typeName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, typeName)
	}
	if t.Abstract {
		return nil, fmt.Errorf("%w: %s", ErrAbstractType, typeName)
	}
	return t.New(t, name), nil
}

type queryOptions struct {
	includeAbstract bool
}

// QueryOption tunes registry queries.
type QueryOption func(*queryOptions)

// IncludeAbstract makes queries return abstract types as well.
func IncludeAbstract() QueryOption {
	return func(o *queryOptions) { o.includeAbstract = true }
}

func filter(ts []*Type, opts []QueryOption, keep func(*Type) bool) []*Type {
	var o queryOptions
	for _, opt := range opts {
		opt(&o)
	}
	var out []*Type
	for _, t := range sorted(ts) {
		if t.Abstract && !o.includeAbstract {
			continue
		}
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// TypesFor returns the registered types of the requirement's kind that
// satisfy it.
func (r *Registry) TypesFor(req Requirement, opts ...QueryOption) ([]*Type, error) {
	var set []*Type
	switch req.kind {
	case KindModel:
		set = r.models
	case KindConnection:
		set = r.connections
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedRequirementKind, req.kind)
	}
	return filter(set, opts, req.IsSatisfiedBy), nil
}

// TypesForSlot resolves slot on target, a component or a type, and returns
// the registered types that can fill it.
func (r *Registry) TypesForSlot(target Typed, slot string, opts ...QueryOption) ([]*Type, error) {
	t := target.Type()
	req, ok := t.Requirement(slot)
	if !ok {
		return nil, &SlotError{Component: t.Name, Slot: slot, Err: ErrUnknownSlot}
	}
	return r.TypesFor(req, opts...)
}

// MatchingLoadGroups returns the load groups that can be attached to target,
// a component or a type.
func (r *Registry) MatchingLoadGroups(target Typed, opts ...QueryOption) []*Type {
	t := target.Type()
	return filter(r.loadGroups, opts, func(lg *Type) bool {
		return lg.CompatibleWith(t)
	})
}
