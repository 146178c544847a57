package core

// Kind tells which registry set a type belongs to.
type Kind int

const (
	KindModel Kind = iota + 1
	KindConnection
	KindLoadGroup
)

func (k Kind) String() string {
	switch k {
	case KindModel:
		return "model"
	case KindConnection:
		return "connection"
	case KindLoadGroup:
		return "load group"
	default:
		return "unknown"
	}
}

// Type describes a component type: its place in the type hierarchy, the
// slots it declares and how to instantiate it.
type Type struct {
	Name string
	Kind Kind
	Doc  string

	// Base is the supertype. Subtypes satisfy every requirement their base
	// satisfies.
	Base *Type

	// Abstract types are never instantiated and are excluded from registry
	// queries by default.
	Abstract bool

	// New instantiates the type. It is nil for abstract types.
	New func(t *Type, name string) Component

	// RequiredModels and RequiredConnections are inherited from Base when nil.
	RequiredModels      []Requirement
	RequiredConnections []Requirement

	// Compatible lists the component types a load group can attach to.
	Compatible []*Type
}

// Typed is implemented by components and by *Type itself, so registry
// queries accept either.
type Typed interface {
	Type() *Type
}

func (t *Type) Type() *Type    { return t }
func (t *Type) String() string { return t.Name }

// IsSubtypeOf reports whether t is o or derives from it.
func (t *Type) IsSubtypeOf(o *Type) bool {
	for c := t; c != nil; c = c.Base {
		if c == o {
			return true
		}
	}
	return false
}

// Models returns the model requirements, inherited when not declared.
func (t *Type) Models() []Requirement {
	for c := t; c != nil; c = c.Base {
		if c.RequiredModels != nil {
			return c.RequiredModels
		}
	}
	return nil
}

// Connections returns the connection requirements, inherited when not
// declared.
func (t *Type) Connections() []Requirement {
	for c := t; c != nil; c = c.Base {
		if c.RequiredConnections != nil {
			return c.RequiredConnections
		}
	}
	return nil
}

// Requirements returns the model requirements followed by the connection
// requirements.
func (t *Type) Requirements() []Requirement {
	models, conns := t.Models(), t.Connections()
	out := make([]Requirement, 0, len(models)+len(conns))
	out = append(out, models...)
	return append(out, conns...)
}

// Requirement resolves a slot name. Model requirements are searched before
// connection requirements and the first declared match wins.
func (t *Type) Requirement(slot string) (Requirement, bool) {
	for _, r := range t.Requirements() {
		if r.attr == slot {
			return r, true
		}
	}
	return Requirement{}, false
}

// CompatibleWith reports whether the load group type t can attach to target.
// The nearest Compatible list along the base chain applies; a chain without
// one attaches to any component.
func (t *Type) CompatibleWith(target *Type) bool {
	for c := t; c != nil; c = c.Base {
		if c.Compatible == nil {
			continue
		}
		for _, ct := range c.Compatible {
			if target.IsSubtypeOf(ct) {
				return true
			}
		}
		return false
	}
	return true
}

// Summary returns the first line of the type documentation.
func (t *Type) Summary() string {
	for i, r := range t.Doc {
		if r == '\n' {
			return t.Doc[:i]
		}
	}
	return t.Doc
}
