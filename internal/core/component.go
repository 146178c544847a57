package core

import (
	"fmt"
	"reflect"

	"github.com/san-kum/brim/internal/mechanics"
	"github.com/san-kum/brim/internal/sym"
)

// Component is a model, connection or load group participating in a build.
// Concrete components embed Base and call Init from their constructor.
type Component interface {
	Typed
	Name() string
	Core() *Base
}

// Base holds the state shared by all components: slots, symbols,
// descriptions, the local system and the build phase.
type Base struct {
	self         Component
	name         string
	typ          *Type
	slots        map[string]Component
	symbols      map[string]sym.Expr
	descriptions map[sym.Expr]string
	q, u         []*sym.Dynamic
	system       *mechanics.System
	loadGroups   []Component
	parent       Component
	state        Phase
}

// Init prepares the embedded base. self is the outer component.
func (b *Base) Init(self Component, t *Type, name string) {
	b.self = self
	b.name = name
	b.typ = t
	b.slots = make(map[string]Component)
	b.symbols = make(map[string]sym.Expr)
	b.descriptions = make(map[sym.Expr]string)
}

func (b *Base) Name() string              { return b.name }
func (b *Base) Type() *Type               { return b.typ }
func (b *Base) Core() *Base               { return b }
func (b *Base) State() Phase              { return b.state }
func (b *Base) System() *mechanics.System { return b.system }
func (b *Base) Q() []*sym.Dynamic         { return append([]*sym.Dynamic(nil), b.q...) }
func (b *Base) U() []*sym.Dynamic         { return append([]*sym.Dynamic(nil), b.u...) }

// SetSystem sets the local system, normally during the objects phase.
func (b *Base) SetSystem(s *mechanics.System) { b.system = s }

// Prefix returns "<name>_<s>", the naming scheme for everything a
// component creates.
func (b *Base) Prefix(s string) string { return b.name + "_" + s }

// Symbols returns the symbols created by the component keyed by their
// unprefixed name.
func (b *Base) Symbols() map[string]sym.Expr {
	out := make(map[string]sym.Expr, len(b.symbols))
	for k, v := range b.symbols {
		out[k] = v
	}
	return out
}

// Symbol returns a symbol by its unprefixed name, or nil.
func (b *Base) Symbol(name string) sym.Expr { return b.symbols[name] }

// NewSymbol creates the constant "<component>_<name>" and describes it
// unless description is empty.
func (b *Base) NewSymbol(name, description string) *sym.Symbol {
	s := sym.NewSymbol(b.Prefix(name))
	b.symbols[name] = s
	b.Describe(s, description)
	return s
}

// NewCoordinate creates a generalized coordinate owned by the component.
func (b *Base) NewCoordinate(name, description string) *sym.Dynamic {
	q := sym.NewDynamic(b.Prefix(name))
	b.symbols[name] = q
	b.q = append(b.q, q)
	b.Describe(q, description)
	return q
}

// NewSpeed creates a generalized speed owned by the component.
func (b *Base) NewSpeed(name, description string) *sym.Dynamic {
	u := sym.NewDynamic(b.Prefix(name))
	b.symbols[name] = u
	b.u = append(b.u, u)
	b.Describe(u, description)
	return u
}

// NewInput creates a specified time-varying quantity, such as a torque,
// that is neither a coordinate nor a speed.
func (b *Base) NewInput(name, description string) *sym.Dynamic {
	d := sym.NewDynamic(b.Prefix(name))
	b.symbols[name] = d
	b.Describe(d, description)
	return d
}

// Describe attaches a description to a primitive.
func (b *Base) Describe(e sym.Expr, description string) {
	if description != "" {
		b.descriptions[e] = description
	}
}

// Descriptions aggregates the descriptions of the component, all its filled
// slots and its load groups. For a connection this includes the models it
// references. The component's own entries win.
func (b *Base) Descriptions() map[sym.Expr]string {
	out := make(map[sym.Expr]string)
	for _, r := range b.typ.Requirements() {
		c := b.slots[r.attr]
		if c == nil {
			continue
		}
		for k, v := range c.Core().Descriptions() {
			out[k] = v
		}
	}
	for _, lg := range b.loadGroups {
		for k, v := range lg.Core().Descriptions() {
			out[k] = v
		}
	}
	for k, v := range b.descriptions {
		out[k] = v
	}
	return out
}

// Slot returns the component assigned to a slot, or nil.
func (b *Base) Slot(name string) Component { return b.slots[name] }

// SetSlot assigns value to a declared slot after checking it against the
// slot requirement. A nil value clears the slot.
func (b *Base) SetSlot(name string, value Component) error {
	req, ok := b.typ.Requirement(name)
	if !ok {
		return &SlotError{Component: b.name, Slot: name, Err: ErrUnknownSlot}
	}
	if isNil(value) {
		delete(b.slots, name)
		return nil
	}
	if t := value.Type(); t == nil || !req.IsSatisfiedBy(t) {
		got := "<nil>"
		if t != nil {
			got = t.Name
		}
		return &SlotError{
			Component: b.name,
			Slot:      name,
			Want:      req.TypeName(),
			Got:       got,
			Err:       ErrSlotTypeMismatch,
		}
	}
	b.slots[name] = value
	return nil
}

func isNil(c Component) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Children returns the components the build descends into: for a model its
// filled model and connection slots, for a connection its filled connection
// slots only, since its model slots reference siblings owned by its parent.
func (b *Base) Children() []Component {
	var out []Component
	if b.typ.Kind == KindModel {
		for _, r := range b.typ.Models() {
			if c := b.slots[r.attr]; c != nil {
				out = append(out, c)
			}
		}
	}
	for _, r := range b.typ.Connections() {
		if c := b.slots[r.attr]; c != nil {
			out = append(out, c)
		}
	}
	return out
}

// LoadGroups returns the attached load groups.
func (b *Base) LoadGroups() []Component {
	return append([]Component(nil), b.loadGroups...)
}

// Parent returns the component a load group is attached to.
func (b *Base) Parent() Component { return b.parent }

// AddLoadGroups attaches load groups to the component. Each group must be of
// a load group type compatible with the component type and must not belong
// to another component.
func (b *Base) AddLoadGroups(groups ...Component) error {
	for _, g := range groups {
		if isNil(g) || g.Core().typ == nil {
			return fmt.Errorf("%w: nil or uninitialized load group on %s", ErrIncompatibleLoadGroup, b.name)
		}
		gb := g.Core()
		if gb.typ.Kind != KindLoadGroup || !gb.typ.CompatibleWith(b.typ) {
			return fmt.Errorf("%w: %s (%s) on %s (%s)", ErrIncompatibleLoadGroup, gb.name, gb.typ.Name, b.name, b.typ.Name)
		}
		if gb.parent != nil && gb.parent != b.self {
			return fmt.Errorf("%w: %s already belongs to %s", ErrIncompatibleLoadGroup, gb.name, gb.parent.Name())
		}
		if gb.parent == b.self {
			continue
		}
		gb.parent = b.self
		b.loadGroups = append(b.loadGroups, g)
	}
	return nil
}
