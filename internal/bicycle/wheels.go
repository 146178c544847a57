package bicycle

import (
	"fmt"

	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/mechanics"
	"github.com/san-kum/brim/internal/params"
	"github.com/san-kum/brim/internal/sym"
)

var WheelBaseType = core.Define(&core.Type{
	Name:     "WheelBase",
	Kind:     core.KindModel,
	Doc:      "Wheel base type.",
	Abstract: true,
})

var KnifeEdgeWheelType = core.Define(&core.Type{
	Name: "KnifeEdgeWheel",
	Kind: core.KindModel,
	Doc:  "Knife edge wheel.",
	Base: WheelBaseType,
	New:  func(t *core.Type, name string) core.Component { return newKnifeEdgeWheel(t, name) },
})

var ToroidalWheelType = core.Define(&core.Type{
	Name: "ToroidalWheel",
	Kind: core.KindModel,
	Doc:  "Toroidal shaped wheel.",
	Base: WheelBaseType,
	New:  func(t *core.Type, name string) core.Component { return newToroidalWheel(t, name) },
})

// Wheel is implemented by every wheel model.
type Wheel interface {
	core.Component
	Body() *mechanics.RigidBody
	Frame() *mechanics.Frame
	Center() *mechanics.Point
	RotationAxis() mechanics.Vector
	Radius() sym.Expr
}

// wheel is the rigid body shared by the concrete wheels. Its inertia is
// symmetric about the rotation axis (the body y axis).
type wheel struct {
	core.Base
	core.NewtonianBody
	position string
	radius   *sym.Symbol
}

func (w *wheel) defineObjects() {
	w.NewtonianBody.DefineObjects(&w.Base)
	ixx := w.NewSymbol("ixx", "Moment of inertia of the wheel about a diameter.")
	iyy := w.NewSymbol("iyy", "Moment of inertia of the wheel about its rotation axis.")
	w.Body().SetInertia(mechanics.SymmetricInertia(w.Frame(), ixx, iyy, ixx))
	w.radius = w.NewSymbol("r", "Radius of the wheel.")
}

func (w *wheel) Center() *mechanics.Point       { return w.Body().Masscenter() }
func (w *wheel) RotationAxis() mechanics.Vector { return w.Body().Y() }
func (w *wheel) Radius() sym.Expr               { return w.radius }
func (w *wheel) Position() string               { return w.position }

// SetPosition marks the wheel as the "front" or "rear" wheel, which selects
// the parameters it reads from a parameter set.
func (w *wheel) SetPosition(position string) error {
	if position != "" && position != "front" && position != "rear" {
		return fmt.Errorf("%w: %q", ErrInvalidPosition, position)
	}
	w.position = position
	return nil
}

func (w *wheel) SetOption(name string, value any) error {
	if name != "position" {
		return core.UnknownOption(name)
	}
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: %v", ErrInvalidPosition, value)
	}
	return w.SetPosition(s)
}

// paramValues maps the benchmark values of the wheel position: rF, mF, IFxx
// and IFyy for the front wheel, rR, mR, IRxx and IRyy for the rear.
func (w *wheel) paramValues(d *params.Data) sym.Values {
	vals := make(sym.Values)
	if w.position == "" || d == nil || w.Body() == nil {
		return vals
	}
	suffix, inertia := "R", "IR"
	if w.position == "front" {
		suffix, inertia = "F", "IF"
	}
	set := func(e sym.Expr, key string) {
		if v, ok := d.BicycleValue(key); ok {
			vals.Set(e, v)
		}
	}
	set(w.Body().Mass, "m"+suffix)
	set(w.radius, "r"+suffix)
	set(w.Symbol("ixx"), inertia+"xx")
	set(w.Symbol("iyy"), inertia+"yy")
	return vals
}

// KnifeEdgeWheel is a wheel of zero width.
type KnifeEdgeWheel struct {
	wheel
}

var _ Wheel = (*KnifeEdgeWheel)(nil)

func NewKnifeEdgeWheel(name string) *KnifeEdgeWheel {
	return newKnifeEdgeWheel(KnifeEdgeWheelType, name)
}

func newKnifeEdgeWheel(t *core.Type, name string) *KnifeEdgeWheel {
	w := &KnifeEdgeWheel{}
	w.Init(w, t, name)
	return w
}

func (w *KnifeEdgeWheel) DefineObjects() error {
	w.defineObjects()
	return nil
}

func (w *KnifeEdgeWheel) ParamValues(d *params.Data) sym.Values { return w.paramValues(d) }

// ToroidalWheel is a wheel whose crown is a torus with a transverse radius.
type ToroidalWheel struct {
	wheel
	transverse *sym.Symbol
}

var _ Wheel = (*ToroidalWheel)(nil)

func NewToroidalWheel(name string) *ToroidalWheel {
	return newToroidalWheel(ToroidalWheelType, name)
}

func newToroidalWheel(t *core.Type, name string) *ToroidalWheel {
	w := &ToroidalWheel{}
	w.Init(w, t, name)
	return w
}

func (w *ToroidalWheel) DefineObjects() error {
	w.defineObjects()
	w.transverse = w.NewSymbol("tr", "Transverse radius of curvature of the crown of the wheel.")
	return nil
}

func (w *ToroidalWheel) TransverseRadius() sym.Expr { return w.transverse }

func (w *ToroidalWheel) ParamValues(d *params.Data) sym.Values {
	vals := w.paramValues(d)
	if w.position == "" || d == nil || w.transverse == nil {
		return vals
	}
	key := "trR"
	if w.position == "front" {
		key = "trF"
	}
	if v, ok := d.BicycleValue(key); ok {
		vals.Set(w.transverse, v)
	}
	return vals
}
