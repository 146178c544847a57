package bicycle

import (
	"fmt"

	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/mechanics"
	"github.com/san-kum/brim/internal/sym"
)

var TyreBaseType = core.Define(&core.Type{
	Name:     "TyreBase",
	Kind:     core.KindConnection,
	Doc:      "Base type for the tyre model connecting a wheel to the ground.",
	Abstract: true,
	RequiredModels: []core.Requirement{
		core.MustModelRequirement("ground", []*core.Type{GroundBaseType}, core.Hard(),
			core.WithDescription("Submodel of the ground.")),
		core.MustModelRequirement("wheel", []*core.Type{WheelBaseType}, core.Hard(),
			core.WithDescription("Submodel of the wheel.")),
	},
})

var NonHolonomicTyreType = core.Define(&core.Type{
	Name: "NonHolonomicTyre",
	Kind: core.KindConnection,
	Doc:  "Tyre model based on non-holonomic constraints.\n\nThe contact point on the wheel has no velocity along the ground tangents.",
	Base: TyreBaseType,
	New:  func(t *core.Type, name string) core.Component { return newNonHolonomicTyre(t, name) },
})

const zeroCheckTrials = 5

// Tyre is implemented by every tyre model.
type Tyre interface {
	core.Component
	ContactPoint() *mechanics.Point
	OnGround() bool
	SetOnGround(bool)
}

var _ Tyre = (*NonHolonomicTyre)(nil)

// tyre is the geometry shared by tyre models: the contact point and its
// placement relative to the wheel center.
type tyre struct {
	core.Base
	contact  *mechanics.Point
	onGround bool
	upward   mechanics.Vector
}

func (t *tyre) Ground() (Ground, error) {
	g, ok := t.Slot("ground").(Ground)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no usable ground", ErrUnsupportedCombination, t.Name())
	}
	return g, nil
}

func (t *tyre) Wheel() (Wheel, error) {
	w, ok := t.Slot("wheel").(Wheel)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no usable wheel", ErrUnsupportedCombination, t.Name())
	}
	return w, nil
}

// ContactPoint returns the point of the wheel touching the ground. It is
// created in the objects phase; the parent model places it on the ground.
func (t *tyre) ContactPoint() *mechanics.Point { return t.contact }

// OnGround reports whether the contact point is assumed to lie on the
// ground. When false a holonomic constraint keeps it there.
func (t *tyre) OnGround() bool      { return t.onGround }
func (t *tyre) SetOnGround(ok bool) { t.onGround = ok }

func (t *tyre) SetOption(name string, value any) error {
	if name != "on_ground" {
		return core.UnknownOption(name)
	}
	ok, isBool := value.(bool)
	if !isBool {
		return fmt.Errorf("on_ground must be a boolean, got %v", value)
	}
	t.onGround = ok
	return nil
}

func (t *tyre) defineObjects() error {
	g, err := t.Ground()
	if err != nil {
		return err
	}
	if g.Frame() == nil {
		return fmt.Errorf("%w: ground %s has no objects", core.ErrPhaseOrder, g.Name())
	}
	t.contact = mechanics.NewPoint(t.Prefix("contact_point"))
	t.SetSystem(mechanics.NewSystem(g.Origin(), g.Frame()))
	return nil
}

func (t *tyre) parts() (Wheel, Ground, error) {
	w, err := t.Wheel()
	if err != nil {
		return nil, nil, err
	}
	g, err := t.Ground()
	if err != nil {
		return nil, nil, err
	}
	if w.Body() == nil || g.Frame() == nil || t.contact == nil {
		return nil, nil, fmt.Errorf("%w: %s needs the objects of its wheel and ground", core.ErrPhaseOrder, t.Name())
	}
	return w, g, nil
}

// downward returns the unit radial vector of the wheel pointing to the
// ground: the rotation axis crossed with the inward normal projected into
// the wheel plane.
func downward(w Wheel, g Ground, p *mechanics.Point) (mechanics.Vector, error) {
	axis := w.RotationAxis()
	inner, err := g.Normal(p).Neg().Cross(axis)
	if err != nil {
		return mechanics.Vector{}, err
	}
	d, err := axis.Cross(inner)
	if err != nil {
		return mechanics.Vector{}, err
	}
	return d.Normalize()
}

// SetUpwardRadialAxis fixes the unit radial vector of the wheel pointing
// away from the contact point, instead of deriving it from the geometry.
// The wheel and ground objects must exist. The vector must be unit length,
// perpendicular to the rotation axis, and lie in the plane of the rotation
// axis and the ground normal on the side facing away from the ground.
func (t *tyre) SetUpwardRadialAxis(v mechanics.Vector) error {
	w, g, err := t.parts()
	if err != nil {
		return err
	}
	mag, err := v.Magnitude()
	if err != nil {
		return err
	}
	if !sym.CheckZero(sym.Sub(mag, sym.Num(1)), zeroCheckTrials, 1e-9) {
		return fmt.Errorf("%w: %s is not a unit vector", ErrInvalidUpwardAxis, v)
	}
	radial, err := v.Dot(w.RotationAxis())
	if err != nil {
		return err
	}
	if !sym.CheckZero(radial, zeroCheckTrials, 1e-9) {
		return fmt.Errorf("%w: %s is not radial", ErrInvalidUpwardAxis, v)
	}
	down, err := downward(w, g, t.contact)
	if err != nil {
		return err
	}
	diff, err := v.Add(down).Components(g.Frame())
	if err != nil {
		return err
	}
	for _, c := range diff {
		if !sym.CheckZero(c, zeroCheckTrials, 1e-9) {
			return fmt.Errorf("%w: %s does not point away from the ground", ErrInvalidUpwardAxis, v)
		}
	}
	t.upward = v
	return nil
}

// setContactPos positions the contact point relative to the wheel center.
func (t *tyre) setContactPos() error {
	w, g, err := t.parts()
	if err != nil {
		return err
	}
	if !supported(w, g) {
		return fmt.Errorf("%w: %s on %s", ErrUnsupportedCombination, w.Type().Name, g.Type().Name)
	}

	var down mechanics.Vector
	if t.upward.IsZero() {
		if down, err = downward(w, g, t.contact); err != nil {
			return err
		}
	} else {
		down = t.upward.Neg()
	}
	t.contact.SetPos(w.Center(), contactOffset(w, g, t.contact, down))
	return nil
}

// supported reports whether the contact point of w on g can be computed.
func supported(w Wheel, g Ground) bool {
	if _, ok := g.(*FlatGround); !ok {
		return false
	}
	switch w.(type) {
	case *KnifeEdgeWheel, *ToroidalWheel:
		return true
	}
	return false
}

// contactOffset is the contact point relative to the wheel center for a
// supported combination, given the downward radial direction.
func contactOffset(w Wheel, g Ground, p *mechanics.Point, down mechanics.Vector) mechanics.Vector {
	offset := down.Scale(w.Radius())
	if wh, ok := w.(*ToroidalWheel); ok {
		offset = offset.Sub(g.Normal(p).Scale(wh.TransverseRadius()))
	}
	return offset
}

// NonHolonomicTyre constrains the velocity of the wheel's contact point to
// be zero along the ground tangents. When the contact point is not assumed
// to be on the ground, a holonomic constraint keeps its normal distance to
// the ground at zero.
type NonHolonomicTyre struct {
	tyre
}

func NewNonHolonomicTyre(name string) *NonHolonomicTyre {
	return newNonHolonomicTyre(NonHolonomicTyreType, name)
}

func newNonHolonomicTyre(t *core.Type, name string) *NonHolonomicTyre {
	ty := &NonHolonomicTyre{tyre: tyre{onGround: true}}
	ty.Init(ty, t, name)
	return ty
}

func (t *NonHolonomicTyre) DefineObjects() error    { return t.defineObjects() }
func (t *NonHolonomicTyre) DefineKinematics() error { return t.setContactPos() }

func (t *NonHolonomicTyre) DefineConstraints() error {
	w, g, err := t.parts()
	if err != nil {
		return err
	}
	gf := g.Frame()

	if !t.onGround {
		pos, err := t.contact.PosFrom(g.Origin())
		if err != nil {
			return err
		}
		h, err := pos.Dot(g.Normal(t.contact))
		if err != nil {
			return err
		}
		t.System().AddHolonomic(h)
	}

	vCenter, err := w.Center().Vel(gf)
	if err != nil {
		return err
	}
	omega, err := w.Frame().AngVelIn(gf)
	if err != nil {
		return err
	}
	arm, err := t.contact.PosFrom(w.Center())
	if err != nil {
		return err
	}
	transport, err := omega.Cross(arm)
	if err != nil {
		return err
	}
	vContact := vCenter.Add(transport)
	for _, tangent := range g.Tangents(t.contact) {
		c, err := vContact.Dot(tangent)
		if err != nil {
			return err
		}
		t.System().AddNonholonomic(c)
	}
	return nil
}
