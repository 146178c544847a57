package models

import (
	"fmt"

	"github.com/san-kum/brim/internal/bicycle"
	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/mechanics"
	"github.com/san-kum/brim/internal/params"
	"github.com/san-kum/brim/internal/sym"
)

var RollingDiscType = core.Define(&core.Type{
	Name: "RollingDisc",
	Kind: core.KindModel,
	Doc:  "Rolling disc model.\n\nA disc rolling without slip on the ground.",
	New:  func(t *core.Type, name string) core.Component { return newRollingDisc(t, name) },
	RequiredModels: []core.Requirement{
		core.MustModelRequirement("ground", []*core.Type{bicycle.GroundBaseType}, core.Hard(),
			core.WithDescription("Submodel of the ground.")),
		core.MustModelRequirement("disc", []*core.Type{bicycle.WheelBaseType}, core.Hard(),
			core.WithDescription("Submodel of the disc.")),
	},
	RequiredConnections: []core.Requirement{
		core.MustConnectionRequirement("tyre", []*core.Type{bicycle.TyreBaseType}, core.Hard(),
			core.WithDescription("Tyre model for the disc.")),
	},
})

// RollingDisc is a single wheel on the ground. Its coordinates are the
// contact point position (x, y) followed by the yaw, roll and spin angles of
// the disc in body-fixed zxy order. The first two speeds depend on the others
// through the tyre's nonholonomic constraints.
type RollingDisc struct {
	core.Base
	g *sym.Symbol
}

func NewRollingDisc(name string) *RollingDisc { return newRollingDisc(RollingDiscType, name) }

func newRollingDisc(t *core.Type, name string) *RollingDisc {
	d := &RollingDisc{}
	d.Init(d, t, name)
	return d
}

func (d *RollingDisc) Disc() bicycle.Wheel {
	w, _ := d.Slot("disc").(bicycle.Wheel)
	return w
}

func (d *RollingDisc) Ground() bicycle.Ground {
	g, _ := d.Slot("ground").(bicycle.Ground)
	return g
}

func (d *RollingDisc) Tyre() bicycle.Tyre {
	t, _ := d.Slot("tyre").(bicycle.Tyre)
	return t
}

func (d *RollingDisc) SetDisc(w bicycle.Wheel) error    { return d.SetSlot("disc", w) }
func (d *RollingDisc) SetGround(g bicycle.Ground) error { return d.SetSlot("ground", g) }
func (d *RollingDisc) SetTyre(t bicycle.Tyre) error     { return d.SetSlot("tyre", t) }
func (d *RollingDisc) Gravity() sym.Expr                { return d.g }

// DependentSpeeds returns the speeds of the contact point, u1 and u2, which
// the nonholonomic constraints determine from the others.
func (d *RollingDisc) DependentSpeeds() []*sym.Dynamic {
	u := d.U()
	if len(u) < 2 {
		return nil
	}
	return u[:2]
}

func (d *RollingDisc) parts() (bicycle.Wheel, bicycle.Ground, bicycle.Tyre, error) {
	w, g, t := d.Disc(), d.Ground(), d.Tyre()
	if w == nil || g == nil || t == nil {
		return nil, nil, nil, fmt.Errorf("%s: disc, ground and tyre must implement the bicycle interfaces", d.Name())
	}
	return w, g, t, nil
}

func (d *RollingDisc) DefineConnections() error {
	t := d.Slot("tyre").Core()
	if err := t.SetSlot("ground", d.Slot("ground")); err != nil {
		return err
	}
	if err := t.SetSlot("wheel", d.Slot("disc")); err != nil {
		return err
	}
	if tyre := d.Tyre(); tyre != nil {
		tyre.SetOnGround(true)
	}
	return nil
}

func (d *RollingDisc) DefineObjects() error {
	w, g, _, err := d.parts()
	if err != nil {
		return err
	}
	d.NewCoordinate("q1", "Perpendicular distance along ground.x to the contact point.")
	d.NewCoordinate("q2", "Perpendicular distance along ground.y to the contact point.")
	d.NewCoordinate("q3", "Yaw angle of the disc.")
	d.NewCoordinate("q4", "Roll angle of the disc.")
	d.NewCoordinate("q5", "Spin angle of the disc.")
	for i := 1; i <= 5; i++ {
		d.NewSpeed(fmt.Sprintf("u%d", i), fmt.Sprintf("Generalized speed of the disc q%d.", i))
	}
	d.g = d.NewSymbol("g", "Gravitational acceleration.")

	s := mechanics.NewSystem(g.Origin(), g.Frame())
	s.AddBodies(w.Body())
	d.SetSystem(s)
	return nil
}

func (d *RollingDisc) DefineKinematics() error {
	w, g, t, err := d.parts()
	if err != nil {
		return err
	}
	q, u := d.Q(), d.U()
	if err := w.Frame().OrientBodyFixed(g.Frame(), [3]sym.Expr{q[2], q[3], q[4]}, "zxy"); err != nil {
		return fmt.Errorf("%s: %w", d.Name(), err)
	}
	g.SetPointPos(t.ContactPoint(), q[0], q[1])

	s := d.System()
	s.AddCoordinates(q...)
	s.AddSpeeds(u...)
	for i := range q {
		s.AddKinematicEquations(sym.Sub(sym.Dt(q[i]), u[i]))
	}
	return nil
}

func (d *RollingDisc) DefineLoads() error {
	w, g, _, err := d.parts()
	if err != nil {
		return err
	}
	down := g.Normal(g.Origin()).Scale(sym.Neg(d.g))
	d.System().AddLoads(mechanics.Gravity(down, w.Body())...)
	return nil
}

func (d *RollingDisc) ParamValues(p *params.Data) sym.Values {
	vals := make(sym.Values)
	if d.g != nil && p != nil && p.Gravity != 0 {
		vals.Set(d.g, p.Gravity)
	}
	return vals
}
