package rider

import (
	"fmt"

	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/mechanics"
	"github.com/san-kum/brim/internal/params"
	"github.com/san-kum/brim/internal/sym"
)

var ArmBaseType = core.Define(&core.Type{
	Name:     "ArmBase",
	Kind:     core.KindModel,
	Doc:      "Base type for the arms of the rider.",
	Abstract: true,
})

var LeftArmBaseType = core.Define(&core.Type{
	Name:     "LeftArmBase",
	Kind:     core.KindModel,
	Doc:      "Base type for the left arm of the rider.",
	Base:     ArmBaseType,
	Abstract: true,
})

var RightArmBaseType = core.Define(&core.Type{
	Name:     "RightArmBase",
	Kind:     core.KindModel,
	Doc:      "Base type for the right arm of the rider.",
	Base:     ArmBaseType,
	Abstract: true,
})

var PinElbowStickLeftArmType = core.Define(&core.Type{
	Name: "PinElbowStickLeftArm",
	Kind: core.KindModel,
	Doc:  "Left arm with stick segments and a pin joint at the elbow.",
	Base: LeftArmBaseType,
	New:  func(t *core.Type, name string) core.Component { return newPinElbowStickLeftArm(t, name) },
})

var PinElbowStickRightArmType = core.Define(&core.Type{
	Name: "PinElbowStickRightArm",
	Kind: core.KindModel,
	Doc:  "Right arm with stick segments and a pin joint at the elbow.",
	Base: RightArmBaseType,
	New:  func(t *core.Type, name string) core.Component { return newPinElbowStickRightArm(t, name) },
})

// ElbowArm is implemented by arms with a single pin at the elbow. Elbow load
// groups rely on it.
type ElbowArm interface {
	core.Component
	UpperArm() *mechanics.RigidBody
	Forearm() *mechanics.RigidBody
	ElbowJoint() *mechanics.PinJoint
}

type pinElbowStickArm struct {
	core.Base
	upper, fore *mechanics.RigidBody
	elbow       *mechanics.PinJoint
}

func (a *pinElbowStickArm) UpperArm() *mechanics.RigidBody  { return a.upper }
func (a *pinElbowStickArm) Forearm() *mechanics.RigidBody   { return a.fore }
func (a *pinElbowStickArm) ElbowJoint() *mechanics.PinJoint { return a.elbow }

func (a *pinElbowStickArm) DefineObjects() error {
	a.NewSymbol("l_upper_arm", "Upper arm length.")
	a.NewSymbol("l_upper_arm_com", "Distance from the shoulder joint to the upper arm center of mass.")
	a.NewSymbol("l_forearm", "Forearm length.")
	a.NewSymbol("l_forearm_com", "Distance from the elbow joint to the forearm center of mass.")
	a.NewCoordinate("q_elbow_flexion", "Elbow flexion angle.")
	a.NewSpeed("u_elbow_flexion", "Elbow flexion angular velocity.")

	a.upper = mechanics.NewRigidBody(a.Prefix("upper_arm"))
	a.fore = mechanics.NewRigidBody(a.Prefix("forearm"))
	a.Describe(a.upper.Mass, "Mass of the upper arm.")
	a.Describe(a.fore.Mass, "Mass of the forearm.")
	s := mechanics.SystemFromNewtonian(a.upper)
	s.AddBodies(a.fore)
	a.SetSystem(s)
	return nil
}

func (a *pinElbowStickArm) DefineKinematics() error {
	lu, luc := a.Symbol("l_upper_arm"), a.Symbol("l_upper_arm_com")
	lfc := a.Symbol("l_forearm_com")
	elbow, err := mechanics.NewPinJoint(a.Prefix("elbow"), a.upper, a.fore, a.Q()[0], a.U()[0],
		mechanics.WithParentOffset(a.upper.Z().Scale(sym.Sub(lu, luc))),
		mechanics.WithChildOffset(a.fore.Z().Scale(sym.Neg(lfc))),
		mechanics.WithJointAxis(a.upper.Y().Neg()))
	if err != nil {
		return fmt.Errorf("%s: %w", a.Name(), err)
	}
	a.elbow = elbow
	a.System().AddJoints(elbow)
	return nil
}

func (a *pinElbowStickArm) ParamValues(d *params.Data) sym.Values {
	if a.upper == nil {
		return sym.Values{}
	}
	return riderValues(d, map[string]sym.Expr{
		"l_upper_arm": a.Symbol("l_upper_arm"),
		"l_upper_com": a.Symbol("l_upper_arm_com"),
		"m_upper_arm": a.upper.Mass,
		"l_forearm":   a.Symbol("l_forearm"),
		"l_fore_com":  a.Symbol("l_forearm_com"),
		"m_forearm":   a.fore.Mass,
	})
}

type PinElbowStickLeftArm struct{ pinElbowStickArm }

type PinElbowStickRightArm struct{ pinElbowStickArm }

var (
	_ ElbowArm = (*PinElbowStickLeftArm)(nil)
	_ ElbowArm = (*PinElbowStickRightArm)(nil)
)

func NewPinElbowStickLeftArm(name string) *PinElbowStickLeftArm {
	return newPinElbowStickLeftArm(PinElbowStickLeftArmType, name)
}

func newPinElbowStickLeftArm(t *core.Type, name string) *PinElbowStickLeftArm {
	a := &PinElbowStickLeftArm{}
	a.Init(a, t, name)
	return a
}

func NewPinElbowStickRightArm(name string) *PinElbowStickRightArm {
	return newPinElbowStickRightArm(PinElbowStickRightArmType, name)
}

func newPinElbowStickRightArm(t *core.Type, name string) *PinElbowStickRightArm {
	a := &PinElbowStickRightArm{}
	a.Init(a, t, name)
	return a
}
