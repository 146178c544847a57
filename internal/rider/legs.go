package rider

import (
	"fmt"

	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/mechanics"
	"github.com/san-kum/brim/internal/params"
	"github.com/san-kum/brim/internal/sym"
)

var LegBaseType = core.Define(&core.Type{
	Name:     "LegBase",
	Kind:     core.KindModel,
	Doc:      "Base type for the legs of the rider.",
	Abstract: true,
})

var LeftLegBaseType = core.Define(&core.Type{
	Name:     "LeftLegBase",
	Kind:     core.KindModel,
	Doc:      "Base type for the left leg of the rider.",
	Base:     LegBaseType,
	Abstract: true,
})

var RightLegBaseType = core.Define(&core.Type{
	Name:     "RightLegBase",
	Kind:     core.KindModel,
	Doc:      "Base type for the right leg of the rider.",
	Base:     LegBaseType,
	Abstract: true,
})

var TwoPinStickLeftLegType = core.Define(&core.Type{
	Name: "TwoPinStickLeftLeg",
	Kind: core.KindModel,
	Doc:  "Left leg with stick segments and pin joints at the knee and ankle.",
	Base: LeftLegBaseType,
	New:  func(t *core.Type, name string) core.Component { return newTwoPinStickLeftLeg(t, name) },
})

var TwoPinStickRightLegType = core.Define(&core.Type{
	Name: "TwoPinStickRightLeg",
	Kind: core.KindModel,
	Doc:  "Right leg with stick segments and pin joints at the knee and ankle.",
	Base: RightLegBaseType,
	New:  func(t *core.Type, name string) core.Component { return newTwoPinStickRightLeg(t, name) },
})

// Leg is implemented by every leg model. The hip and foot interpoints are
// where a hip or pedal connection attaches, fixed in the matching
// interframe.
type Leg interface {
	core.Component
	Hip() *mechanics.RigidBody
	HipInterpoint() *mechanics.Point
	HipInterframe() *mechanics.Frame
	Foot() *mechanics.RigidBody
	FootInterpoint() *mechanics.Point
	FootInterframe() *mechanics.Frame
}

// twoPinStickLeg is a thigh, shank and foot joined by a knee and an ankle
// pin. Segments hang along their frame's z axis, the foot points along x.
type twoPinStickLeg struct {
	core.Base
	thigh, shank, foot *mechanics.RigidBody
	hp, fp             *mechanics.Point
	knee, ankle        *mechanics.PinJoint
}

func (l *twoPinStickLeg) Hip() *mechanics.RigidBody        { return l.thigh }
func (l *twoPinStickLeg) HipInterpoint() *mechanics.Point  { return l.hp }
func (l *twoPinStickLeg) HipInterframe() *mechanics.Frame  { return l.thigh.Frame() }
func (l *twoPinStickLeg) Foot() *mechanics.RigidBody       { return l.foot }
func (l *twoPinStickLeg) FootInterpoint() *mechanics.Point { return l.fp }
func (l *twoPinStickLeg) FootInterframe() *mechanics.Frame { return l.foot.Frame() }
func (l *twoPinStickLeg) Thigh() *mechanics.RigidBody      { return l.thigh }
func (l *twoPinStickLeg) Shank() *mechanics.RigidBody      { return l.shank }
func (l *twoPinStickLeg) Knee() *mechanics.PinJoint        { return l.knee }
func (l *twoPinStickLeg) Ankle() *mechanics.PinJoint       { return l.ankle }

func (l *twoPinStickLeg) DefineObjects() error {
	l.hp = mechanics.NewPoint(l.Prefix("HP"))
	l.fp = mechanics.NewPoint(l.Prefix("FP"))
	l.NewSymbol("l_thigh", "Thigh length.")
	l.NewSymbol("l_thigh_com", "Distance from the hip joint to the thigh center of mass.")
	l.NewSymbol("l_shank", "Shank length.")
	l.NewSymbol("l_shank_com", "Distance from the knee joint to the shank center of mass.")
	l.NewSymbol("l_foot", "Distance from the ankle joint to the ball of the foot.")
	l.NewSymbol("l_foot_com", "Distance from the ankle joint to the foot center of mass.")
	l.NewCoordinate("q_knee_flexion", "Knee flexion angle.")
	l.NewCoordinate("q_ankle_flexion", "Ankle flexion angle.")
	l.NewSpeed("u_knee_flexion", "Knee flexion angular velocity.")
	l.NewSpeed("u_ankle_flexion", "Ankle flexion angular velocity.")

	l.thigh = mechanics.NewRigidBody(l.Prefix("thigh"))
	l.shank = mechanics.NewRigidBody(l.Prefix("shank"))
	l.foot = mechanics.NewRigidBody(l.Prefix("foot"))
	for _, b := range []*mechanics.RigidBody{l.thigh, l.shank, l.foot} {
		l.Describe(b.Mass, "Mass of the "+b.Name()+".")
	}
	s := mechanics.SystemFromNewtonian(l.thigh)
	s.AddBodies(l.shank, l.foot)
	l.SetSystem(s)
	return nil
}

func (l *twoPinStickLeg) DefineKinematics() error {
	q, u := l.Q(), l.U()
	lt, ltc := l.Symbol("l_thigh"), l.Symbol("l_thigh_com")
	ls, lsc := l.Symbol("l_shank"), l.Symbol("l_shank_com")
	lf, lfc := l.Symbol("l_foot"), l.Symbol("l_foot_com")

	l.hp.SetVel(l.thigh.Frame(), mechanics.Vector{})
	l.fp.SetVel(l.foot.Frame(), mechanics.Vector{})
	l.thigh.Masscenter().SetPos(l.hp, l.thigh.Z().Scale(ltc))

	var err error
	l.knee, err = mechanics.NewPinJoint(l.Prefix("knee"), l.thigh, l.shank, q[0], u[0],
		mechanics.WithParentOffset(l.thigh.Z().Scale(sym.Sub(lt, ltc))),
		mechanics.WithChildOffset(l.shank.Z().Scale(sym.Neg(lsc))),
		mechanics.WithJointAxis(l.thigh.Y().Neg()))
	if err != nil {
		return fmt.Errorf("%s: %w", l.Name(), err)
	}
	l.ankle, err = mechanics.NewPinJoint(l.Prefix("ankle"), l.shank, l.foot, q[1], u[1],
		mechanics.WithParentOffset(l.shank.Z().Scale(sym.Sub(ls, lsc))),
		mechanics.WithChildOffset(l.foot.X().Scale(sym.Neg(lfc))),
		mechanics.WithJointAxis(l.shank.Y().Neg()))
	if err != nil {
		return fmt.Errorf("%s: %w", l.Name(), err)
	}
	l.foot.Masscenter().SetPos(l.fp, l.foot.X().Scale(sym.Sub(lfc, lf)))
	l.System().AddJoints(l.knee, l.ankle)
	return nil
}

func (l *twoPinStickLeg) ParamValues(d *params.Data) sym.Values {
	if l.thigh == nil {
		return sym.Values{}
	}
	return riderValues(d, map[string]sym.Expr{
		"l_thigh":     l.Symbol("l_thigh"),
		"l_thigh_com": l.Symbol("l_thigh_com"),
		"l_shank":     l.Symbol("l_shank"),
		"l_shank_com": l.Symbol("l_shank_com"),
		"l_foot":      l.Symbol("l_foot"),
		"l_foot_com":  l.Symbol("l_foot_com"),
		"m_thigh":     l.thigh.Mass,
		"m_shank":     l.shank.Mass,
		"m_foot":      l.foot.Mass,
	})
}

type TwoPinStickLeftLeg struct{ twoPinStickLeg }

type TwoPinStickRightLeg struct{ twoPinStickLeg }

var (
	_ Leg = (*TwoPinStickLeftLeg)(nil)
	_ Leg = (*TwoPinStickRightLeg)(nil)
)

func NewTwoPinStickLeftLeg(name string) *TwoPinStickLeftLeg {
	return newTwoPinStickLeftLeg(TwoPinStickLeftLegType, name)
}

func newTwoPinStickLeftLeg(t *core.Type, name string) *TwoPinStickLeftLeg {
	l := &TwoPinStickLeftLeg{}
	l.Init(l, t, name)
	return l
}

func NewTwoPinStickRightLeg(name string) *TwoPinStickRightLeg {
	return newTwoPinStickRightLeg(TwoPinStickRightLegType, name)
}

func newTwoPinStickRightLeg(t *core.Type, name string) *TwoPinStickRightLeg {
	l := &TwoPinStickRightLeg{}
	l.Init(l, t, name)
	return l
}
