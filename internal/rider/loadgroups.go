package rider

import (
	"fmt"

	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/mechanics"
	"github.com/san-kum/brim/internal/params"
	"github.com/san-kum/brim/internal/sym"
)

var PinElbowTorqueType = core.Define(&core.Type{
	Name:       "PinElbowTorque",
	Kind:       core.KindLoadGroup,
	Doc:        "Actuator torque about the elbow pin.",
	Base:       core.LoadGroupBaseType,
	Compatible: []*core.Type{PinElbowStickLeftArmType, PinElbowStickRightArmType},
	New:        func(t *core.Type, name string) core.Component { return newPinElbowTorque(t, name) },
})

var PinElbowSpringDamperType = core.Define(&core.Type{
	Name:       "PinElbowSpringDamper",
	Kind:       core.KindLoadGroup,
	Doc:        "Torsional spring and damper about the elbow pin.",
	Base:       core.LoadGroupBaseType,
	Compatible: []*core.Type{PinElbowStickLeftArmType, PinElbowStickRightArmType},
	New:        func(t *core.Type, name string) core.Component { return newPinElbowSpringDamper(t, name) },
})

func elbowOf(lg *core.LoadGroup) (ElbowArm, *mechanics.PinJoint, error) {
	arm, ok := lg.Parent().(ElbowArm)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s is not attached to an elbow arm", core.ErrIncompatibleLoadGroup, lg.Name())
	}
	j := arm.ElbowJoint()
	if j == nil {
		return nil, nil, fmt.Errorf("%w: elbow of %s is not defined", core.ErrPhaseOrder, arm.Name())
	}
	return arm, j, nil
}

// PinElbowTorque applies a specified torque T about the elbow axis on the
// forearm and its reaction on the upper arm.
type PinElbowTorque struct {
	core.LoadGroup
	torque *sym.Dynamic
}

func NewPinElbowTorque(name string) *PinElbowTorque {
	return newPinElbowTorque(PinElbowTorqueType, name)
}

func newPinElbowTorque(t *core.Type, name string) *PinElbowTorque {
	lg := &PinElbowTorque{}
	lg.Init(lg, t, name)
	return lg
}

func (lg *PinElbowTorque) Torque() *sym.Dynamic { return lg.torque }

func (lg *PinElbowTorque) DefineObjects() error {
	lg.torque = lg.NewInput("T", "Elbow torque.")
	return lg.SetParentSystem()
}

func (lg *PinElbowTorque) DefineLoads() error {
	arm, j, err := elbowOf(&lg.LoadGroup)
	if err != nil {
		return err
	}
	lg.System().AddLoads(mechanics.TorqueOnPair(j.Axis().Scale(lg.torque),
		arm.Forearm().Frame(), arm.UpperArm().Frame())...)
	return nil
}

// PinElbowSpringDamper applies -(k (q - q_ref) + c q') about the elbow axis.
type PinElbowSpringDamper struct {
	core.LoadGroup
}

func NewPinElbowSpringDamper(name string) *PinElbowSpringDamper {
	return newPinElbowSpringDamper(PinElbowSpringDamperType, name)
}

func newPinElbowSpringDamper(t *core.Type, name string) *PinElbowSpringDamper {
	lg := &PinElbowSpringDamper{}
	lg.Init(lg, t, name)
	return lg
}

func (lg *PinElbowSpringDamper) DefineObjects() error {
	lg.NewSymbol("k", "Spring stiffness of the elbow.")
	lg.NewSymbol("c", "Damping coefficient of the elbow.")
	lg.NewSymbol("q_ref", "Reference elbow angle of the spring.")
	return lg.SetParentSystem()
}

func (lg *PinElbowSpringDamper) DefineLoads() error {
	arm, j, err := elbowOf(&lg.LoadGroup)
	if err != nil {
		return err
	}
	torque := mechanics.SpringDamperTorque(j.Axis(), lg.Symbol("k"), lg.Symbol("c"),
		j.Coordinates()[0], lg.Symbol("q_ref"))
	lg.System().AddLoads(mechanics.TorqueOnPair(torque, arm.Forearm().Frame(), arm.UpperArm().Frame())...)
	return nil
}

func (lg *PinElbowSpringDamper) ParamValues(d *params.Data) sym.Values {
	return riderValues(d, map[string]sym.Expr{
		"k_elbow":     lg.Symbol("k"),
		"c_elbow":     lg.Symbol("c"),
		"q_ref_elbow": lg.Symbol("q_ref"),
	})
}
