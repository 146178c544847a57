package rider

import (
	"fmt"

	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/mechanics"
)

var HipBaseType = core.Define(&core.Type{
	Name:     "HipBase",
	Kind:     core.KindConnection,
	Doc:      "Base type for the hip joints connecting a leg to the pelvis.",
	Abstract: true,
	RequiredModels: []core.Requirement{
		core.MustModelRequirement("pelvis", []*core.Type{PelvisBaseType}, core.Hard(),
			core.WithDescription("Pelvis of the rider.")),
		core.MustModelRequirement("leg", []*core.Type{LegBaseType}, core.Hard(),
			core.WithDescription("Leg of the rider.")),
	},
})

var LeftHipBaseType = core.Define(&core.Type{
	Name:     "LeftHipBase",
	Kind:     core.KindConnection,
	Doc:      "Base type for the left hip joint.",
	Base:     HipBaseType,
	Abstract: true,
	RequiredModels: []core.Requirement{
		core.MustModelRequirement("pelvis", []*core.Type{PelvisBaseType}, core.Hard(),
			core.WithDescription("Pelvis of the rider.")),
		core.MustModelRequirement("leg", []*core.Type{LeftLegBaseType}, core.Hard(),
			core.WithDescription("Left leg of the rider.")),
	},
})

var RightHipBaseType = core.Define(&core.Type{
	Name:     "RightHipBase",
	Kind:     core.KindConnection,
	Doc:      "Base type for the right hip joint.",
	Base:     HipBaseType,
	Abstract: true,
	RequiredModels: []core.Requirement{
		core.MustModelRequirement("pelvis", []*core.Type{PelvisBaseType}, core.Hard(),
			core.WithDescription("Pelvis of the rider.")),
		core.MustModelRequirement("leg", []*core.Type{RightLegBaseType}, core.Hard(),
			core.WithDescription("Right leg of the rider.")),
	},
})

var PinLeftHipType = core.Define(&core.Type{
	Name: "PinLeftHip",
	Kind: core.KindConnection,
	Doc:  "Left hip modelled as a pin joint about the pelvis y axis.",
	Base: LeftHipBaseType,
	New:  func(t *core.Type, name string) core.Component { return newPinLeftHip(t, name) },
})

var PinRightHipType = core.Define(&core.Type{
	Name: "PinRightHip",
	Kind: core.KindConnection,
	Doc:  "Right hip modelled as a pin joint about the pelvis y axis.",
	Base: RightHipBaseType,
	New:  func(t *core.Type, name string) core.Component { return newPinRightHip(t, name) },
})

// Hip is implemented by every hip connection.
type Hip interface {
	core.Component
	Pelvis() Pelvis
	Leg() Leg
}

type pinHip struct {
	core.Base
	joint *mechanics.PinJoint
	// hipPoint selects the pelvis attachment of this side.
	hipPoint func(Pelvis) *mechanics.Point
}

func (h *pinHip) Pelvis() Pelvis {
	p, _ := h.Slot("pelvis").(Pelvis)
	return p
}

func (h *pinHip) Leg() Leg {
	l, _ := h.Slot("leg").(Leg)
	return l
}

func (h *pinHip) Joint() *mechanics.PinJoint { return h.joint }

func (h *pinHip) DefineObjects() error {
	p := h.Pelvis()
	if p == nil || p.Body() == nil {
		return fmt.Errorf("%w: %s needs the pelvis objects", core.ErrPhaseOrder, h.Name())
	}
	h.NewCoordinate("q_hip_flexion", "Hip flexion angle.")
	h.NewSpeed("u_hip_flexion", "Hip flexion angular velocity.")
	h.SetSystem(mechanics.NewSystem(p.Body().Masscenter(), p.Frame()))
	return nil
}

func (h *pinHip) DefineKinematics() error {
	p, l := h.Pelvis(), h.Leg()
	if p == nil || l == nil || l.Hip() == nil {
		return fmt.Errorf("%w: %s needs the pelvis and leg objects", core.ErrPhaseOrder, h.Name())
	}
	parentOffset, err := h.hipPoint(p).PosFrom(p.Body().Masscenter())
	if err != nil {
		return fmt.Errorf("%s: %w", h.Name(), err)
	}
	childOffset, err := l.HipInterpoint().PosFrom(l.Hip().Masscenter())
	if err != nil {
		return fmt.Errorf("%s: %w", h.Name(), err)
	}
	joint, err := mechanics.NewPinJoint(h.Prefix("hip"), p.Body(), l.Hip(), h.Q()[0], h.U()[0],
		mechanics.WithParentOffset(parentOffset),
		mechanics.WithChildOffset(childOffset),
		mechanics.WithJointAxis(p.Frame().Y()))
	if err != nil {
		return fmt.Errorf("%s: %w", h.Name(), err)
	}
	l.HipInterpoint().SetPos(joint.Point(), mechanics.Vector{})
	h.joint = joint
	h.System().AddJoints(joint)
	return nil
}

type PinLeftHip struct{ pinHip }

type PinRightHip struct{ pinHip }

var (
	_ Hip = (*PinLeftHip)(nil)
	_ Hip = (*PinRightHip)(nil)
)

func NewPinLeftHip(name string) *PinLeftHip { return newPinLeftHip(PinLeftHipType, name) }

func newPinLeftHip(t *core.Type, name string) *PinLeftHip {
	h := &PinLeftHip{pinHip{hipPoint: Pelvis.LeftHipPoint}}
	h.Init(h, t, name)
	return h
}

func NewPinRightHip(name string) *PinRightHip { return newPinRightHip(PinRightHipType, name) }

func newPinRightHip(t *core.Type, name string) *PinRightHip {
	h := &PinRightHip{pinHip{hipPoint: Pelvis.RightHipPoint}}
	h.Init(h, t, name)
	return h
}
