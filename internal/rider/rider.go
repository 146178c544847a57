package rider

import (
	"fmt"

	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/mechanics"
)

var RiderType = core.Define(&core.Type{
	Name: "Rider",
	Kind: core.KindModel,
	Doc:  "Rider of the bicycle.\n\nA pelvis with optional legs and arms. Legs attach to the pelvis through hip connections.",
	New:  func(t *core.Type, name string) core.Component { return newRider(t, name) },
	RequiredModels: []core.Requirement{
		core.MustModelRequirement("pelvis", []*core.Type{PelvisBaseType}, core.Hard(),
			core.WithDescription("Pelvis of the rider.")),
		core.MustModelRequirement("left_leg", []*core.Type{LeftLegBaseType},
			core.WithDescription("Left leg of the rider.")),
		core.MustModelRequirement("right_leg", []*core.Type{RightLegBaseType},
			core.WithDescription("Right leg of the rider.")),
		core.MustModelRequirement("left_arm", []*core.Type{LeftArmBaseType},
			core.WithDescription("Left arm of the rider.")),
		core.MustModelRequirement("right_arm", []*core.Type{RightArmBaseType},
			core.WithDescription("Right arm of the rider.")),
	},
	RequiredConnections: []core.Requirement{
		core.MustConnectionRequirement("left_hip", []*core.Type{LeftHipBaseType},
			core.WithDescription("Connection between the pelvis and the left leg.")),
		core.MustConnectionRequirement("right_hip", []*core.Type{RightHipBaseType},
			core.WithDescription("Connection between the pelvis and the right leg.")),
	},
})

// Rider is the root of the rider submodels. Its system is rooted at the
// pelvis mass center.
type Rider struct {
	core.Base
}

func NewRider(name string) *Rider { return newRider(RiderType, name) }

func newRider(t *core.Type, name string) *Rider {
	r := &Rider{}
	r.Init(r, t, name)
	return r
}

func (r *Rider) Pelvis() Pelvis {
	p, _ := r.Slot("pelvis").(Pelvis)
	return p
}

func (r *Rider) SetPelvis(p Pelvis) error           { return r.SetSlot("pelvis", p) }
func (r *Rider) SetLeftLeg(l Leg) error             { return r.SetSlot("left_leg", l) }
func (r *Rider) SetRightLeg(l Leg) error            { return r.SetSlot("right_leg", l) }
func (r *Rider) SetLeftArm(a core.Component) error  { return r.SetSlot("left_arm", a) }
func (r *Rider) SetRightArm(a core.Component) error { return r.SetSlot("right_arm", a) }
func (r *Rider) SetLeftHip(h Hip) error             { return r.SetSlot("left_hip", h) }
func (r *Rider) SetRightHip(h Hip) error            { return r.SetSlot("right_hip", h) }

// DefineConnections hands the pelvis and the leg of each side to its hip.
// A hip without a leg fails on the leg slot of the hip.
func (r *Rider) DefineConnections() error {
	for _, side := range []struct{ hip, leg string }{
		{"left_hip", "left_leg"},
		{"right_hip", "right_leg"},
	} {
		hip := r.Slot(side.hip)
		if hip == nil {
			continue
		}
		if err := hip.Core().SetSlot("pelvis", r.Slot("pelvis")); err != nil {
			return err
		}
		if leg := r.Slot(side.leg); leg != nil {
			if err := hip.Core().SetSlot("leg", leg); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Rider) DefineObjects() error {
	p := r.Pelvis()
	if p == nil || p.Body() == nil {
		return fmt.Errorf("%w: %s needs the pelvis objects", core.ErrPhaseOrder, r.Name())
	}
	r.SetSystem(mechanics.NewSystem(p.Body().Masscenter(), p.Frame()))
	return nil
}
