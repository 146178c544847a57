package rider

import (
	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/mechanics"
	"github.com/san-kum/brim/internal/params"
	"github.com/san-kum/brim/internal/sym"
)

var PelvisBaseType = core.Define(&core.Type{
	Name:     "PelvisBase",
	Kind:     core.KindModel,
	Doc:      "Base type for the pelvis of the rider.",
	Abstract: true,
})

var PlanarPelvisType = core.Define(&core.Type{
	Name: "PlanarPelvis",
	Kind: core.KindModel,
	Doc:  "Pelvis with the hip joints in its sagittal-frontal plane.",
	Base: PelvisBaseType,
	New:  func(t *core.Type, name string) core.Component { return newPlanarPelvis(t, name) },
})

// Pelvis is implemented by every pelvis model.
type Pelvis interface {
	core.Component
	Body() *mechanics.RigidBody
	Frame() *mechanics.Frame
	LeftHipPoint() *mechanics.Point
	RightHipPoint() *mechanics.Point
}

// PlanarPelvis places the hip points hip_width apart along the pelvis y
// axis, com_height below the mass center along its z axis.
type PlanarPelvis struct {
	core.Base
	core.NewtonianBody
	leftHip, rightHip *mechanics.Point
}

var _ Pelvis = (*PlanarPelvis)(nil)

func NewPlanarPelvis(name string) *PlanarPelvis { return newPlanarPelvis(PlanarPelvisType, name) }

func newPlanarPelvis(t *core.Type, name string) *PlanarPelvis {
	p := &PlanarPelvis{}
	p.Init(p, t, name)
	return p
}

func (p *PlanarPelvis) LeftHipPoint() *mechanics.Point  { return p.leftHip }
func (p *PlanarPelvis) RightHipPoint() *mechanics.Point { return p.rightHip }

func (p *PlanarPelvis) DefineObjects() error {
	p.NewtonianBody.DefineObjects(&p.Base)
	p.NewSymbol("hip_width", "Distance between the hip joints.")
	p.NewSymbol("com_height", "Distance from the hip joint axis to the center of mass of the pelvis.")
	p.leftHip = mechanics.NewPoint(p.Prefix("left_hip_point"))
	p.rightHip = mechanics.NewPoint(p.Prefix("right_hip_point"))
	return nil
}

func (p *PlanarPelvis) DefineKinematics() error {
	half := sym.Div(p.Symbol("hip_width"), sym.Num(2))
	below := p.Frame().Z().Scale(p.Symbol("com_height"))
	mc := p.Body().Masscenter()
	p.leftHip.SetPos(mc, below.Sub(p.Frame().Y().Scale(half)))
	p.rightHip.SetPos(mc, below.Add(p.Frame().Y().Scale(half)))
	p.leftHip.SetVel(p.Frame(), mechanics.Vector{})
	p.rightHip.SetVel(p.Frame(), mechanics.Vector{})
	return nil
}

func (p *PlanarPelvis) ParamValues(d *params.Data) sym.Values {
	return riderValues(d, map[string]sym.Expr{
		"m_pelvis":   p.Body().Mass,
		"hip_width":  p.Symbol("hip_width"),
		"com_height": p.Symbol("com_height"),
	})
}

// riderValues maps rider parameter names onto expressions, skipping names
// the data set does not hold.
func riderValues(d *params.Data, keys map[string]sym.Expr) sym.Values {
	vals := make(sym.Values)
	for key, e := range keys {
		if e == nil {
			continue
		}
		if v, ok := d.RiderValue(key); ok {
			vals.Set(e, v)
		}
	}
	return vals
}
