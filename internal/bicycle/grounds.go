package bicycle

import (
	"fmt"

	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/mechanics"
	"github.com/san-kum/brim/internal/sym"
)

var GroundBaseType = core.Define(&core.Type{
	Name:     "GroundBase",
	Kind:     core.KindModel,
	Doc:      "Base type for the ground.",
	Abstract: true,
})

var FlatGroundType = core.Define(&core.Type{
	Name: "FlatGround",
	Kind: core.KindModel,
	Doc:  "Flat ground.\n\nThe ground plane is spanned by the x and y axes of its frame.",
	Base: GroundBaseType,
	New:  func(t *core.Type, name string) core.Component { return newFlatGround(t, name) },
})

// Ground is implemented by every ground model.
type Ground interface {
	core.Component
	Frame() *mechanics.Frame
	Origin() *mechanics.Point
	// Normal returns the unit normal at p pointing away from the ground,
	// the direction the wheels push into.
	Normal(p *mechanics.Point) mechanics.Vector
	Tangents(p *mechanics.Point) [2]mechanics.Vector
	// SetPointPos places p on the ground at planar coordinates (x, y).
	SetPointPos(p *mechanics.Point, x, y sym.Expr)
}

// FlatGround is a plane whose normal is the negative z axis of its frame by
// default, matching a z-down convention.
type FlatGround struct {
	core.Base
	core.NewtonianBody
	upward bool
}

var _ Ground = (*FlatGround)(nil)

func NewFlatGround(name string) *FlatGround { return newFlatGround(FlatGroundType, name) }

func newFlatGround(t *core.Type, name string) *FlatGround {
	g := &FlatGround{}
	g.Init(g, t, name)
	return g
}

func (g *FlatGround) DefineObjects() error {
	g.NewtonianBody.DefineObjects(&g.Base)
	return nil
}

func (g *FlatGround) Origin() *mechanics.Point { return g.Body().Masscenter() }

func (g *FlatGround) Normal(*mechanics.Point) mechanics.Vector {
	if g.upward {
		return g.Frame().Z()
	}
	return g.Frame().Z().Neg()
}

func (g *FlatGround) Tangents(*mechanics.Point) [2]mechanics.Vector {
	return [2]mechanics.Vector{g.Frame().X(), g.Frame().Y()}
}

func (g *FlatGround) SetPointPos(p *mechanics.Point, x, y sym.Expr) {
	p.SetPos(g.Origin(), g.Frame().X().Scale(x).Add(g.Frame().Y().Scale(y)))
}

// SetOption accepts "normal" with value "-z" (default) or "+z".
func (g *FlatGround) SetOption(name string, value any) error {
	if name != "normal" {
		return core.UnknownOption(name)
	}
	switch value {
	case "-z":
		g.upward = false
	case "+z", "z":
		g.upward = true
	default:
		return fmt.Errorf("ground normal must be -z or +z, got %v", value)
	}
	return nil
}
