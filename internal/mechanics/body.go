package mechanics

import "github.com/san-kum/brim/internal/sym"

// Inertia is a central inertia dyadic given by its measure numbers in Frame.
type Inertia struct {
	Frame                        *Frame
	Ixx, Iyy, Izz, Ixy, Iyz, Izx sym.Expr
}

// Matrix returns the inertia matrix in the inertia frame.
func (i Inertia) Matrix() Matrix {
	return Matrix{
		{i.Ixx, i.Ixy, i.Izx},
		{i.Ixy, i.Iyy, i.Iyz},
		{i.Izx, i.Iyz, i.Izz},
	}
}

// RigidBody has a frame, a mass center fixed in that frame, a mass and a
// central inertia.
type RigidBody struct {
	name       string
	frame      *Frame
	masscenter *Point
	Mass       sym.Expr
	Inertia    Inertia
}

// NewRigidBody creates a body with frame "<name>_frame", mass center
// "<name>_masscenter", mass "<name>_mass" and a general symbolic inertia.
func NewRigidBody(name string) *RigidBody {
	f := NewFrame(name + "_frame")
	mc := NewPoint(name + "_masscenter")
	mc.SetVel(f, Vector{})
	return &RigidBody{
		name:       name,
		frame:      f,
		masscenter: mc,
		Mass:       sym.NewSymbol(name + "_mass"),
		Inertia: Inertia{
			Frame: f,
			Ixx:   sym.NewSymbol(name + "_ixx"),
			Iyy:   sym.NewSymbol(name + "_iyy"),
			Izz:   sym.NewSymbol(name + "_izz"),
			Ixy:   sym.NewSymbol(name + "_ixy"),
			Iyz:   sym.NewSymbol(name + "_iyz"),
			Izx:   sym.NewSymbol(name + "_izx"),
		},
	}
}

func (b *RigidBody) Name() string         { return b.name }
func (b *RigidBody) Frame() *Frame        { return b.frame }
func (b *RigidBody) Masscenter() *Point   { return b.masscenter }
func (b *RigidBody) X() Vector            { return b.frame.X() }
func (b *RigidBody) Y() Vector            { return b.frame.Y() }
func (b *RigidBody) Z() Vector            { return b.frame.Z() }
func (b *RigidBody) String() string       { return b.name }
func (b *RigidBody) SetInertia(i Inertia) { b.Inertia = i }

// SymmetricInertia returns an inertia with only diagonal entries.
func SymmetricInertia(f *Frame, ixx, iyy, izz sym.Expr) Inertia {
	zero := sym.Num(0)
	return Inertia{Frame: f, Ixx: ixx, Iyy: iyy, Izz: izz, Ixy: zero, Iyz: zero, Izx: zero}
}
