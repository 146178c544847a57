package mechanics

import "github.com/san-kum/brim/internal/sym"

// Load is a force on a point or a torque on a frame.
type Load interface {
	Location() string
	Vector() Vector
}

type Force struct {
	Point *Point
	Force Vector
}

func (f *Force) Location() string { return f.Point.name }
func (f *Force) Vector() Vector   { return f.Force }

type Torque struct {
	Frame  *Frame
	Torque Vector
}

func (t *Torque) Location() string { return t.Frame.name }
func (t *Torque) Vector() Vector   { return t.Torque }

// Gravity returns one force m*g per body at its mass center, where g is the
// gravitational acceleration vector.
func Gravity(g Vector, bodies ...*RigidBody) []Load {
	out := make([]Load, 0, len(bodies))
	for _, b := range bodies {
		out = append(out, &Force{Point: b.masscenter, Force: g.Scale(b.Mass)})
	}
	return out
}

// TorqueOnPair returns the action-reaction torques T on child and -T on parent.
func TorqueOnPair(torque Vector, child, parent *Frame) []Load {
	return []Load{
		&Torque{Frame: child, Torque: torque},
		&Torque{Frame: parent, Torque: torque.Neg()},
	}
}

// SpringDamperTorque returns the torque -(k*(q - qRef) + c*q') about axis.
func SpringDamperTorque(axis Vector, k, c, q, qRef sym.Expr) Vector {
	return axis.Scale(sym.Neg(sym.Add(sym.Mul(k, sym.Sub(q, qRef)), sym.Mul(c, sym.Dt(q)))))
}
