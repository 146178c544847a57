package mechanics

import (
	"fmt"

	"github.com/san-kum/brim/internal/sym"
)

// Matrix is a 3x3 matrix of expressions.
type Matrix [3][3]sym.Expr

// Identity returns the 3x3 identity matrix.
func Identity() Matrix {
	var m Matrix
	for i := range m {
		for j := range m[i] {
			if i == j {
				m[i][j] = sym.Num(1)
			} else {
				m[i][j] = sym.Num(0)
			}
		}
	}
	return m
}

// Mul returns m*o.
func (m Matrix) Mul(o Matrix) Matrix {
	var out Matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = sym.Add(
				sym.Mul(m[i][0], o[0][j]),
				sym.Mul(m[i][1], o[1][j]),
				sym.Mul(m[i][2], o[2][j]),
			)
		}
	}
	return out
}

// T returns the transpose of m.
func (m Matrix) T() Matrix {
	var out Matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[j][i]
		}
	}
	return out
}

// Frame is a right-handed reference frame.
type Frame struct {
	name   string
	parent *Frame
	dcm    Matrix
	angVel Vector
}

// NewFrame creates an unoriented frame.
func NewFrame(name string) *Frame {
	return &Frame{name: name, dcm: Identity()}
}

func (f *Frame) Name() string   { return f.name }
func (f *Frame) String() string { return f.name }

func (f *Frame) X() Vector { return f.axis(0) }
func (f *Frame) Y() Vector { return f.axis(1) }
func (f *Frame) Z() Vector { return f.axis(2) }

func (f *Frame) axis(i int) Vector {
	c := [3]sym.Expr{sym.Num(0), sym.Num(0), sym.Num(0)}
	c[i] = sym.Num(1)
	return Vector{terms: []term{{frame: f, c: c}}}
}

// OrientAxis orients f relative to parent by a rotation of angle about axis.
// The axis may be expressed in any frame related to parent; numeric axes are
// normalized, symbolic ones are assumed to have unit length.
func (f *Frame) OrientAxis(parent *Frame, angle sym.Expr, axis Vector) error {
	if parent == f || parent.hasAncestor(f) {
		return fmt.Errorf("%w: orienting %s relative to itself", ErrGeometricConstraint, f.name)
	}
	k, err := axis.Components(parent)
	if err != nil {
		return err
	}
	if numeric, ok := numericComponents(k); ok {
		n := norm(numeric)
		if n == 0 {
			return fmt.Errorf("%w: zero rotation axis for %s", ErrGeometricConstraint, f.name)
		}
		for i := range k {
			k[i] = sym.Num(numeric[i] / n)
		}
	}

	c, s := sym.Cos(angle), sym.Sin(angle)
	oneMinusC := sym.Sub(sym.Num(1), c)
	skew := Matrix{
		{sym.Num(0), sym.Neg(k[2]), k[1]},
		{k[2], sym.Num(0), sym.Neg(k[0])},
		{sym.Neg(k[1]), k[0], sym.Num(0)},
	}
	var dcm Matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var diag sym.Expr = sym.Num(0)
			if i == j {
				diag = c
			}
			dcm[i][j] = sym.Add(diag, sym.Mul(oneMinusC, k[i], k[j]), sym.Neg(sym.Mul(s, skew[i][j])))
		}
	}

	f.parent = parent
	f.dcm = dcm
	f.angVel = parent.fromComponents(k).Scale(sym.Dt(angle))
	return nil
}

// OrientBodyFixed orients f relative to parent by three successive
// rotations about the axes of the rotating frame, in the given order such as
// "zxy" or "zyx".
func (f *Frame) OrientBodyFixed(parent *Frame, angles [3]sym.Expr, order string) error {
	if len(order) != 3 {
		return fmt.Errorf("%w: rotation order %q", ErrGeometricConstraint, order)
	}
	axes := [3]int{}
	for i, r := range order {
		switch r {
		case 'x', 'X', '1':
			axes[i] = 0
		case 'y', 'Y', '2':
			axes[i] = 1
		case 'z', 'Z', '3':
			axes[i] = 2
		default:
			return fmt.Errorf("%w: rotation order %q", ErrGeometricConstraint, order)
		}
		if i > 0 && axes[i] == axes[i-1] {
			return fmt.Errorf("%w: consecutive rotations about the same axis in %q", ErrGeometricConstraint, order)
		}
	}

	first := NewFrame(f.name + "_int1")
	second := NewFrame(f.name + "_int2")
	if err := first.OrientAxis(parent, angles[0], parent.axis(axes[0])); err != nil {
		return err
	}
	if err := second.OrientAxis(first, angles[1], first.axis(axes[1])); err != nil {
		return err
	}
	return f.OrientAxis(second, angles[2], second.axis(axes[2]))
}

func (f *Frame) fromComponents(c [3]sym.Expr) Vector {
	return Vector{terms: []term{{frame: f, c: c}}}.prune()
}

func (f *Frame) hasAncestor(a *Frame) bool {
	for p := f.parent; p != nil; p = p.parent {
		if p == a {
			return true
		}
	}
	return false
}

// commonAncestor returns the lowest frame both f and g descend from (each
// frame counts as its own ancestor).
func commonAncestor(f, g *Frame) *Frame {
	seen := make(map[*Frame]bool)
	for p := f; p != nil; p = p.parent {
		seen[p] = true
	}
	for p := g; p != nil; p = p.parent {
		if seen[p] {
			return p
		}
	}
	return nil
}

// dcmTo returns the direction cosines of f relative to its ancestor a.
func (f *Frame) dcmTo(a *Frame) Matrix {
	m := Identity()
	for p := f; p != a; p = p.parent {
		m = m.Mul(p.dcm)
	}
	return m
}

// DCM returns the direction cosine matrix of f relative to other:
// DCM[i][j] = f axis i dotted with other axis j.
func (f *Frame) DCM(other *Frame) (Matrix, error) {
	if f == other {
		return Identity(), nil
	}
	lca := commonAncestor(f, other)
	if lca == nil {
		return Matrix{}, fmt.Errorf("%w: %s and %s", ErrUnrelatedFrames, f.name, other.name)
	}
	return f.dcmTo(lca).Mul(other.dcmTo(lca).T()), nil
}

// angVelTo returns the angular velocity of f in its ancestor a.
func (f *Frame) angVelTo(a *Frame) Vector {
	var w Vector
	for p := f; p != a; p = p.parent {
		w = w.Add(p.angVel)
	}
	return w
}

// AngVelIn returns the angular velocity of f in other.
func (f *Frame) AngVelIn(other *Frame) (Vector, error) {
	if f == other {
		return Vector{}, nil
	}
	lca := commonAncestor(f, other)
	if lca == nil {
		return Vector{}, fmt.Errorf("%w: %s and %s", ErrUnrelatedFrames, f.name, other.name)
	}
	return f.angVelTo(lca).Sub(other.angVelTo(lca)), nil
}
