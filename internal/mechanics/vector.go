package mechanics

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/brim/internal/sym"
)

type term struct {
	frame *Frame
	c     [3]sym.Expr
}

// Vector is a sum of components in one or more frames. The zero value is
// the zero vector.
type Vector struct {
	terms []term
}

// NewVector builds a vector from components in f.
func NewVector(f *Frame, x, y, z sym.Expr) Vector {
	return f.fromComponents([3]sym.Expr{x, y, z})
}

func (v Vector) IsZero() bool { return len(v.terms) == 0 }

// Frames returns the frames v has components in.
func (v Vector) Frames() []*Frame {
	out := make([]*Frame, len(v.terms))
	for i, t := range v.terms {
		out[i] = t.frame
	}
	return out
}

func (v Vector) String() string {
	if v.IsZero() {
		return "0"
	}
	parts := make([]string, 0, 3*len(v.terms))
	for _, t := range v.terms {
		for i, c := range t.c {
			if sym.IsZero(c) {
				continue
			}
			parts = append(parts, fmt.Sprintf("(%s)*%s.%c", c, t.frame.name, "xyz"[i]))
		}
	}
	return strings.Join(parts, " + ")
}

// prune drops terms whose components are all structurally zero.
func (v Vector) prune() Vector {
	out := make([]term, 0, len(v.terms))
	for _, t := range v.terms {
		if sym.IsZero(t.c[0]) && sym.IsZero(t.c[1]) && sym.IsZero(t.c[2]) {
			continue
		}
		out = append(out, t)
	}
	return Vector{terms: out}
}

// Add returns v + o, merging components expressed in the same frame.
func (v Vector) Add(o Vector) Vector {
	out := make([]term, len(v.terms), len(v.terms)+len(o.terms))
	copy(out, v.terms)
	for _, t := range o.terms {
		merged := false
		for i := range out {
			if out[i].frame == t.frame {
				for k := 0; k < 3; k++ {
					out[i].c[k] = sym.Add(out[i].c[k], t.c[k])
				}
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, t)
		}
	}
	return Vector{terms: out}.prune()
}

func (v Vector) Sub(o Vector) Vector { return v.Add(o.Neg()) }
func (v Vector) Neg() Vector         { return v.Scale(sym.Num(-1)) }

// Scale multiplies every component by s.
func (v Vector) Scale(s sym.Expr) Vector {
	out := make([]term, len(v.terms))
	for i, t := range v.terms {
		out[i] = term{frame: t.frame, c: [3]sym.Expr{sym.Mul(s, t.c[0]), sym.Mul(s, t.c[1]), sym.Mul(s, t.c[2])}}
	}
	return Vector{terms: out}.prune()
}

// Components returns the measure numbers of v in f.
func (v Vector) Components(f *Frame) ([3]sym.Expr, error) {
	sum := [3][]sym.Expr{}
	for _, t := range v.terms {
		if t.frame == f {
			for i := 0; i < 3; i++ {
				sum[i] = append(sum[i], t.c[i])
			}
			continue
		}
		dcm, err := f.DCM(t.frame)
		if err != nil {
			return [3]sym.Expr{}, err
		}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				sum[i] = append(sum[i], sym.Mul(dcm[i][j], t.c[j]))
			}
		}
	}
	return [3]sym.Expr{sym.Add(sum[0]...), sym.Add(sum[1]...), sym.Add(sum[2]...)}, nil
}

// Express returns v with all components in f.
func (v Vector) Express(f *Frame) (Vector, error) {
	c, err := v.Components(f)
	if err != nil {
		return Vector{}, err
	}
	return f.fromComponents(c), nil
}

// frame picks a frame to carry out binary operations in.
func (v Vector) frame(o Vector) *Frame {
	if !v.IsZero() {
		return v.terms[0].frame
	}
	if !o.IsZero() {
		return o.terms[0].frame
	}
	return nil
}

// Dot returns the scalar product v·o.
func (v Vector) Dot(o Vector) (sym.Expr, error) {
	f := v.frame(o)
	if v.IsZero() || o.IsZero() {
		return sym.Num(0), nil
	}
	a, err := v.Components(f)
	if err != nil {
		return nil, err
	}
	b, err := o.Components(f)
	if err != nil {
		return nil, err
	}
	return sym.Add(sym.Mul(a[0], b[0]), sym.Mul(a[1], b[1]), sym.Mul(a[2], b[2])), nil
}

// Cross returns the vector product v×o.
func (v Vector) Cross(o Vector) (Vector, error) {
	if v.IsZero() || o.IsZero() {
		return Vector{}, nil
	}
	f := v.frame(o)
	a, err := v.Components(f)
	if err != nil {
		return Vector{}, err
	}
	b, err := o.Components(f)
	if err != nil {
		return Vector{}, err
	}
	return f.fromComponents([3]sym.Expr{
		sym.Sub(sym.Mul(a[1], b[2]), sym.Mul(a[2], b[1])),
		sym.Sub(sym.Mul(a[2], b[0]), sym.Mul(a[0], b[2])),
		sym.Sub(sym.Mul(a[0], b[1]), sym.Mul(a[1], b[0])),
	}), nil
}

// Magnitude returns |v|.
func (v Vector) Magnitude() (sym.Expr, error) {
	d, err := v.Dot(v)
	if err != nil {
		return nil, err
	}
	return sym.Sqrt(d), nil
}

// Normalize returns v/|v|.
func (v Vector) Normalize() (Vector, error) {
	if v.IsZero() {
		return Vector{}, fmt.Errorf("%w: normalizing the zero vector", ErrGeometricConstraint)
	}
	m, err := v.Magnitude()
	if err != nil {
		return Vector{}, err
	}
	return v.Scale(sym.Pow(m, -1)), nil
}

// Dt returns the time derivative of v as observed from f.
func (v Vector) Dt(f *Frame) (Vector, error) {
	var out Vector
	for _, t := range v.terms {
		local := t.frame.fromComponents([3]sym.Expr{sym.Dt(t.c[0]), sym.Dt(t.c[1]), sym.Dt(t.c[2])})
		out = out.Add(local)
		if t.frame == f {
			continue
		}
		w, err := t.frame.AngVelIn(f)
		if err != nil {
			return Vector{}, err
		}
		transport, err := w.Cross(Vector{terms: []term{t}})
		if err != nil {
			return Vector{}, err
		}
		out = out.Add(transport)
	}
	return out, nil
}

// Eval evaluates the components of v in f.
func (v Vector) Eval(f *Frame, vals sym.Values) ([3]float64, error) {
	c, err := v.Components(f)
	if err != nil {
		return [3]float64{}, err
	}
	var out [3]float64
	for i := range c {
		if out[i], err = sym.Eval(c[i], vals); err != nil {
			return [3]float64{}, err
		}
	}
	return out, nil
}

func numericComponents(c [3]sym.Expr) ([3]float64, bool) {
	var out [3]float64
	for i, e := range c {
		n, ok := e.(sym.Num)
		if !ok {
			return out, false
		}
		out[i] = float64(n)
	}
	return out, true
}

func norm(v [3]float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}
