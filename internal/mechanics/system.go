package mechanics

import (
	"fmt"

	"github.com/san-kum/brim/internal/sym"
)

// System accumulates the pieces of a multibody model. All Add methods skip
// entries that are already present, so systems can be merged repeatedly.
type System struct {
	origin       *Point
	frame        *Frame
	bodies       []*RigidBody
	joints       []Joint
	q, u         []*sym.Dynamic
	kdes         []sym.Expr
	holonomic    []sym.Expr
	nonholonomic []sym.Expr
	loads        []Load
}

// NewSystem creates a system whose inertial frame is frame with origin fixed
// in it.
func NewSystem(origin *Point, frame *Frame) *System {
	origin.SetVel(frame, Vector{})
	return &System{origin: origin, frame: frame}
}

// SystemFromNewtonian creates a system rooted at the mass center and frame
// of body, adding body to it.
func SystemFromNewtonian(body *RigidBody) *System {
	s := NewSystem(body.masscenter, body.frame)
	s.AddBodies(body)
	return s
}

func (s *System) Origin() *Point                 { return s.origin }
func (s *System) Frame() *Frame                  { return s.frame }
func (s *System) Bodies() []*RigidBody           { return append([]*RigidBody(nil), s.bodies...) }
func (s *System) Joints() []Joint                { return append([]Joint(nil), s.joints...) }
func (s *System) Q() []*sym.Dynamic              { return append([]*sym.Dynamic(nil), s.q...) }
func (s *System) U() []*sym.Dynamic              { return append([]*sym.Dynamic(nil), s.u...) }
func (s *System) KinematicEquations() []sym.Expr { return append([]sym.Expr(nil), s.kdes...) }
func (s *System) Holonomic() []sym.Expr          { return append([]sym.Expr(nil), s.holonomic...) }
func (s *System) Nonholonomic() []sym.Expr       { return append([]sym.Expr(nil), s.nonholonomic...) }
func (s *System) Loads() []Load                  { return append([]Load(nil), s.loads...) }

// GetBody returns the body with the given name.
func (s *System) GetBody(name string) (*RigidBody, bool) {
	for _, b := range s.bodies {
		if b.name == name {
			return b, true
		}
	}
	return nil, false
}

func (s *System) AddBodies(bodies ...*RigidBody) {
	for _, b := range bodies {
		if !containsPtr(s.bodies, b) {
			s.bodies = append(s.bodies, b)
		}
	}
}

// AddJoints adds joints together with their bodies, coordinates, speeds and
// kinematic differential equations.
func (s *System) AddJoints(joints ...Joint) {
	for _, j := range joints {
		if containsPtr(s.joints, j) {
			continue
		}
		s.joints = append(s.joints, j)
		s.AddBodies(j.Parent(), j.Child())
		s.AddCoordinates(j.Coordinates()...)
		s.AddSpeeds(j.Speeds()...)
		s.AddKinematicEquations(j.KinematicEquations()...)
	}
}

func (s *System) AddCoordinates(q ...*sym.Dynamic) {
	for _, qi := range q {
		if !containsPtr(s.q, qi) {
			s.q = append(s.q, qi)
		}
	}
}

func (s *System) AddSpeeds(u ...*sym.Dynamic) {
	for _, ui := range u {
		if !containsPtr(s.u, ui) {
			s.u = append(s.u, ui)
		}
	}
}

func (s *System) AddKinematicEquations(eqs ...sym.Expr) {
	s.kdes = appendExprs(s.kdes, eqs)
}

func (s *System) AddHolonomic(eqs ...sym.Expr) {
	s.holonomic = appendExprs(s.holonomic, eqs)
}

func (s *System) AddNonholonomic(eqs ...sym.Expr) {
	s.nonholonomic = appendExprs(s.nonholonomic, eqs)
}

func (s *System) AddLoads(loads ...Load) {
	for _, l := range loads {
		if !containsPtr(s.loads, l) {
			s.loads = append(s.loads, l)
		}
	}
}

// Merge adds everything of other to s. The origin and frame of s are kept.
func (s *System) Merge(other *System) {
	if other == nil || other == s {
		return
	}
	s.AddBodies(other.bodies...)
	s.AddJoints(other.joints...)
	s.AddCoordinates(other.q...)
	s.AddSpeeds(other.u...)
	s.AddKinematicEquations(other.kdes...)
	s.AddHolonomic(other.holonomic...)
	s.AddNonholonomic(other.nonholonomic...)
	s.AddLoads(other.loads...)
}

// Validate checks that coordinates, speeds and kinematic differential
// equations are consistent in number.
func (s *System) Validate() error {
	if len(s.q) != len(s.u) {
		return fmt.Errorf("%w: %d coordinates but %d speeds", ErrInvalidSystem, len(s.q), len(s.u))
	}
	if len(s.kdes) != len(s.q) {
		return fmt.Errorf("%w: %d coordinates but %d kinematic differential equations", ErrInvalidSystem, len(s.q), len(s.kdes))
	}
	return nil
}

// KinDiffDict solves the kinematic differential equations for the
// coordinate derivatives. Each equation must be linear in exactly one q'.
func (s *System) KinDiffDict() (map[string]sym.Expr, error) {
	out := make(map[string]sym.Expr, len(s.q))
	for _, q := range s.q {
		qd := q.Diff()
		key := qd.String()
		var found bool
		for _, eq := range s.kdes {
			if !dependsOn(eq, key) {
				continue
			}
			rest := sym.Subs(eq, map[string]sym.Expr{key: sym.Num(0)})
			coef := sym.Sub(sym.Subs(eq, map[string]sym.Expr{key: sym.Num(1)}), rest)
			out[key] = sym.Neg(sym.Div(rest, coef))
			found = true
			break
		}
		if !found {
			return nil, fmt.Errorf("%w: no kinematic differential equation for %s", ErrInvalidSystem, key)
		}
	}
	return out, nil
}

func dependsOn(e sym.Expr, name string) bool {
	for _, f := range sym.Free(e) {
		if f.String() == name {
			return true
		}
	}
	return false
}

func appendExprs(dst, src []sym.Expr) []sym.Expr {
	for _, e := range src {
		dup := false
		for _, d := range dst {
			if d == e || d.String() == e.String() {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, e)
		}
	}
	return dst
}

func containsPtr[T comparable](xs []T, x T) bool {
	for _, e := range xs {
		if e == x {
			return true
		}
	}
	return false
}
