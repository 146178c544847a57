package mechanics

import (
	"fmt"

	"github.com/san-kum/brim/internal/sym"
)

// Joint relates a child body to a parent body through generalized
// coordinates and speeds.
type Joint interface {
	Name() string
	Parent() *RigidBody
	Child() *RigidBody
	Coordinates() []*sym.Dynamic
	Speeds() []*sym.Dynamic
	KinematicEquations() []sym.Expr
}

// PinJoint is a single degree of freedom rotation of child about an axis
// fixed in parent.
type PinJoint struct {
	name         string
	parent       *RigidBody
	child        *RigidBody
	q, u         *sym.Dynamic
	parentOffset Vector
	childOffset  Vector
	axis         Vector
	point        *Point
}

// PinOption configures a PinJoint.
type PinOption func(*PinJoint)

// WithParentOffset places the joint relative to the parent mass center.
func WithParentOffset(v Vector) PinOption {
	return func(j *PinJoint) { j.parentOffset = v }
}

// WithChildOffset places the joint relative to the child mass center.
func WithChildOffset(v Vector) PinOption {
	return func(j *PinJoint) { j.childOffset = v }
}

// WithJointAxis sets the rotation axis. It must be expressible in the parent
// frame. Defaults to the parent x axis.
func WithJointAxis(v Vector) PinOption {
	return func(j *PinJoint) { j.axis = v }
}

// NewPinJoint orients the child frame relative to the parent frame by q
// about the joint axis and positions the child mass center so both joint
// attachment points coincide.
func NewPinJoint(name string, parent, child *RigidBody, q, u *sym.Dynamic, opts ...PinOption) (*PinJoint, error) {
	j := &PinJoint{
		name:   name,
		parent: parent,
		child:  child,
		q:      q,
		u:      u,
		axis:   parent.X(),
		point:  NewPoint(name + "_point"),
	}
	for _, opt := range opts {
		opt(j)
	}
	if err := child.frame.OrientAxis(parent.frame, q, j.axis); err != nil {
		return nil, fmt.Errorf("pin joint %s: %w", name, err)
	}
	j.point.SetPos(parent.masscenter, j.parentOffset)
	child.masscenter.SetPos(j.point, j.childOffset.Neg())
	return j, nil
}

func (j *PinJoint) Name() string       { return j.name }
func (j *PinJoint) Parent() *RigidBody { return j.parent }
func (j *PinJoint) Child() *RigidBody  { return j.child }
func (j *PinJoint) Axis() Vector       { return j.axis }

// Point is where the joint attaches both bodies.
func (j *PinJoint) Point() *Point { return j.point }

func (j *PinJoint) Coordinates() []*sym.Dynamic { return []*sym.Dynamic{j.q} }
func (j *PinJoint) Speeds() []*sym.Dynamic      { return []*sym.Dynamic{j.u} }

// KinematicEquations returns q' - u.
func (j *PinJoint) KinematicEquations() []sym.Expr {
	return []sym.Expr{sym.Sub(j.q.Diff(), j.u)}
}
