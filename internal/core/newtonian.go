package core

import "github.com/san-kum/brim/internal/mechanics"

// NewtonianBody is shared behaviour for models made of one rigid body whose
// mass center and frame root the model's system.
type NewtonianBody struct {
	body *mechanics.RigidBody
}

// DefineObjects creates the body, named after the component, and the
// component system rooted at it. Models call it before adding their own
// objects.
func (n *NewtonianBody) DefineObjects(b *Base) {
	n.body = mechanics.NewRigidBody(b.Name())
	b.SetSystem(mechanics.SystemFromNewtonian(n.body))
	b.Describe(n.body.Mass, "Mass of the "+b.Name()+".")
}

func (n *NewtonianBody) Body() *mechanics.RigidBody { return n.body }

// Frame returns the body frame, or nil before the objects phase.
func (n *NewtonianBody) Frame() *mechanics.Frame {
	if n.body == nil {
		return nil
	}
	return n.body.Frame()
}
