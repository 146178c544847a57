package core

// Phase is the build state of a component. Each phase moves a component
// one step forward and can run only once.
type Phase int

const (
	Uninitialized Phase = iota
	ConnectionsDefined
	ObjectsDefined
	KinematicsDefined
	LoadsDefined
	ConstraintsDefined
)

// Phases lists the five build steps in order.
var Phases = []Phase{ConnectionsDefined, ObjectsDefined, KinematicsDefined, LoadsDefined, ConstraintsDefined}

func (p Phase) String() string {
	switch p {
	case Uninitialized:
		return "uninitialized"
	case ConnectionsDefined:
		return "define_connections"
	case ObjectsDefined:
		return "define_objects"
	case KinematicsDefined:
		return "define_kinematics"
	case LoadsDefined:
		return "define_loads"
	case ConstraintsDefined:
		return "define_constraints"
	default:
		return "invalid"
	}
}

// Hooks a component implements to take part in a phase. All are optional.
type (
	ConnectionsDefiner interface{ DefineConnections() error }
	ObjectsDefiner     interface{ DefineObjects() error }
	KinematicsDefiner  interface{ DefineKinematics() error }
	LoadsDefiner       interface{ DefineLoads() error }
	ConstraintsDefiner interface{ DefineConstraints() error }
)

func hook(c Component, p Phase) error {
	switch p {
	case ConnectionsDefined:
		if h, ok := c.(ConnectionsDefiner); ok {
			return h.DefineConnections()
		}
	case ObjectsDefined:
		if h, ok := c.(ObjectsDefiner); ok {
			return h.DefineObjects()
		}
	case KinematicsDefined:
		if h, ok := c.(KinematicsDefiner); ok {
			return h.DefineKinematics()
		}
	case LoadsDefined:
		if h, ok := c.(LoadsDefiner); ok {
			return h.DefineLoads()
		}
	case ConstraintsDefined:
		if h, ok := c.(ConstraintsDefiner); ok {
			return h.DefineConstraints()
		}
	}
	return nil
}

// DefineConnections wires connections to their sibling models, top-down.
// Hard slots must be filled.
func DefineConnections(c Component) error { return Run(c, ConnectionsDefined) }

// DefineObjects creates bodies, frames, points, symbols and local systems.
func DefineObjects(c Component) error { return Run(c, ObjectsDefined) }

// DefineKinematics relates the objects by position, orientation and velocity.
func DefineKinematics(c Component) error { return Run(c, KinematicsDefined) }

// DefineLoads adds forces and torques.
func DefineLoads(c Component) error { return Run(c, LoadsDefined) }

// DefineConstraints adds holonomic and nonholonomic constraints.
func DefineConstraints(c Component) error { return Run(c, ConstraintsDefined) }

// Run executes phase p on c and its descendants. c must have completed the
// previous phase. The connections phase runs the component's own hook before
// its children; the later phases run model children, then the hook, then
// load groups, then connection children. The state of a component advances
// only when it and all its descendants succeed.
func Run(c Component, p Phase) error {
	b := c.Core()
	if p < ConnectionsDefined || p > ConstraintsDefined || b.state != p-1 {
		return &PhaseError{Component: b.name, Phase: p, State: b.state, Err: ErrPhaseOrder}
	}

	if p == ConnectionsDefined {
		for _, r := range b.typ.Requirements() {
			if r.hard && b.slots[r.attr] == nil {
				return &SlotError{Component: b.name, Slot: r.attr, Want: r.TypeName(), Got: "nothing", Err: ErrMissingHardRequirement}
			}
		}
		if err := runHook(c, p); err != nil {
			return err
		}
		for _, child := range b.Children() {
			if err := Run(child, p); err != nil {
				return err
			}
		}
		if err := runLoadGroups(b, p); err != nil {
			return err
		}
		b.state = p
		return nil
	}

	var models, conns []Component
	for _, child := range b.Children() {
		if child.Type().Kind == KindModel {
			models = append(models, child)
		} else {
			conns = append(conns, child)
		}
	}
	for _, child := range models {
		if err := Run(child, p); err != nil {
			return err
		}
	}
	if err := runHook(c, p); err != nil {
		return err
	}
	if err := runLoadGroups(b, p); err != nil {
		return err
	}
	for _, child := range conns {
		if err := Run(child, p); err != nil {
			return err
		}
	}
	b.state = p
	return nil
}

func runHook(c Component, p Phase) error {
	if err := hook(c, p); err != nil {
		return &PhaseError{Component: c.Name(), Phase: p, State: c.Core().state, Err: err}
	}
	return nil
}

func runLoadGroups(b *Base, p Phase) error {
	for _, lg := range b.loadGroups {
		if err := Run(lg, p); err != nil {
			return err
		}
	}
	return nil
}

// Walk calls fn for c and every descendant, including load groups, parents
// before children.
func Walk(c Component, fn func(Component) error) error {
	if err := fn(c); err != nil {
		return err
	}
	b := c.Core()
	for _, child := range b.Children() {
		if err := Walk(child, fn); err != nil {
			return err
		}
	}
	for _, lg := range b.loadGroups {
		if err := Walk(lg, fn); err != nil {
			return err
		}
	}
	return nil
}
