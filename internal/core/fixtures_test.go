package core

import (
	"errors"

	"github.com/san-kum/brim/internal/mechanics"
	"github.com/san-kum/brim/internal/params"
	"github.com/san-kum/brim/internal/sym"
)

var errBoom = errors.New("boom")

var (
	testWheelBase = &Type{
		Name:     "TestWheelBase",
		Kind:     KindModel,
		Doc:      "Wheel of the test vehicle.\n\nLonger explanation.",
		Abstract: true,
	}
	testWheel = &Type{
		Name: "TestWheel",
		Kind: KindModel,
		Doc:  "Concrete test wheel.",
		Base: testWheelBase,
		New:  newFixtureComponent,
	}
	testGround = &Type{
		Name: "TestGround",
		Kind: KindModel,
		Doc:  "Flat test ground.",
		New:  newFixtureComponent,
	}
	testTyreBase = &Type{
		Name:     "TestTyreBase",
		Kind:     KindConnection,
		Doc:      "Tyre connecting a wheel to the ground.",
		Abstract: true,
		RequiredModels: []Requirement{
			MustModelRequirement("ground", []*Type{testGround}, Hard()),
			MustModelRequirement("wheel", []*Type{testWheelBase}, Hard()),
		},
	}
	testTyre = &Type{
		Name: "TestTyre",
		Kind: KindConnection,
		Doc:  "Concrete test tyre.",
		Base: testTyreBase,
		New:  newFixtureComponent,
	}
	testVehicle = &Type{
		Name: "TestVehicle",
		Kind: KindModel,
		Doc:  "Vehicle made of a wheel on the ground.",
		New:  newFixtureComponent,
		RequiredModels: []Requirement{
			MustModelRequirement("wheel", []*Type{testWheelBase}, Hard()),
			MustModelRequirement("ground", []*Type{testGround}, Hard()),
			MustModelRequirement("spare_wheel", []*Type{testWheelBase}),
		},
		RequiredConnections: []Requirement{
			MustConnectionRequirement("tyre", []*Type{testTyreBase}, Hard()),
		},
	}
	testBrake = &Type{
		Name:       "TestBrake",
		Kind:       KindLoadGroup,
		Doc:        "Braking torque on a wheel.",
		Base:       LoadGroupBaseType,
		Compatible: []*Type{testWheelBase},
		New:        newFixtureComponent,
	}
)

func newTestRegistry() *Registry {
	r := NewRegistry()
	for _, t := range []*Type{testWheelBase, testWheel, testGround, testTyreBase, testTyre, testVehicle, testBrake, LoadGroupBaseType} {
		if err := r.Register(t); err != nil {
			panic(err)
		}
	}
	return r
}

// fixture records every hook call into a shared log.
type fixture struct {
	Base
	log           *[]string
	fail          Phase
	onConnections func(f *fixture) error
	params        sym.Values
	options       map[string]any
}

func newFixtureComponent(t *Type, name string) Component {
	f := &fixture{log: &[]string{}}
	f.Init(f, t, name)
	return f
}

func newFixture(t *Type, name string, log *[]string) *fixture {
	f := newFixtureComponent(t, name).(*fixture)
	f.log = log
	return f
}

func (f *fixture) record(p Phase) error {
	*f.log = append(*f.log, f.Name()+":"+p.String())
	if f.fail == p {
		return errBoom
	}
	return nil
}

func (f *fixture) DefineConnections() error {
	if err := f.record(ConnectionsDefined); err != nil {
		return err
	}
	if f.onConnections != nil {
		return f.onConnections(f)
	}
	return nil
}

func (f *fixture) DefineObjects() error {
	if err := f.record(ObjectsDefined); err != nil {
		return err
	}
	s := mechanics.NewSystem(mechanics.NewPoint(f.Prefix("origin")), mechanics.NewFrame(f.Prefix("frame")))
	s.AddHolonomic(f.NewSymbol("h", "Holonomic marker of "+f.Name()+"."))
	f.SetSystem(s)
	return nil
}

func (f *fixture) DefineKinematics() error  { return f.record(KinematicsDefined) }
func (f *fixture) DefineLoads() error       { return f.record(LoadsDefined) }
func (f *fixture) DefineConstraints() error { return f.record(ConstraintsDefined) }

func (f *fixture) ParamValues(*params.Data) sym.Values { return f.params }

func (f *fixture) SetOption(name string, value any) error {
	if name != "color" {
		return UnknownOption(name)
	}
	if f.options == nil {
		f.options = make(map[string]any)
	}
	f.options[name] = value
	return nil
}

// vehicleTree builds a complete vehicle whose connections hook wires the
// tyre to the wheel and the ground.
func vehicleTree(log *[]string) (vehicle, wheel, ground, tyre *fixture) {
	vehicle = newFixture(testVehicle, "vehicle", log)
	wheel = newFixture(testWheel, "wheel", log)
	ground = newFixture(testGround, "ground", log)
	tyre = newFixture(testTyre, "tyre", log)
	vehicle.onConnections = func(f *fixture) error {
		t := f.Slot("tyre").Core()
		if err := t.SetSlot("wheel", f.Slot("wheel")); err != nil {
			return err
		}
		return t.SetSlot("ground", f.Slot("ground"))
	}
	mustSet(vehicle, "wheel", wheel)
	mustSet(vehicle, "ground", ground)
	mustSet(vehicle, "tyre", tyre)
	return vehicle, wheel, ground, tyre
}

func mustSet(c Component, slot string, v Component) {
	if err := c.Core().SetSlot(slot, v); err != nil {
		panic(err)
	}
}
