package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetSlot(t *testing.T) {
	log := &[]string{}
	vehicle := newFixture(testVehicle, "vehicle", log)
	wheel := newFixture(testWheel, "wheel", log)
	ground := newFixture(testGround, "ground", log)

	require.NoError(t, vehicle.SetSlot("wheel", wheel))
	assert.Same(t, wheel, vehicle.Slot("wheel"))
	assert.Nil(t, vehicle.Slot("spare_wheel"))

	err := vehicle.SetSlot("wheel", ground)
	assert.ErrorIs(t, err, ErrSlotTypeMismatch)
	var slotErr *SlotError
	require.ErrorAs(t, err, &slotErr)
	assert.Equal(t, "TestWheelBase", slotErr.Want)
	assert.Equal(t, "TestGround", slotErr.Got)
	assert.Same(t, wheel, vehicle.Slot("wheel"), "a rejected value leaves the slot untouched")

	assert.ErrorIs(t, vehicle.SetSlot("engine", wheel), ErrUnknownSlot)
}

func TestSetSlotNilClears(t *testing.T) {
	vehicle := newFixture(testVehicle, "vehicle", &[]string{})
	wheel := newFixture(testWheel, "wheel", &[]string{})

	require.NoError(t, vehicle.SetSlot("wheel", wheel))
	require.NoError(t, vehicle.SetSlot("wheel", nil), "nil is accepted for hard slots")
	assert.Nil(t, vehicle.Slot("wheel"))

	var typedNil *fixture
	require.NoError(t, vehicle.SetSlot("wheel", wheel))
	require.NoError(t, vehicle.SetSlot("wheel", typedNil))
	assert.Nil(t, vehicle.Slot("wheel"))
}

func TestSymbolsAndDescriptions(t *testing.T) {
	log := &[]string{}
	vehicle, wheel, _, _ := vehicleTree(log)

	r := wheel.NewSymbol("r", "Radius of the wheel.")
	q := vehicle.NewCoordinate("q1", "Yaw angle.")
	u := vehicle.NewSpeed("u1", "Yaw rate.")
	vehicle.NewSymbol("silent", "")

	assert.Equal(t, "wheel_r", r.Name())
	assert.Equal(t, "vehicle_q1", q.Name())
	assert.Same(t, r, wheel.Symbol("r"))
	assert.Len(t, vehicle.Symbols(), 3)
	assert.Equal(t, "vehicle_x", vehicle.Prefix("x"))
	assert.Len(t, vehicle.Q(), 1)
	assert.Len(t, vehicle.U(), 1)

	desc := vehicle.Descriptions()
	assert.Equal(t, "Radius of the wheel.", desc[r])
	assert.Equal(t, "Yaw angle.", desc[q])
	assert.Equal(t, "Yaw rate.", desc[u])
	assert.Len(t, desc, 3)
}

func TestChildren(t *testing.T) {
	log := &[]string{}
	vehicle, wheel, ground, tyre := vehicleTree(log)
	require.NoError(t, tyre.SetSlot("wheel", wheel))

	assert.Equal(t, []Component{wheel, ground, tyre}, vehicle.Children())
	assert.Empty(t, tyre.Children(), "model slots of a connection are not its children")
}

func TestAddLoadGroups(t *testing.T) {
	log := &[]string{}
	wheel := newFixture(testWheel, "wheel", log)
	ground := newFixture(testGround, "ground", log)
	brake := newFixture(testBrake, "brake", log)

	assert.ErrorIs(t, ground.AddLoadGroups(brake), ErrIncompatibleLoadGroup)
	assert.ErrorIs(t, wheel.AddLoadGroups(ground), ErrIncompatibleLoadGroup)

	require.NoError(t, wheel.AddLoadGroups(brake))
	require.NoError(t, wheel.AddLoadGroups(brake))
	assert.Len(t, wheel.LoadGroups(), 1)
	assert.Same(t, wheel, brake.Parent())

	other := newFixture(testWheel, "other", log)
	assert.ErrorIs(t, other.AddLoadGroups(brake), ErrIncompatibleLoadGroup)
}

func TestConnectionDescriptionsIncludeModelSlots(t *testing.T) {
	log := &[]string{}
	_, wheel, ground, tyre := vehicleTree(log)
	r := wheel.NewSymbol("r", "Radius of the wheel.")
	g := ground.NewSymbol("g", "Gravity.")
	own := tyre.NewSymbol("k", "Stiffness of the tyre.")
	require.NoError(t, tyre.SetSlot("wheel", wheel))
	require.NoError(t, tyre.SetSlot("ground", ground))

	desc := tyre.Descriptions()
	assert.Equal(t, "Radius of the wheel.", desc[r])
	assert.Equal(t, "Gravity.", desc[g])
	assert.Equal(t, "Stiffness of the tyre.", desc[own])
	assert.Empty(t, tyre.Children())
}

func TestNilAndUninitializedComponents(t *testing.T) {
	wheel := newFixture(testWheel, "wheel", &[]string{})
	vehicle := newFixture(testVehicle, "vehicle", &[]string{})

	assert.ErrorIs(t, wheel.AddLoadGroups(nil), ErrIncompatibleLoadGroup)
	var typedNil *fixture
	assert.ErrorIs(t, wheel.AddLoadGroups(typedNil), ErrIncompatibleLoadGroup)
	assert.ErrorIs(t, wheel.AddLoadGroups(&fixture{}), ErrIncompatibleLoadGroup)
	assert.Empty(t, wheel.LoadGroups())

	err := vehicle.SetSlot("wheel", &fixture{})
	assert.ErrorIs(t, err, ErrSlotTypeMismatch)
	var slotErr *SlotError
	require.ErrorAs(t, err, &slotErr)
	assert.Equal(t, "<nil>", slotErr.Got)
	assert.Nil(t, vehicle.Slot("wheel"))
}
