package mechanics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/brim/internal/sym"
)

func assertVectorZero(t *testing.T, v Vector, f *Frame) {
	t.Helper()
	c, err := v.Components(f)
	require.NoError(t, err)
	for i, ci := range c {
		assert.True(t, sym.CheckZero(ci, 10, 1e-9), "component %d is %s", i, ci)
	}
}

func TestOrientAxis(t *testing.T) {
	a := NewFrame("A")
	b := NewFrame("B")
	q := sym.NewDynamic("q")
	require.NoError(t, b.OrientAxis(a, q, a.Z()))

	dcm, err := b.DCM(a)
	require.NoError(t, err)
	assert.True(t, sym.CheckZero(sym.Sub(dcm[0][0], sym.Cos(q)), 5, 1e-12))
	assert.True(t, sym.CheckZero(sym.Sub(dcm[0][1], sym.Sin(q)), 5, 1e-12))
	assert.True(t, sym.CheckZero(sym.Sub(dcm[1][0], sym.Neg(sym.Sin(q))), 5, 1e-12))
	assert.Equal(t, sym.Num(1), dcm[2][2])

	w, err := b.AngVelIn(a)
	require.NoError(t, err)
	assertVectorZero(t, w.Sub(a.Z().Scale(q.Diff())), a)

	back, err := a.AngVelIn(b)
	require.NoError(t, err)
	assertVectorZero(t, back.Add(w), a)
}

func TestOrientAxisErrors(t *testing.T) {
	a := NewFrame("A")
	b := NewFrame("B")
	q := sym.NewDynamic("q")

	assert.ErrorIs(t, b.OrientAxis(a, q, Vector{}), ErrGeometricConstraint)
	require.NoError(t, b.OrientAxis(a, q, a.X()))
	assert.ErrorIs(t, a.OrientAxis(b, q, b.X()), ErrGeometricConstraint)

	c := NewFrame("C")
	_, err := c.DCM(a)
	assert.ErrorIs(t, err, ErrUnrelatedFrames)
	_, err = a.X().Dot(c.X())
	assert.ErrorIs(t, err, ErrUnrelatedFrames)
}

func TestOrientBodyFixedMatchesSuccessiveRotations(t *testing.T) {
	n := NewFrame("N")
	q := sym.Dynamics("q1", "q2", "q3")

	bodyFixed := NewFrame("B")
	require.NoError(t, bodyFixed.OrientBodyFixed(n, [3]sym.Expr{q[0], q[1], q[2]}, "zxy"))

	first, second, third := NewFrame("F1"), NewFrame("F2"), NewFrame("F3")
	require.NoError(t, first.OrientAxis(n, q[0], n.Z()))
	require.NoError(t, second.OrientAxis(first, q[1], first.X()))
	require.NoError(t, third.OrientAxis(second, q[2], second.Y()))

	for _, axis := range []func(*Frame) Vector{(*Frame).X, (*Frame).Y, (*Frame).Z} {
		assertVectorZero(t, axis(bodyFixed).Sub(axis(third)), n)
	}
	w1, err := bodyFixed.AngVelIn(n)
	require.NoError(t, err)
	w2, err := third.AngVelIn(n)
	require.NoError(t, err)
	assertVectorZero(t, w1.Sub(w2), n)

	assert.ErrorIs(t, NewFrame("C").OrientBodyFixed(n, [3]sym.Expr{q[0], q[1], q[2]}, "zzy"), ErrGeometricConstraint)
	assert.ErrorIs(t, NewFrame("C").OrientBodyFixed(n, [3]sym.Expr{q[0], q[1], q[2]}, "zq"), ErrGeometricConstraint)
}

func TestVectorAlgebra(t *testing.T) {
	a := NewFrame("A")
	b := NewFrame("B")
	q := sym.NewDynamic("q")
	require.NoError(t, b.OrientAxis(a, q, a.Z()))

	d, err := b.X().Dot(a.X())
	require.NoError(t, err)
	assert.True(t, sym.CheckZero(sym.Sub(d, sym.Cos(q)), 5, 1e-12))

	c, err := a.X().Cross(a.Y())
	require.NoError(t, err)
	assertVectorZero(t, c.Sub(a.Z()), a)

	v := a.X().Scale(sym.Num(3)).Add(b.Y().Scale(sym.Num(4)))
	m, err := v.Magnitude()
	require.NoError(t, err)
	got, err := sym.Eval(m, sym.Values{"q": 0})
	require.NoError(t, err)
	assert.InDelta(t, 5, got, 1e-12)

	u, err := a.X().Scale(sym.Num(2)).Normalize()
	require.NoError(t, err)
	assertVectorZero(t, u.Sub(a.X()), a)

	_, err = Vector{}.Normalize()
	assert.ErrorIs(t, err, ErrGeometricConstraint)
	assert.True(t, a.X().Sub(a.X()).IsZero())
}

func TestVectorDt(t *testing.T) {
	a := NewFrame("A")
	b := NewFrame("B")
	q := sym.NewDynamic("q")
	require.NoError(t, b.OrientAxis(a, q, a.Z()))

	d, err := b.X().Dt(a)
	require.NoError(t, err)
	assertVectorZero(t, d.Sub(b.Y().Scale(q.Diff())), a)

	d, err = b.X().Dt(b)
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	r := sym.NewDynamic("r")
	d, err = a.X().Scale(r).Dt(a)
	require.NoError(t, err)
	assertVectorZero(t, d.Sub(a.X().Scale(r.Diff())), a)
}

func TestPointPositionAndVelocity(t *testing.T) {
	n := NewFrame("N")
	b := NewFrame("B")
	q := sym.NewDynamic("q")
	l := sym.NewSymbol("l")
	require.NoError(t, b.OrientAxis(n, q, n.Z()))

	o := NewPoint("O")
	p := NewPoint("P")
	s := NewPoint("S")
	o.SetVel(n, Vector{})
	p.SetPos(o, b.X().Scale(l))
	s.SetPos(p, b.X().Scale(l))

	pos, err := s.PosFrom(o)
	require.NoError(t, err)
	assertVectorZero(t, pos.Sub(b.X().Scale(sym.Mul(sym.Num(2), l))), n)

	back, err := o.PosFrom(s)
	require.NoError(t, err)
	assertVectorZero(t, back.Add(pos), n)

	v, err := s.Vel(n)
	require.NoError(t, err)
	assertVectorZero(t, v.Sub(b.Y().Scale(sym.Mul(sym.Num(2), l, q.Diff()))), n)

	_, err = NewPoint("X").PosFrom(o)
	assert.ErrorIs(t, err, ErrUnrelatedPoints)
	_, err = s.Vel(b)
	assert.ErrorIs(t, err, ErrVelocityUndefined)
}

func TestPinJoint(t *testing.T) {
	parent := NewRigidBody("parent")
	child := NewRigidBody("child")
	q := sym.NewDynamic("q")
	u := sym.NewDynamic("u")
	l := sym.NewSymbol("l")

	j, err := NewPinJoint("pin", parent, child, q, u,
		WithParentOffset(parent.Z().Scale(l)),
		WithChildOffset(child.Z().Scale(sym.Neg(l))),
		WithJointAxis(parent.Y()))
	require.NoError(t, err)

	pos, err := child.Masscenter().PosFrom(parent.Masscenter())
	require.NoError(t, err)
	assertVectorZero(t, pos.Sub(parent.Z().Scale(l).Add(child.Z().Scale(l))), parent.Frame())

	w, err := child.Frame().AngVelIn(parent.Frame())
	require.NoError(t, err)
	assertVectorZero(t, w.Sub(parent.Y().Scale(q.Diff())), parent.Frame())

	assert.Equal(t, []*sym.Dynamic{q}, j.Coordinates())
	assert.Equal(t, "q' - u", j.KinematicEquations()[0].String())
}

func TestSystem(t *testing.T) {
	parent := NewRigidBody("parent")
	child := NewRigidBody("child")
	q := sym.NewDynamic("q")
	u := sym.NewDynamic("u")
	j, err := NewPinJoint("pin", parent, child, q, u)
	require.NoError(t, err)

	s := SystemFromNewtonian(parent)
	s.AddJoints(j)
	s.AddJoints(j)
	s.AddLoads(Gravity(parent.Z().Scale(sym.NewSymbol("g")), parent, child)...)
	require.NoError(t, s.Validate())
	assert.Len(t, s.Bodies(), 2)
	assert.Len(t, s.Q(), 1)
	assert.Len(t, s.Loads(), 2)

	body, ok := s.GetBody("child")
	require.True(t, ok)
	assert.Same(t, child, body)

	other := NewSystem(NewPoint("O"), NewFrame("N"))
	other.AddHolonomic(sym.NewSymbol("h"))
	other.AddHolonomic(sym.NewSymbol("h"))
	s.Merge(other)
	s.Merge(other)
	assert.Len(t, s.Holonomic(), 1)

	kd, err := s.KinDiffDict()
	require.NoError(t, err)
	assert.Equal(t, "u", kd["q'"].String())

	s.AddSpeeds(sym.NewDynamic("extra"))
	assert.ErrorIs(t, s.Validate(), ErrInvalidSystem)
}

func TestVectorEval(t *testing.T) {
	a := NewFrame("A")
	b := NewFrame("B")
	q := sym.NewDynamic("q")
	require.NoError(t, b.OrientAxis(a, q, a.Z()))

	got, err := b.X().Eval(a, sym.Values{"q": math.Pi / 2})
	require.NoError(t, err)
	assert.InDelta(t, 0, got[0], 1e-12)
	assert.InDelta(t, 1, got[1], 1e-12)
	assert.InDelta(t, 0, got[2], 1e-12)
}
