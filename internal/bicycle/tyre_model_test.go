package bicycle_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/san-kum/brim/internal/bicycle"
	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/sym"
)

var rigType = &core.Type{
	Name: "TyreRig",
	Kind: core.KindModel,
	Doc:  "Single wheel rolling on the ground.",
	RequiredModels: []core.Requirement{
		core.MustModelRequirement("ground", []*core.Type{bicycle.FlatGroundType}, core.Hard()),
		core.MustModelRequirement("wheel", []*core.Type{bicycle.KnifeEdgeWheelType}, core.Hard()),
	},
	RequiredConnections: []core.Requirement{
		core.MustConnectionRequirement("tyre_model", []*core.Type{bicycle.NonHolonomicTyreType}, core.Hard()),
	},
}

type rig struct {
	core.Base
	kinematics func() error
}

func newRig() *rig {
	r := &rig{}
	r.Init(r, rigType, "model")
	return r
}

func (r *rig) DefineConnections() error {
	ty := r.Slot("tyre_model").Core()
	if err := ty.SetSlot("ground", r.Slot("ground")); err != nil {
		return err
	}
	return ty.SetSlot("wheel", r.Slot("wheel"))
}

func (r *rig) DefineKinematics() error {
	if r.kinematics == nil {
		return nil
	}
	return r.kinematics()
}

func quietPipeline() *core.Pipeline {
	return core.NewPipeline(core.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

var _ = ginkgo.Describe("NonHolonomicTyre", func() {
	var (
		model  *rig
		ground *bicycle.FlatGround
		wheel  *bicycle.KnifeEdgeWheel
		tyre   *bicycle.NonHolonomicTyre
	)

	ginkgo.BeforeEach(func() {
		model = newRig()
		ground = bicycle.NewFlatGround("ground")
		wheel = bicycle.NewKnifeEdgeWheel("wheel")
		tyre = bicycle.NewNonHolonomicTyre("tyre_model")
		gomega.Expect(model.SetSlot("ground", ground)).To(gomega.Succeed())
		gomega.Expect(model.SetSlot("wheel", wheel)).To(gomega.Succeed())
		gomega.Expect(model.SetSlot("tyre_model", tyre)).To(gomega.Succeed())
	})

	ginkgo.It("creates its system in the objects phase", func() {
		gomega.Expect(core.DefineConnections(model)).To(gomega.Succeed())
		gomega.Expect(core.DefineObjects(model)).To(gomega.Succeed())
		gomega.Expect(tyre.Name()).To(gomega.Equal("tyre_model"))
		gomega.Expect(tyre.System()).NotTo(gomega.BeNil())
		gomega.Expect(tyre.ContactPoint()).NotTo(gomega.BeNil())
	})

	ginkgo.It("requires its hard slots", func() {
		gomega.Expect(model.SetSlot("tyre_model", nil)).To(gomega.Succeed())
		err := quietPipeline().Build(context.Background(), model)
		gomega.Expect(err).To(gomega.MatchError(core.ErrMissingHardRequirement))
	})

	ginkgo.DescribeTable("rolling constraints",
		func(onGround bool) {
			q1, q2 := sym.NewDynamic("q1"), sym.NewDynamic("q2")
			x, y, z := sym.NewDynamic("x"), sym.NewDynamic("y"), sym.NewDynamic("z")
			tyre.SetOnGround(onGround)
			model.kinematics = func() error {
				if err := wheel.Frame().OrientBodyFixed(ground.Frame(), [3]sym.Expr{q1, q2, sym.Num(0)}, "zyx"); err != nil {
					return err
				}
				contact := tyre.ContactPoint()
				ground.SetPointPos(contact, x, y)
				if !onGround {
					pos, err := contact.PosFrom(ground.Origin())
					if err != nil {
						return err
					}
					contact.SetPos(ground.Origin(), pos.Add(ground.Normal(contact).Scale(z)))
				}
				return nil
			}

			gomega.Expect(quietPipeline().Build(context.Background(), model)).To(gomega.Succeed())

			r := wheel.Radius()
			fnh := []sym.Expr{
				sym.Add(sym.Mul(r, sym.Cos(q1), sym.Dt(q2)), sym.Dt(x)),
				sym.Add(sym.Mul(r, sym.Sin(q1), sym.Dt(q2)), sym.Dt(y)),
			}
			sys := tyre.System()
			gomega.Expect(sys.Nonholonomic()).To(gomega.HaveLen(2))
			for i, c := range sys.Nonholonomic() {
				gomega.Expect(sym.CheckZero(sym.Sub(c, fnh[i]), 5, 1e-9)).To(gomega.BeTrue(), "constraint %d: %s", i, c)
			}

			if onGround {
				gomega.Expect(sys.Holonomic()).To(gomega.BeEmpty())
				return
			}
			gomega.Expect(sys.Holonomic()).To(gomega.HaveLen(1))
			gomega.Expect(sym.CheckZero(sym.Sub(sys.Holonomic()[0], z), 5, 1e-9)).To(gomega.BeTrue())
		},
		ginkgo.Entry("on the ground", true),
		ginkgo.Entry("above the ground", false),
	)
})
