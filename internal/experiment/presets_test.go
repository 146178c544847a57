package experiment_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/san-kum/brim/internal/config"
	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/experiment"
	"github.com/san-kum/brim/internal/metrics"
)

var quiet = experiment.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

var _ = ginkgo.Describe("Building presets", func() {
	ginkgo.DescribeTable("assembles and builds",
		func(preset string, components map[string]int, coords, nonholonomic, loads int) {
			cfg := config.GetPreset(preset)
			gomega.Expect(cfg).NotTo(gomega.BeNil())

			res, err := experiment.New(cfg, quiet).Run(context.Background())
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(res.ID).To(gomega.HaveLen(36))
			gomega.Expect(res.Name).To(gomega.Equal(preset))
			gomega.Expect(res.Components).To(gomega.Equal(components))
			gomega.Expect(res.System.Validate()).To(gomega.Succeed())
			gomega.Expect(res.System.Q()).To(gomega.HaveLen(coords))
			gomega.Expect(res.System.Nonholonomic()).To(gomega.HaveLen(nonholonomic))
			gomega.Expect(res.System.Loads()).To(gomega.HaveLen(loads))
			gomega.Expect(res.Root.Core().State()).To(gomega.Equal(core.ConstraintsDefined))
			gomega.Expect(res.Params).NotTo(gomega.BeEmpty())
		},
		ginkgo.Entry("rolling disc", "rolling_disc", map[string]int{"model": 3, "connection": 1}, 5, 2, 1),
		ginkgo.Entry("rolling torus", "rolling_torus", map[string]int{"model": 3, "connection": 1}, 5, 2, 1),
		ginkgo.Entry("rider", "rider", map[string]int{"model": 4, "connection": 2}, 6, 0, 0),
		ginkgo.Entry("rider with arms", "rider_arms", map[string]int{"model": 4, "load group": 2}, 2, 0, 4),
	)

	ginkgo.It("builds all presets concurrently", func() {
		var cfgs []*config.Config
		for _, name := range config.ListPresets() {
			cfgs = append(cfgs, config.GetPreset(name))
		}
		rec := metrics.New(metrics.WithRegistry(prometheus.NewRegistry()))
		results, err := experiment.RunAll(context.Background(), cfgs, quiet, experiment.WithRecorder(rec))
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(results).To(gomega.HaveLen(len(cfgs)))

		ids := map[string]bool{}
		for _, r := range results {
			ids[r.ID] = true
		}
		gomega.Expect(ids).To(gomega.HaveLen(len(cfgs)))
	})

	ginkgo.It("applies component options from the graph", func() {
		cfg := config.GetPreset("rolling_disc")
		cfg.Root.Slots["disc"].Options = map[string]any{"position": "rear"}

		res, err := experiment.New(cfg, quiet).Run(context.Background())
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(res.Params).To(gomega.HaveKeyWithValue("disc_r", 0.3))
	})

	ginkgo.Context("with an invalid graph", func() {
		ginkgo.It("reports unknown types with their path", func() {
			cfg := config.GetPreset("rolling_disc")
			cfg.Root.Slots["disc"].Type = "SquareWheel"
			_, err := experiment.New(cfg, quiet).Assemble()
			gomega.Expect(err).To(gomega.MatchError(core.ErrUnknownType))
			gomega.Expect(err.Error()).To(gomega.ContainSubstring("rolling_disc.disc"))
		})

		ginkgo.It("rejects a component in the wrong slot", func() {
			cfg := config.GetPreset("rolling_disc")
			cfg.Root.Slots["disc"].Type = "FlatGround"
			_, err := experiment.New(cfg, quiet).Assemble()
			gomega.Expect(err).To(gomega.MatchError(core.ErrSlotTypeMismatch))
		})

		ginkgo.It("rejects incompatible load groups", func() {
			cfg := config.GetPreset("rider")
			cfg.Root.Slots["pelvis"].LoadGroups = []*config.ComponentConfig{{Type: "PinElbowTorque", Name: "torque"}}
			_, err := experiment.New(cfg, quiet).Assemble()
			gomega.Expect(err).To(gomega.MatchError(core.ErrIncompatibleLoadGroup))
		})

		ginkgo.It("fails the build when a hard slot is empty", func() {
			cfg := config.GetPreset("rolling_disc")
			delete(cfg.Root.Slots, "tyre")
			_, err := experiment.New(cfg, quiet).Run(context.Background())
			gomega.Expect(err).To(gomega.MatchError(core.ErrMissingHardRequirement))
		})

		ginkgo.It("rejects unknown options", func() {
			cfg := config.GetPreset("rolling_disc")
			cfg.Root.Slots["ground"].Options = map[string]any{"friction": 0.8}
			_, err := experiment.New(cfg, quiet).Assemble()
			gomega.Expect(err).To(gomega.MatchError(core.ErrUnknownOption))
		})
	})
})
