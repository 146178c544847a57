package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"

	"github.com/san-kum/brim/internal/config"
	"github.com/san-kum/brim/internal/experiment"
	"github.com/san-kum/brim/internal/metrics"
	"github.com/san-kum/brim/internal/storage"
	"github.com/san-kum/brim/internal/tracing"
	"github.com/san-kum/brim/internal/viz"
)

func (a *app) buildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [preset]",
		Short: "assemble and build a model",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runBuild,
	}
	addBuildFlags(cmd)
	cmd.Flags().Bool("save", false, "store the build in the data directory")
	cmd.Flags().String("trace", "", "trace exporter: stdout, file or otlp")
	cmd.Flags().String("trace-file", "brim-trace.json", "span output for the file exporter")
	cmd.Flags().Bool("metrics", false, "print build metrics")
	return cmd
}

func (a *app) runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := a.loadConfig(cmd, args)
	if err != nil {
		return err
	}
	opts, err := a.experimentOptions(cmd)
	if err != nil {
		return err
	}

	if exporter, _ := cmd.Flags().GetString("trace"); exporter != "" {
		file, _ := cmd.Flags().GetString("trace-file")
		tp, err := tracing.NewProvider(tracing.Config{
			Enabled:      true,
			Exporter:     exporter,
			FilePath:     file,
			OTLPEndpoint: a.v.GetString("trace.endpoint"),
			ServiceName:  a.v.GetString("trace.service_name"),
		})
		if err != nil {
			return err
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				a.logger.Warn("tracing shutdown", "error", err)
			}
		}()
		opts = append(opts, experiment.WithTracer(tp.Tracer()))
	}

	var reg *prometheus.Registry
	if show, _ := cmd.Flags().GetBool("metrics"); show {
		reg = prometheus.NewRegistry()
		opts = append(opts, experiment.WithRecorder(metrics.New(metrics.WithRegistry(reg))))
	}

	res, err := experiment.New(cfg, opts...).Run(cmd.Context())
	if err != nil {
		return err
	}
	a.logger.Info("built", "name", res.Name, "id", res.ID, "duration", res.Duration)

	out := cmd.OutOrStdout()
	fmt.Fprint(out, viz.Summary(res, a.theme()))

	if save, _ := cmd.Flags().GetBool("save"); save {
		st := a.store()
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(res)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "saved %s\n", id)
	}
	if reg != nil {
		families, err := reg.Gather()
		if err != nil {
			return err
		}
		printMetrics(out, families)
	}
	return nil
}

func printMetrics(w io.Writer, families []*dto.MetricFamily) {
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				fmt.Fprintf(w, "%s %g\n", name, m.GetCounter().GetValue())
			case dto.MetricType_GAUGE:
				fmt.Fprintf(w, "%s %g\n", name, m.GetGauge().GetValue())
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				fmt.Fprintf(w, "%s count=%d sum=%gs\n", name, h.GetSampleCount(), h.GetSampleSum())
			}
		}
	}
}

func (a *app) describeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe [preset]",
		Short: "build a model and print its component tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.run(cmd, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, viz.Tree(res.Root, a.theme()))
			fmt.Fprintln(out)
			fmt.Fprint(out, viz.Summary(res, a.theme()))
			return nil
		},
	}
	addBuildFlags(cmd)
	return cmd
}

func (a *app) exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [preset]",
		Short: "build a model and write it as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.run(cmd, args)
			if err != nil {
				return err
			}
			path, _ := cmd.Flags().GetString("output")
			if path == "" {
				return storage.ExportJSON(cmd.OutOrStdout(), res)
			}
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			if err := storage.ExportJSON(f, res); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
	addBuildFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	return cmd
}

func (a *app) run(cmd *cobra.Command, args []string) (*experiment.Result, error) {
	cfg, err := a.loadConfig(cmd, args)
	if err != nil {
		return nil, err
	}
	opts, err := a.experimentOptions(cmd)
	if err != nil {
		return nil, err
	}
	return experiment.New(cfg, opts...).Run(cmd.Context())
}

func (a *app) batchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch [preset...]",
		Short: "build several presets concurrently",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = config.ListPresets()
			}
			cfgs := make([]*config.Config, len(args))
			for i, name := range args {
				cfgs[i] = config.GetPreset(name)
				if cfgs[i] == nil {
					return fmt.Errorf("unknown preset %q", name)
				}
			}
			results, err := experiment.RunAll(cmd.Context(), cfgs, experiment.WithLogger(a.logger))
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMODELS\tCONNECTIONS\tLOAD GROUPS\tBODIES\tQ\tNONHOLONOMIC\tLOADS")
			for _, r := range results {
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n", r.Name,
					r.Components["model"], r.Components["connection"], r.Components["load group"],
					len(r.System.Bodies()), len(r.System.Q()), len(r.System.Nonholonomic()), len(r.System.Loads()))
			}
			return w.Flush()
		},
	}
}

func (a *app) sweepCmd() *cobra.Command {
	var (
		sc     experiment.SweepConfig
		kind   string
		index  int
		height int
	)
	cmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "plot a constraint over one coordinate",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.run(cmd, args)
			if err != nil {
				return err
			}
			if sc.Coordinate == "" {
				q := res.System.Q()
				if len(q) == 0 {
					return fmt.Errorf("%s has no coordinates", res.Name)
				}
				sc.Coordinate = q[len(q)-1].String()
			}
			e, err := res.Constraint(kind, index)
			if err != nil {
				return err
			}
			xs, ys, err := res.Sweep(e, sc)
			if err != nil {
				return err
			}
			caption := fmt.Sprintf("%s constraint %d over %s", kind, index, sc.Coordinate)
			fmt.Fprintln(cmd.OutOrStdout(), viz.SweepPlot(xs, ys, caption, height, 60))
			return nil
		},
	}
	addBuildFlags(cmd)
	f := cmd.Flags()
	f.StringVar(&sc.Coordinate, "coordinate", "", "swept coordinate (default the last one)")
	f.Float64Var(&sc.From, "from", -3.14159, "first value")
	f.Float64Var(&sc.To, "to", 3.14159, "last value")
	f.IntVar(&sc.Points, "points", 61, "number of samples")
	f.Int64Var(&sc.Seed, "seed", 1, "seed for symbols without a parameter value")
	f.StringVar(&kind, "kind", "nonholonomic", "constraint kind: holonomic or nonholonomic")
	f.IntVar(&index, "index", 0, "constraint index")
	f.IntVar(&height, "height", 10, "plot height")
	return cmd
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list stored builds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := a.store().List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "no runs found")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tROOT\tTIME\tDURATION\tQ\tU")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%d\n",
					run.ID,
					run.Name,
					run.RootType,
					run.Timestamp.Format("2006-01-02 15:04:05"),
					run.Duration,
					len(run.Coordinates),
					len(run.Speeds),
				)
			}
			return w.Flush()
		},
	}
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored build",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := a.store()
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			symbols, err := st.LoadSymbols(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %s (%s)  %s\n", meta.ID, meta.Name, meta.RootType,
				meta.Timestamp.Format("2006-01-02 15:04:05"))
			kinds := make([]string, 0, len(meta.Counts))
			for k := range meta.Counts {
				kinds = append(kinds, k)
			}
			sort.Strings(kinds)
			for _, k := range kinds {
				fmt.Fprintf(out, "  %-14s %d\n", k, meta.Counts[k])
			}
			fmt.Fprintf(out, "  coordinates    %s\n", strings.Join(meta.Coordinates, " "))

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "\nSYMBOL\tVALUE\tDESCRIPTION")
			for _, s := range symbols {
				val := "-"
				if s.HasValue {
					val = fmt.Sprintf("%g", s.Value)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, val, s.Description)
			}
			return w.Flush()
		},
	}
}
