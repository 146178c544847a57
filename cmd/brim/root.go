package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/san-kum/brim/internal/config"
	"github.com/san-kum/brim/internal/experiment"
	"github.com/san-kum/brim/internal/params"
	"github.com/san-kum/brim/internal/storage"
	"github.com/san-kum/brim/internal/tui"
	"github.com/san-kum/brim/internal/viz"
)

// app carries the settings shared by all commands.
type app struct {
	v        *viper.Viper
	settings string
	logger   *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "brim",
		Short:         "compose bicycle-rider models from components",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.browse(cmd, args)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.settings, "settings", "", "settings file (yaml)")
	pf.String("data", ".brim", "data directory")
	pf.String("theme", "ocean", "color theme: "+strings.Join(viz.ThemeNames(), ", "))
	pf.Bool("debug", false, "debug logging")
	_ = a.v.BindPFlag("data", pf.Lookup("data"))
	_ = a.v.BindPFlag("theme", pf.Lookup("theme"))
	_ = a.v.BindPFlag("debug", pf.Lookup("debug"))

	root.AddCommand(
		a.typesCmd(),
		a.typeCmd(),
		a.optionsCmd(),
		a.loadGroupsCmd(),
		a.presetsCmd(),
		a.buildCmd(),
		a.describeCmd(),
		a.exportCmd(),
		a.batchCmd(),
		a.sweepCmd(),
		a.listCmd(),
		a.showCmd(),
		&cobra.Command{
			Use:   "browse",
			Short: "browse built presets interactively",
			RunE:  a.browse,
		},
	)
	return root
}

func (a *app) init(stderr io.Writer) error {
	a.v.SetDefault("trace.endpoint", "localhost:4317")
	a.v.SetDefault("trace.service_name", "brim")
	a.v.SetEnvPrefix("BRIM")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if a.settings != "" {
		a.v.SetConfigFile(a.settings)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading settings: %w", err)
		}
	}

	level := slog.LevelInfo
	if a.v.GetBool("debug") {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

func (a *app) theme() viz.Theme { return viz.GetTheme(a.v.GetString("theme")) }

func (a *app) store() *storage.Store { return storage.New(a.v.GetString("data")) }

// loadConfig resolves the build configuration from --config or a preset name.
func (a *app) loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return config.Load(path)
	}
	name := config.DefaultPreset
	if len(args) > 0 {
		name = args[0]
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(config.ListPresets(), ", "))
	}
	return cfg, nil
}

func (a *app) experimentOptions(cmd *cobra.Command) ([]experiment.Option, error) {
	opts := []experiment.Option{experiment.WithLogger(a.logger)}
	if path, _ := cmd.Flags().GetString("params"); path != "" {
		d, err := params.Load(path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, experiment.WithParams(d))
	}
	return opts, nil
}

func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "component graph file (yaml)")
	cmd.Flags().String("params", "", "parameter file (yaml)")
}

func (a *app) browse(cmd *cobra.Command, args []string) error {
	build := func(ctx context.Context, cfg *config.Config) (*experiment.Result, error) {
		// the terminal belongs to the browser
		quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
		return experiment.New(cfg, experiment.WithLogger(quiet)).Run(ctx)
	}
	return tui.Run(config.ListPresets(), build, a.theme())
}
