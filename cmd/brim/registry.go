package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/san-kum/brim/internal/config"
	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/viz"
)

func lookupType(name string) (*core.Type, error) {
	t, ok := core.DefaultRegistry().Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownType, name)
	}
	return t, nil
}

func (a *app) typesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "list registered component types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), viz.Types(core.DefaultRegistry(), a.theme()))
			return nil
		},
	}
}

func (a *app) typeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "type [name]",
		Short: "show the slots of a component type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := lookupType(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), viz.Requirements(t, a.theme()))
			return nil
		},
	}
}

func (a *app) optionsCmd() *cobra.Command {
	var abstract bool
	cmd := &cobra.Command{
		Use:   "options [type] [slot]",
		Short: "list the types that can fill a slot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := lookupType(args[0])
			if err != nil {
				return err
			}
			var opts []core.QueryOption
			if abstract {
				opts = append(opts, core.IncludeAbstract())
			}
			types, err := core.DefaultRegistry().TypesForSlot(t, args[1], opts...)
			if err != nil {
				return err
			}
			printTypes(cmd, types)
			return nil
		},
	}
	cmd.Flags().BoolVar(&abstract, "abstract", false, "include abstract types")
	return cmd
}

func (a *app) loadGroupsCmd() *cobra.Command {
	var abstract bool
	cmd := &cobra.Command{
		Use:   "loadgroups [type]",
		Short: "list the load groups that can attach to a type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := lookupType(args[0])
			if err != nil {
				return err
			}
			var opts []core.QueryOption
			if abstract {
				opts = append(opts, core.IncludeAbstract())
			}
			printTypes(cmd, core.DefaultRegistry().MatchingLoadGroups(t, opts...))
			return nil
		},
	}
	cmd.Flags().BoolVar(&abstract, "abstract", false, "include abstract types")
	return cmd
}

func printTypes(cmd *cobra.Command, types []*core.Type) {
	out := cmd.OutOrStdout()
	if len(types) == 0 {
		fmt.Fprintln(out, "none")
		return
	}
	for _, t := range types {
		fmt.Fprintf(out, "%-24s %s\n", t.Name, t.Summary())
	}
}

func (a *app) presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list preset component graphs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", name, p.Root.Type)
			}
			return nil
		},
	}
}
