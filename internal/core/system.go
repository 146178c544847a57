package core

import (
	"fmt"
	"sort"

	"github.com/san-kum/brim/internal/mechanics"
	"github.com/san-kum/brim/internal/params"
	"github.com/san-kum/brim/internal/sym"
)

// ToSystem merges the local systems of root, its descendants and their load
// groups into a new system sharing root's origin and frame.
func ToSystem(root Component) (*mechanics.System, error) {
	rs := root.Core().system
	if rs == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoSystem, root.Name())
	}
	out := mechanics.NewSystem(rs.Origin(), rs.Frame())
	err := Walk(root, func(c Component) error {
		out.Merge(c.Core().system)
		return nil
	})
	return out, err
}

// ParamValuer is implemented by components that can map measured parameters
// onto their symbols.
type ParamValuer interface {
	ParamValues(d *params.Data) sym.Values
}

// ParamValues collects parameter values over the tree. Children are visited
// first so a parent can override their values.
func ParamValues(root Component, d *params.Data) sym.Values {
	out := make(sym.Values)
	var visit func(c Component)
	visit = func(c Component) {
		b := c.Core()
		for _, child := range b.Children() {
			visit(child)
		}
		for _, lg := range b.loadGroups {
			visit(lg)
		}
		if pv, ok := c.(ParamValuer); ok {
			out.Merge(pv.ParamValues(d))
		}
	}
	visit(root)
	return out
}

// Configurable components accept named options, for instance from a model
// graph file.
type Configurable interface {
	SetOption(name string, value any) error
}

// SetOptions applies options to c. Components that are not Configurable
// accept no options.
func SetOptions(c Component, opts map[string]any) error {
	if len(opts) == 0 {
		return nil
	}
	names := make([]string, 0, len(opts))
	for name := range opts {
		names = append(names, name)
	}
	sort.Strings(names)

	cfg, ok := c.(Configurable)
	if !ok {
		return fmt.Errorf("%w: %s has no option %q", ErrUnknownOption, c.Name(), names[0])
	}
	for _, name := range names {
		if err := cfg.SetOption(name, opts[name]); err != nil {
			return fmt.Errorf("%s: %w", c.Name(), err)
		}
	}
	return nil
}

// UnknownOption is the error Configurable implementations return for names
// they do not handle.
func UnknownOption(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownOption, name)
}
