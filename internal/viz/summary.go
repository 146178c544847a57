package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/brim/internal/experiment"
	"github.com/san-kum/brim/internal/sym"
)

// Summary renders the size of a built system next to its parameter values.
func Summary(res *experiment.Result, theme Theme) string {
	s := theme.Styles()
	sys := res.System

	metric := func(label string, v any) string {
		return s.Label.Render(label) + s.Value.Render(fmt.Sprint(v))
	}
	left := []string{
		s.Title.Render(res.Name),
		metric("build", res.ID),
		metric("duration", res.Duration.Round(time.Microsecond)),
		metric("models", res.Components["model"]),
		metric("connections", res.Components["connection"]),
		metric("load groups", res.Components["load group"]),
		s.Separator(32),
		metric("bodies", len(sys.Bodies())),
		metric("coordinates", len(sys.Q())),
		metric("speeds", len(sys.U())),
		metric("holonomic", len(sys.Holonomic())),
		metric("nonholonomic", len(sys.Nonholonomic())),
		metric("loads", len(sys.Loads())),
	}
	panels := []string{s.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, left...))}
	if len(res.Params) > 0 {
		panels = append(panels, s.Panel.Render(Params(res.Params, s)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, panels...) + "\n"
}

// Params renders parameter values sorted by symbol name.
func Params(vals sym.Values, s Styles) string {
	names := make([]string, 0, len(vals))
	width := 0
	for name := range vals {
		names = append(names, name)
		width = max(width, len(name))
	}
	sort.Strings(names)

	lines := []string{s.Title.Render("parameters")}
	for _, name := range names {
		lines = append(lines, s.Muted.Render(fmt.Sprintf("%-*s", width, name))+" "+
			s.Value.Render(fmt.Sprintf("%g", vals[name])))
	}
	return strings.Join(lines, "\n")
}
