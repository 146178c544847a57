package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/brim/internal/core"
)

// Types renders the registered types grouped by kind, abstract types
// included and marked.
func Types(r *core.Registry, theme Theme) string {
	s := theme.Styles()
	var b strings.Builder
	groups := []struct {
		title string
		types []*core.Type
	}{
		{"Models", r.Models()},
		{"Connections", r.Connections()},
		{"Load groups", r.LoadGroups()},
	}
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s.Title.Render(fmt.Sprintf("%s (%d)", g.title, len(g.types))) + "\n")
		for _, t := range g.types {
			line := "  " + s.Name.Render(t.Name)
			if t.Abstract {
				line += " " + s.Kind.Render("abstract")
			}
			if t.Base != nil {
				line += " " + s.Muted.Render("< "+t.Base.Name)
			}
			if doc := t.Summary(); doc != "" {
				line += "  " + s.Muted.Render(doc)
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// Requirements renders the slots a type declares.
func Requirements(t *core.Type, theme Theme) string {
	s := theme.Styles()
	var b strings.Builder
	b.WriteString(s.Title.Render(t.Name) + "\n")
	if doc := strings.TrimSpace(t.Doc); doc != "" {
		b.WriteString(doc + "\n\n")
	}
	reqs := t.Requirements()
	if len(reqs) == 0 {
		b.WriteString(s.Muted.Render("no slots") + "\n")
	}
	for _, r := range reqs {
		line := "  " + s.Slot.Render(r.AttributeName()) + " " + s.Muted.Render(r.Kind().String()) +
			" " + s.Type.Render(typeList(r))
		if r.Hard() {
			line += " " + s.Missing.Render("hard")
		}
		if r.Description() != "" {
			line += "  " + r.Description()
		}
		b.WriteString(line + "\n")
	}
	if len(t.Compatible) > 0 {
		names := make([]string, len(t.Compatible))
		for i, c := range t.Compatible {
			names[i] = c.Name
		}
		b.WriteString("  " + s.Label.Render("attaches to") + strings.Join(names, ", ") + "\n")
	}
	return b.String()
}
