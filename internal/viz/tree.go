package viz

import (
	"strings"

	"github.com/san-kum/brim/internal/core"
)

// Tree renders the component tree below root. Every declared slot is listed,
// filled or not; empty hard slots are flagged as missing. Model slots of a
// connection reference siblings and are not expanded.
func Tree(root core.Component, theme Theme) string {
	s := theme.Styles()
	var b strings.Builder
	b.WriteString(node(s, root))
	b.WriteString("\n")
	writeChildren(&b, s, root, "")
	return b.String()
}

type entry struct {
	label string
	child core.Component
	// expand is false for references that are rendered elsewhere.
	expand bool
}

func entries(s Styles, c core.Component) []entry {
	base := c.Core()
	var out []entry
	slot := func(r core.Requirement, expand bool) {
		label := s.Slot.Render(r.AttributeName()) + ": "
		child := base.Slot(r.AttributeName())
		switch {
		case child == nil && r.Hard():
			label += s.Missing.Render("missing") + " " + s.Muted.Render(typeList(r))
		case child == nil:
			label += s.Muted.Render("empty " + typeList(r))
		case !expand:
			label += s.Muted.Render("→ " + child.Name())
		default:
			label += node(s, child)
		}
		out = append(out, entry{label: label, child: child, expand: expand && child != nil})
	}
	for _, r := range c.Type().Models() {
		slot(r, c.Type().Kind == core.KindModel)
	}
	for _, r := range c.Type().Connections() {
		slot(r, true)
	}
	for _, lg := range base.LoadGroups() {
		out = append(out, entry{label: node(s, lg), child: lg, expand: true})
	}
	return out
}

func writeChildren(b *strings.Builder, s Styles, c core.Component, indent string) {
	es := entries(s, c)
	for i, e := range es {
		branch, next := "├── ", "│   "
		if i == len(es)-1 {
			branch, next = "└── ", "    "
		}
		b.WriteString(s.Muted.Render(indent+branch) + e.label + "\n")
		if e.expand {
			writeChildren(b, s, e.child, indent+next)
		}
	}
}

func node(s Styles, c core.Component) string {
	out := s.Name.Render(c.Name()) + " " + s.Type.Render("("+c.Type().Name+")")
	if k := c.Type().Kind; k != core.KindModel {
		out += " " + s.Kind.Render(k.String())
	}
	return out
}

func typeList(r core.Requirement) string {
	names := make([]string, 0, len(r.Types()))
	for _, t := range r.Types() {
		names = append(names, t.Name)
	}
	return "(" + strings.Join(names, " | ") + ")"
}
