// Package tui is an interactive browser for built models.
package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/brim/internal/config"
	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/experiment"
	"github.com/san-kum/brim/internal/viz"
)

// BuildFunc builds a configuration into a result.
type BuildFunc func(ctx context.Context, cfg *config.Config) (*experiment.Result, error)

type state int

const (
	stateMenu state = iota
	stateTree
	stateDetail
)

type row struct {
	comp  core.Component
	depth int
	// slot is empty for the root and for load groups.
	slot string
}

type model struct {
	state  state
	cursor int
	theme  viz.Theme
	styles viz.Styles

	presets []string
	build   BuildFunc
	result  *experiment.Result
	err     error

	rows      []row
	rowCursor int
	scroll    int

	width  int
	height int
}

// NewBrowser returns the browser model listing the given presets.
func NewBrowser(presets []string, build BuildFunc, theme viz.Theme) tea.Model {
	return model{
		state:   stateMenu,
		theme:   theme,
		styles:  theme.Styles(),
		presets: presets,
		build:   build,
		width:   80,
		height:  24,
	}
}

func (m model) Init() tea.Cmd { return nil }

type builtMsg struct {
	result *experiment.Result
	err    error
}

func (m model) buildCmd(preset string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.build(context.Background(), config.GetPreset(preset))
		return builtMsg{result: res, err: err}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case builtMsg:
		m.result, m.err = msg.result, msg.err
		if msg.err == nil {
			m.rows = flatten(msg.result.Root, 0, "", nil)
			m.rowCursor, m.scroll = 0, 0
			m.state = stateTree
		}
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateTree:
		return m.treeKey(msg)
	case stateDetail:
		return m.detailKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.presets) > 0 {
			m.err = nil
			return m, m.buildCmd(m.presets[m.cursor])
		}
	}
	return m, nil
}

func (m model) treeKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
		m.result, m.rows = nil, nil
	case "up", "k":
		if m.rowCursor > 0 {
			m.rowCursor--
		}
	case "down", "j":
		if m.rowCursor < len(m.rows)-1 {
			m.rowCursor++
		}
	case "enter", " ", "right", "l":
		if len(m.rows) > 0 {
			m.state = stateDetail
		}
	}
	m.scroll = clampScroll(m.scroll, m.rowCursor, m.visibleRows())
	return m, nil
}

func (m model) detailKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "left", "h", "backspace":
		m.state = stateTree
	}
	return m, nil
}

func (m model) visibleRows() int {
	return max(m.height-8, 3)
}

func clampScroll(scroll, cursor, visible int) int {
	if cursor < scroll {
		return cursor
	}
	if cursor >= scroll+visible {
		return cursor - visible + 1
	}
	return scroll
}

func flatten(c core.Component, depth int, slot string, out []row) []row {
	out = append(out, row{comp: c, depth: depth, slot: slot})
	b := c.Core()
	for _, r := range c.Type().Requirements() {
		child := b.Slot(r.AttributeName())
		if child == nil {
			continue
		}
		if r.Kind() == core.KindModel && c.Type().Kind != core.KindModel {
			continue
		}
		out = flatten(child, depth+1, r.AttributeName(), out)
	}
	for _, lg := range b.LoadGroups() {
		out = flatten(lg, depth+1, "", out)
	}
	return out
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateTree:
		return m.viewTree()
	case stateDetail:
		return m.viewDetail()
	}
	return ""
}

func (m model) viewMenu() string {
	s := m.styles
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("    " + s.Title.Render("b r i m") + "\n\n")
	for i, name := range m.presets {
		if i == m.cursor {
			b.WriteString("      " + s.Slot.Render("▸ ") + s.Name.Render(name) + "\n")
		} else {
			b.WriteString("        " + s.Muted.Render(name) + "\n")
		}
	}
	if m.err != nil {
		b.WriteString("\n      " + s.Missing.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n" + s.KeyHint.Render("      ↑↓ select   enter build   q quit") + "\n")
	return b.String()
}

func (m model) viewTree() string {
	s := m.styles
	var b strings.Builder

	b.WriteString("\n    " + s.Title.Render(m.result.Name) + "  " + s.Muted.Render(m.result.ID) + "\n\n")
	end := min(m.scroll+m.visibleRows(), len(m.rows))
	for i := m.scroll; i < end; i++ {
		r := m.rows[i]
		label := r.comp.Name() + " " + s.Type.Render("("+r.comp.Type().Name+")")
		if r.slot != "" {
			label = s.Slot.Render(r.slot+": ") + label
		}
		if k := r.comp.Type().Kind; k != core.KindModel {
			label += " " + s.Kind.Render(k.String())
		}
		indent := strings.Repeat("  ", r.depth)
		if i == m.rowCursor {
			b.WriteString("  " + s.Slot.Render("▸ ") + indent + label + "\n")
		} else {
			b.WriteString("    " + indent + label + "\n")
		}
	}

	sys := m.result.System
	b.WriteString("\n" + s.Muted.Render(fmt.Sprintf("    %d bodies  %d coordinates  %d nonholonomic  %d loads",
		len(sys.Bodies()), len(sys.Q()), len(sys.Nonholonomic()), len(sys.Loads()))) + "\n")
	b.WriteString(s.KeyHint.Render("    ↑↓ select   enter details   esc back") + "\n")
	return b.String()
}

func (m model) viewDetail() string {
	s := m.styles
	c := m.rows[m.rowCursor].comp
	base := c.Core()
	var b strings.Builder

	b.WriteString("\n    " + s.Title.Render(c.Name()) + "  " + s.Type.Render(c.Type().Name) + "\n")
	if doc := c.Type().Summary(); doc != "" {
		b.WriteString("    " + s.Muted.Render(doc) + "\n")
	}
	b.WriteString("    " + s.Label.Render("phase") + s.Value.Render(base.State().String()) + "\n\n")

	type line struct{ name, desc string }
	var lines []line
	width := 0
	for e, desc := range base.Descriptions() {
		lines = append(lines, line{e.String(), desc})
		width = max(width, len(e.String()))
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].name < lines[j].name })
	if len(lines) == 0 {
		b.WriteString("    " + s.Muted.Render("no symbols") + "\n")
	}
	for _, l := range lines {
		val := ""
		if v, ok := m.result.Params[l.name]; ok {
			val = s.Value.Render(fmt.Sprintf("%g", v))
		}
		b.WriteString(fmt.Sprintf("    %s  %s %s\n", s.Slot.Render(fmt.Sprintf("%-*s", width, l.name)), l.desc, val))
	}
	b.WriteString("\n" + s.KeyHint.Render("    esc back") + "\n")
	return b.String()
}

// Run starts the browser on the terminal.
func Run(presets []string, build BuildFunc, theme viz.Theme) error {
	p := tea.NewProgram(NewBrowser(presets, build, theme), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
