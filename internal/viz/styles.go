package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles derived from a theme.
type Styles struct {
	Title   lipgloss.Style
	Name    lipgloss.Style
	Type    lipgloss.Style
	Slot    lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Muted   lipgloss.Style
	Missing lipgloss.Style
	Kind    lipgloss.Style
	Panel   lipgloss.Style
	KeyHint lipgloss.Style
}

func (t Theme) Styles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(t.Primary).
			BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(t.Muted),
		Name:    lipgloss.NewStyle().Bold(true).Foreground(t.Text),
		Type:    lipgloss.NewStyle().Foreground(t.Secondary),
		Slot:    lipgloss.NewStyle().Foreground(t.Accent),
		Label:   lipgloss.NewStyle().Foreground(t.Muted).Width(16),
		Value:   lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		Muted:   lipgloss.NewStyle().Foreground(t.Muted),
		Missing: lipgloss.NewStyle().Bold(true).Foreground(t.Error),
		Kind:    lipgloss.NewStyle().Italic(true).Foreground(t.Warning),
		Panel:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Muted).Padding(0, 1),
		KeyHint: lipgloss.NewStyle().Italic(true).Foreground(t.Muted),
	}
}

// Separator renders a muted horizontal rule.
func (s Styles) Separator(width int) string {
	if width < 8 {
		width = 8
	}
	mid := width / 2
	return s.Muted.Render(strings.Repeat("─", mid-2) + " ◆ " + strings.Repeat("─", width-mid-3))
}

// Sparkline renders values as one line of block characters.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	step := max(len(values)/width, 1)
	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		idx := int((values[i*step] - lo) / span * float64(len(chars)-1))
		b.WriteRune(chars[min(max(idx, 0), len(chars)-1)])
	}
	return b.String()
}
