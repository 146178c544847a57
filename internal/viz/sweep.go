package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
)

// SweepPlot plots ys against the swept coordinate values xs.
func SweepPlot(xs, ys []float64, caption string, height, width int) string {
	if len(ys) == 0 {
		return ""
	}
	opts := []asciigraph.Option{asciigraph.Height(height), asciigraph.Caption(caption)}
	if width > 0 {
		opts = append(opts, asciigraph.Width(width))
	}
	plot := asciigraph.Plot(ys, opts...)
	if len(xs) > 1 {
		plot += fmt.Sprintf("\n  x: %.4g … %.4g (%d points)", xs[0], xs[len(xs)-1], len(xs))
	}
	return plot
}
