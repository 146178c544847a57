package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/brim/internal/experiment"
)

// ExportData is the full report of a build: metadata, described symbols and
// the printed constraints and kinematic differential equations.
type ExportData struct {
	RunMetadata
	Symbols      []SymbolRecord `json:"symbols"`
	Kinematic    []string       `json:"kinematic_equations"`
	Holonomic    []string       `json:"holonomic"`
	Nonholonomic []string       `json:"nonholonomic"`
}

func ExportJSON(w io.Writer, res *experiment.Result) error {
	data := ExportData{
		RunMetadata: metadataOf(res),
		Symbols:     Symbols(res),
	}
	for _, e := range res.System.KinematicEquations() {
		data.Kinematic = append(data.Kinematic, e.String())
	}
	for _, e := range res.System.Holonomic() {
		data.Holonomic = append(data.Holonomic, e.String())
	}
	for _, e := range res.System.Nonholonomic() {
		data.Nonholonomic = append(data.Nonholonomic, e.String())
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
