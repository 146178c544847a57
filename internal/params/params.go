package params

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Data is a set of measured parameter values. Bicycle values use the
// benchmark names (rR, rF, mR, mF, IRxx, IRyy, IFxx, IFyy, ...), rider
// values use segment names (l_thigh, m_thigh, hip_width, ...).
type Data struct {
	Name    string             `yaml:"name"`
	Gravity float64            `yaml:"gravity"`
	Bicycle map[string]float64 `yaml:"bicycle"`
	Rider   map[string]float64 `yaml:"rider"`
}

// Benchmark returns the benchmark bicycle parameters together with a
// generic rider.
func Benchmark() *Data {
	return &Data{
		Name:    "benchmark",
		Gravity: 9.81,
		Bicycle: map[string]float64{
			"rR":   0.3,
			"rF":   0.35,
			"mR":   2.0,
			"mF":   3.0,
			"IRxx": 0.0603,
			"IRyy": 0.12,
			"IFxx": 0.1405,
			"IFyy": 0.28,
			"trR":  0.02,
			"trF":  0.02,
		},
		Rider: map[string]float64{
			"hip_width":   0.3,
			"com_height":  0.1,
			"m_pelvis":    12.0,
			"l_thigh":     0.46,
			"l_thigh_com": 0.2,
			"m_thigh":     8.5,
			"l_shank":     0.45,
			"l_shank_com": 0.19,
			"m_shank":     3.6,
			"l_foot":      0.2,
			"l_foot_com":  0.07,
			"m_foot":      1.1,
			"l_upper_arm": 0.3,
			"l_upper_com": 0.13,
			"m_upper_arm": 2.0,
			"l_forearm":   0.27,
			"l_fore_com":  0.12,
			"m_forearm":   1.2,
		},
	}
}

// Load reads a parameter set from a YAML file. Missing sections are empty
// maps, a missing gravity defaults to 9.81.
func Load(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d := &Data{}
	if err := yaml.Unmarshal(raw, d); err != nil {
		return nil, fmt.Errorf("params: parse %s: %w", path, err)
	}
	if d.Bicycle == nil {
		d.Bicycle = map[string]float64{}
	}
	if d.Rider == nil {
		d.Rider = map[string]float64{}
	}
	if d.Gravity == 0 {
		d.Gravity = 9.81
	}
	return d, nil
}

func Save(path string, d *Data) error {
	raw, err := yaml.Marshal(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0644)
}

// BicycleValue returns a bicycle parameter.
func (d *Data) BicycleValue(name string) (float64, bool) {
	if d == nil {
		return 0, false
	}
	v, ok := d.Bicycle[name]
	return v, ok
}

// RiderValue returns a rider parameter.
func (d *Data) RiderValue(name string) (float64, bool) {
	if d == nil {
		return 0, false
	}
	v, ok := d.Rider[name]
	return v, ok
}
