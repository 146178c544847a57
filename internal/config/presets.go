package config

import "sort"

func node(typ, name string, slots map[string]*ComponentConfig) *ComponentConfig {
	return &ComponentConfig{Type: typ, Name: name, Slots: slots}
}

var Presets = map[string]*Config{
	"rolling_disc": {
		Name: "rolling_disc",
		Root: *node("RollingDisc", "rolling_disc", map[string]*ComponentConfig{
			"disc":   node("KnifeEdgeWheel", "disc", nil),
			"ground": node("FlatGround", "ground", nil),
			"tyre":   node("NonHolonomicTyre", "tyre", nil),
		}),
	},
	"rolling_torus": {
		Name: "rolling_torus",
		Root: *node("RollingDisc", "rolling_disc", map[string]*ComponentConfig{
			"disc":   node("ToroidalWheel", "disc", nil),
			"ground": node("FlatGround", "ground", nil),
			"tyre":   node("NonHolonomicTyre", "tyre", nil),
		}),
	},
	"rider": {
		Name: "rider",
		Root: *node("Rider", "rider", map[string]*ComponentConfig{
			"pelvis":    node("PlanarPelvis", "pelvis", nil),
			"left_leg":  node("TwoPinStickLeftLeg", "left_leg", nil),
			"right_leg": node("TwoPinStickRightLeg", "right_leg", nil),
			"left_hip":  node("PinLeftHip", "left_hip", nil),
			"right_hip": node("PinRightHip", "right_hip", nil),
		}),
	},
	"rider_arms": {
		Name: "rider_arms",
		Root: *node("Rider", "rider", map[string]*ComponentConfig{
			"pelvis": node("PlanarPelvis", "pelvis", nil),
			"left_arm": {
				Type:       "PinElbowStickLeftArm",
				Name:       "left_arm",
				LoadGroups: []*ComponentConfig{node("PinElbowTorque", "left_elbow_torque", nil)},
			},
			"right_arm": {
				Type:       "PinElbowStickRightArm",
				Name:       "right_arm",
				LoadGroups: []*ComponentConfig{node("PinElbowSpringDamper", "right_elbow_spring", nil)},
			},
		}),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
