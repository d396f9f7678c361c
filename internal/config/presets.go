package config

import "sort"

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"quick": {
		Backend: "vectorized", Tolerance: DefaultTolerance,
		Physics:   DefaultConfig().Physics,
		InitState: InitStateConfig{Theta: 1.5707963267948966, Ext: 0.0098},
		Grid:      GridConfig{Start: 0.0, End: 1.0, Samples: 20000},
	},
	// The historical stress configuration: ten million grid points.
	"stress": {
		Backend: "vectorized", Tolerance: DefaultTolerance,
		Physics:   DefaultConfig().Physics,
		InitState: InitStateConfig{Theta: 1.5707963267948966, Ext: 0.0098},
		Grid:      GridConfig{Start: 0.0, End: 10.0, Samples: 10000000},
	},
	// Starts with the spring compressed to its rest length's negative,
	// driving the arm through the l+x=0 singularity.
	"singular": {
		Backend: "vectorized", Tolerance: DefaultTolerance,
		Physics:   DefaultConfig().Physics,
		InitState: InitStateConfig{Theta: 0.5, Ext: -0.03},
		Grid:      GridConfig{Start: 0.0, End: 1.0, Samples: 1000},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
