package config

import "sort"

var Presets = map[string]*Config{
	"default": {},
	"top": {
		Camera: &CameraConfig{Position: []float32{0, 12, 0}, LookAt: []float32{0, 0, 0}},
	},
	"wide": {
		Camera: &CameraConfig{FOV: 100},
	},
	"close": {
		Camera: &CameraConfig{Position: []float32{0, 2.5, 3.5}, LookAt: []float32{0, 1, 0}},
	},
	"fine-grid": {
		Grid: &GridConfig{Enabled: true, Size: 20, Divisions: 40},
	},
	"no-grid": {
		Grid: &GridConfig{Enabled: false},
	},
	"dark": {
		Background: "#1e1e1e",
		Grid: &GridConfig{
			Enabled:     true,
			Size:        10,
			Divisions:   10,
			CenterColor: "#aaaaaa",
			LineColor:   "#555555",
		},
	},
	"lo-fi": {
		Antialias: Bool(false),
		FrameRate: 30,
	},
	"drag": {
		Orbit: Bool(false),
		Drag:  Bool(true),
	},
	"unlit": {
		Unlit: true,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
