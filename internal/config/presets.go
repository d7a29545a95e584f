package config

var Presets = map[string]map[string]*Config{
	"oval": {
		"gentle": {
			Course: "oval", Controller: "differential", Dt: 0.02, Duration: 20.0,
			Drive: DriveConfig{Base: 90, Gain: 0.1, MaxCorrection: 40, OutMin: -255, OutMax: 255},
		},
		"aggressive": {
			Course: "oval", Controller: "differential", Dt: 0.02, Duration: 20.0,
			Drive: DriveConfig{Base: 160, Gain: 0.3, MaxCorrection: 90, OutMin: -255, OutMax: 255},
		},
		"pid": {
			Course: "oval", Controller: "pid", Dt: 0.02, Duration: 20.0,
			Drive: DriveConfig{Base: 120, Gain: 0.15, Ki: 0.02, Kd: 0.05, MaxCorrection: 60, OutMin: -255, OutMax: 255},
		},
	},
	"slalom": {
		"gentle": {
			Course: "slalom", Controller: "differential", Dt: 0.02, Duration: 30.0,
			Drive: DriveConfig{Base: 80, Gain: 0.12, MaxCorrection: 50, OutMin: -255, OutMax: 255},
		},
		"pid": {
			Course: "slalom", Controller: "pid", Dt: 0.02, Duration: 30.0,
			Drive: DriveConfig{Base: 100, Gain: 0.18, Ki: 0.03, Kd: 0.08, MaxCorrection: 70, OutMin: -255, OutMax: 255},
		},
	},
	"straight": {
		"open_loop": {
			Course: "straight", Controller: "fixed", Dt: 0.02, Duration: 10.0,
			Drive: DriveConfig{Base: 120, OutMin: -255, OutMax: 255},
		},
		"guarded": {
			Course: "straight", Controller: "differential", Dt: 0.02, Duration: 10.0,
			Drive: DriveConfig{Base: 120, Gain: 0.15, MaxCorrection: 60, OutMin: -255, OutMax: 255},
			Guard: GuardConfig{Enabled: true, Distance: 20.0},
		},
	},
}

func GetPreset(course, preset string) *Config {
	coursePresets, ok := Presets[course]
	if !ok {
		return nil
	}
	cfg, ok := coursePresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(course string) []string {
	coursePresets, ok := Presets[course]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(coursePresets))
	for name := range coursePresets {
		names = append(names, name)
	}
	return names
}
