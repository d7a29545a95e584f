package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBase          = 120
	DefaultGain          = 0.15
	DefaultMaxCorrection = 60
	DefaultOutMin        = -255
	DefaultOutMax        = 255
	DefaultSensorMax     = 1023
	DefaultDt            = 0.02
	DefaultDuration      = 10.0
	DefaultKi            = 0.02
	DefaultKd            = 0.05
	DefaultGuardDistance = 15.0
)

type Config struct {
	Course     string       `yaml:"course"`
	Controller string       `yaml:"controller"`
	Dt         float64      `yaml:"dt"`
	Duration   float64      `yaml:"duration"`
	Seed       int64        `yaml:"seed"`
	Drive      DriveConfig  `yaml:"drive"`
	Sensor     SensorConfig `yaml:"sensor"`
	Guard      GuardConfig  `yaml:"guard"`
}

type DriveConfig struct {
	Base          int     `yaml:"base"`
	Gain          float64 `yaml:"gain"`
	Ki            float64 `yaml:"ki"`
	Kd            float64 `yaml:"kd"`
	MaxCorrection int     `yaml:"max_correction"`
	OutMin        int     `yaml:"out_min"`
	OutMax        int     `yaml:"out_max"`
}

type SensorConfig struct {
	Max      int     `yaml:"max"`
	NoiseAmp float64 `yaml:"noise_amp"`
}

type GuardConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Distance float64 `yaml:"distance"`
}

func DefaultConfig() *Config {
	return &Config{
		Course:     "oval",
		Controller: "differential",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Drive: DriveConfig{
			Base:          DefaultBase,
			Gain:          DefaultGain,
			Ki:            DefaultKi,
			Kd:            DefaultKd,
			MaxCorrection: DefaultMaxCorrection,
			OutMin:        DefaultOutMin,
			OutMax:        DefaultOutMax,
		},
		Sensor: SensorConfig{
			Max: DefaultSensorMax,
		},
		Guard: GuardConfig{
			Distance: DefaultGuardDistance,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) ControllerParams() map[string]float64 {
	return map[string]float64{
		"base":           float64(c.Drive.Base),
		"gain":           c.Drive.Gain,
		"ki":             c.Drive.Ki,
		"kd":             c.Drive.Kd,
		"max_correction": float64(c.Drive.MaxCorrection),
		"out_min":        float64(c.Drive.OutMin),
		"out_max":        float64(c.Drive.OutMax),
	}
}
