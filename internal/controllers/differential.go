package controllers

import (
	"math"

	"github.com/skarn/linectl/internal/drive"
)

// Differential is a proportional corrective controller over two actuator
// channels. The sensed error (left - right) is scaled by Gain, clamped to
// [-MaxCorrection, +MaxCorrection], and applied oppositely to the channels
// around Base. Each channel independently saturates at [OutMin, OutMax].
type Differential struct {
	Base          int
	Gain          float64
	MaxCorrection int
	OutMin        int
	OutMax        int
}

func NewDifferential(base int, gain float64, maxCorrection, outMin, outMax int) *Differential {
	return &Differential{
		Base:          base,
		Gain:          gain,
		MaxCorrection: maxCorrection,
		OutMin:        outMin,
		OutMax:        outMax,
	}
}

func (d *Differential) Compute(s drive.SensorPair, t float64) drive.Command {
	correction := int(math.Round(d.Gain * float64(s.Error())))
	correction = drive.Clamp(correction, -d.MaxCorrection, d.MaxCorrection)

	return drive.Command{
		Left:  drive.Clamp(d.Base-correction, d.OutMin, d.OutMax),
		Right: drive.Clamp(d.Base+correction, d.OutMin, d.OutMax),
	}
}

// GetParams returns tunable parameters for live adjustment
func (d *Differential) GetParams() map[string]float64 {
	return map[string]float64{
		"base":           float64(d.Base),
		"gain":           d.Gain,
		"max_correction": float64(d.MaxCorrection),
	}
}

// SetParam adjusts a controller parameter
func (d *Differential) SetParam(name string, value float64) {
	switch name {
	case "base":
		d.Base = int(value)
	case "gain":
		d.Gain = value
	case "max_correction":
		d.MaxCorrection = int(value)
	}
}
