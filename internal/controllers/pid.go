package controllers

import (
	"math"

	"github.com/skarn/linectl/internal/drive"
)

// PID mixes a PID correction on the differential error into the two drive
// channels. The integral term is clamped to MaxCorrection to prevent windup.
type PID struct {
	Base          int
	Kp            float64
	Ki            float64
	Kd            float64
	MaxCorrection int
	OutMin        int
	OutMax        int

	integral float64
	prevErr  float64
	prevT    float64
	first    bool
}

func NewPID(base int, kp, ki, kd float64, maxCorrection, outMin, outMax int) *PID {
	return &PID{
		Base:          base,
		Kp:            kp,
		Ki:            ki,
		Kd:            kd,
		MaxCorrection: maxCorrection,
		OutMin:        outMin,
		OutMax:        outMax,
		first:         true,
	}
}

func (p *PID) Compute(s drive.SensorPair, t float64) drive.Command {
	err := float64(s.Error())

	if p.first {
		p.prevErr = err
		p.prevT = t
		p.first = false
		return p.mix(p.Kp * err)
	}

	dt := t - p.prevT
	if dt <= 0 {
		return p.mix(p.Kp * err)
	}

	p.integral += err * dt
	limit := float64(p.MaxCorrection)
	if p.integral > limit {
		p.integral = limit
	} else if p.integral < -limit {
		p.integral = -limit
	}

	derivative := (err - p.prevErr) / dt

	p.prevErr = err
	p.prevT = t

	return p.mix(p.Kp*err + p.Ki*p.integral + p.Kd*derivative)
}

func (p *PID) mix(u float64) drive.Command {
	correction := int(math.Round(u))
	correction = drive.Clamp(correction, -p.MaxCorrection, p.MaxCorrection)

	return drive.Command{
		Left:  drive.Clamp(p.Base-correction, p.OutMin, p.OutMax),
		Right: drive.Clamp(p.Base+correction, p.OutMin, p.OutMax),
	}
}

// Reset clears integral and derivative state
func (p *PID) Reset() {
	p.integral = 0
	p.prevErr = 0
	p.first = true
}

// GetParams returns tunable parameters for live adjustment
func (p *PID) GetParams() map[string]float64 {
	return map[string]float64{
		"base":           float64(p.Base),
		"kp":             p.Kp,
		"ki":             p.Ki,
		"kd":             p.Kd,
		"max_correction": float64(p.MaxCorrection),
	}
}

// SetParam adjusts a PID parameter
func (p *PID) SetParam(name string, value float64) {
	switch name {
	case "base":
		p.Base = int(value)
	case "kp":
		p.Kp = value
	case "ki":
		p.Ki = value
	case "kd":
		p.Kd = value
	case "max_correction":
		p.MaxCorrection = int(value)
	}
}
