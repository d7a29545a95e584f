package controllers

import "github.com/skarn/linectl/internal/drive"

// Fixed emits a constant command regardless of the sensed error. Used for
// open-loop straight runs and as a benchmark baseline.
type Fixed struct {
	cmd drive.Command
}

func NewFixed(left, right int) *Fixed {
	return &Fixed{cmd: drive.Command{Left: left, Right: right}}
}

// SetCommand updates the stored command.
func (f *Fixed) SetCommand(c drive.Command) {
	f.cmd = c
}

// Compute returns the stored command.
func (f *Fixed) Compute(s drive.SensorPair, t float64) drive.Command {
	return f.cmd
}
