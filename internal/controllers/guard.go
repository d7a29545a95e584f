package controllers

import "github.com/skarn/linectl/internal/drive"

// Guard wraps a controller with an obstacle stop: while the range finder
// reports a distance below Threshold, the drive is held at all-stop. The
// inner controller resumes as soon as the path is clear.
type Guard struct {
	Inner     drive.Controller
	Ranger    drive.RangeFinder
	Threshold float64

	blocked int
}

func NewGuard(inner drive.Controller, ranger drive.RangeFinder, threshold float64) *Guard {
	return &Guard{
		Inner:     inner,
		Ranger:    ranger,
		Threshold: threshold,
	}
}

func (g *Guard) Compute(s drive.SensorPair, t float64) drive.Command {
	if g.Ranger.Distance() < g.Threshold {
		g.blocked++
		return drive.Stop
	}
	return g.Inner.Compute(s, t)
}

// BlockedCycles reports how many cycles the guard held the drive stopped.
func (g *Guard) BlockedCycles() int {
	return g.blocked
}
