package metrics

import (
	"math"

	"github.com/skarn/linectl/internal/drive"
)

type ControlEffort struct {
	name    string
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{
		name: "control_effort",
	}
}

func (c *ControlEffort) Name() string {
	return c.name
}

func (c *ControlEffort) Observe(s drive.SensorPair, cmd drive.Command, t float64) {
	c.sum += math.Abs(float64(cmd.Left)) + math.Abs(float64(cmd.Right))
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}
