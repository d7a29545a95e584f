package metrics

import "github.com/skarn/linectl/internal/drive"

// Saturation reports the fraction of cycles where a command channel sat on
// the output limit. A high value means the controller is commanding beyond
// what the actuators can deliver.
type Saturation struct {
	name      string
	outMin    int
	outMax    int
	saturated int
	samples   int
}

func NewSaturation(outMin, outMax int) *Saturation {
	return &Saturation{
		name:   "saturation",
		outMin: outMin,
		outMax: outMax,
	}
}

func (s *Saturation) Name() string {
	return s.name
}

func (s *Saturation) Observe(sp drive.SensorPair, cmd drive.Command, t float64) {
	s.samples++
	if cmd.Left == s.outMin || cmd.Left == s.outMax ||
		cmd.Right == s.outMin || cmd.Right == s.outMax {
		s.saturated++
	}
}

func (s *Saturation) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.saturated) / float64(s.samples)
}

func (s *Saturation) Reset() {
	s.saturated = 0
	s.samples = 0
}
