package metrics

import (
	"math"

	"github.com/skarn/linectl/internal/drive"
)

// RMSError tracks the root-mean-square of the differential error signal.
type RMSError struct {
	name    string
	sumSq   float64
	samples int
}

func NewRMSError() *RMSError {
	return &RMSError{
		name: "rms_error",
	}
}

func (r *RMSError) Name() string {
	return r.name
}

func (r *RMSError) Observe(s drive.SensorPair, cmd drive.Command, t float64) {
	e := float64(s.Error())
	r.sumSq += e * e
	r.samples++
}

func (r *RMSError) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return math.Sqrt(r.sumSq / float64(r.samples))
}

func (r *RMSError) Reset() {
	r.sumSq = 0
	r.samples = 0
}
