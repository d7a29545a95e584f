package drive

// SensorPair holds one reflectance reading per channel. Readings are opaque
// bounded integers; the sensing hardware determines the range.
type SensorPair struct {
	Left  int
	Right int
}

// Error is the differential error signal the controllers act on.
func (s SensorPair) Error() int {
	return s.Left - s.Right
}

// Command holds one speed per actuator channel.
type Command struct {
	Left  int
	Right int
}

// Stop is the all-stop command.
var Stop = Command{}

// Clamp restricts v to the closed interval [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Reader supplies sensor readings; actuation and sensing are external
// collaborators, the loop only calls them.
type Reader interface {
	Read() SensorPair
}

// Actuator applies a command to the drive channels.
type Actuator interface {
	Drive(c Command)
}

// RangeFinder reports the distance (cm) to the nearest obstacle ahead.
type RangeFinder interface {
	Distance() float64
}

type Controller interface {
	Compute(s SensorPair, t float64) Command
}

// Tunable controllers support live parameter adjustment.
type Tunable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64)
}

type Metric interface {
	Name() string
	Observe(s SensorPair, c Command, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnCycle(s SensorPair, c Command, t float64)
}

type Config struct {
	Dt       float64
	Duration float64
	Seed     int64
}

type Result struct {
	Readings []SensorPair
	Commands []Command
	Times    []float64
	Metrics  map[string]float64
	Cycles   int
}
