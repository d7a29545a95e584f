package track

import (
	"math"
	"math/rand"

	"github.com/skarn/linectl/internal/drive"
)

// MaxRange is the range finder ceiling (cm) when no obstacle is ahead.
const MaxRange = 400.0

// Params configures the simulated robot.
type Params struct {
	Wheelbase   float64 // cm between wheel centers
	SpeedScale  float64 // cm/s of wheel travel per command unit
	SensorSpan  float64 // lateral sensor offset from centerline, cm
	SensorWidth float64 // reflectance falloff width, cm
	SensorMax   int     // full-scale reading over the line
	Dt          float64 // pose integration step per drive cycle, s
	NoiseAmp    float64 // sensor noise amplitude, counts
	Seed        int64
}

func DefaultParams() Params {
	return Params{
		Wheelbase:   12.0,
		SpeedScale:  0.12,
		SensorSpan:  1.5,
		SensorWidth: 2.0,
		SensorMax:   1023,
		Dt:          0.02,
	}
}

// Robot simulates a differential-drive line follower on a course. It
// implements drive.Reader, drive.Actuator and drive.RangeFinder, so a
// control loop runs against it exactly as it would against hardware.
type Robot struct {
	course *Course
	params Params

	X       float64
	Y       float64
	Heading float64

	obstacle    *Point
	lastCommand drive.Command
	rng         *rand.Rand
}

func NewRobot(course *Course, params Params) *Robot {
	start, heading := course.Start()
	return &Robot{
		course:  course,
		params:  params,
		X:       start.X,
		Y:       start.Y,
		Heading: heading,
		rng:     rand.New(rand.NewSource(params.Seed)),
	}
}

// PlaceObstacle puts an obstacle at a point on or near the course.
func (r *Robot) PlaceObstacle(p Point) {
	r.obstacle = &p
}

// Read maps each reflectance sensor's lateral distance from the line into
// [0, SensorMax]. A sensor centered on the line reads full scale.
func (r *Robot) Read() drive.SensorPair {
	sin, cos := math.Sincos(r.Heading)

	// Sensors are mounted at +/- SensorSpan perpendicular to the heading.
	lx := r.X - r.params.SensorSpan*sin
	ly := r.Y + r.params.SensorSpan*cos
	rx := r.X + r.params.SensorSpan*sin
	ry := r.Y - r.params.SensorSpan*cos

	return drive.SensorPair{
		Left:  r.reflectance(lx, ly),
		Right: r.reflectance(rx, ry),
	}
}

func (r *Robot) reflectance(x, y float64) int {
	d := r.course.Distance(x, y)
	w := r.params.SensorWidth
	v := float64(r.params.SensorMax) * math.Exp(-(d*d)/(w*w))

	if r.params.NoiseAmp > 0 {
		v += (r.rng.Float64()*2 - 1) * r.params.NoiseAmp
	}

	return drive.Clamp(int(math.Round(v)), 0, r.params.SensorMax)
}

// Drive applies a command and advances the pose one step with unicycle
// mixing: v = (l+r)/2, omega = (r-l)/wheelbase.
func (r *Robot) Drive(c drive.Command) {
	r.lastCommand = c

	vl := float64(c.Left) * r.params.SpeedScale
	vr := float64(c.Right) * r.params.SpeedScale

	v := (vl + vr) / 2
	omega := (vr - vl) / r.params.Wheelbase

	r.Heading += omega * r.params.Dt
	r.X += v * math.Cos(r.Heading) * r.params.Dt
	r.Y += v * math.Sin(r.Heading) * r.params.Dt
}

// Distance reports the range (cm) to the obstacle when it lies ahead of the
// robot, MaxRange otherwise.
func (r *Robot) Distance() float64 {
	if r.obstacle == nil {
		return MaxRange
	}

	dx := r.obstacle.X - r.X
	dy := r.obstacle.Y - r.Y

	ahead := dx*math.Cos(r.Heading) + dy*math.Sin(r.Heading)
	if ahead <= 0 {
		return MaxRange
	}

	d := math.Hypot(dx, dy)
	if d > MaxRange {
		return MaxRange
	}
	return d
}

// Offset is the robot center's signed lateral distance from the course.
func (r *Robot) Offset() float64 {
	return r.course.Offset(r.X, r.Y)
}

// LastCommand returns the most recently applied command.
func (r *Robot) LastCommand() drive.Command {
	return r.lastCommand
}
