package track

import "math"

type Point struct {
	X float64
	Y float64
}

// Course is a line course laid out as a waypoint polyline, in cm. Closed
// courses wrap the last segment back to the first waypoint.
type Course struct {
	Name      string
	Waypoints []Point
	Closed    bool
}

// Offset returns the signed lateral distance (cm) from (x, y) to the nearest
// point on the course. The sign is positive on the left side of the segment
// direction.
func (c *Course) Offset(x, y float64) float64 {
	best := math.Inf(1)
	sign := 1.0

	for _, seg := range c.segments() {
		d, s := distToSegment(x, y, seg[0], seg[1])
		if d < best {
			best = d
			sign = s
		}
	}

	return sign * best
}

// Distance returns the unsigned distance (cm) from (x, y) to the course.
func (c *Course) Distance(x, y float64) float64 {
	return math.Abs(c.Offset(x, y))
}

// Start returns the first waypoint and the initial heading along the course.
func (c *Course) Start() (Point, float64) {
	p := c.Waypoints[0]
	next := c.Waypoints[1]
	return p, math.Atan2(next.Y-p.Y, next.X-p.X)
}

func (c *Course) segments() [][2]Point {
	n := len(c.Waypoints)
	segs := make([][2]Point, 0, n)
	for i := 0; i < n-1; i++ {
		segs = append(segs, [2]Point{c.Waypoints[i], c.Waypoints[i+1]})
	}
	if c.Closed && n > 2 {
		segs = append(segs, [2]Point{c.Waypoints[n-1], c.Waypoints[0]})
	}
	return segs
}

func distToSegment(x, y float64, a, b Point) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y

	lenSq := dx*dx + dy*dy
	u := 0.0
	if lenSq > 0 {
		u = ((x-a.X)*dx + (y-a.Y)*dy) / lenSq
		if u < 0 {
			u = 0
		} else if u > 1 {
			u = 1
		}
	}

	px := a.X + u*dx
	py := a.Y + u*dy

	dist := math.Hypot(x-px, y-py)

	// Cross product of segment direction and the offset vector fixes the side.
	cross := dx*(y-a.Y) - dy*(x-a.X)
	sign := 1.0
	if cross < 0 {
		sign = -1.0
	}

	return dist, sign
}

// Straight is an open 400 cm straightaway.
func Straight() *Course {
	return &Course{
		Name: "straight",
		Waypoints: []Point{
			{0, 0}, {400, 0},
		},
	}
}

// Oval is a closed 8-waypoint loop roughly 200x100 cm.
func Oval() *Course {
	return &Course{
		Name: "oval",
		Waypoints: []Point{
			{0, 0}, {100, 0}, {150, 25}, {150, 75},
			{100, 100}, {0, 100}, {-50, 75}, {-50, 25},
		},
		Closed: true,
	}
}

// Slalom is an open course with alternating turns.
func Slalom() *Course {
	pts := make([]Point, 0, 17)
	for i := 0; i <= 16; i++ {
		x := float64(i) * 25.0
		y := 20.0 * math.Sin(float64(i)*math.Pi/4)
		pts = append(pts, Point{x, y})
	}
	return &Course{Name: "slalom", Waypoints: pts}
}

// ByName returns a built-in course, or nil for an unknown name.
func ByName(name string) *Course {
	switch name {
	case "straight":
		return Straight()
	case "oval":
		return Oval()
	case "slalom":
		return Slalom()
	}
	return nil
}

// Names lists the built-in courses.
func Names() []string {
	return []string{"straight", "oval", "slalom"}
}
