package track

import (
	"math"
	"testing"
)

func TestCourseOffsetStraight(t *testing.T) {
	c := Straight()

	tests := []struct {
		x, y     float64
		expected float64
	}{
		{100, 0, 0},
		{100, 5, 5},
		{100, -5, -5},
		{0, 3, 3},
	}

	for _, tt := range tests {
		got := c.Offset(tt.x, tt.y)
		if math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("Offset(%.0f, %.0f): expected %.1f, got %.3f", tt.x, tt.y, tt.expected, got)
		}
	}
}

func TestCourseDistanceBeyondEndpoint(t *testing.T) {
	c := Straight()

	// Past the end of an open course the nearest point is the endpoint.
	got := c.Distance(403, 4)
	expected := 5.0
	if math.Abs(got-expected) > 1e-9 {
		t.Errorf("expected distance %.1f, got %.3f", expected, got)
	}
}

func TestCourseClosedWrap(t *testing.T) {
	c := Oval()

	// A point near the closing segment must not report the far side.
	last := c.Waypoints[len(c.Waypoints)-1]
	first := c.Waypoints[0]
	midX := (last.X + first.X) / 2
	midY := (last.Y + first.Y) / 2

	if d := c.Distance(midX, midY); d > 1.0 {
		t.Errorf("expected near-zero distance on closing segment, got %.3f", d)
	}
}

func TestCourseStart(t *testing.T) {
	c := Straight()
	p, heading := c.Start()

	if p.X != 0 || p.Y != 0 {
		t.Errorf("expected start at origin, got (%.1f, %.1f)", p.X, p.Y)
	}
	if math.Abs(heading) > 1e-9 {
		t.Errorf("expected heading 0 along +x, got %.3f", heading)
	}
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		c := ByName(name)
		if c == nil {
			t.Errorf("expected course for %q", name)
			continue
		}
		if c.Name != name {
			t.Errorf("expected name %q, got %q", name, c.Name)
		}
		if len(c.Waypoints) < 2 {
			t.Errorf("course %q has too few waypoints", name)
		}
	}

	if ByName("nonexistent") != nil {
		t.Error("expected nil for unknown course")
	}
}
