package tui

import (
	"strings"
)

// Canvas is a rune grid with a world-to-screen projection. World coordinates
// are course cm; the projection is fixed when the canvas is framed.
type Canvas struct {
	Width  int
	Height int

	cells [][]rune

	minX, minY float64
	scaleX     float64
	scaleY     float64
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h}
	c.cells = make([][]rune, h)
	for i := range c.cells {
		c.cells[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = ' '
		}
	}
}

// Frame fixes the projection so the world rectangle fits the grid with a
// margin. Terminal cells are roughly twice as tall as wide, so the Y scale
// is halved.
func (c *Canvas) Frame(minX, minY, maxX, maxY float64) {
	const margin = 2.0
	minX -= margin
	minY -= margin
	maxX += margin
	maxY += margin

	c.minX = minX
	c.minY = minY
	c.scaleX = float64(c.Width-1) / (maxX - minX)
	c.scaleY = float64(c.Height-1) / (maxY - minY)
}

func (c *Canvas) project(wx, wy float64) (int, int) {
	x := int((wx - c.minX) * c.scaleX)
	// Flip Y so world up is screen up.
	y := c.Height - 1 - int((wy-c.minY)*c.scaleY)
	return x, y
}

func (c *Canvas) Set(wx, wy float64, r rune) {
	x, y := c.project(wx, wy)
	c.set(x, y, r)
}

func (c *Canvas) set(x, y int, r rune) {
	if x >= 0 && x < c.Width && y >= 0 && y < c.Height {
		c.cells[y][x] = r
	}
}

// Line draws a world-coordinate segment with Bresenham stepping.
func (c *Canvas) Line(wx1, wy1, wx2, wy2 float64, r rune) {
	x1, y1 := c.project(wx1, wy1)
	x2, y2 := c.project(wx2, wy2)

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		c.set(x1, y1, r)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.cells {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
