package viz

import (
	"math"
	"strings"
)

// Braille patterns hold 2x4 dots per cell:
// 1 4
// 2 5
// 3 6
// 7 8
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the dot at sub-pixel (x, y). The canvas is Width*2 by
// Height*4 dots.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Lit reports whether the dot at sub-pixel (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine uses Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Bounds is a world-coordinate window.
type Bounds struct {
	XMin, XMax, YMin, YMax float64
}

// FitBounds returns a window around xs/ys with a small margin. Degenerate
// ranges are widened to 1.
func FitBounds(xs, ys []float64) Bounds {
	b := Bounds{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	for i := range xs {
		b.XMin, b.XMax = math.Min(b.XMin, xs[i]), math.Max(b.XMax, xs[i])
		b.YMin, b.YMax = math.Min(b.YMin, ys[i]), math.Max(b.YMax, ys[i])
	}
	if len(xs) == 0 {
		return Bounds{-1, 1, -1, 1}
	}
	pad := func(lo, hi float64) (float64, float64) {
		if hi-lo < 1e-12 {
			return lo - 0.5, hi + 0.5
		}
		m := 0.05 * (hi - lo)
		return lo - m, hi + m
	}
	b.XMin, b.XMax = pad(b.XMin, b.XMax)
	b.YMin, b.YMax = pad(b.YMin, b.YMax)
	return b
}

func (c *Canvas) toPixel(b Bounds, x, y float64) (int, int) {
	w, h := float64(c.Width*2-1), float64(c.Height*4-1)
	px := (x - b.XMin) / (b.XMax - b.XMin) * w
	py := (b.YMax - y) / (b.YMax - b.YMin) * h
	return int(math.Round(px)), int(math.Round(py))
}

// Polyline draws consecutive points joined by lines. Points outside the
// window are clipped dot by dot.
func (c *Canvas) Polyline(b Bounds, xs, ys []float64) {
	for i := range xs {
		x1, y1 := c.toPixel(b, xs[i], ys[i])
		if i == 0 {
			c.Set(x1, y1)
			continue
		}
		x0, y0 := c.toPixel(b, xs[i-1], ys[i-1])
		c.DrawLine(x0, y0, x1, y1)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// PhasePortrait draws q horizontally and p vertically.
func PhasePortrait(positions, momenta []float64, w, h int) string {
	c := NewCanvas(w, h)
	c.Polyline(FitBounds(positions, momenta), positions, momenta)
	return c.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
