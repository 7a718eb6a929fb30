package draw

import "math"

// circleSegments returns the polygon resolution used for a circle of the
// given pixel radius.
func circleSegments(pixelRadius float64) int {
	n := int(pixelRadius * 4)
	if n < 8 {
		return 8
	}
	if n > 64 {
		return 64
	}
	return n
}

// DrawCircle draws a circle in logical coordinates with the current pen.
// Tiny circles collapse to a single pixel so they stay visible.
func (c *Canvas) DrawCircle(cx, cy, r float64, filled bool) {
	pixelR := math.Max(r*c.scaleX, r*c.scaleY)
	if pixelR < 1 {
		c.SetFloat(cx, cy)
		return
	}

	n := circleSegments(pixelR)
	points := c.BorrowPoints(n)
	for i := range points {
		angle := 2 * math.Pi * float64(i) / float64(n)
		points[i] = Point{X: cx + r*math.Cos(angle), Y: cy + r*math.Sin(angle)}
	}
	c.DrawPolygon(points, filled)
	if filled {
		c.SetFloat(cx, cy)
	}
}

// DrawRing draws a circle outline thickness pixels wide, growing outwards.
func (c *Canvas) DrawRing(cx, cy, r float64, thickness int) {
	step := 1 / math.Max(c.scaleX, c.scaleY)
	for i := 0; i < max(thickness, 1); i++ {
		c.DrawCircle(cx, cy, r+float64(i)*step, false)
	}
}
