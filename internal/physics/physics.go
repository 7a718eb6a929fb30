// Package physics provides distance and circle placement helpers.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// PointInCircle checks if a point is within radius of a target position.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) <= radius*radius
}

// CirclesOverlap checks if two circles overlap.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) < minDist*minDist
}

// CirclesSeparated reports whether two circles are at least gap apart,
// rim to rim.
func CirclesSeparated(x1, y1, r1, x2, y2, r2, gap float64) bool {
	minDist := r1 + r2 + gap
	return DistanceSquared(x1, y1, x2, y2) >= minDist*minDist
}

// PointInRect checks if a point lies inside the half-open rectangle
// [x, x+w) x [y, y+h).
func PointInRect(px, py, x, y, w, h float64) bool {
	return px >= x && px < x+w && py >= y && py < y+h
}

// MirrorX reflects a horizontal coordinate across the vertical centerline
// of an area of the given width.
func MirrorX(x, width float64) float64 {
	return width - x
}
