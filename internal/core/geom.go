// Package core provides fundamental types and utilities shared by the game
// logic and the front ends. It has no external dependencies (especially no
// Bubble Tea or Ebitengine) to keep game logic pure and testable.
package core

import "math"

// Rect is an axis-aligned bounding box in play-area units.
// Y grows downward, matching both terminal rows and screen pixels.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Intersects reports whether the two rectangles overlap.
// Edges that merely touch do not count as an overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.Right() &&
		r.Right() > other.X &&
		r.Y < other.Bottom() &&
		r.Bottom() > other.Y
}

// Contains returns true if the point (x, y) is inside this rectangle.
// The right and bottom edges are exclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Translate returns the rectangle moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Scale returns the rectangle with every component multiplied by f.
func (r Rect) Scale(f float64) Rect {
	return Rect{X: r.X * f, Y: r.Y * f, W: r.W * f, H: r.H * f}
}

// CellSpan converts the rectangle into the half-open cell range it covers on
// a grid whose cells are cellW x cellH units. A cell is covered when any part
// of the rectangle lies inside it.
func (r Rect) CellSpan(cellW, cellH float64) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(r.X / cellW))
	y0 = int(math.Floor(r.Y / cellH))
	x1 = int(math.Ceil(r.Right() / cellW))
	y1 = int(math.Ceil(r.Bottom() / cellH))
	return x0, y0, x1, y1
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
