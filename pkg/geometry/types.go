// Package geometry provides basic geometric types used throughout the application.
package geometry

// PointInt represents a 2D point with integer coordinates.
type PointInt struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Box represents an axis-aligned rectangle by its corner coordinates.
// X2 and Y2 are exclusive, matching image slice bounds.
type Box struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// NewBox creates a new Box.
func NewBox(x1, y1, x2, y2 int) Box {
	return Box{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Width returns the horizontal extent of the box.
func (b Box) Width() int {
	return b.X2 - b.X1
}

// Height returns the vertical extent of the box.
func (b Box) Height() int {
	return b.Y2 - b.Y1
}

// Empty returns true if the box has no area.
func (b Box) Empty() bool {
	return b.X2 <= b.X1 || b.Y2 <= b.Y1
}

// Center returns the center point of the box.
func (b Box) Center() PointInt {
	return PointInt{X: b.X1 + (b.X2-b.X1)/2, Y: b.Y1 + (b.Y2-b.Y1)/2}
}

// Contains returns true if the point is inside the box.
func (b Box) Contains(p PointInt) bool {
	return p.X >= b.X1 && p.X < b.X2 && p.Y >= b.Y1 && p.Y < b.Y2
}

// Intersects returns true if this box overlaps another.
func (b Box) Intersects(other Box) bool {
	return b.X1 < other.X2 && b.X2 > other.X1 &&
		b.Y1 < other.Y2 && b.Y2 > other.Y1
}

// Offset returns the box translated by dx, dy.
func (b Box) Offset(dx, dy int) Box {
	return Box{X1: b.X1 + dx, Y1: b.Y1 + dy, X2: b.X2 + dx, Y2: b.Y2 + dy}
}

// Clamp restricts the box to the bounds of a w x h surface, keeping at
// least one pixel of extent.
func (b Box) Clamp(w, h int) Box {
	c := b
	c.X1 = ClampInt(c.X1, 0, w-1)
	c.Y1 = ClampInt(c.Y1, 0, h-1)
	c.X2 = ClampInt(c.X2, c.X1+1, w)
	c.Y2 = ClampInt(c.Y2, c.Y1+1, h)
	return c
}

// RectInt represents a rectangle with integer position and size.
type RectInt struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ToBox converts to corner representation.
func (r RectInt) ToBox() Box {
	return Box{X1: r.X, Y1: r.Y, X2: r.X + r.Width, Y2: r.Y + r.Height}
}

// ScaleRect scales a rectangle defined on a refW x refH reference canvas
// to a w x h surface.
func ScaleRect(r RectInt, refW, refH, w, h int) RectInt {
	sx := float64(w) / float64(refW)
	sy := float64(h) / float64(refH)
	return RectInt{
		X:      int(float64(r.X) * sx),
		Y:      int(float64(r.Y) * sy),
		Width:  int(float64(r.Width) * sx),
		Height: int(float64(r.Height) * sy),
	}
}

// ClampInt restricts v to the range [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
