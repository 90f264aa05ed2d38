package model

import "fmt"

// Point is a pixel coordinate in global desktop space.
type Point struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Rect is the visual bounds of an element in global desktop space.
// The zero value is the "no geometry" sentinel.
type Rect struct {
	X      int `yaml:"x"      json:"x"`
	Y      int `yaml:"y"      json:"y"`
	Width  int `yaml:"width"  json:"width"`
	Height int `yaml:"height" json:"height"`
}

// NewRect builds a Rect, clamping negative sizes to zero.
func NewRect(x, y, width, height int) Rect {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// RectFromEdges builds a Rect from left/top/right/bottom edges.
func RectFromEdges(left, top, right, bottom int) Rect {
	return NewRect(left, top, right-left, bottom-top)
}

// IsZero reports whether r is the sentinel (0,0,0,0).
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// Contains reports whether p lies inside r. Right and bottom edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Inset grows r by n pixels on every side (shrinks for negative n).
func (r Rect) Inset(n int) Rect {
	return NewRect(r.X-n, r.Y-n, r.Width+2*n, r.Height+2*n)
}

// Intersect returns the overlap of r and o, or the zero Rect when they
// do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	left, top := max(r.X, o.X), max(r.Y, o.Y)
	right, bottom := min(r.X+r.Width, o.X+o.Width), min(r.Y+r.Height, o.Y+o.Height)
	if right <= left || bottom <= top {
		return Rect{}
	}
	return RectFromEdges(left, top, right, bottom)
}

// Area returns Width*Height.
func (r Rect) Area() int {
	return r.Width * r.Height
}

// Bounds returns r as [x, y, width, height].
func (r Rect) Bounds() [4]int {
	return [4]int{r.X, r.Y, r.Width, r.Height}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", r.X, r.Y, r.Width, r.Height)
}
