// Package polygon provides a rectangle-like Polygon whose area is derived on
// every read, and a bounded generator of randomly sized polygons.
package polygon

import "fmt"

// Polygon has a height and a width. Its area is never stored.
type Polygon struct {
	Height int
	Width  int
}

// New returns a polygon of the given size.
func New(height, width int) *Polygon {
	return &Polygon{Height: height, Width: width}
}

// Area is the derived area, computed from the current height and width.
func (p *Polygon) Area() int {
	return p.CalcArea()
}

func (p *Polygon) CalcArea() int {
	return p.Height * p.Width
}

func (p *Polygon) String() string {
	return fmt.Sprintf("Polygon (%d , %d) with area: %d", p.Height, p.Width, p.Area())
}
