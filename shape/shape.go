// Package shape defines a small shape hierarchy: a bare Base shape and two
// variants embedding it, all satisfying the Shape interface.
package shape

import "math"

// Shape is anything with an area and a circumference.
type Shape interface {
	Area() float64
	Circumference() float64
}

// Base is the bare shape. It has no state and measures zero.
type Base struct{}

func (Base) Area() float64 {
	return 0
}

func (Base) Circumference() float64 {
	return 0
}

// Circle is a shape with a radius.
type Circle struct {
	Base
	Radius float64
}

// NewCircle returns a circle of radius r.
func NewCircle(r float64) *Circle {
	return &Circle{Radius: r}
}

func (c Circle) Area() float64 {
	return math.Pi * c.Radius * c.Radius
}

func (c Circle) Circumference() float64 {
	return 2 * math.Pi * c.Radius
}

// Rectangle is an axis-aligned rectangle with side lengths X and Y.
type Rectangle struct {
	Base
	X float64
	Y float64
}

// NewRectangle returns a rectangle with sides x and y.
func NewRectangle(x, y float64) *Rectangle {
	return &Rectangle{X: x, Y: y}
}

func (r Rectangle) Area() float64 {
	return r.X * r.Y
}

func (r Rectangle) Circumference() float64 {
	return 2*r.X + 2*r.Y
}

var (
	_ Shape = Base{}
	_ Shape = (*Circle)(nil)
	_ Shape = (*Rectangle)(nil)
)
