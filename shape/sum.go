package shape

import "math"

// Areas maps each shape to its area, preserving order.
func Areas(shapes []Shape) []float64 {
	return mapShapes(shapes, Shape.Area)
}

// Circumferences maps each shape to its circumference, preserving order.
func Circumferences(shapes []Shape) []float64 {
	return mapShapes(shapes, Shape.Circumference)
}

func mapShapes(shapes []Shape, fn func(Shape) float64) []float64 {
	values := make([]float64, len(shapes))
	for i, s := range shapes {
		values[i] = fn(s)
	}
	return values
}

// Sum adds up values, starting from 0.
func Sum(values []float64) float64 {
	acc := 0.0
	for _, v := range values {
		acc += v
	}
	return acc
}

// TotalArea is the sum of the areas of shapes.
func TotalArea(shapes []Shape) float64 {
	return Sum(Areas(shapes))
}

// TotalCircumference is the sum of the circumferences of shapes.
func TotalCircumference(shapes []Shape) float64 {
	return Sum(Circumferences(shapes))
}

// CloseTo reports whether actual is within half a unit of the precision-th
// decimal place of expected, i.e. |actual-expected| < 10^-precision / 2.
func CloseTo(actual, expected float64, precision int) bool {
	return math.Abs(actual-expected) < math.Pow(10, -float64(precision))/2
}
