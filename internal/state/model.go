package state

import "math"

// Point is a 2-D coordinate. It carries both raw device samples and the
// logical points derived from them; which space it is in depends on the
// caller.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Distance returns the Euclidean distance between p and q.
func Distance(p, q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Midpoint returns the point halfway between p and q.
func Midpoint(p, q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// Transform maps logical drawing coordinates onto the device surface:
//
//	device = logical*Scale + Translate
type Transform struct {
	Scale      float64 `json:"scale"`
	TranslateX float64 `json:"translate_x"`
	TranslateY float64 `json:"translate_y"`
}

// Identity returns the transform with unit scale and no translation.
func Identity() Transform {
	return Transform{Scale: 1}
}

// ToLogical removes t from a device point.
func ToLogical(p Point, t Transform) Point {
	return Point{
		X: (p.X - t.TranslateX) / t.Scale,
		Y: (p.Y - t.TranslateY) / t.Scale,
	}
}

// ToDevice applies t to a logical point. It is the inverse of ToLogical.
func ToDevice(p Point, t Transform) Point {
	return Point{
		X: p.X*t.Scale + t.TranslateX,
		Y: p.Y*t.Scale + t.TranslateY,
	}
}

// Visible returns the logical size of a device surface of width w and
// height h under t.
func (t Transform) Visible(w, h float64) (float64, float64) {
	return w / t.Scale, h / t.Scale
}

// Translate returns t shifted by d in device space.
func (t Transform) Translate(d Point) Transform {
	t.TranslateX += d.X
	t.TranslateY += d.Y
	return t
}
