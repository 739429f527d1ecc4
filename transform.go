package flipbook

import "math"

// Transform places a rectangular element in book-local space. Rotation is in
// degrees (counter-clockwise, Y up). Pivot is normalized: (0,0) is the
// element's bottom-left, (1,1) its top-right, and Position is where the pivot
// lands.
type Transform struct {
	Position Vec2
	Rotation float64
	Size     Vec2
	Pivot    Vec2
}

// affine is a 2D affine matrix [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type affine [6]float64

var identityAffine = affine{1, 0, 0, 1, 0, 0}

// Matrix returns the matrix mapping element-local points (origin at the
// element's bottom-left) into book-local space.
//
// Composition order:
//
//	Translate(-pivot) -> Rotate -> Translate(Position)
func (t Transform) Matrix() affine {
	sin, cos := math.Sincos(t.Rotation * deg2Rad)
	px := t.Pivot.X * t.Size.X
	py := t.Pivot.Y * t.Size.Y
	return affine{
		cos, sin,
		-sin, cos,
		-cos*px + sin*py + t.Position.X,
		-sin*px - cos*py + t.Position.Y,
	}
}

// multiplyAffine returns p * c (apply c first, then p).
func multiplyAffine(p, c affine) affine {
	return affine{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invert returns the inverse matrix, or identity when m is singular.
func (m affine) invert() affine {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityAffine
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return affine{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// apply transforms a point.
func (m affine) apply(p Vec2) Vec2 {
	return Vec2{m[0]*p.X + m[2]*p.Y + m[4], m[1]*p.X + m[3]*p.Y + m[5]}
}

// Placement positions the book panel on screen. X, Y is the screen position
// of the panel centre, Scale is screen pixels per book unit and Rotation is
// in radians (clockwise on screen). Screen space has Y down, book space Y up.
type Placement struct {
	X, Y     float64
	Scale    float64
	Rotation float64
}

// matrix maps book-local points to screen points.
func (p Placement) matrix() affine {
	s := p.Scale
	if s == 0 {
		s = 1
	}
	sin, cos := math.Sincos(p.Rotation)
	// Scale(s, -s) then Rotate then Translate.
	return affine{
		cos * s, sin * s,
		sin * s, -cos * s,
		p.X, p.Y,
	}
}

// ToScreen converts a book-local point to screen coordinates.
func (p Placement) ToScreen(local Vec2) (sx, sy float64) {
	v := p.matrix().apply(local)
	return v.X, v.Y
}

// ToLocal converts a screen point to book-local coordinates.
func (p Placement) ToLocal(sx, sy float64) Vec2 {
	return p.matrix().invert().apply(Vec2{sx, sy})
}

// Corners returns the screen positions of an element's corners, starting
// at its bottom-left and going counter-clockwise in book space.
func (p Placement) Corners(t Transform) [4]Vec2 {
	m := multiplyAffine(p.matrix(), t.Matrix())
	w, h := t.Size.X, t.Size.Y
	return [4]Vec2{
		m.apply(Vec2{0, 0}),
		m.apply(Vec2{w, 0}),
		m.apply(Vec2{w, h}),
		m.apply(Vec2{0, h}),
	}
}

// GeoM returns the placement as [a, b, c, d, tx, ty] so renderers can
// compose it with their own matrices.
func (p Placement) GeoM() [6]float64 {
	return [6]float64(p.matrix())
}
