package flipbook

import "math"

// Geometry holds the fixed reference points of a two-page spread. It is
// derived entirely from the panel size; call NewGeometry again whenever the
// panel is resized so the radii never go stale.
type Geometry struct {
	PanelWidth  float64
	PanelHeight float64

	SpineBottom     Vec2 // sb
	SpineTop        Vec2 // st
	EdgeBottomLeft  Vec2 // ebl
	EdgeBottomRight Vec2 // ebr

	// Radius1 bounds the corner around SpineBottom.
	Radius1 float64
	// Radius2 bounds the corner around SpineTop (the page diagonal).
	Radius2 float64

	Layout Layout
}

// Layout carries the sizes and pivots a renderer needs for the clip masks
// and the fold shadow. Pivots are normalized, (0,0) is bottom-left.
type Layout struct {
	PageWidth  float64
	PageHeight float64

	ClipPlaneSize    Vec2
	NextPageClipSize Vec2
	ShadowSize       Vec2
	ShadowPivotRTL   Vec2
	ShadowPivotLTR   Vec2
}

// NewGeometry computes the critical points for a panel of the given size.
func NewGeometry(panelWidth, panelHeight float64) Geometry {
	g := Geometry{
		PanelWidth:      panelWidth,
		PanelHeight:     panelHeight,
		SpineBottom:     Vec2{0, -panelHeight / 2},
		SpineTop:        Vec2{0, panelHeight / 2},
		EdgeBottomLeft:  Vec2{-panelWidth / 2, -panelHeight / 2},
		EdgeBottomRight: Vec2{panelWidth / 2, -panelHeight / 2},
	}
	g.Radius1 = g.SpineBottom.Dist(g.EdgeBottomRight)

	pw := panelWidth / 2
	ph := panelHeight
	g.Radius2 = math.Sqrt(pw*pw + ph*ph)
	g.Layout = newLayout(pw, ph)
	return g
}

func newLayout(pw, ph float64) Layout {
	hyp := math.Sqrt(pw*pw + ph*ph)
	shadowH := pw/2 + hyp
	var pivotY float64
	if shadowH > 0 {
		pivotY = (pw / 2) / shadowH
	}
	return Layout{
		PageWidth:        pw,
		PageHeight:       ph,
		ClipPlaneSize:    Vec2{pw*2 + ph, ph * 3},
		NextPageClipSize: Vec2{pw, ph * 3},
		ShadowSize:       Vec2{pw, shadowH},
		ShadowPivotRTL:   Vec2{1, pivotY},
		ShadowPivotLTR:   Vec2{0, pivotY},
	}
}

// PageWidth returns the width of a single page.
func (g Geometry) PageWidth() float64 { return g.PanelWidth / 2 }

// LeftPage returns the rectangle covered by the left page.
func (g Geometry) LeftPage() Rect {
	return Rect{X: g.EdgeBottomLeft.X, Y: g.SpineBottom.Y, Width: g.PageWidth(), Height: g.PanelHeight}
}

// RightPage returns the rectangle covered by the right page.
func (g Geometry) RightPage() Rect {
	return Rect{X: g.SpineBottom.X, Y: g.SpineBottom.Y, Width: g.PageWidth(), Height: g.PanelHeight}
}

func (g Geometry) valid() bool {
	return g.PanelWidth > 0 && g.PanelHeight > 0
}

// CornerPosition runs the two-stage corner-follow solve. The follow point is
// first clamped to the circle of Radius1 around SpineBottom, then to the
// circle of Radius2 around SpineTop, which keeps the dragged corner on the
// locus a real page corner can reach.
func (g Geometry) CornerPosition(follow Vec2) Vec2 {
	sb, st := g.SpineBottom, g.SpineTop

	angFSB := math.Atan2(follow.Y-sb.Y, follow.X-sb.X)
	r1 := Vec2{g.Radius1 * math.Cos(angFSB), g.Radius1 * math.Sin(angFSB)}.Add(sb)

	c := r1
	if follow.Dist(sb) < g.Radius1 {
		c = follow
	}

	angFST := math.Atan2(c.Y-st.Y, c.X-st.X)
	r2 := Vec2{g.Radius2 * math.Cos(angFST), g.Radius2 * math.Sin(angFST)}.Add(st)

	if c.Dist(st) > g.Radius2 {
		c = r2
	}
	return c
}

// ClipAngle returns the orientation of the fold line, in degrees, for a
// corner at c peeled away from bookCorner, and t1, the point where the fold
// meets the bottom edge. The fold runs along the perpendicular bisector of c
// and bookCorner; t1 never crosses the spine.
func (g Geometry) ClipAngle(c, bookCorner Vec2) (float64, Vec2) {
	t0 := c.Add(bookCorner).Scale(0.5)

	ang := math.Atan2(bookCorner.Y-t0.Y, bookCorner.X-t0.X)

	t1x := t0.X - (bookCorner.Y-t0.Y)*math.Tan(ang)
	t1x = normalizeT1X(t1x, bookCorner, g.SpineBottom)

	t1 := Vec2{t1x, g.SpineBottom.Y}
	return math.Atan2(t1.Y-t0.Y, t1.X-t0.X) * rad2Deg, t1
}

// normalizeT1X snaps x to the spine when it overshoots past the spine on the
// side opposite the book corner.
func normalizeT1X(x float64, corner, sb Vec2) float64 {
	if x > sb.X && sb.X > corner.X {
		return sb.X
	}
	if x < sb.X && sb.X < corner.X {
		return sb.X
	}
	return x
}
