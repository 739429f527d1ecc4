package flipbook

// Vertex is a polygon corner in book-local space. UV is the matching point in
// page-local space: (0,0) is the page's bottom-left, (PageWidth, PageHeight)
// its top-right. Shade is only used by shadow regions (1 at the fold).
type Vertex struct {
	Pos   Vec2
	UV    Vec2
	Shade float64
}

// halfPlane keeps the points p with Normal·(p-Origin) >= Offset.
type halfPlane struct {
	Origin Vec2
	Normal Vec2
	Offset float64
}

func (h halfPlane) dist(p Vec2) float64 {
	return h.Normal.Dot(p.Sub(h.Origin)) - h.Offset
}

// flip returns the complementary half-plane.
func (h halfPlane) flip() halfPlane {
	return halfPlane{Origin: h.Origin, Normal: h.Normal.Scale(-1), Offset: -h.Offset}
}

// clipPolygon clips a convex polygon against a half-plane
// (Sutherland-Hodgman). UV and Shade are interpolated on the new edges.
// Returns nil if fewer than three vertices remain.
func clipPolygon(poly []Vertex, h halfPlane) []Vertex {
	n := len(poly)
	if n < 3 {
		return nil
	}
	out := make([]Vertex, 0, n+2)
	for i := 0; i < n; i++ {
		cur := poly[i]
		next := poly[(i+1)%n]
		dc := h.dist(cur.Pos)
		dn := h.dist(next.Pos)

		if dc >= 0 {
			out = append(out, cur)
		}
		if (dc >= 0) != (dn >= 0) {
			t := dc / (dc - dn)
			out = append(out, lerpVertex(cur, next, t))
		}
	}
	if len(out) < 3 {
		return nil
	}
	return out
}

func lerpVertex(a, b Vertex, t float64) Vertex {
	return Vertex{
		Pos:   Vec2{a.Pos.X + (b.Pos.X-a.Pos.X)*t, a.Pos.Y + (b.Pos.Y-a.Pos.Y)*t},
		UV:    Vec2{a.UV.X + (b.UV.X-a.UV.X)*t, a.UV.Y + (b.UV.Y-a.UV.Y)*t},
		Shade: a.Shade + (b.Shade-a.Shade)*t,
	}
}

// rectPolygon returns r as a counter-clockwise quad whose UVs are relative to
// r's bottom-left corner.
func rectPolygon(r Rect) []Vertex {
	return []Vertex{
		{Pos: Vec2{r.X, r.Y}, UV: Vec2{0, 0}},
		{Pos: Vec2{r.X + r.Width, r.Y}, UV: Vec2{r.Width, 0}},
		{Pos: Vec2{r.X + r.Width, r.Y + r.Height}, UV: Vec2{r.Width, r.Height}},
		{Pos: Vec2{r.X, r.Y + r.Height}, UV: Vec2{0, r.Height}},
	}
}

// PolygonArea returns the signed area of the polygon (positive when
// counter-clockwise).
func PolygonArea(poly []Vertex) float64 {
	var a float64
	n := len(poly)
	for i := 0; i < n; i++ {
		p := poly[i].Pos
		q := poly[(i+1)%n].Pos
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

// PolygonContains reports whether (x, y) lies inside a convex polygon using
// a cross-product sign test. Points on an edge are inside.
func PolygonContains(poly []Vertex, x, y float64) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	var positive, negative bool
	for i := 0; i < n; i++ {
		a := poly[i].Pos
		b := poly[(i+1)%n].Pos
		cross := (b.X-a.X)*(y-a.Y) - (b.Y-a.Y)*(x-a.X)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}
