package flipbook

import "math"

// Slot names one of the visual elements of the book.
type Slot uint8

const (
	SlotLeftNext  Slot = iota // left page of the spread underneath
	SlotRightNext             // right page of the spread underneath
	SlotLeft                  // leftCurrent: front (LTR) or back (RTL) face of the turning page
	SlotRight                 // rightCurrent: back (LTR) or front (RTL) face of the turning page
	SlotShadow                // fold shading on top of the curled face
	slotCount
)

func (s Slot) String() string {
	switch s {
	case SlotLeftNext:
		return "left-next"
	case SlotRightNext:
		return "right-next"
	case SlotLeft:
		return "left"
	case SlotRight:
		return "right"
	case SlotShadow:
		return "shadow"
	default:
		return "unknown"
	}
}

// Mask names the clip region an element is drawn through.
type Mask uint8

const (
	MaskNone         Mask = iota // drawn unclipped
	MaskClipPlane                // spine side of the fold
	MaskNextPageClip             // corner side of the fold
)

// SlotState is the per-frame state of one page slot.
type SlotState struct {
	Page      int // page index, or Background
	Visible   bool
	Transform Transform
}

// Layer is one entry of the back-to-front draw order.
type Layer struct {
	Slot Slot
	Mask Mask
}

// Region is a layer resolved into a convex book-local polygon. Page is the
// page index to texture it with (Background for the book background); it is
// unused for SlotShadow.
type Region struct {
	Slot    Slot
	Page    int
	Polygon []Vertex
}

// Frame is a read-only snapshot of everything a renderer needs for one
// update. It shares no memory with the Book.
type Frame struct {
	Phase       Phase
	Mode        FlipMode
	CurrentPage int
	TotalPages  int
	PageSize    Vec2

	Follow    Vec2
	Corner    Vec2
	T1        Vec2
	ClipAngle float64 // raw fold angle in degrees

	ClipPlane    Transform
	NextPageClip Transform
	Shadow       Transform
	ShadowOn     bool

	Slots   [slotCount]SlotState
	Layers  []Layer
	Regions []Region
}

// Slot returns the state of slot s.
func (f *Frame) Slot(s Slot) SlotState { return f.Slots[s] }

// Region returns the region drawn for slot s, if any.
func (f *Frame) Region(s Slot) (Region, bool) {
	for _, r := range f.Regions {
		if r.Slot == s {
			return r, true
		}
	}
	return Region{}, false
}

// shadowFalloff is the width of the fold shading as a fraction of the page
// width.
const shadowFalloff = 0.25

// Frame builds the snapshot for the current state.
func (b *Book) Frame() Frame {
	b.mustInit("Frame")
	g := b.geom
	pw, ph := g.PageWidth(), g.PanelHeight

	f := Frame{
		Phase:       b.phase,
		Mode:        b.mode,
		CurrentPage: b.current,
		TotalPages:  b.total,
		PageSize:    Vec2{pw, ph},
		Follow:      b.follow,
		Corner:      b.corner,
		T1:          b.t1,
		ClipAngle:   b.clipAngle,
	}
	for i := range f.Slots {
		f.Slots[i].Page = b.slots[i]
		f.Slots[i].Transform.Size = Vec2{pw, ph}
	}
	f.Slots[SlotLeftNext].Visible = true
	f.Slots[SlotLeftNext].Transform.Position = g.EdgeBottomLeft
	f.Slots[SlotRightNext].Visible = true
	f.Slots[SlotRightNext].Transform.Position = g.SpineBottom

	left, right := g.LeftPage(), g.RightPage()

	if b.phase == PhaseIdle {
		f.Layers = []Layer{{SlotLeftNext, MaskNone}, {SlotRightNext, MaskNone}}
		f.Regions = []Region{
			{Slot: SlotLeftNext, Page: b.slots[SlotLeftNext], Polygon: rectPolygon(left)},
			{Slot: SlotRightNext, Page: b.slots[SlotRightNext], Polygon: rectPolygon(right)},
		}
		return f
	}

	rtl := b.mode == RightToLeft
	ang := math.Atan2(b.t1.Y-b.corner.Y, b.t1.X-b.corner.X) * rad2Deg

	var clipRot float64
	var clipPivot, nextPivot, shadowPivot Vec2
	// static and revealed slots, turning front and back faces
	var static, revealed, front, back Slot
	var staticRect, turningRect Rect
	var bookCorner Vec2
	var backTransform Transform

	if rtl {
		adj := b.clipAngle
		if adj > -90 {
			adj += 180
		}
		clipRot = adj + 90
		clipPivot, nextPivot, shadowPivot = Vec2{1, 0.35}, Vec2{0, 0.12}, g.Layout.ShadowPivotRTL
		static, revealed, front, back = SlotLeftNext, SlotRightNext, SlotLeft, SlotRight
		staticRect, turningRect = left, right
		bookCorner = g.EdgeBottomRight
		backTransform = Transform{Position: b.corner, Rotation: ang, Size: Vec2{pw, ph}}
		f.Slots[SlotLeft].Transform = Transform{Position: g.SpineBottom, Size: Vec2{pw, ph}}
	} else {
		adj := math.Mod(b.clipAngle+180, 180)
		clipRot = adj - 90
		clipPivot, nextPivot, shadowPivot = Vec2{0, 0.35}, Vec2{1, 0.12}, g.Layout.ShadowPivotLTR
		static, revealed, front, back = SlotRightNext, SlotLeftNext, SlotRight, SlotLeft
		staticRect, turningRect = right, left
		bookCorner = g.EdgeBottomLeft
		backTransform = Transform{Position: b.corner, Rotation: ang - 180, Size: Vec2{pw, ph}, Pivot: Vec2{1, 0}}
		f.Slots[SlotRight].Transform = Transform{Position: g.SpineBottom, Size: Vec2{pw, ph}, Pivot: Vec2{1, 0}}
	}
	f.Slots[back].Transform = backTransform
	f.Slots[SlotLeft].Visible = true
	f.Slots[SlotRight].Visible = true

	f.ClipPlane = Transform{Position: b.t1, Rotation: clipRot, Size: g.Layout.ClipPlaneSize, Pivot: clipPivot}
	f.NextPageClip = Transform{Position: b.t1, Rotation: clipRot, Size: g.Layout.NextPageClipSize, Pivot: nextPivot}
	f.Shadow = Transform{Position: b.t1, Rotation: clipRot, Size: g.Layout.ShadowSize, Pivot: shadowPivot}
	f.ShadowOn = !b.cfg.DisableShadow

	f.Layers = []Layer{
		{static, MaskNone},
		{revealed, MaskNextPageClip},
		{front, MaskClipPlane},
		{back, MaskClipPlane},
	}
	if f.ShadowOn {
		f.Layers = append(f.Layers, Layer{SlotShadow, MaskClipPlane})
	}
	f.Slots[SlotShadow] = SlotState{Page: Background, Visible: f.ShadowOn, Transform: f.Shadow}

	f.Regions = append(f.Regions, Region{Slot: static, Page: b.slots[static], Polygon: rectPolygon(staticRect)})

	turning := rectPolygon(turningRect)
	fold, folded := b.foldPlane(bookCorner)
	if !folded {
		// Corner still on its home position: the turning page lies flat.
		f.Regions = append(f.Regions, Region{Slot: front, Page: b.slots[front], Polygon: turning})
		return f
	}

	if poly := clipPolygon(turning, fold); poly != nil {
		f.Regions = append(f.Regions, Region{Slot: revealed, Page: b.slots[revealed], Polygon: poly})
	}
	spine := fold.flip()
	if poly := clipPolygon(turning, spine); poly != nil {
		f.Regions = append(f.Regions, Region{Slot: front, Page: b.slots[front], Polygon: poly})
	}

	m := backTransform.Matrix()
	face := rectPolygon(Rect{Width: pw, Height: ph})
	for i := range face {
		face[i].Pos = m.apply(face[i].UV)
	}
	backPoly := clipPolygon(face, spine)
	if backPoly == nil {
		return f
	}
	f.Regions = append(f.Regions, Region{Slot: back, Page: b.slots[back], Polygon: backPoly})

	if f.ShadowOn {
		width := pw * shadowFalloff
		strip := halfPlane{Origin: spine.Origin, Normal: spine.Normal, Offset: width}.flip()
		shadow := make([]Vertex, len(backPoly))
		copy(shadow, backPoly)
		if shadow = clipPolygon(shadow, strip); shadow != nil {
			for i := range shadow {
				shadow[i].Shade = clamp01(1 - spine.dist(shadow[i].Pos)/width)
			}
			f.Regions = append(f.Regions, Region{Slot: SlotShadow, Page: Background, Polygon: shadow})
		}
	}
	return f
}

// foldPlane returns the half-plane on the book-corner side of the fold line,
// or false when the corner has not left its home position. The fold passes
// through t1 and the midpoint of the corner and its home; when those
// coincide (corner dragged along the bottom edge) it is the perpendicular
// bisector.
func (b *Book) foldPlane(bookCorner Vec2) (halfPlane, bool) {
	pull := bookCorner.Sub(b.corner)
	if pull.Len() < 1e-9 {
		return halfPlane{}, false
	}
	t0 := bookCorner.Add(b.corner).Scale(0.5)
	n := pull
	if dir := b.t1.Sub(t0); dir.Len() > 1e-9 {
		n = Vec2{-dir.Y, dir.X}
		if n.Dot(pull) < 0 {
			n = n.Scale(-1)
		}
	}
	return halfPlane{Origin: t0, Normal: n.Scale(1 / n.Len())}, true
}
