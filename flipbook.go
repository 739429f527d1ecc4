package flipbook

import "math"

// Vec2 is a 2D point or direction. Book-local points have their origin at the
// panel centre with Y increasing upward.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Len returns the length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the distance between v and o.
func (v Vec2) Dist(o Vec2) float64 { return math.Hypot(v.X-o.X, v.Y-o.Y) }

// Lerp returns the point t of the way from v to o. t is clamped to [0, 1].
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	t = clamp01(t)
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// Rect is an axis-aligned rectangle in book-local space. (X, Y) is the
// bottom-left corner.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Edge names the outer page edge a drag starts from.
type Edge uint8

const (
	EdgeRight Edge = iota // next page, pulled right to left
	EdgeLeft              // previous page, pulled left to right
)

func (e Edge) String() string {
	if e == EdgeLeft {
		return "left"
	}
	return "right"
}

// FlipMode is the direction of the page currently being turned.
type FlipMode uint8

const (
	RightToLeft FlipMode = iota // turning forward
	LeftToRight                 // turning backward
)

func (m FlipMode) String() string {
	if m == LeftToRight {
		return "left-to-right"
	}
	return "right-to-left"
}

// Phase is the state of the page-turn state machine.
type Phase uint8

const (
	PhaseIdle     Phase = iota // no session
	PhaseDragging              // follow point driven by input
	PhaseTweening              // follow point driven by the release tween
	PhaseAutoFlip              // follow point driven by an automatic flip
)

func (p Phase) String() string {
	switch p {
	case PhaseDragging:
		return "dragging"
	case PhaseTweening:
		return "tweening"
	case PhaseAutoFlip:
		return "autoflip"
	default:
		return "idle"
	}
}

// Decision is the outcome of releasing a dragged page.
type Decision uint8

const (
	TweenForward Decision = iota // commit the flip
	TweenBack                    // return the page and discard the session
)

func (d Decision) String() string {
	if d == TweenBack {
		return "back"
	}
	return "forward"
}

// Background is the page index reported for a slot that shows the book
// background instead of a page.
const Background = -1

const (
	rad2Deg = 180 / math.Pi
	deg2Rad = math.Pi / 180
)

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
