package flipbook

import (
	"log/slog"
	"math"
)

const (
	defaultDragDeadZone = 4.0  // screen pixels
	defaultHotZone      = 0.35 // fraction of the page size
)

// PointerSource reports the primary pointer once per frame in screen
// coordinates.
type PointerSource interface {
	Pointer() (x, y float64, pressed bool)
}

// HitRect is a rectangular hot zone in book-local coordinates.
type HitRect = Rect

type pointerState struct {
	down    bool
	start   Vec2 // book-local
	startSX float64
	startSY float64
	last    Vec2
	edge    Edge
	onEdge  bool // press landed in a hot zone
	turning bool // a drag session belongs to this pointer
	// held is set when the pointer was released while the controller was
	// not interactable; the drag is released once it is again.
	held bool
}

// Controller turns pointer input into page-turn calls: a press in a corner
// hot zone followed by movement past the dead zone begins a drag, the held
// pointer feeds UpdateDrag every frame and releasing calls ReleaseDrag. A tap
// on a hot zone auto-flips that page. Presses elsewhere feed the optional
// SwipeDetector.
type Controller struct {
	book      *Book
	source    PointerSource
	Placement Placement

	// Interactable gates pointer input. While false no session starts, a
	// dragged page stays where it is and a release is deferred until
	// Interactable is set again. Tweens and auto-flips keep running.
	Interactable bool

	// HotZone is the size of the corner hot zones as a fraction of the page
	// (default 0.35). ZoneLeft/ZoneRight override the computed zones when
	// non-empty.
	HotZone   float64
	ZoneLeft  HitRect
	ZoneRight HitRect

	// DragDeadZone is the screen distance the pointer must travel before a
	// press turns into a drag (default 4).
	DragDeadZone float64

	// Swipe, if set, receives the book-local X of pointer drags that did
	// not start on a hot zone. React to swipes through its OnSwipe.
	Swipe *SwipeDetector

	ps  pointerState
	now float64
}

// NewController creates a controller for b reading from source.
func NewController(b *Book, source PointerSource, placement Placement) *Controller {
	return &Controller{
		book:         b,
		source:       source,
		Placement:    placement,
		Interactable: true,
		HotZone:      defaultHotZone,
		DragDeadZone: defaultDragDeadZone,
	}
}

// Book returns the controlled book.
func (c *Controller) Book() *Book { return c.book }

// SetSource replaces the pointer source.
func (c *Controller) SetSource(source PointerSource) { c.source = source }

// Zones returns the left and right hot zones in book-local coordinates.
func (c *Controller) Zones() (left, right HitRect) {
	g := c.book.Geometry()
	f := c.HotZone
	if f <= 0 {
		f = defaultHotZone
	}
	w := g.PageWidth() * f
	h := g.PanelHeight * f
	left = Rect{X: g.EdgeBottomLeft.X, Y: g.EdgeBottomLeft.Y, Width: w, Height: h}
	right = Rect{X: g.EdgeBottomRight.X - w, Y: g.EdgeBottomRight.Y, Width: w, Height: h}
	if c.ZoneLeft.Width > 0 && c.ZoneLeft.Height > 0 {
		left = c.ZoneLeft
	}
	if c.ZoneRight.Width > 0 && c.ZoneRight.Height > 0 {
		right = c.ZoneRight
	}
	return left, right
}

// hitEdge returns the edge whose hot zone contains p.
func (c *Controller) hitEdge(p Vec2) (Edge, bool) {
	left, right := c.Zones()
	if right.Contains(p.X, p.Y) {
		return EdgeRight, true
	}
	if left.Contains(p.X, p.Y) {
		return EdgeLeft, true
	}
	return EdgeRight, false
}

// Update reads the pointer, drives the book for a frame of dt seconds and
// advances any running tween.
func (c *Controller) Update(dt float64) {
	c.now += dt
	if c.ps.held && c.Interactable {
		c.ps.held = false
		c.book.ReleaseDrag()
	}
	if c.source != nil {
		x, y, pressed := c.source.Pointer()
		c.processPointer(x, y, pressed, dt)
	}
	c.book.Tick(dt)
}

// processPointer runs the pointer state machine for one frame.
func (c *Controller) processPointer(sx, sy float64, pressed bool, dt float64) {
	ps := &c.ps
	local := c.Placement.ToLocal(sx, sy)

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.start = local
		ps.last = local
		ps.startSX, ps.startSY = sx, sy
		ps.turning = false
		ps.edge, ps.onEdge = c.hitEdge(local)
		if !ps.onEdge && c.Swipe != nil && c.Interactable {
			c.Swipe.Sample(0, local.X, c.now)
		}

	case pressed && ps.down:
		if ps.onEdge && !ps.turning && c.Interactable {
			if math.Hypot(sx-ps.startSX, sy-ps.startSY) > c.deadZone() {
				if err := c.book.BeginDrag(ps.edge, local); err == nil {
					ps.turning = true
				} else {
					// Nothing to turn (or busy): ignore this press from now on.
					ps.onEdge = false
				}
			}
		}
		if ps.turning && c.Interactable {
			c.book.UpdateDrag(local, dt)
		} else if !ps.onEdge && c.Swipe != nil && c.Interactable {
			c.Swipe.Sample(0, local.X, c.now)
		}
		ps.last = local

	case !pressed && ps.down:
		if ps.turning {
			if c.Interactable {
				c.book.ReleaseDrag()
			} else {
				ps.held = true
			}
		} else if ps.onEdge && c.Interactable {
			// Tap on a corner.
			if err := c.book.AutoFlip(ps.edge); err != nil {
				Logger().Debug("flipbook: tap ignored", slog.Any("err", err))
			}
		}
		if c.Swipe != nil {
			c.Swipe.Reset(0)
		}
		ps.down = false
		ps.turning = false
		ps.onEdge = false
	}
}

func (c *Controller) deadZone() float64 {
	if c.DragDeadZone < 0 {
		return 0
	}
	return c.DragDeadZone
}

// Dragging reports whether the pointer currently owns a drag session.
func (c *Controller) Dragging() bool { return c.ps.turning }
