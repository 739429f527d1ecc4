package flipbook

import (
	"fmt"
	"log/slog"

	"github.com/tanema/gween/ease"
)

// Config configures a Book. Zero values select the defaults noted on each
// field.
type Config struct {
	// Panel size of the two-page spread. If both are positive the book is
	// initialized by New; otherwise call Initialize before use.
	PanelWidth  float64
	PanelHeight float64

	// TotalPages is the number of page images in the book.
	TotalPages int

	// Release tween timing (default 0.15 s in 0.025 s steps) and easing
	// (default ease.Linear).
	TweenDuration float64
	TweenStep     float64
	TweenEase     ease.TweenFunc

	// Follow-point smoothing (default SmoothingLegacy at 10/s).
	Smoothing     SmoothingMode
	SmoothingRate float64

	// AutoFlip timing (default 1 s over 40 frames).
	AutoFlipTime   float64
	AutoFlipFrames int

	// DisableShadow hides the fold shading.
	DisableShadow bool
}

const (
	defaultAutoFlipTime   = 1.0
	defaultAutoFlipFrames = 40
)

func (c *Config) resolve() {
	if c.TweenDuration <= 0 {
		c.TweenDuration = DefaultTweenDuration
	}
	if c.TweenStep <= 0 {
		c.TweenStep = DefaultTweenStep
	}
	if c.TweenEase == nil {
		c.TweenEase = ease.Linear
	}
	if c.SmoothingRate <= 0 {
		c.SmoothingRate = DefaultSmoothingRate
	}
	if c.AutoFlipTime <= 0 {
		c.AutoFlipTime = defaultAutoFlipTime
	}
	if c.AutoFlipFrames <= 0 {
		c.AutoFlipFrames = defaultAutoFlipFrames
	}
	if c.TotalPages < 0 {
		c.TotalPages = 0
	}
}

// Book is the page-curl engine. It owns the panel geometry and at most one
// page-turn session, and is driven from a single goroutine: call UpdateDrag
// (while dragging) and Tick once per frame, then read Frame.
type Book struct {
	cfg      Config
	geom     Geometry
	smoother Smoother

	total   int
	current int

	phase  Phase
	mode   FlipMode
	follow Vec2
	corner Vec2

	clipAngle float64
	t1        Vec2

	slots [slotCount]int

	startPage     int
	tween         *FollowTween
	tweenDecision Decision
	tweenAuto     bool
	auto          *autoFlip

	handlers handlerRegistry
	sink     EventSink
}

// New creates a book from cfg. The book starts on page 0.
func New(cfg Config) *Book {
	cfg.resolve()
	b := &Book{
		cfg:      cfg,
		total:    cfg.TotalPages,
		smoother: Smoother{Mode: cfg.Smoothing, Rate: cfg.SmoothingRate},
	}
	if cfg.PanelWidth > 0 && cfg.PanelHeight > 0 {
		b.geom = NewGeometry(cfg.PanelWidth, cfg.PanelHeight)
	}
	b.refreshSlots()
	return b
}

// Initialize (re)computes the panel geometry. It must be called again
// whenever the panel changes size. An active session is kept and its corner
// recomputed against the new geometry; a running release tween is aimed at
// the new corner for its remaining steps.
func (b *Book) Initialize(panelWidth, panelHeight float64) error {
	if panelWidth <= 0 || panelHeight <= 0 {
		return fmt.Errorf("flipbook: initialize: invalid panel size %gx%g", panelWidth, panelHeight)
	}
	b.geom = NewGeometry(panelWidth, panelHeight)
	b.cfg.PanelWidth, b.cfg.PanelHeight = panelWidth, panelHeight
	if b.phase != PhaseIdle {
		b.recompute()
	}
	if b.phase == PhaseTweening && b.tween != nil {
		b.retargetTween()
	}
	Logger().Info("flipbook: geometry initialized",
		slog.Float64("width", panelWidth), slog.Float64("height", panelHeight),
		slog.Float64("radius1", b.geom.Radius1), slog.Float64("radius2", b.geom.Radius2))
	return nil
}

// Resize is an alias for Initialize.
func (b *Book) Resize(panelWidth, panelHeight float64) error {
	return b.Initialize(panelWidth, panelHeight)
}

// Geometry returns a copy of the current geometry.
func (b *Book) Geometry() Geometry { return b.geom }

// Phase returns the state-machine phase.
func (b *Book) Phase() Phase { return b.phase }

// Mode returns the direction of the current (or last) session.
func (b *Book) Mode() FlipMode { return b.mode }

// Active reports whether a session exists.
func (b *Book) Active() bool { return b.phase != PhaseIdle }

// CurrentPage returns the index of the page shown on the right half.
func (b *Book) CurrentPage() int { return b.current }

// TotalPages returns the number of pages.
func (b *Book) TotalPages() int { return b.total }

// SetTotalPages changes the page count. It is rejected with ErrBusy while a
// session is active. The current page is clamped to the new count.
func (b *Book) SetTotalPages(n int) error {
	if b.phase != PhaseIdle {
		return ErrBusy
	}
	if n < 0 {
		n = 0
	}
	b.total = n
	if b.current > n {
		b.current = n
	}
	b.refreshSlots()
	return nil
}

// Smoothing returns the follow-point smoothing mode.
func (b *Book) Smoothing() SmoothingMode { return b.smoother.Mode }

// SetSmoothing changes the follow-point smoothing mode. It takes effect on
// the next UpdateDrag.
func (b *Book) SetSmoothing(mode SmoothingMode) {
	b.smoother.Mode = mode
	b.cfg.Smoothing = mode
}

// Follow returns the current follow point.
func (b *Book) Follow() Vec2 { return b.follow }

// Corner returns the constrained corner position.
func (b *Book) Corner() Vec2 { return b.corner }

// Clip returns the raw fold angle in degrees and the bottom-edge point t1.
func (b *Book) Clip() (float64, Vec2) { return b.clipAngle, b.t1 }

// CornerPosition runs the corner-follow solve against the book's geometry.
func (b *Book) CornerPosition(follow Vec2) Vec2 {
	b.mustInit("CornerPosition")
	return b.geom.CornerPosition(follow)
}

// ClipAngle computes the fold angle and t1 for a corner against bookCorner.
func (b *Book) ClipAngle(corner, bookCorner Vec2) (float64, Vec2) {
	b.mustInit("ClipAngle")
	return b.geom.ClipAngle(corner, bookCorner)
}

// CanTurn reports whether a page exists at edge.
func (b *Book) CanTurn(edge Edge) bool {
	if edge == EdgeLeft {
		return b.current > 0
	}
	return b.current < b.total
}

// BeginDrag opens a session pulling the page at edge toward p. It fails with
// ErrNoPage when there is no page at that edge and ErrBusy while another
// session runs; in both cases nothing changes and callers may ignore the
// error.
func (b *Book) BeginDrag(edge Edge, p Vec2) error {
	b.mustInit("BeginDrag")
	if err := b.begin(edge, p); err != nil {
		Logger().Debug("flipbook: drag rejected", slog.String("edge", edge.String()),
			slog.Int("page", b.current), slog.Any("err", err))
		return err
	}
	b.phase = PhaseDragging
	return nil
}

func (b *Book) begin(edge Edge, p Vec2) error {
	if b.phase != PhaseIdle {
		return ErrBusy
	}
	if !b.CanTurn(edge) {
		return ErrNoPage
	}

	b.startPage = b.current
	b.follow = p
	cur := b.current
	if edge == EdgeRight {
		b.mode = RightToLeft
		b.slots[SlotLeft] = b.pageOrBackground(cur)
		b.slots[SlotRight] = b.pageOrBackground(cur + 1)
		b.slots[SlotRightNext] = b.pageOrBackground(cur + 2)
	} else {
		b.mode = LeftToRight
		b.slots[SlotRight] = b.pageOrBackground(cur - 1)
		b.slots[SlotLeft] = b.pageOrBackground(cur - 2)
		b.slots[SlotLeftNext] = b.pageOrBackground(cur - 3)
	}
	b.recompute()

	Logger().Debug("flipbook: drag begin", slog.String("mode", b.mode.String()),
		slog.Int("page", cur), slog.Float64("x", p.X), slog.Float64("y", p.Y))
	return nil
}

// UpdateDrag moves the follow point toward raw, smoothed over dt seconds,
// and recomputes the corner and fold. It does nothing unless dragging.
func (b *Book) UpdateDrag(raw Vec2, dt float64) {
	b.mustInit("UpdateDrag")
	if b.phase != PhaseDragging {
		return
	}
	b.follow = b.smoother.Step(b.follow, raw, dt)
	b.recompute()
}

// SetFollowPoint places the follow point at p without smoothing. It does
// nothing unless dragging.
func (b *Book) SetFollowPoint(p Vec2) {
	b.mustInit("SetFollowPoint")
	if b.phase != PhaseDragging {
		return
	}
	b.moveTo(p)
}

func (b *Book) moveTo(p Vec2) {
	b.follow = p
	b.recompute()
}

// recompute derives the corner and fold from the follow point.
func (b *Book) recompute() {
	b.corner = b.geom.CornerPosition(b.follow)
	bookCorner := b.geom.EdgeBottomRight
	if b.mode == LeftToRight {
		bookCorner = b.geom.EdgeBottomLeft
	}
	b.clipAngle, b.t1 = b.geom.ClipAngle(b.corner, bookCorner)
}

// Decide returns the release outcome for the current corner: TweenBack when
// the corner is strictly closer to the edge it came from, TweenForward
// otherwise (ties go forward).
func (b *Book) Decide() Decision {
	distLeft := b.corner.Dist(b.geom.EdgeBottomLeft)
	distRight := b.corner.Dist(b.geom.EdgeBottomRight)
	if b.mode == RightToLeft {
		if distRight < distLeft {
			return TweenBack
		}
		return TweenForward
	}
	if distRight > distLeft {
		return TweenBack
	}
	return TweenForward
}

// ReleaseDrag ends input control of the page and starts the tween chosen by
// Decide. It reports false when no drag was in progress.
func (b *Book) ReleaseDrag() (Decision, bool) {
	b.mustInit("ReleaseDrag")
	if b.phase != PhaseDragging {
		return TweenForward, false
	}
	d := b.Decide()
	Logger().Debug("flipbook: drag release", slog.String("mode", b.mode.String()),
		slog.String("decision", d.String()))
	if d == TweenBack {
		b.startTween(b.originCorner(), TweenBack)
	} else {
		b.startTween(b.targetCorner(), TweenForward)
	}
	return d, true
}

// TweenForward tweens the page to the opposite side and commits the flip.
func (b *Book) TweenForward() error {
	b.mustInit("TweenForward")
	if b.phase != PhaseDragging {
		return ErrInvalidState
	}
	b.startTween(b.targetCorner(), TweenForward)
	return nil
}

// TweenBack tweens the page back to where it came from and discards the
// session.
func (b *Book) TweenBack() error {
	b.mustInit("TweenBack")
	if b.phase != PhaseDragging {
		return ErrInvalidState
	}
	b.startTween(b.originCorner(), TweenBack)
	return nil
}

func (b *Book) targetCorner() Vec2 {
	if b.mode == RightToLeft {
		return b.geom.EdgeBottomLeft
	}
	return b.geom.EdgeBottomRight
}

func (b *Book) originCorner() Vec2 {
	if b.mode == RightToLeft {
		return b.geom.EdgeBottomRight
	}
	return b.geom.EdgeBottomLeft
}

func (b *Book) startTween(to Vec2, d Decision) {
	b.phase = PhaseTweening
	b.tweenDecision = d
	b.tweenAuto = b.auto != nil
	b.auto = nil
	b.tween = b.newTween(to, b.cfg.TweenDuration)
	// The first step lands immediately, like the frame the release happened on.
	b.tween.Update(0)
}

func (b *Book) newTween(to Vec2, duration float64) *FollowTween {
	d, auto := b.tweenDecision, b.tweenAuto
	finish := func() { b.finish(d, auto) }
	return NewFollowTween(b.follow, to, duration, b.cfg.TweenStep, b.cfg.TweenEase, b.moveTo, finish)
}

// retargetTween replaces the running tween with one from the current follow
// point to the decision's corner, over the steps the old one had left.
func (b *Book) retargetTween() {
	remaining := max(b.tween.Steps()-b.tween.Taken(), 1)
	b.tween.Cancel()
	to := b.originCorner()
	if b.tweenDecision == TweenForward {
		to = b.targetCorner()
	}
	b.tween = b.newTween(to, float64(remaining)*b.cfg.TweenStep)
}

// Tick advances the release tween or auto-flip by dt seconds.
func (b *Book) Tick(dt float64) {
	b.mustInit("Tick")
	switch b.phase {
	case PhaseTweening:
		if b.tween != nil {
			b.tween.Update(dt)
		}
	case PhaseAutoFlip:
		if b.auto != nil {
			b.auto.update(b, dt)
		}
	}
}

// Settle runs Tick until the current tween or auto-flip finishes, using
// steps of dt seconds. It is a no-op while idle or dragging.
func (b *Book) Settle(dt float64) {
	if dt <= 0 {
		dt = b.cfg.TweenStep
	}
	for b.phase == PhaseTweening || b.phase == PhaseAutoFlip {
		b.Tick(dt)
	}
}

func (b *Book) finish(d Decision, auto bool) {
	ev := FlipEvent{Mode: b.mode, Decision: d, PreviousPage: b.startPage, Auto: auto}
	if d == TweenForward {
		if b.mode == RightToLeft {
			b.current += 2
		} else {
			b.current -= 2
		}
		if b.current < 0 {
			b.current = 0
		}
	}
	ev.Page = b.current
	b.endSession()

	if d == TweenForward {
		Logger().Debug("flipbook: flip committed", slog.Int("page", b.current))
	} else {
		Logger().Debug("flipbook: flip canceled", slog.Int("page", b.current))
	}
	b.emit(ev)
}

func (b *Book) endSession() {
	if b.tween != nil {
		b.tween.Cancel()
		b.tween = nil
	}
	b.auto = nil
	b.phase = PhaseIdle
	b.refreshSlots()
}

// ResetToFirstPage ends any session immediately (a running tween is canceled
// and never completes), returns to page 0 and rebuilds the geometry from the
// current panel size.
func (b *Book) ResetToFirstPage() {
	b.mustInit("ResetToFirstPage")
	b.endSession()
	b.current = 0
	b.follow = Vec2{}
	b.corner = Vec2{}
	b.clipAngle = 0
	b.t1 = Vec2{}
	b.refreshSlots()
	b.geom = NewGeometry(b.geom.PanelWidth, b.geom.PanelHeight)
	Logger().Info("flipbook: reset to first page")
}

func (b *Book) pageOrBackground(i int) int {
	if i >= 0 && i < b.total {
		return i
	}
	return Background
}

// refreshSlots assigns the resting spread: the page before current on the
// left, current on the right.
func (b *Book) refreshSlots() {
	for i := range b.slots {
		b.slots[i] = Background
	}
	if b.current > 0 && b.current <= b.total {
		b.slots[SlotLeftNext] = b.current - 1
	}
	b.slots[SlotRightNext] = b.pageOrBackground(b.current)
}

// SlotPage returns the page index assigned to slot s.
func (b *Book) SlotPage(s Slot) int {
	if s >= slotCount {
		return Background
	}
	return b.slots[s]
}
