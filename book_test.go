package flipbook

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// turn drags the page at edge to follow, releases it and settles the tween.
func turn(t *testing.T, b *Book, edge Edge, follow Vec2) Decision {
	t.Helper()
	g := b.Geometry()
	start := g.EdgeBottomRight
	if edge == EdgeLeft {
		start = g.EdgeBottomLeft
	}
	if err := b.BeginDrag(edge, start); err != nil {
		t.Fatalf("BeginDrag(%s): %v", edge, err)
	}
	b.SetFollowPoint(follow)
	d, ok := b.ReleaseDrag()
	if !ok {
		t.Fatal("ReleaseDrag reported no drag")
	}
	b.Settle(0)
	if b.Phase() != PhaseIdle {
		t.Fatalf("phase after Settle = %s, want idle", b.Phase())
	}
	return d
}

func TestNewDefaults(t *testing.T) {
	b := newTestBook(t, 6)
	if b.CurrentPage() != 0 || b.TotalPages() != 6 || b.Phase() != PhaseIdle || b.Active() {
		t.Fatalf("unexpected initial state: page %d/%d phase %s", b.CurrentPage(), b.TotalPages(), b.Phase())
	}
	if got := b.SlotPage(SlotLeftNext); got != Background {
		t.Errorf("left-next = %d, want background", got)
	}
	if got := b.SlotPage(SlotRightNext); got != 0 {
		t.Errorf("right-next = %d, want 0", got)
	}
	if got := b.SlotPage(slotCount); got != Background {
		t.Errorf("out-of-range slot = %d, want background", got)
	}
	if b.Smoothing() != SmoothingLegacy {
		t.Errorf("smoothing = %s, want legacy", b.Smoothing())
	}
}

func TestInitializeRejectsBadSize(t *testing.T) {
	b := New(Config{TotalPages: 4})
	for _, sz := range [][2]float64{{0, 600}, {800, 0}, {-1, -1}} {
		if err := b.Initialize(sz[0], sz[1]); err == nil {
			t.Errorf("Initialize(%v, %v): expected error", sz[0], sz[1])
		}
	}
	if err := b.Initialize(800, 600); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if b.Geometry().Radius1 != 400 {
		t.Errorf("Radius1 = %v, want 400", b.Geometry().Radius1)
	}
}

func TestUninitializedPanics(t *testing.T) {
	b := New(Config{TotalPages: 4})
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		if msg := fmt.Sprint(r); !strings.Contains(msg, ErrNotInitialized.Error()) || !strings.Contains(msg, "BeginDrag") {
			t.Errorf("panic = %q", msg)
		}
	}()
	_ = b.BeginDrag(EdgeRight, Vec2{})
}

func TestBeginDragSlotsRTL(t *testing.T) {
	b := newTestBook(t, 6)
	if err := b.BeginDrag(EdgeRight, Vec2{400, -300}); err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	if b.Mode() != RightToLeft || b.Phase() != PhaseDragging {
		t.Fatalf("mode %s phase %s", b.Mode(), b.Phase())
	}
	want := map[Slot]int{SlotLeftNext: Background, SlotLeft: 0, SlotRight: 1, SlotRightNext: 2}
	for s, p := range want {
		if got := b.SlotPage(s); got != p {
			t.Errorf("%s = %d, want %d", s, got, p)
		}
	}
}

func TestBeginDragSlotsLTR(t *testing.T) {
	b := newTestBook(t, 6)
	turn(t, b, EdgeRight, Vec2{-300, -250})
	turn(t, b, EdgeRight, Vec2{-300, -250})
	if b.CurrentPage() != 4 {
		t.Fatalf("page = %d, want 4", b.CurrentPage())
	}
	if err := b.BeginDrag(EdgeLeft, Vec2{-400, -300}); err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	if b.Mode() != LeftToRight {
		t.Fatalf("mode = %s", b.Mode())
	}
	want := map[Slot]int{SlotRight: 3, SlotLeft: 2, SlotLeftNext: 1, SlotRightNext: 4}
	for s, p := range want {
		if got := b.SlotPage(s); got != p {
			t.Errorf("%s = %d, want %d", s, got, p)
		}
	}
}

func TestBeginDragPastEndUsesBackground(t *testing.T) {
	b := newTestBook(t, 5)
	turn(t, b, EdgeRight, Vec2{-300, -250})
	turn(t, b, EdgeRight, Vec2{-300, -250})
	if err := b.BeginDrag(EdgeRight, Vec2{400, -300}); err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	if got := b.SlotPage(SlotRight); got != Background {
		t.Errorf("right = %d, want background (page 5 does not exist)", got)
	}
	if got := b.SlotPage(SlotRightNext); got != Background {
		t.Errorf("right-next = %d, want background", got)
	}
}

func TestBeginDragRejections(t *testing.T) {
	b := newTestBook(t, 2)

	err := b.BeginDrag(EdgeLeft, Vec2{-400, -300})
	if !errors.Is(err, ErrNoPage) || !errors.Is(err, ErrInvalidState) {
		t.Errorf("left at page 0: err = %v, want ErrNoPage", err)
	}
	if b.Phase() != PhaseIdle {
		t.Errorf("rejected drag changed phase to %s", b.Phase())
	}

	if err := b.BeginDrag(EdgeRight, Vec2{400, -300}); err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	err = b.BeginDrag(EdgeRight, Vec2{400, -300})
	if !errors.Is(err, ErrBusy) || !errors.Is(err, ErrInvalidState) {
		t.Errorf("second drag: err = %v, want ErrBusy", err)
	}
	b.SetFollowPoint(Vec2{-300, -250})
	b.ReleaseDrag()
	b.Settle(0)

	if b.CurrentPage() != 2 {
		t.Fatalf("page = %d, want 2", b.CurrentPage())
	}
	if err := b.BeginDrag(EdgeRight, Vec2{400, -300}); !errors.Is(err, ErrNoPage) {
		t.Errorf("right at last page: err = %v, want ErrNoPage", err)
	}
	if b.CanTurn(EdgeRight) || !b.CanTurn(EdgeLeft) {
		t.Error("CanTurn disagrees with the page index")
	}
}

func TestReleaseOutcomes(t *testing.T) {
	tests := []struct {
		name     string
		start    int // forward turns before the tested one
		edge     Edge
		follow   Vec2
		want     Decision
		wantPage int
	}{
		{"rtl commit", 0, EdgeRight, Vec2{-300, -250}, TweenForward, 2},
		{"rtl cancel", 0, EdgeRight, Vec2{300, -250}, TweenBack, 0},
		{"rtl tie goes forward", 0, EdgeRight, Vec2{0, -100}, TweenForward, 2},
		{"ltr commit", 1, EdgeLeft, Vec2{300, -250}, TweenForward, 0},
		{"ltr cancel", 1, EdgeLeft, Vec2{-300, -250}, TweenBack, 2},
		{"ltr tie goes forward", 1, EdgeLeft, Vec2{0, -100}, TweenForward, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBook(t, 6)
			for i := 0; i < tt.start; i++ {
				turn(t, b, EdgeRight, Vec2{-300, -250})
			}
			if got := turn(t, b, tt.edge, tt.follow); got != tt.want {
				t.Errorf("decision = %s, want %s", got, tt.want)
			}
			if b.CurrentPage() != tt.wantPage {
				t.Errorf("page = %d, want %d", b.CurrentPage(), tt.wantPage)
			}
		})
	}
}

func TestReleaseWithoutDrag(t *testing.T) {
	b := newTestBook(t, 4)
	if _, ok := b.ReleaseDrag(); ok {
		t.Error("ReleaseDrag while idle reported a drag")
	}
	if err := b.TweenForward(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("TweenForward while idle: %v", err)
	}
	if err := b.TweenBack(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("TweenBack while idle: %v", err)
	}
}

func TestExplicitTweens(t *testing.T) {
	b := newTestBook(t, 4)
	if err := b.BeginDrag(EdgeRight, Vec2{400, -300}); err != nil {
		t.Fatal(err)
	}
	// Corner still near home, but the caller forces the flip.
	b.SetFollowPoint(Vec2{350, -280})
	if err := b.TweenForward(); err != nil {
		t.Fatalf("TweenForward: %v", err)
	}
	b.Settle(0)
	if b.CurrentPage() != 2 {
		t.Errorf("page = %d, want 2", b.CurrentPage())
	}

	if err := b.BeginDrag(EdgeRight, Vec2{400, -300}); err != nil {
		t.Fatal(err)
	}
	b.SetFollowPoint(Vec2{-350, -280})
	if err := b.TweenBack(); err != nil {
		t.Fatalf("TweenBack: %v", err)
	}
	b.Settle(0)
	if b.CurrentPage() != 2 {
		t.Errorf("page = %d, want 2 after TweenBack", b.CurrentPage())
	}
}

func TestTweenTiming(t *testing.T) {
	b := newTestBook(t, 4)
	if err := b.BeginDrag(EdgeRight, Vec2{400, -300}); err != nil {
		t.Fatal(err)
	}
	b.SetFollowPoint(Vec2{-300, -250})
	b.ReleaseDrag()
	if b.Phase() != PhaseTweening {
		t.Fatalf("phase = %s, want tweening", b.Phase())
	}

	// Six samples: one on release, then one every 0.025 s.
	for i := 0; i < 4; i++ {
		b.Tick(DefaultTweenStep)
		if b.Phase() != PhaseTweening {
			t.Fatalf("tween finished early after %d ticks", i+1)
		}
	}
	b.Tick(DefaultTweenStep)
	if b.Phase() != PhaseIdle {
		t.Fatalf("phase = %s after the last sample, want idle", b.Phase())
	}
	assertVec(t, "follow", b.Follow(), Vec2{-400, -300}, 1e-9)
	if b.CurrentPage() != 2 {
		t.Errorf("page = %d, want 2", b.CurrentPage())
	}
}

func TestTweenFollowMovesMonotonically(t *testing.T) {
	b := newTestBook(t, 4)
	if err := b.BeginDrag(EdgeRight, Vec2{400, -300}); err != nil {
		t.Fatal(err)
	}
	b.SetFollowPoint(Vec2{-100, -250})
	b.ReleaseDrag()
	prev := b.Follow().X
	for b.Phase() == PhaseTweening {
		b.Tick(DefaultTweenStep)
		if x := b.Follow().X; x > prev+1e-9 {
			t.Fatalf("follow moved back from %v to %v", prev, x)
		} else {
			prev = x
		}
	}
}

func TestResetDuringTweenSuppressesCompletion(t *testing.T) {
	b := newTestBook(t, 6)
	flips, cancels := 0, 0
	b.OnFlip(func(FlipEvent) { flips++ })
	b.OnCancel(func(FlipEvent) { cancels++ })

	turn(t, b, EdgeRight, Vec2{-300, -250})
	if flips != 1 {
		t.Fatalf("flips = %d, want 1", flips)
	}

	if err := b.BeginDrag(EdgeRight, Vec2{400, -300}); err != nil {
		t.Fatal(err)
	}
	b.SetFollowPoint(Vec2{-300, -250})
	b.ReleaseDrag()
	b.Tick(DefaultTweenStep)

	b.ResetToFirstPage()
	for i := 0; i < 20; i++ {
		b.Tick(DefaultTweenStep)
	}
	if flips != 1 || cancels != 0 {
		t.Errorf("events after reset: flips %d cancels %d", flips, cancels)
	}
	if b.CurrentPage() != 0 || b.Phase() != PhaseIdle {
		t.Errorf("after reset: page %d phase %s", b.CurrentPage(), b.Phase())
	}
	if b.SlotPage(SlotRightNext) != 0 || b.SlotPage(SlotLeftNext) != Background {
		t.Errorf("slots not reset: right-next %d left-next %d", b.SlotPage(SlotRightNext), b.SlotPage(SlotLeftNext))
	}
	if b.Geometry().Radius1 != 400 {
		t.Errorf("geometry not rebuilt: radius1 %v", b.Geometry().Radius1)
	}
}

func TestResetWhileDragging(t *testing.T) {
	b := newTestBook(t, 6)
	if err := b.BeginDrag(EdgeRight, Vec2{400, -300}); err != nil {
		t.Fatal(err)
	}
	b.ResetToFirstPage()
	if b.Active() {
		t.Fatal("session survived reset")
	}
	if err := b.BeginDrag(EdgeRight, Vec2{400, -300}); err != nil {
		t.Fatalf("BeginDrag after reset: %v", err)
	}
}

func TestUpdateDragSmoothing(t *testing.T) {
	b := newTestBook(t, 4)
	if err := b.BeginDrag(EdgeRight, Vec2{400, -300}); err != nil {
		t.Fatal(err)
	}
	// Legacy: clamp(dt*10) = 0.5 of the way.
	b.UpdateDrag(Vec2{200, -300}, 0.05)
	assertVec(t, "follow", b.Follow(), Vec2{300, -300}, 1e-9)
	assertVec(t, "corner", b.Corner(), Vec2{300, -300}, 1e-9)

	b.SetSmoothing(SmoothingNone)
	b.UpdateDrag(Vec2{100, -250}, 0.01)
	assertVec(t, "follow (none)", b.Follow(), Vec2{100, -250}, 1e-9)

	// Ignored outside a drag.
	b.ReleaseDrag()
	b.UpdateDrag(Vec2{0, 0}, 1)
	if b.Follow() == (Vec2{0, 0}) {
		t.Error("UpdateDrag moved the follow point while tweening")
	}
}

func TestResizeDuringDrag(t *testing.T) {
	b := newTestBook(t, 4)
	if err := b.BeginDrag(EdgeRight, Vec2{400, -300}); err != nil {
		t.Fatal(err)
	}
	b.SetFollowPoint(Vec2{1000, 1000})
	before := b.Corner()
	if err := b.Resize(400, 300); err != nil {
		t.Fatal(err)
	}
	g := b.Geometry()
	if b.Corner() == before {
		t.Error("corner not recomputed after resize")
	}
	if d := b.Corner().Dist(g.SpineBottom); d > g.Radius1+1e-6 {
		t.Errorf("corner %v outside the resized radius1 (%v > %v)", b.Corner(), d, g.Radius1)
	}
}

func TestResizeDuringTweenRetargets(t *testing.T) {
	tests := []struct {
		name   string
		follow Vec2
		want   Decision
		page   int
	}{
		{"forward", Vec2{-300, -250}, TweenForward, 2},
		{"back", Vec2{300, -250}, TweenBack, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBook(t, 4)
			var landed []Vec2
			record := func(FlipEvent) { landed = append(landed, b.Corner()) }
			b.OnFlip(record)
			b.OnCancel(record)

			if err := b.BeginDrag(EdgeRight, Vec2{400, -300}); err != nil {
				t.Fatal(err)
			}
			b.SetFollowPoint(tt.follow)
			if d, _ := b.ReleaseDrag(); d != tt.want {
				t.Fatalf("decision = %s, want %s", d, tt.want)
			}
			b.Tick(DefaultTweenStep)
			if err := b.Resize(400, 300); err != nil {
				t.Fatal(err)
			}
			if b.Phase() != PhaseTweening {
				t.Fatalf("phase after resize = %s, want tweening", b.Phase())
			}
			b.Settle(0)

			g := b.Geometry()
			target := g.EdgeBottomLeft
			if tt.want == TweenBack {
				target = g.EdgeBottomRight
			}
			if len(landed) != 1 {
				t.Fatalf("got %d events, want 1", len(landed))
			}
			assertVec(t, "final corner", landed[0], target, 1e-6)
			if b.CurrentPage() != tt.page {
				t.Errorf("page = %d, want %d", b.CurrentPage(), tt.page)
			}
		})
	}
}

func TestSetTotalPages(t *testing.T) {
	b := newTestBook(t, 6)
	turn(t, b, EdgeRight, Vec2{-300, -250})
	turn(t, b, EdgeRight, Vec2{-300, -250})

	if err := b.SetTotalPages(3); err != nil {
		t.Fatal(err)
	}
	if b.CurrentPage() != 3 {
		t.Errorf("page = %d, want clamped to 3", b.CurrentPage())
	}

	if err := b.BeginDrag(EdgeLeft, Vec2{-400, -300}); err != nil {
		t.Fatal(err)
	}
	if err := b.SetTotalPages(10); !errors.Is(err, ErrBusy) {
		t.Errorf("SetTotalPages during drag: %v, want ErrBusy", err)
	}
}

func TestEndToEnd800x600(t *testing.T) {
	b := newTestBook(t, 10)
	var events []FlipEvent
	b.OnFlip(func(e FlipEvent) { events = append(events, e) })

	for i := 0; i < 5; i++ {
		if err := b.BeginDrag(EdgeRight, Vec2{390, -290}); err != nil {
			t.Fatalf("turn %d: %v", i, err)
		}
		// Drag across with 60 fps updates.
		for x := 390.0; x >= -390; x -= 20 {
			b.UpdateDrag(Vec2{x, -250}, 1.0/60)
		}
		for j := 0; j < 60; j++ {
			b.UpdateDrag(Vec2{-390, -250}, 1.0/60)
		}
		b.ReleaseDrag()
		b.Settle(1.0 / 60)
	}
	if b.CurrentPage() != 10 {
		t.Fatalf("page = %d, want 10", b.CurrentPage())
	}
	if len(events) != 5 {
		t.Fatalf("flip events = %d, want 5", len(events))
	}
	for i, e := range events {
		if e.PreviousPage != i*2 || e.Page != i*2+2 || e.Mode != RightToLeft || e.Auto {
			t.Errorf("event %d = %+v", i, e)
		}
	}
	if b.CanTurn(EdgeRight) {
		t.Error("book should be at its last page")
	}
}
