package flipbook

import (
	"errors"
	"testing"
)

func TestAutoFlipForward(t *testing.T) {
	b := newTestBook(t, 6)
	var got []FlipEvent
	b.OnFlip(func(e FlipEvent) { got = append(got, e) })

	if err := b.AutoFlip(EdgeRight); err != nil {
		t.Fatalf("AutoFlip: %v", err)
	}
	if b.Phase() != PhaseAutoFlip || b.Mode() != RightToLeft {
		t.Fatalf("phase %s mode %s", b.Phase(), b.Mode())
	}
	// The path starts near the right corner and arcs up.
	if f := b.Follow(); f.X < 300 || f.Y < -300 {
		t.Errorf("first sample = %v", f)
	}

	frames := 0
	minY := 0.0
	for b.Phase() == PhaseAutoFlip && frames < 1000 {
		b.Tick(1.0 / 60)
		frames++
		if y := b.Follow().Y; b.Phase() == PhaseAutoFlip && y < minY {
			minY = y
		}
	}
	// 1 s of arc at 60 fps.
	if frames < 59 || frames > 62 {
		t.Errorf("arc took %d frames, want about 60", frames)
	}
	if b.Phase() != PhaseTweening {
		t.Fatalf("phase after arc = %s, want tweening", b.Phase())
	}
	b.Settle(0)

	if b.CurrentPage() != 2 {
		t.Errorf("page = %d, want 2", b.CurrentPage())
	}
	if len(got) != 1 || !got[0].Auto {
		t.Errorf("events = %+v, want one auto flip", got)
	}
	if minY < -270-1e-9 {
		t.Errorf("arc dipped to %v, below 0.9 of the half height", minY)
	}
}

func TestAutoFlipBackward(t *testing.T) {
	b := newTestBook(t, 6)
	turn(t, b, EdgeRight, Vec2{-300, -250})
	if err := b.AutoFlip(EdgeLeft); err != nil {
		t.Fatal(err)
	}
	if b.Mode() != LeftToRight {
		t.Fatalf("mode = %s", b.Mode())
	}
	b.Settle(1.0 / 60)
	if b.CurrentPage() != 0 {
		t.Errorf("page = %d, want 0", b.CurrentPage())
	}
}

func TestAutoFlipRejected(t *testing.T) {
	b := newTestBook(t, 6)
	if err := b.AutoFlip(EdgeLeft); !errors.Is(err, ErrNoPage) {
		t.Errorf("AutoFlip left at page 0: %v", err)
	}
	if err := b.AutoFlip(EdgeRight); err != nil {
		t.Fatal(err)
	}
	if err := b.AutoFlip(EdgeRight); !errors.Is(err, ErrBusy) {
		t.Errorf("second AutoFlip: %v", err)
	}
	if err := b.BeginDrag(EdgeRight, Vec2{400, -300}); !errors.Is(err, ErrBusy) {
		t.Errorf("BeginDrag during AutoFlip: %v", err)
	}
	// Input cannot steer an auto flip.
	before := b.Follow()
	b.UpdateDrag(Vec2{0, 0}, 1)
	if b.Follow() != before {
		t.Error("UpdateDrag moved an auto flip")
	}
}

func TestAutoFlipReset(t *testing.T) {
	b := newTestBook(t, 6)
	flips := 0
	b.OnFlip(func(FlipEvent) { flips++ })
	if err := b.AutoFlip(EdgeRight); err != nil {
		t.Fatal(err)
	}
	b.Tick(0.5)
	b.ResetToFirstPage()
	for i := 0; i < 200; i++ {
		b.Tick(1.0 / 60)
	}
	if flips != 0 || b.Active() {
		t.Errorf("flips %d active %v after reset", flips, b.Active())
	}
}
