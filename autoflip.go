package flipbook

import (
	"log/slog"
	"math"
)

// autoFlip walks the follow point along a parabola from one outer corner to
// the other, one sample per frame, and then releases the page.
type autoFlip struct {
	edge Edge

	x, dx  float64
	xc, xl float64
	h      float64

	frame     int
	frames    int
	frameTime float64
	elapsed   float64
}

func (a *autoFlip) point() Vec2 {
	d := a.x - a.xc
	return Vec2{a.x, (-a.h / (a.xl * a.xl)) * d * d}
}

// AutoFlip turns the page at edge without input. The page travels along an
// arc over Config.AutoFlipTime seconds (Config.AutoFlipFrames samples), then
// is released and tweens like a dragged page would. Advance it with Tick.
// Errors match those of BeginDrag.
func (b *Book) AutoFlip(edge Edge) error {
	b.mustInit("AutoFlip")
	g := b.geom

	frames := b.cfg.AutoFlipFrames
	a := &autoFlip{
		edge:      edge,
		xc:        (g.EdgeBottomRight.X + g.EdgeBottomLeft.X) / 2,
		xl:        (g.EdgeBottomRight.X - g.EdgeBottomLeft.X) / 2 * 0.9,
		h:         math.Abs(g.EdgeBottomRight.Y) * 0.9,
		frames:    frames,
		frameTime: b.cfg.AutoFlipTime / float64(frames),
	}
	a.dx = a.xl * 2 / float64(frames)
	if edge == EdgeRight {
		a.x = a.xc + a.xl
	} else {
		a.x = a.xc - a.xl
		a.dx = -a.dx
	}

	if err := b.begin(edge, a.point()); err != nil {
		Logger().Debug("flipbook: autoflip rejected", slog.String("edge", edge.String()), slog.Any("err", err))
		return err
	}
	b.phase = PhaseAutoFlip
	b.auto = a
	a.update(b, 0)
	return nil
}

func (a *autoFlip) update(b *Book, dt float64) {
	a.elapsed += dt
	for a.frame < a.frames && a.elapsed+stepEpsilon >= float64(a.frame)*a.frameTime {
		b.moveTo(a.point())
		a.x -= a.dx
		a.frame++
	}
	if a.frame == a.frames && a.elapsed+stepEpsilon >= float64(a.frames)*a.frameTime {
		b.phase = PhaseDragging
		b.ReleaseDrag()
	}
}
