package flipbook

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// DrawStats holds per-frame draw metrics. Renderer fills it on every Draw.
type DrawStats struct {
	Regions   int
	Triangles int
	Vertices  int
	// DrawCalls is the number of DrawTriangles calls, one per region.
	DrawCalls int
	// Skipped counts regions with fewer than three vertices.
	Skipped int
}

// countFrame computes the stats a renderer would produce for f.
func countFrame(f Frame) DrawStats {
	var s DrawStats
	s.Regions = len(f.Regions)
	for _, r := range f.Regions {
		n := len(r.Polygon)
		if n < 3 {
			s.Skipped++
			continue
		}
		s.Vertices += n
		s.Triangles += n - 2
		s.DrawCalls++
	}
	return s
}

// debugCheckFrame warns when a frame references pages outside the book.
// Renderers only call it with Renderer.Debug set.
func debugCheckFrame(f Frame) {
	for _, r := range f.Regions {
		if r.Page != Background && (r.Page < 0 || r.Page >= f.TotalPages) {
			Logger().Warn("flipbook: region references missing page",
				slog.String("slot", r.Slot.String()), slog.Int("page", r.Page),
				slog.Int("total", f.TotalPages))
		}
	}
}

// DebugOverlay prints frame rate, book state and draw stats in the top-left
// corner. The text is refreshed every ~0.5 seconds into a cached image.
type DebugOverlay struct {
	// Extra is appended as a final line, e.g. a status message.
	Extra string

	img        *ebiten.Image
	lastUpdate float64
	text       string
}

// NewDebugOverlay creates an overlay that refreshes on its first Update.
func NewDebugOverlay() *DebugOverlay {
	return &DebugOverlay{lastUpdate: 0.5}
}

// Update advances the refresh timer and rebuilds the text when it is due.
func (o *DebugOverlay) Update(dt float64, b *Book, stats DrawStats) {
	o.lastUpdate += dt
	if o.lastUpdate < 0.5 {
		return
	}
	o.lastUpdate = 0
	o.text = fmt.Sprintf("FPS: %.1f TPS: %.1f\npage %d/%d %s smoothing %s\nregions %d tris %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		b.CurrentPage(), b.TotalPages(), b.Phase(), b.Smoothing(),
		stats.Regions, stats.Triangles)
	if o.Extra != "" {
		o.text += "\n" + o.Extra
	}
	if o.img == nil {
		o.img = ebiten.NewImage(320, 64)
	}
	o.img.Clear()
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, o.text)
}

// Text returns the last rendered overlay text.
func (o *DebugOverlay) Text() string { return o.text }

// Draw blits the overlay onto dst.
func (o *DebugOverlay) Draw(dst *ebiten.Image) {
	if o.img == nil {
		return
	}
	dst.DrawImage(o.img, nil)
}
