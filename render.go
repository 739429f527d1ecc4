package flipbook

import (
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
)

// PageSource supplies page textures by index. Returning nil draws the
// background for that page.
type PageSource interface {
	Page(i int) *ebiten.Image
}

// PageImages is a PageSource backed by a slice.
type PageImages []*ebiten.Image

// Page implements PageSource.
func (p PageImages) Page(i int) *ebiten.Image {
	if i < 0 || i >= len(p) {
		return nil
	}
	return p[i]
}

// whitePixel is a 1x1 white image used for solid fills and the shadow.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}

// Renderer draws Frame snapshots with ebiten. Every region is a convex
// polygon drawn as a triangle fan, textured with its page.
type Renderer struct {
	Pages PageSource

	// Background textures the Background page index. When nil the region
	// is filled with BackgroundColor.
	Background      *ebiten.Image
	BackgroundColor color.RGBA

	// ShadowColor tints the fold shading; its alpha is the strength at the
	// fold line.
	ShadowColor color.RGBA

	Filter ebiten.Filter

	// Debug enables per-frame checks and a debug log line with the draw
	// stats.
	Debug bool

	stats DrawStats
	verts []ebiten.Vertex
	inds  []uint16
}

// NewRenderer creates a renderer for pages.
func NewRenderer(pages PageSource) *Renderer {
	return &Renderer{
		Pages:           pages,
		BackgroundColor: color.RGBA{0x2a, 0x2a, 0x2e, 0xff},
		ShadowColor:     color.RGBA{0, 0, 0, 0x73},
		Filter:          ebiten.FilterLinear,
	}
}

// Draw renders f onto dst at placement p. Regions are drawn in order, which
// is the back-to-front layer order.
func (r *Renderer) Draw(dst *ebiten.Image, f Frame, p Placement) {
	r.stats = countFrame(f)
	if r.Debug {
		debugCheckFrame(f)
		Logger().Debug("flipbook: draw", slog.Int("regions", r.stats.Regions),
			slog.Int("triangles", r.stats.Triangles), slog.Int("drawCalls", r.stats.DrawCalls))
	}
	m := p.matrix()
	for _, reg := range f.Regions {
		if reg.Slot == SlotShadow {
			r.drawShadow(dst, reg, m)
			continue
		}
		r.drawRegion(dst, reg, f.PageSize, m)
	}
}

// Stats returns the metrics of the last Draw.
func (r *Renderer) Stats() DrawStats { return r.stats }

func (r *Renderer) texture(page int) *ebiten.Image {
	if page != Background && r.Pages != nil {
		if img := r.Pages.Page(page); img != nil {
			return img
		}
	}
	return r.Background
}

func (r *Renderer) drawRegion(dst *ebiten.Image, reg Region, pageSize Vec2, m affine) {
	img := r.texture(reg.Page)
	if img == nil {
		c := r.BackgroundColor
		r.fillFan(dst, reg.Polygon, m, ensureWhitePixel(), func(v Vertex) (sx, sy float32, cr, cg, cb, ca float32) {
			return 0.5, 0.5, float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255
		})
		return
	}
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	pw, ph := pageSize.X, pageSize.Y
	if pw <= 0 || ph <= 0 {
		return
	}
	r.fillFan(dst, reg.Polygon, m, img, func(v Vertex) (sx, sy float32, cr, cg, cb, ca float32) {
		// Page UVs have Y up; image rows run down.
		sx = float32(float64(b.Min.X) + v.UV.X/pw*w)
		sy = float32(float64(b.Min.Y) + (1-v.UV.Y/ph)*h)
		return sx, sy, 1, 1, 1, 1
	})
}

func (r *Renderer) drawShadow(dst *ebiten.Image, reg Region, m affine) {
	c := r.ShadowColor
	strength := float32(c.A) / 255
	// Premultiplied: the color channels scale with alpha.
	cr, cg, cb := float32(c.R)/255, float32(c.G)/255, float32(c.B)/255
	r.fillFan(dst, reg.Polygon, m, ensureWhitePixel(), func(v Vertex) (float32, float32, float32, float32, float32, float32) {
		a := strength * float32(v.Shade)
		return 0.5, 0.5, cr * a, cg * a, cb * a, a
	})
}

// fillFan triangulates a convex polygon as a fan around its first vertex.
func (r *Renderer) fillFan(dst *ebiten.Image, poly []Vertex, m affine, img *ebiten.Image,
	attr func(Vertex) (sx, sy float32, cr, cg, cb, ca float32)) {
	n := len(poly)
	if n < 3 {
		return
	}
	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
	for _, v := range poly {
		p := m.apply(v.Pos)
		sx, sy, cr, cg, cb, ca := attr(v)
		r.verts = append(r.verts, ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			SrcX: sx, SrcY: sy,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		})
	}
	for i := 1; i < n-1; i++ {
		r.inds = append(r.inds, 0, uint16(i), uint16(i+1))
	}

	var op ebiten.DrawTrianglesOptions
	op.Filter = r.Filter
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	dst.DrawTriangles(r.verts, r.inds, img, &op)
}
