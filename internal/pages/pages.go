// Package pages loads page images for a book from disk.
package pages

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ftrvxmtrx/tga"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

// decoders maps the page extensions LoadDir picks up to their decoder.
// Pages are never sniffed with image.Decode: tga registers itself with an
// empty magic string and would claim every file.
var decoders = map[string]func(io.Reader) (image.Image, error){
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".tga":  tga.Decode,
	".webp": webp.Decode,
}

// Load decodes one page image. The format follows the file extension.
func Load(path string) (*image.NRGBA, error) {
	decode, ok := decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("pages: %s: unsupported format", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pages: open %s: %w", path, err)
	}
	defer f.Close()

	img, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("pages: decode %s: %w", path, err)
	}
	return toNRGBA(img), nil
}

// List returns the page files in dir in reading order: names compared with
// digit runs treated as numbers, so page2 sorts before page10.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("pages: read dir %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || decoders[strings.ToLower(filepath.Ext(e.Name()))] == nil {
			continue
		}
		names = append(names, e.Name())
	}
	slices.SortFunc(names, naturalCompare)

	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(dir, n)
	}
	return paths, nil
}

// LoadDir loads every page in dir. When width and height are positive each
// page is scaled to that size.
func LoadDir(dir string, width, height int) ([]*image.NRGBA, error) {
	paths, err := List(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("pages: no page images in %s", dir)
	}
	out := make([]*image.NRGBA, 0, len(paths))
	for _, p := range paths {
		img, err := Load(p)
		if err != nil {
			return nil, err
		}
		if width > 0 && height > 0 {
			img = Fit(img, width, height)
		}
		out = append(out, img)
	}
	return out, nil
}

// Fit scales img to exactly w×h with Catmull-Rom resampling.
func Fit(img image.Image, w, h int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return toNRGBA(img)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// Placeholder draws a plain numbered-by-colour page for books without
// images: a tinted sheet with a darker border and a band whose height
// follows the page index.
func Placeholder(index, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	hue := float64(index%12) / 12
	paper := hsv(hue, 0.18, 0.97)
	ink := hsv(hue, 0.55, 0.70)
	draw.Draw(img, img.Bounds(), image.NewUniform(paper), image.Point{}, draw.Src)

	border := max(2, w/80)
	for _, r := range []image.Rectangle{
		image.Rect(0, 0, w, border),
		image.Rect(0, h-border, w, h),
		image.Rect(0, 0, border, h),
		image.Rect(w-border, 0, w, h),
	} {
		draw.Draw(img, r, image.NewUniform(ink), image.Point{}, draw.Src)
	}

	bandH := max(1, h/24)
	y := border*4 + (index%10)*bandH*2
	if y+bandH < h-border {
		draw.Draw(img, image.Rect(border*4, y, w-border*4, y+bandH), image.NewUniform(ink), image.Point{}, draw.Src)
	}
	return img
}

func hsv(h, s, v float64) color.NRGBA {
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)
	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return color.NRGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 255}
}

// toNRGBA converts any image to NRGBA with its origin at (0, 0).
func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// naturalCompare orders strings with embedded numbers numerically.
func naturalCompare(a, b string) int {
	for a != "" && b != "" {
		da, db := isDigit(a[0]), isDigit(b[0])
		switch {
		case da && db:
			na, ra := digitRun(a)
			nb, rb := digitRun(b)
			tna := strings.TrimLeft(na, "0")
			tnb := strings.TrimLeft(nb, "0")
			if len(tna) != len(tnb) {
				return len(tna) - len(tnb)
			}
			if c := strings.Compare(tna, tnb); c != 0 {
				return c
			}
			a, b = ra, rb
		case a[0] != b[0]:
			return int(a[0]) - int(b[0])
		default:
			a, b = a[1:], b[1:]
		}
	}
	return len(a) - len(b)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func digitRun(s string) (run, rest string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i], s[i:]
}
