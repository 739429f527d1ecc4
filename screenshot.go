package flipbook

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshotter captures labeled frames to disk. Queue labels from Update
// (or from ScriptRunner.Captures) and call Flush at the end of Draw.
type Screenshotter struct {
	// Dir is the output directory (default "screenshots").
	Dir string
	// Format is "png" (default) or "webp".
	Format string

	queue []string
}

// Queue requests a capture of the next flushed frame.
func (s *Screenshotter) Queue(label string) {
	s.queue = append(s.queue, label)
}

// Pending returns the number of queued labels.
func (s *Screenshotter) Pending() int { return len(s.queue) }

// Flush writes screen once per queued label and clears the queue. It returns
// the paths written.
func (s *Screenshotter) Flush(screen *ebiten.Image) ([]string, error) {
	if len(s.queue) == 0 {
		return nil, nil
	}
	defer func() { s.queue = s.queue[:0] }()

	dir := s.Dir
	if dir == "" {
		dir = "screenshots"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("screenshot: mkdir %s: %w", dir, err)
	}
	ext := ".png"
	if strings.EqualFold(s.Format, "webp") {
		ext = ".webp"
	}

	img := CaptureScreen(screen)
	stamp := time.Now().Format("20060102_150405")
	var paths []string
	for _, label := range s.queue {
		path := filepath.Join(dir, stamp+"_"+sanitizeLabel(label)+ext)
		if err := SaveImage(path, img); err != nil {
			return paths, err
		}
		Logger().Info("flipbook: screenshot", slog.String("path", path))
		paths = append(paths, path)
	}
	return paths, nil
}

// CaptureScreen reads back an ebiten image as straight-alpha NRGBA.
func CaptureScreen(screen *ebiten.Image) *image.NRGBA {
	size := screen.Bounds().Size()
	buf := make([]byte, 4*size.X*size.Y)
	screen.ReadPixels(buf)
	return unpremultiply(buf, size.X, size.Y)
}

// unpremultiply converts premultiplied RGBA bytes to NRGBA.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	n := copy(img.Pix, pixels)
	for off := 0; off+4 <= n; off += 4 {
		px := img.Pix[off : off+4 : off+4]
		alpha := int(px[3])
		if alpha == 0 || alpha == 255 {
			continue
		}
		for c := range 3 {
			px[c] = uint8(min(int(px[c])*255/alpha, 255))
		}
	}
	return img
}

// SaveImage encodes img to path. The format follows the extension: ".webp"
// writes lossless WebP, anything else PNG.
func SaveImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".webp") {
		err = nativewebp.Encode(f, img, nil)
	} else {
		err = png.Encode(f, img)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps ASCII letters, digits, '-' and '.', maps every other
// rune to '_' and names blank labels "unlabeled".
func sanitizeLabel(label string) string {
	if label = strings.TrimSpace(label); label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '-', r == '.', '0' <= r && r <= '9',
			'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
			return r
		}
		return '_'
	}, label)
}
