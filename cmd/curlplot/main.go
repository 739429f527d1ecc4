// Curlplot replays a page-turn script headlessly and plots frames as
// diagrams: every region filled with its slot colour, the reach circles,
// the fold line and the corner and follow markers.
//
// Usage:
//
//	curlplot [-script drag.json] [-out frames] [-format png|webp] [-every N] [-v]
//
// Without -script a built-in forward drag is replayed.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"

	"github.com/phanxgames/flipbook"
	"github.com/phanxgames/flipbook/internal/config"
)

// builtinScript drags the right corner across the spread, then turns the
// page back with a short drag from the left.
const builtinScript = `{"steps":[
	{"action":"capture","label":"idle"},
	{"action":"drag","fromX":890,"fromY":660,"toX":250,"toY":560,"frames":24},
	{"action":"wait","frames":10},
	{"action":"capture","label":"after-forward"},
	{"action":"drag","fromX":110,"fromY":660,"toX":300,"toY":600,"frames":12},
	{"action":"wait","frames":10},
	{"action":"capture","label":"after-back"}
]}`

const frameDT = 1.0 / 60

// slotColors is the fill per slot.
var slotColors = map[flipbook.Slot]gg.RGBA{
	flipbook.SlotLeftNext:  gg.RGB(0.80, 0.85, 0.95),
	flipbook.SlotRightNext: gg.RGB(0.80, 0.95, 0.85),
	flipbook.SlotLeft:      gg.RGB(0.95, 0.85, 0.70),
	flipbook.SlotRight:     gg.RGB(0.95, 0.75, 0.80),
}

func main() {
	var (
		configPath = flag.String("config", "", "JSON config file")
		scriptPath = flag.String("script", "", "JSON script to replay")
		outDir     = flag.String("out", "", "output directory")
		format     = flag.String("format", "", "png or webp")
		count      = flag.Int("n", 0, "page count")
		every      = flag.Int("every", 0, "also plot every Nth frame (0: captures only)")
		maxFrames  = flag.Int("max", 3600, "frame limit")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	flipbook.SetLogger(logger)
	gg.SetLogger(logger)

	var cfg config.Config
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fatal(err)
		}
	}
	if err := cfg.Resolve(config.Flags{Script: *scriptPath, OutputDir: *outDir, Format: *format, Pages: *count}); err != nil {
		fatal(err)
	}

	data := []byte(builtinScript)
	if cfg.Script != "" {
		var err error
		if data, err = os.ReadFile(cfg.Script); err != nil {
			fatal(fmt.Errorf("read script: %w", err))
		}
	}
	written, err := run(cfg, data, *every, *maxFrames)
	if err != nil {
		fatal(err)
	}
	logger.Info("curlplot: done", slog.Int("frames", written), slog.String("dir", cfg.OutputDir))
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "curlplot:", err)
	os.Exit(1)
}

// run replays script against a fresh book and writes the plotted frames. It
// returns the number of files written.
func run(cfg config.Config, script []byte, every, maxFrames int) (int, error) {
	mode, err := flipbook.ParseSmoothingMode(cfg.Smoothing)
	if err != nil {
		return 0, err
	}
	runner, err := flipbook.LoadScript(script)
	if err != nil {
		return 0, err
	}
	book := flipbook.New(flipbook.Config{
		PanelWidth:    cfg.PanelWidth,
		PanelHeight:   cfg.PanelHeight,
		TotalPages:    cfg.Pages,
		Smoothing:     mode,
		SmoothingRate: cfg.SmoothingRate,
		TweenDuration: cfg.TweenDuration,
		TweenStep:     cfg.TweenStep,
		AutoFlipTime:  cfg.AutoFlipTime,
		DisableShadow: cfg.DisableShadow,
	})

	w := int(math.Ceil(cfg.PanelWidth * 1.25))
	h := int(math.Ceil(cfg.PanelHeight * 1.25))
	placement := flipbook.Placement{X: float64(w) / 2, Y: float64(h) / 2, Scale: 1}
	ctl := flipbook.NewController(book, nil, placement)
	runner.Attach(ctl)

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return 0, fmt.Errorf("mkdir %s: %w", cfg.OutputDir, err)
	}
	ext := "." + cfg.Format

	written := 0
	for frame := 0; frame < maxFrames; frame++ {
		runner.Step(ctl)
		ctl.Update(frameDT)

		var names []string
		for _, label := range runner.Captures() {
			names = append(names, fmt.Sprintf("%04d_%s", frame, label))
		}
		if every > 0 && frame%every == 0 {
			names = append(names, fmt.Sprintf("frame_%04d", frame))
		}
		if len(names) > 0 {
			if err := plot(book, placement, w, h, cfg.OutputDir, names, ext); err != nil {
				return written, err
			}
			written += len(names)
		}

		if runner.Done() && !book.Active() {
			break
		}
	}
	return written, nil
}

func plot(book *flipbook.Book, pl flipbook.Placement, w, h int, dir string, names []string, ext string) error {
	dc := gg.NewContext(w, h)
	defer dc.Close()
	if err := draw(dc, book, pl); err != nil {
		return fmt.Errorf("plot %s: %w", names[0], err)
	}

	img := dc.Image()
	for _, name := range names {
		path := filepath.Join(dir, name+ext)
		if err := flipbook.SaveImage(path, img); err != nil {
			return err
		}
		flipbook.Logger().Debug("curlplot: wrote frame", slog.String("path", path))
	}
	return nil
}

// firstErr keeps the first non-nil error it is given.
type firstErr struct{ err error }

func (e *firstErr) keep(err error) {
	if e.err == nil {
		e.err = err
	}
}

// draw paints the book state and returns the first rasterizer error.
func draw(dc *gg.Context, book *flipbook.Book, pl flipbook.Placement) error {
	var fe firstErr
	f := book.Frame()
	g := book.Geometry()
	dc.ClearWithColor(gg.White)

	for _, r := range f.Regions {
		if len(r.Polygon) < 3 {
			continue
		}
		tracePolygon(dc, pl, r.Polygon)
		if r.Slot == flipbook.SlotShadow {
			peak := 0.0
			for _, v := range r.Polygon {
				peak = math.Max(peak, v.Shade)
			}
			dc.SetRGBA(0, 0, 0, 0.35*peak)
			fe.keep(dc.Fill())
			continue
		}
		c := slotColors[r.Slot]
		if r.Page == flipbook.Background {
			c = gg.RGB(0.55, 0.55, 0.58)
		}
		dc.SetColor(c.Color())
		fe.keep(dc.FillPreserve())
		dc.SetRGB(0.2, 0.2, 0.25)
		dc.SetLineWidth(1)
		fe.keep(dc.Stroke())
	}

	// Reach circles.
	dc.SetLineWidth(1)
	dc.SetRGBA(0.1, 0.4, 0.9, 0.6)
	sbx, sby := pl.ToScreen(g.SpineBottom)
	dc.DrawCircle(sbx, sby, g.Radius1*pl.Scale)
	fe.keep(dc.Stroke())
	dc.SetRGBA(0.9, 0.4, 0.1, 0.6)
	stx, sty := pl.ToScreen(g.SpineTop)
	dc.DrawCircle(stx, sty, g.Radius2*pl.Scale)
	fe.keep(dc.Stroke())

	if !book.Active() {
		return fe.err
	}

	// Fold line through t1 along the clip angle.
	sin, cos := math.Sincos(f.ClipAngle * math.Pi / 180)
	reach := g.Radius2 * 2
	a := f.T1.Add(flipbook.Vec2{X: cos * reach, Y: sin * reach})
	b := f.T1.Sub(flipbook.Vec2{X: cos * reach, Y: sin * reach})
	ax, ay := pl.ToScreen(a)
	bx, by := pl.ToScreen(b)
	dc.SetRGB(0.8, 0.1, 0.1)
	dc.SetLineWidth(1.5)
	dc.DrawLine(ax, ay, bx, by)
	fe.keep(dc.Stroke())

	// Clip plane outline.
	corners := pl.Corners(f.ClipPlane)
	dc.SetRGBA(0.5, 0.1, 0.6, 0.5)
	dc.SetLineWidth(1)
	dc.MoveTo(corners[0].X, corners[0].Y)
	for _, p := range corners[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.ClosePath()
	fe.keep(dc.Stroke())

	fe.keep(marker(dc, pl, f.Corner, gg.RGB(0.85, 0.1, 0.1)))
	fe.keep(marker(dc, pl, f.Follow, gg.RGB(0.1, 0.3, 0.85)))
	fe.keep(marker(dc, pl, f.T1, gg.RGB(0.1, 0.6, 0.2)))
	return fe.err
}

func tracePolygon(dc *gg.Context, pl flipbook.Placement, poly []flipbook.Vertex) {
	x, y := pl.ToScreen(poly[0].Pos)
	dc.MoveTo(x, y)
	for _, v := range poly[1:] {
		x, y = pl.ToScreen(v.Pos)
		dc.LineTo(x, y)
	}
	dc.ClosePath()
}

func marker(dc *gg.Context, pl flipbook.Placement, p flipbook.Vec2, c gg.RGBA) error {
	x, y := pl.ToScreen(p)
	dc.SetColor(c.Color())
	dc.DrawCircle(x, y, 4)
	return dc.Fill()
}
