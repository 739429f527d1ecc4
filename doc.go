// Package flipbook is a page-curl engine for two-page book spreads, with an
// [Ebitengine] renderer.
//
// A [Book] owns the panel geometry and at most one page-turn session. While
// the reader drags a page corner the engine constrains the corner to the
// physically reachable area, derives the fold line and reports, per frame,
// which page goes where and through which clip region it is seen. On
// release the page tweens to the far side (committing the flip) or back.
//
// # Quick start
//
//	book := flipbook.New(flipbook.Config{
//		PanelWidth: 800, PanelHeight: 600, TotalPages: len(pages),
//	})
//	ctl := flipbook.NewController(book, &flipbook.EbitenPointer{}, flipbook.Placement{
//		X: 400, Y: 300, Scale: 1,
//	})
//	r := flipbook.NewRenderer(flipbook.PageImages(pages))
//
//	func (g *Game) Update() error {
//		g.ctl.Update(1.0 / 60)
//		return nil
//	}
//
//	func (g *Game) Draw(screen *ebiten.Image) {
//		g.r.Draw(screen, g.book.Frame(), g.ctl.Placement)
//	}
//
// # Coordinates
//
// Book-local space has its origin at the panel centre with Y up. The spine
// runs from (0, -h/2) to (0, h/2). [Placement] maps book space to the screen
// (Y down) and back.
//
// # Driving a book without input
//
// [Book.BeginDrag], [Book.UpdateDrag], [Book.ReleaseDrag] and [Book.Tick]
// can be called directly. [Book.AutoFlip] turns a page along an arc on its
// own. [InjectedPointer] and [ScriptRunner] replay synthetic pointer input
// for tests and demos.
//
// # Frames
//
// [Book.Frame] returns a [Frame]: slot assignments, element transforms, the
// back-to-front [Layer] list and the same layers resolved into convex
// [Region] polygons. Any renderer can consume it; [Renderer] is the ebiten
// one.
// [Renderer.Stats] reports per-frame draw counts and [DebugOverlay] prints
// them with the frame rate.
//
// # Events
//
// Register with [Book.OnFlip] and [Book.OnCancel], or attach an [EventSink]
// (see the ecs submodule for a donburi-backed sink).
//
// # Logging
//
// The package logs through [log/slog]. It is silent until [SetLogger] is
// called.
//
// [Ebitengine]: https://ebitengine.org
package flipbook
