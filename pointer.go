package flipbook

import "github.com/hajimehoshi/ebiten/v2"

// EbitenPointer reads the mouse, or the first active touch when there is
// one.
type EbitenPointer struct {
	touchIDs []ebiten.TouchID
}

// Pointer implements PointerSource.
func (p *EbitenPointer) Pointer() (x, y float64, pressed bool) {
	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])
	if len(p.touchIDs) > 0 {
		tx, ty := ebiten.TouchPosition(p.touchIDs[0])
		return float64(tx), float64(ty), true
	}
	mx, my := ebiten.CursorPosition()
	return float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}
