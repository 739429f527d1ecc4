package flipbook

// syntheticPointerEvent is a single injected pointer sample in screen
// coordinates.
type syntheticPointerEvent struct {
	screenX, screenY float64
	pressed          bool
}

// InjectedPointer is a PointerSource fed from a queue of synthetic events,
// one event per frame. When the queue is empty it reads Fallback (if set) or
// repeats the last event. It drives automated tests and the script runner.
type InjectedPointer struct {
	Fallback PointerSource

	queue []syntheticPointerEvent
	last  syntheticPointerEvent
}

// NewInjectedPointer creates an empty queue on top of fallback, which may be
// nil.
func NewInjectedPointer(fallback PointerSource) *InjectedPointer {
	return &InjectedPointer{Fallback: fallback}
}

// Pointer implements PointerSource.
func (p *InjectedPointer) Pointer() (x, y float64, pressed bool) {
	if len(p.queue) == 0 {
		if p.Fallback != nil {
			return p.Fallback.Pointer()
		}
		return p.last.screenX, p.last.screenY, p.last.pressed
	}
	evt := p.queue[0]
	copy(p.queue, p.queue[1:])
	p.queue = p.queue[:len(p.queue)-1]
	p.last = evt
	return evt.screenX, evt.screenY, evt.pressed
}

// Pending returns the number of queued events.
func (p *InjectedPointer) Pending() int { return len(p.queue) }

// Clear drops all queued events and releases the pointer.
func (p *InjectedPointer) Clear() {
	p.queue = p.queue[:0]
	p.last.pressed = false
}

// Press queues a pointer press at the given screen coordinates.
func (p *InjectedPointer) Press(x, y float64) {
	p.queue = append(p.queue, syntheticPointerEvent{screenX: x, screenY: y, pressed: true})
}

// Move queues a move with the pointer held down. Use it between Press and
// Release to simulate a drag.
func (p *InjectedPointer) Move(x, y float64) {
	p.queue = append(p.queue, syntheticPointerEvent{screenX: x, screenY: y, pressed: true})
}

// Release queues a pointer release at the given screen coordinates.
func (p *InjectedPointer) Release(x, y float64) {
	p.queue = append(p.queue, syntheticPointerEvent{screenX: x, screenY: y})
}

// Hold queues frames copies of the last queued (or consumed) event, keeping
// the pointer where it is.
func (p *InjectedPointer) Hold(frames int) {
	evt := p.last
	if n := len(p.queue); n > 0 {
		evt = p.queue[n-1]
	}
	for i := 0; i < frames; i++ {
		p.queue = append(p.queue, evt)
	}
}

// Click queues a press followed by a release at the same point. Consumes two
// frames.
func (p *InjectedPointer) Click(x, y float64) {
	p.Press(x, y)
	p.Release(x, y)
}

// Drag queues a full drag: press at (fromX, fromY), frames-2 linearly
// interpolated moves, and release at (toX, toY). The sequence consumes
// frames frames; the minimum is 2.
func (p *InjectedPointer) Drag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	p.Press(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		p.Move(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	p.Release(toX, toY)
}
