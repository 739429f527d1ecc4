package flipbook

import "slices"

// FlipEvent describes the end of a page-turn session.
type FlipEvent struct {
	Mode     FlipMode
	Decision Decision
	// Page is the current page index after the session ended.
	Page int
	// PreviousPage is the current page index when the session started.
	PreviousPage int
	// Auto is true when the session was started by AutoFlip.
	Auto bool
}

// Committed reports whether the event is a completed flip.
func (e FlipEvent) Committed() bool { return e.Decision == TweenForward }

// EventSink receives every session outcome. It is the bridge used by the ecs
// adapter; most callers register callbacks with OnFlip instead.
type EventSink interface {
	EmitFlip(event FlipEvent)
}

// EventType identifies a kind of book callback.
type EventType uint8

const (
	EventFlip   EventType = iota // fires once per committed flip
	EventCancel                  // fires when a turned page falls back
)

type flipHandler struct {
	id uint32
	fn func(FlipEvent)
}

type handlerRegistry struct {
	flip   []flipHandler
	cancel []flipHandler
	nextID uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventFlip:
		h.reg.flip = removeFlipHandler(h.reg.flip, h.id)
	case EventCancel:
		h.reg.cancel = removeFlipHandler(h.reg.cancel, h.id)
	}
}

func removeFlipHandler(s []flipHandler, id uint32) []flipHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = flipHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// OnFlip registers a callback fired once per committed flip, after the page
// index has been updated.
func (b *Book) OnFlip(fn func(FlipEvent)) CallbackHandle {
	b.handlers.nextID++
	id := b.handlers.nextID
	b.handlers.flip = append(b.handlers.flip, flipHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &b.handlers, event: EventFlip}
}

// OnCancel registers a callback fired when a released page tweens back.
func (b *Book) OnCancel(fn func(FlipEvent)) CallbackHandle {
	b.handlers.nextID++
	id := b.handlers.nextID
	b.handlers.cancel = append(b.handlers.cancel, flipHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &b.handlers, event: EventCancel}
}

// SetEventSink sets the optional event bridge. Pass nil to detach it.
func (b *Book) SetEventSink(sink EventSink) {
	b.sink = sink
}

func (b *Book) emit(ev FlipEvent) {
	handlers := b.handlers.cancel
	if ev.Committed() {
		handlers = b.handlers.flip
	}
	// Handlers may remove themselves (or others) while being called; Remove
	// compacts the registry in place.
	handlers = slices.Clone(handlers)
	for _, h := range handlers {
		h.fn(ev)
	}
	if b.sink != nil {
		b.sink.EmitFlip(ev)
	}
}
