package flipbook

import (
	"errors"
	"fmt"
)

// ErrInvalidState is matched (via errors.Is) by every rejected page-turn
// request. Callers that mirror the reference behaviour simply ignore it.
var ErrInvalidState = errors.New("flipbook: invalid state")

var (
	// ErrNoPage is returned when there is no page to turn at the requested edge.
	ErrNoPage = fmt.Errorf("%w: no page at edge", ErrInvalidState)
	// ErrBusy is returned when a drag, tween or auto-flip is already running.
	ErrBusy = fmt.Errorf("%w: page turn in progress", ErrInvalidState)
)

// ErrNotInitialized is the panic value used when the book is operated before
// its geometry exists.
var ErrNotInitialized = errors.New("flipbook: geometry not initialized")

// mustInit panics when the book has no valid geometry. Operating on an
// uninitialized book is a programming error, not a runtime condition.
func (b *Book) mustInit(op string) {
	if !b.geom.valid() {
		panic(fmt.Sprintf("%v: %s called before Initialize", ErrNotInitialized, op))
	}
}
