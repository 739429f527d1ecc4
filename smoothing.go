package flipbook

import (
	"fmt"
	"math"
)

// SmoothingMode selects how the follow point chases the raw input point.
type SmoothingMode uint8

const (
	// SmoothingLegacy lerps by clamp(dt*rate, 0, 1) each update. It is
	// frame-rate dependent.
	SmoothingLegacy SmoothingMode = iota
	// SmoothingExponential uses 1 - exp(-rate*dt), which converges at the
	// same speed regardless of frame rate.
	SmoothingExponential
	// SmoothingNone snaps the follow point to the input.
	SmoothingNone
)

func (m SmoothingMode) String() string {
	switch m {
	case SmoothingLegacy:
		return "legacy"
	case SmoothingExponential:
		return "exponential"
	case SmoothingNone:
		return "none"
	default:
		return "unknown"
	}
}

// ParseSmoothingMode parses the names printed by SmoothingMode.String.
func ParseSmoothingMode(s string) (SmoothingMode, error) {
	switch s {
	case "legacy", "":
		return SmoothingLegacy, nil
	case "exponential":
		return SmoothingExponential, nil
	case "none":
		return SmoothingNone, nil
	}
	return SmoothingLegacy, fmt.Errorf("flipbook: unknown smoothing mode %q", s)
}

// DefaultSmoothingRate is the follow rate in 1/s (time constant 0.1 s).
const DefaultSmoothingRate = 10.0

// Smoother blends a follow point toward a target.
type Smoother struct {
	Mode SmoothingMode
	Rate float64
}

// Factor returns the blend factor in [0, 1] for a frame of dt seconds.
func (s Smoother) Factor(dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	rate := s.Rate
	if rate <= 0 {
		rate = DefaultSmoothingRate
	}
	switch s.Mode {
	case SmoothingExponential:
		return 1 - math.Exp(-rate*dt)
	case SmoothingNone:
		return 1
	default:
		return clamp01(dt * rate)
	}
}

// Step moves current toward target for a frame of dt seconds.
func (s Smoother) Step(current, target Vec2, dt float64) Vec2 {
	return current.Lerp(target, s.Factor(dt))
}
