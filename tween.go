package flipbook

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Default page tween timing: 0.15 s sampled every 0.025 s, six steps.
const (
	DefaultTweenDuration = 0.15
	DefaultTweenStep     = 0.025
)

// stepEpsilon absorbs float error when comparing elapsed time to step marks.
const stepEpsilon = 1e-9

// FollowTween moves a point from one position to another in a fixed number
// of discrete steps. The caller advances it with Update(dt); there is no
// scheduler behind it. Step k is applied once (k-1)·step seconds have
// elapsed, so the first step lands on the first Update call. After the last
// step the finish callback runs exactly once, unless Cancel was called.
type FollowTween struct {
	x, y  *gween.Tween
	to    Vec2
	step  float64
	steps int
	taken int

	elapsed  float64
	apply    func(Vec2)
	onFinish func()

	Done     bool
	canceled bool
}

// NewFollowTween creates a tween from -> to over duration seconds, sampled
// every step seconds. apply receives each sampled point; onFinish runs after
// the final sample. fn defaults to ease.Linear.
func NewFollowTween(from, to Vec2, duration, step float64, fn ease.TweenFunc, apply func(Vec2), onFinish func()) *FollowTween {
	if fn == nil {
		fn = ease.Linear
	}
	if step <= 0 {
		step = DefaultTweenStep
	}
	if duration < step {
		duration = step
	}
	steps := int(duration/step + stepEpsilon)
	if steps < 1 {
		steps = 1
	}
	d := float32(float64(steps) * step)
	return &FollowTween{
		x:        gween.New(float32(from.X), float32(to.X), d, fn),
		y:        gween.New(float32(from.Y), float32(to.Y), d, fn),
		to:       to,
		step:     step,
		steps:    steps,
		apply:    apply,
		onFinish: onFinish,
	}
}

// Steps returns the total number of samples the tween produces.
func (t *FollowTween) Steps() int { return t.steps }

// Taken returns how many samples have been applied so far.
func (t *FollowTween) Taken() int { return t.taken }

// Canceled reports whether the tween was stopped by Cancel.
func (t *FollowTween) Canceled() bool { return t.canceled }

// Update advances the tween by dt seconds and applies every step whose time
// mark has been reached.
func (t *FollowTween) Update(dt float64) {
	if t.Done {
		return
	}
	t.elapsed += dt

	for !t.canceled && t.taken < t.steps && t.elapsed+stepEpsilon >= float64(t.taken)*t.step {
		t.taken++
		var p Vec2
		if t.taken == t.steps {
			p = t.to
		} else {
			at := float32(float64(t.taken) * t.step)
			x, _ := t.x.Set(at)
			y, _ := t.y.Set(at)
			p = Vec2{float64(x), float64(y)}
		}
		if t.apply != nil {
			t.apply(p)
		}
	}

	if !t.canceled && t.taken == t.steps {
		t.Done = true
		if t.onFinish != nil {
			t.onFinish()
		}
	}
}

// Cancel stops the tween immediately. No further samples are applied and the
// finish callback never runs.
func (t *FollowTween) Cancel() {
	if t.Done {
		return
	}
	t.Done = true
	t.canceled = true
}
