package flipbook

import "math"

// SwipeConfig tunes a SwipeDetector. Zero values select the defaults.
type SwipeConfig struct {
	MinDistance float64 // travel needed to count as a swipe (default 50)
	MinTime     float64 // faster swipes are rejected (default 0.10 s)
	MaxTime     float64 // slower swipes are dropped (default 0.30 s)
	MinInterval float64 // samples closer than this are skipped (default 0.02 s)
}

func (c *SwipeConfig) resolve() {
	if c.MinDistance <= 0 {
		c.MinDistance = 50
	}
	if c.MinTime < 0 {
		c.MinTime = 0
	}
	if c.MinTime == 0 {
		c.MinTime = 0.10
	}
	if c.MaxTime <= 0 {
		c.MaxTime = 0.30
	}
	if c.MinInterval <= 0 {
		c.MinInterval = 0.02
	}
}

// SwipeEvent is reported when a track completes a swipe.
type SwipeEvent struct {
	Track     int
	Direction int // -1 when the value decreased, +1 when it increased
	Distance  float64
	Duration  float64
}

type swipeTrack struct {
	tracking   bool
	start      float64
	last       float64
	dir        int
	startTime  float64
	lastUpdate float64
}

// SwipeDetector recognizes quick one-directional strokes in a stream of
// scalar samples (a pointer X, a tracked wrist height). Each track is
// independent. A stroke counts when it travels MinDistance without
// reversing, taking between MinTime and MaxTime.
type SwipeDetector struct {
	cfg     SwipeConfig
	tracks  map[int]*swipeTrack
	enabled bool

	// OnSwipe is called for every detected swipe.
	OnSwipe func(SwipeEvent)
}

// NewSwipeDetector creates an enabled detector.
func NewSwipeDetector(cfg SwipeConfig) *SwipeDetector {
	cfg.resolve()
	return &SwipeDetector{cfg: cfg, tracks: make(map[int]*swipeTrack), enabled: true}
}

// SetEnabled turns detection on or off. Disabling clears all tracks.
func (d *SwipeDetector) SetEnabled(on bool) {
	d.enabled = on
	if !on {
		d.ResetAll()
	}
}

// Enabled reports whether the detector accepts samples.
func (d *SwipeDetector) Enabled() bool { return d.enabled }

// Sample feeds value for track at time now (seconds). It reports whether the
// sample completed a swipe.
func (d *SwipeDetector) Sample(track int, value, now float64) bool {
	if !d.enabled {
		return false
	}
	st, ok := d.tracks[track]
	if !ok {
		st = &swipeTrack{}
		d.tracks[track] = st
	}

	if st.tracking && now-st.lastUpdate < d.cfg.MinInterval {
		return false
	}
	st.lastUpdate = now

	if !st.tracking {
		st.tracking = true
		st.start = value
		st.last = value
		st.dir = 0
		st.startTime = now
		return false
	}

	elapsed := now - st.startTime
	if elapsed > d.cfg.MaxTime {
		st.tracking = false
		return false
	}

	step := value - st.last
	if step != 0 {
		dir := 1
		if step < 0 {
			dir = -1
		}
		if st.dir == 0 {
			st.dir = dir
		} else if dir != st.dir {
			st.tracking = false
			return false
		}
	}

	dist := math.Abs(value - st.start)
	if dist >= d.cfg.MinDistance {
		st.tracking = false
		if elapsed < d.cfg.MinTime {
			return false
		}
		if d.OnSwipe != nil {
			d.OnSwipe(SwipeEvent{Track: track, Direction: st.dir, Distance: dist, Duration: elapsed})
		}
		return true
	}

	st.last = value
	return false
}

// Reset stops tracking one track.
func (d *SwipeDetector) Reset(track int) {
	if st, ok := d.tracks[track]; ok {
		st.tracking = false
	}
}

// ResetAll stops tracking every track.
func (d *SwipeDetector) ResetAll() {
	for _, st := range d.tracks {
		st.tracking = false
	}
}
