// Package anim provides a small declarative tween for animated counters.
// Frames are stepped by the caller's timer ticks rather than a background
// goroutine, so the tween stays deterministic inside the TUI update loop.
package anim

import "time"

// Easing maps normalized progress in [0,1] to an eased value in [0,1].
type Easing func(t float64) float64

// QuartEaseOut is the curve used for dashboard counters.
func QuartEaseOut(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	inv := 1 - t
	return 1 - inv*inv*inv*inv
}

// Linear is available for callers that want no easing.
func Linear(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t
}

// Tween interpolates from one value to another over a fixed duration.
type Tween struct {
	from     float64
	to       float64
	duration time.Duration
	easing   Easing
	start    time.Time
	running  bool
}

// New creates a stopped tween. A nil easing defaults to QuartEaseOut and a
// non-positive duration snaps to the target immediately.
func New(from, to float64, duration time.Duration, easing Easing) *Tween {
	if easing == nil {
		easing = QuartEaseOut
	}
	return &Tween{from: from, to: to, duration: duration, easing: easing}
}

// Start begins the animation at the given instant.
func (tw *Tween) Start(now time.Time) {
	tw.start = now
	tw.running = true
}

// Cancel stops the animation; Value reports the target from then on.
func (tw *Tween) Cancel() {
	tw.running = false
}

// Running reports whether more frames are needed.
func (tw *Tween) Running() bool {
	return tw.running
}

// Value returns the interpolated value at the given instant and marks the
// tween finished once the duration has elapsed.
func (tw *Tween) Value(now time.Time) float64 {
	if !tw.running {
		return tw.to
	}
	if tw.duration <= 0 {
		tw.running = false
		return tw.to
	}
	progress := float64(now.Sub(tw.start)) / float64(tw.duration)
	if progress >= 1 {
		tw.running = false
		return tw.to
	}
	if progress < 0 {
		progress = 0
	}
	return tw.from + (tw.to-tw.from)*tw.easing(progress)
}

// Retarget points a possibly-running tween at a new destination, restarting
// from the current value so refreshed data animates from where the counter
// currently sits.
func (tw *Tween) Retarget(now time.Time, to float64) {
	tw.from = tw.Value(now)
	tw.to = to
	tw.Start(now)
}
