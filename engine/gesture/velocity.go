package gesture

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

const velocitySamples = 16

type pointerSample struct {
	t   time.Time
	pos mgl64.Vec2
}

// velocityTracker keeps the most recent pointer samples in a ring and estimates the release
// velocity from the ones inside a trailing time window.
type velocityTracker struct {
	samples [velocitySamples]pointerSample
	next    int
	count   int
	window  time.Duration
}

func newVelocityTracker(window time.Duration) *velocityTracker {
	return &velocityTracker{window: window}
}

func (v *velocityTracker) reset() {
	v.next = 0
	v.count = 0
}

func (v *velocityTracker) add(t time.Time, x, y float64) {
	v.samples[v.next] = pointerSample{t: t, pos: mgl64.Vec2{x, y}}
	v.next = (v.next + 1) % velocitySamples
	if v.count < velocitySamples {
		v.count++
	}
}

// velocity returns the average pointer velocity in pixels per second between the oldest sample
// inside the window and the newest sample. The window is measured back from now, so a pointer
// that stopped before release yields zero.
func (v *velocityTracker) velocity(now time.Time) mgl64.Vec2 {
	if v.count < 2 {
		return mgl64.Vec2{}
	}

	newest := v.samples[(v.next-1+velocitySamples)%velocitySamples]
	if now.Sub(newest.t) > v.window {
		return mgl64.Vec2{}
	}

	oldest := newest
	for i := 2; i <= v.count; i++ {
		s := v.samples[(v.next-i+velocitySamples)%velocitySamples]
		if now.Sub(s.t) > v.window {
			break
		}
		oldest = s
	}

	dt := newest.t.Sub(oldest.t).Seconds()
	if dt <= 0 {
		return mgl64.Vec2{}
	}
	return newest.pos.Sub(oldest.pos).Mul(1 / dt)
}
