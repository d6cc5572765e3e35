package sweep

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-gesture/engine/camera"
	"github.com/Carmen-Shannon/oxy-gesture/engine/config"
)

// Gesture names accepted in a Case.
const (
	GestureFling = "fling"
	GesturePinch = "pinch"
)

// Case is one simulated release: a gesture, the damping rate of the channel it drives and
// its release speed.
type Case struct {
	Gesture string  `yaml:"gesture"`
	Damping float64 `yaml:"damping"`
	// Pixels per second for a fling, scale per second for a pinch.
	Speed float64 `yaml:"speed"`
}

// Result is the outcome of simulating a Case until momentum settles.
type Result struct {
	Case `yaml:",inline"`

	Settled        bool    `yaml:"settled"`
	Frames         int     `yaml:"frames"`
	SettleSeconds  float64 `yaml:"settle_seconds"`
	DistanceMeters float64 `yaml:"distance_m"`
	DistancePixels float64 `yaml:"distance_px"`
	ZoomChange     float64 `yaml:"zoom_change"`
}

// Grid returns every combination of gestures, damping rates and speeds, in that nesting order.
//
// Parameters:
//   - gestures: gesture names
//   - dampings: damping rates
//   - speeds: release speeds
//
// Returns:
//   - []Case: the cartesian product
func Grid(gestures []string, dampings, speeds []float64) []Case {
	cases := make([]Case, 0, len(gestures)*len(dampings)*len(speeds))
	for _, g := range gestures {
		for _, d := range dampings {
			for _, s := range speeds {
				cases = append(cases, Case{Gesture: g, Damping: d, Speed: s})
			}
		}
	}
	return cases
}

// Simulate releases the gesture at the centre of a fresh camera built from cfg and steps the
// controller at a fixed dt until it stops flinging or maxFrames is reached.
//
// Parameters:
//   - cfg: camera and controller configuration
//   - c: the case to simulate
//   - dt: frame time in seconds
//   - maxFrames: frame budget
//
// Returns:
//   - Result: the measured outcome
//   - error: an error for an unknown gesture
func Simulate(cfg *config.Config, c Case, dt float64, maxFrames int) (Result, error) {
	view := camera.NewCamera(cfg.CameraOptions()...)
	options := cfg.ControllerOptions()

	cx, cy := view.Width()/2, view.Height()/2
	switch c.Gesture {
	case GestureFling:
		options = append(options, camera.WithDamping(c.Damping, cfg.Controller.DampingZoom))
	case GesturePinch:
		options = append(options, camera.WithDamping(cfg.Controller.DampingTranslate, c.Damping))
	default:
		return Result{}, fmt.Errorf("unknown gesture %q", c.Gesture)
	}
	cc := camera.NewCameraController(view, options...)

	startX, startY := view.Position()
	startZoom := view.Zoom()
	startPPM := view.PixelsPerMeter()

	if c.Gesture == GestureFling {
		cc.HandleFling(cx, cy, c.Speed, 0)
	} else {
		cc.HandlePinch(cx, cy, 1, c.Speed)
	}

	r := Result{Case: c}
	for r.Frames < maxFrames && (cc.Flinging() || cc.GestureOccurred()) {
		cc.Update(dt)
		r.Frames++
	}

	endX, endY := view.Position()
	r.Settled = !cc.Flinging()
	r.SettleSeconds = float64(r.Frames) * dt
	r.DistanceMeters = math.Hypot(endX-startX, endY-startY)
	r.DistancePixels = r.DistanceMeters * startPPM
	r.ZoomChange = view.Zoom() - startZoom
	return r, nil
}
