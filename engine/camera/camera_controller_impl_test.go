package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const frame = 1.0 / 60

func TestUpdateDormant(t *testing.T) {
	for _, dt := range []float64{0, frame, 0.5, 10} {
		cc, v := newTestController()
		cc.Update(dt)
		if v.mutations != 0 {
			t.Errorf("dt=%v: expected no camera mutation, got %d", dt, v.mutations)
		}
		if v.renders != 0 {
			t.Errorf("dt=%v: expected no render request, got %d", dt, v.renders)
		}
	}
}

func TestDiscreteGestureCancelsMomentum(t *testing.T) {
	testCases := map[string]func(cc CameraController){
		"Tap":       func(cc CameraController) { cc.HandleTap(100, 120) },
		"DoubleTap": func(cc CameraController) { cc.HandleDoubleTap(100, 120) },
		"Pan":       func(cc CameraController) { cc.HandlePan(100, 120, 130, 150) },
		"Pinch":     func(cc CameraController) { cc.HandlePinch(100, 120, 1.5, 0) },
		"Rotate":    func(cc CameraController) { cc.HandleRotate(100, 120, 0.3) },
		"Shove":     func(cc CameraController) { cc.HandleShove(40) },
	}

	for name, gesture := range testCases {
		gesture := gesture
		t.Run(name, func(t *testing.T) {
			cc, v := newTestController()
			cc.HandleFling(400, 300, 900, -300)
			cc.Update(frame)
			if !cc.Flinging() {
				t.Fatal("fling should have started momentum")
			}

			rendersBefore := v.renders
			gesture(cc)

			vx, vy, vz := cc.Velocity()
			if vx != 0 || vy != 0 || vz != 0 {
				t.Errorf("expected zero velocity, got (%f, %f, %f)", vx, vy, vz)
			}
			if !cc.GestureOccurred() {
				t.Error("gesture flag should be set")
			}
			if v.renders <= rendersBefore {
				t.Error("gesture should request a render")
			}

			mutations := v.mutations
			cc.Update(frame)
			cc.Update(frame)
			if v.mutations != mutations {
				t.Errorf("expected no mutation after gesture, got %d", v.mutations-mutations)
			}
			if cc.GestureOccurred() {
				t.Error("gesture flag should be cleared by Update")
			}
		})
	}
}

func TestFlingBelowThreshold(t *testing.T) {
	testCases := map[string]struct {
		vx, vy float64
	}{
		"Zero":        {0, 0},
		"Slow":        {5, -5},
		"AtThreshold": {16, 0},
		"Diagonal":    {11, 11},
	}

	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			cc, v := newTestController()
			cc.HandleFling(400, 300, 0, 600)
			cc.Update(frame)
			vx0, vy0, vz0 := cc.Velocity()
			renders := v.renders
			mutations := v.mutations

			cc.HandleFling(200, 200, tt.vx, tt.vy)

			vx, vy, vz := cc.Velocity()
			if vx != vx0 || vy != vy0 || vz != vz0 {
				t.Errorf("velocity changed: (%f, %f, %f) -> (%f, %f, %f)", vx0, vy0, vz0, vx, vy, vz)
			}
			if cc.GestureOccurred() {
				t.Error("slow fling must not mark a gesture")
			}
			if v.renders != renders || v.mutations != mutations {
				t.Error("slow fling must not touch the view or request a render")
			}
		})
	}
}

func TestFlingGroundVelocity(t *testing.T) {
	cc, v := newTestController()
	cc.HandleFling(400, 300, 800, -200)

	// The fake view maps one pixel to one metre with screen y pointing down.
	vx, vy, vz := cc.Velocity()
	if !mgl64.FloatEqualThreshold(vx, -800, 1e-9) || !mgl64.FloatEqualThreshold(vy, -200, 1e-9) {
		t.Errorf("expected ground velocity (-800, -200), got (%f, %f)", vx, vy)
	}
	if vz != 0 {
		t.Errorf("expected zero zoom velocity, got %f", vz)
	}
	if v.renders != 0 {
		t.Error("fling should not request a render synchronously")
	}
	if cc.GestureOccurred() {
		t.Error("fling should not mark a gesture")
	}
}

func TestFlingDecaysToRest(t *testing.T) {
	testCases := map[string]struct {
		damping float64
		dt      float64
		vx, vy  float64
	}{
		"Default60Hz":  {4, frame, 1200, 0},
		"Diagonal30Hz": {4, 1.0 / 30, -700, 900},
		"StrongDamp":   {30, frame, 0, 3000},
		"LongFrame":    {4, 0.2, 500, 500},
	}

	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			cc, v := newTestController(WithDamping(tt.damping, 6))
			cc.HandleFling(400, 300, tt.vx, tt.vy)

			vx0, vy0, _ := cc.Velocity()
			dir := mgl64.Vec2{vx0, vy0}.Normalize()
			speed := math.Hypot(vx0, vy0)
			var travelled float64

			frames := 0
			for cc.Flinging() {
				frames++
				if frames > 10000 {
					t.Fatal("momentum never settled")
				}
				x0, y0 := v.x, v.y
				cc.Update(tt.dt)

				vx, vy, _ := cc.Velocity()
				next := math.Hypot(vx, vy)
				if next >= speed {
					t.Fatalf("frame %d: speed did not decay: %f -> %f", frames, speed, next)
				}
				speed = next

				step := mgl64.Vec2{v.x - x0, v.y - y0}.Dot(dir)
				if step <= 0 {
					t.Fatalf("frame %d: camera moved against the fling direction (%f)", frames, step)
				}
				travelled += step
			}

			if travelled <= 0 {
				t.Error("fling should move the camera")
			}
			mutations := v.mutations
			cc.Update(tt.dt)
			if v.mutations != mutations {
				t.Error("settled controller must not move the camera")
			}
		})
	}
}

func TestEulerStep(t *testing.T) {
	cc, v := newTestController()
	cc.HandleFling(400, 300, 600, 0)
	cc.Update(0.1)

	// v1 = v0 - dt*k*v0 with k = 4, then the camera moves by dt*v1
	want := -600 * (1 - 0.1*4)
	vx, _, _ := cc.Velocity()
	if !mgl64.FloatEqualThreshold(vx, want, 1e-9) {
		t.Errorf("expected velocity %f, got %f", want, vx)
	}
	if !mgl64.FloatEqualThreshold(v.x, 0.1*want, 1e-9) {
		t.Errorf("expected translation %f, got %f", 0.1*want, v.x)
	}
	if v.renders != 1 {
		t.Errorf("expected one render request, got %d", v.renders)
	}
}

func TestExactDecay(t *testing.T) {
	cc, _ := newTestController(WithExactDecay(true))
	cc.HandleFling(400, 300, 600, 0)
	cc.Update(0.5)

	want := -600 * math.Exp(-4*0.5)
	vx, _, _ := cc.Velocity()
	if !mgl64.FloatEqualThreshold(vx, want, 1e-9) {
		t.Errorf("expected velocity %f, got %f", want, vx)
	}
}

func TestGestureFrameSkipsIntegration(t *testing.T) {
	cc, v := newTestController()
	cc.HandlePan(400, 300, 380, 300)
	cc.HandleFling(380, 300, -1200, 0)

	vx0, _, _ := cc.Velocity()
	mutations := v.mutations
	cc.Update(frame)
	if v.mutations != mutations {
		t.Error("momentum must not integrate in the frame of a gesture")
	}
	vx, _, _ := cc.Velocity()
	if vx != vx0 {
		t.Errorf("velocity must be untouched in the frame of a gesture: %f -> %f", vx0, vx)
	}

	cc.Update(frame)
	if v.mutations == mutations {
		t.Error("momentum should resume on the next frame")
	}
}

func TestPinchIdentity(t *testing.T) {
	cc, v := newTestController()
	cc.HandlePinch(123, 456, 1, 0)

	if v.zoom != 10 {
		t.Errorf("zoom changed to %f", v.zoom)
	}
	if v.x != 0 || v.y != 0 {
		t.Errorf("position changed to (%f, %f)", v.x, v.y)
	}
}

func TestPinchKeepsFocalPoint(t *testing.T) {
	testCases := map[string]struct {
		x, y, scale float64
	}{
		"ZoomIn":   {600, 100, 2},
		"ZoomOut":  {50, 500, 0.5},
		"Centre":   {400, 300, 3},
		"Fraction": {700, 550, 1.1},
	}

	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			cc, v := newTestController()
			gx, gy := v.ScreenToGroundPlane(tt.x, tt.y)
			worldX, worldY := v.x+gx, v.y+gy

			cc.HandlePinch(tt.x, tt.y, tt.scale, 0)

			if !mgl64.FloatEqualThreshold(v.zoom, 10+math.Log2(tt.scale), 1e-9) {
				t.Errorf("expected zoom %f, got %f", 10+math.Log2(tt.scale), v.zoom)
			}
			gx, gy = v.ScreenToGroundPlane(tt.x, tt.y)
			if math.Abs(v.x+gx-worldX) > 1e-6 || math.Abs(v.y+gy-worldY) > 1e-6 {
				t.Errorf("focal point drifted: (%f, %f) -> (%f, %f)", worldX, worldY, v.x+gx, v.y+gy)
			}
		})
	}
}

func TestPinchZoomMomentum(t *testing.T) {
	testCases := map[string]struct {
		scale, velocity float64
		wantMomentum    bool
	}{
		"Fast":        {1, 2, true},
		"FastShrink":  {0.8, -1.5, true},
		"Slow":        {1, 0.5, false},
		"AtThreshold": {1, math.Ln2, true},
		"ScaledBelow": {4, 2, false},
		"NoVelocity":  {2, 0, false},
	}

	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			cc, _ := newTestController()
			cc.HandleFling(400, 300, 1000, 0)
			cc.Update(frame)

			cc.HandlePinch(400, 300, tt.scale, tt.velocity)

			vx, vy, vz := cc.Velocity()
			if vx != 0 || vy != 0 {
				t.Errorf("pinch must clear translation momentum, got (%f, %f)", vx, vy)
			}
			want := 0.0
			if tt.wantMomentum {
				want = tt.velocity / tt.scale / math.Ln2
			}
			if !mgl64.FloatEqualThreshold(vz, want, 1e-9) {
				t.Errorf("expected zoom velocity %f, got %f", want, vz)
			}
		})
	}
}

func TestZoomMomentumIntegrates(t *testing.T) {
	cc, v := newTestController()
	cc.HandlePinch(400, 300, 1, 3)
	cc.Update(frame)
	zoom := v.zoom

	cc.Update(frame)
	if v.zoom <= zoom {
		t.Errorf("zoom momentum should keep zooming in: %f -> %f", zoom, v.zoom)
	}

	cc.HandleFling(400, 300, 500, 0)
	_, _, vz := cc.Velocity()
	if vz != 0 {
		t.Errorf("fling must clear zoom momentum, got %f", vz)
	}
}

func TestDoubleTapMatchesPinch(t *testing.T) {
	points := [][2]float64{{400, 300}, {10, 20}, {790, 590}, {250, 480}}
	for _, p := range points {
		a, va := newTestController()
		b, vb := newTestController()

		a.HandleDoubleTap(p[0], p[1])
		b.HandlePinch(p[0], p[1], 2, 0)

		if va.zoom != vb.zoom || va.x != vb.x || va.y != vb.y {
			t.Errorf("point %v: double tap (%f, %f, z%f) != pinch (%f, %f, z%f)",
				p, va.x, va.y, va.zoom, vb.x, vb.y, vb.zoom)
		}
		if va.zoom != 11 {
			t.Errorf("double tap should zoom in one level, got %f", va.zoom)
		}
		_, _, vz := a.Velocity()
		if vz != 0 {
			t.Errorf("double tap must not start momentum, got %f", vz)
		}
	}
}

func TestPanSamePointIsNoop(t *testing.T) {
	cc, v := newTestController()
	cc.HandlePan(321, 123, 321, 123)
	if v.x != 0 || v.y != 0 {
		t.Errorf("expected no translation, got (%f, %f)", v.x, v.y)
	}
}

func TestPanFollowsPointer(t *testing.T) {
	cc, v := newTestController()
	cc.HandlePan(400, 300, 450, 280)

	// Dragging right and up moves the camera left and down.
	if !mgl64.FloatEqualThreshold(v.x, -50, 1e-9) || !mgl64.FloatEqualThreshold(v.y, -20, 1e-9) {
		t.Errorf("expected translation (-50, -20), got (%f, %f)", v.x, v.y)
	}
	vx, vy, vz := cc.Velocity()
	if vx != 0 || vy != 0 || vz != 0 {
		t.Error("pan must not produce momentum")
	}
}

func TestTapCentresPoint(t *testing.T) {
	cc, v := newTestController()
	cc.HandleTap(500, 250)
	if !mgl64.FloatEqualThreshold(v.x, 100, 1e-9) || !mgl64.FloatEqualThreshold(v.y, 50, 1e-9) {
		t.Errorf("expected translation (100, 50), got (%f, %f)", v.x, v.y)
	}
	if v.renders != 1 {
		t.Errorf("expected one render request, got %d", v.renders)
	}
}

func TestRotateAndShove(t *testing.T) {
	cc, v := newTestController()
	cc.HandleRotate(10, 10, 0.25)
	cc.HandleRotate(700, 500, -0.1)
	if !mgl64.FloatEqualThreshold(v.roll, 0.15, 1e-12) {
		t.Errorf("expected roll 0.15, got %f", v.roll)
	}

	cc.HandleShove(-150)
	if !mgl64.FloatEqualThreshold(v.pitch, math.Pi/4, 1e-12) {
		t.Errorf("expected pitch π/4, got %f", v.pitch)
	}
	if v.renders != 3 {
		t.Errorf("expected three render requests, got %d", v.renders)
	}
}

func TestCancel(t *testing.T) {
	cc, v := newTestController()
	cc.HandleFling(400, 300, 1000, 1000)
	mutations := v.mutations

	cc.Cancel()
	cc.Update(frame)

	vx, vy, vz := cc.Velocity()
	if vx != 0 || vy != 0 || vz != 0 {
		t.Error("cancel should zero momentum")
	}
	if v.mutations != mutations {
		t.Error("cancelled momentum must not move the camera")
	}
}

func TestDefaults(t *testing.T) {
	cc := NewCameraController(newFakeView())
	got := []float64{
		cc.DampingTranslate(), cc.DampingZoom(),
		cc.ThresholdStartTranslate(), cc.ThresholdStartZoom(),
		cc.ThresholdStopTranslate(), cc.ThresholdStopZoom(),
		cc.FlingSampleInterval(),
	}
	want := []float64{4, 6, 16, 1, 2, 0.3, 0.0167}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("default %d: expected %f, got %f", i, want[i], got[i])
		}
	}

	// A controller without a render callback must still run every gesture.
	cc.HandleTap(1, 1)
	cc.HandleFling(1, 1, 100, 100)
	cc.Update(frame)
}
