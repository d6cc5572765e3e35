package gesture

import (
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-gesture/common"
	"github.com/Carmen-Shannon/oxy-gesture/engine/camera"
	"github.com/go-gl/mathgl/mgl64"
)

// recorder is a Controller that logs every call as a short string.
type recorder struct {
	calls []string
	view  camera.View
}

func (r *recorder) log(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) HandleTap(x, y float64)       { r.log("tap %.0f %.0f", x, y) }
func (r *recorder) HandleDoubleTap(x, y float64) { r.log("doubletap %.0f %.0f", x, y) }
func (r *recorder) HandlePan(sx, sy, ex, ey float64) {
	r.log("pan %.0f %.0f %.0f %.0f", sx, sy, ex, ey)
}
func (r *recorder) HandleFling(x, y, vx, vy float64) {
	r.log("fling %.0f %.0f %.0f %.0f", x, y, vx, vy)
}
func (r *recorder) HandlePinch(x, y, scale, velocity float64) {
	r.log("pinch %.0f %.0f %.4f %.0f", x, y, scale, velocity)
}
func (r *recorder) HandleRotate(x, y, radians float64) { r.log("rotate %.0f %.0f %.4f", x, y, radians) }
func (r *recorder) HandleShove(distance float64)       { r.log("shove %.0f", distance) }
func (r *recorder) Cancel()                            { r.log("cancel") }
func (r *recorder) View() camera.View                  { return r.view }

func (r *recorder) String() string {
	return strings.Join(r.calls, "; ")
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(ms int) {
	c.t = c.t.Add(time.Duration(ms) * time.Millisecond)
}

func newTestBridge(options ...BridgeBuilderOption) (Bridge, *recorder, *fakeClock) {
	rec := &recorder{view: camera.NewCamera(camera.WithViewport(1000, 800))}
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	options = append([]BridgeBuilderOption{WithClock(clock.now)}, options...)
	return NewBridge(rec, options...), rec, clock
}

func expectCalls(t *testing.T, rec *recorder, want ...string) {
	t.Helper()
	if got := rec.String(); got != strings.Join(want, "; ") {
		t.Errorf("expected calls\n  %s\ngot\n  %s", strings.Join(want, "; "), got)
	}
}

func TestClickIsDeferredTap(t *testing.T) {
	b, rec, clock := newTestBridge()

	b.MouseDown(common.MouseButtonLeft, 100, 200, 0)
	clock.advance(50)
	b.MouseUp(common.MouseButtonLeft, 101, 201, 0)

	b.Update()
	expectCalls(t, rec, "cancel")

	clock.advance(300)
	b.Update()
	expectCalls(t, rec, "cancel")

	clock.advance(1)
	b.Update()
	b.Update()
	expectCalls(t, rec, "cancel", "tap 101 201")
}

func TestDoubleClick(t *testing.T) {
	testCases := map[string]struct {
		gapMs   int
		secondX float64
		want    []string
		pending bool
	}{
		"Fast": {
			gapMs:   120,
			secondX: 105,
			want:    []string{"cancel", "cancel", "doubletap 105 200"},
		},
		"TooSlow": {
			gapMs:   400,
			secondX: 100,
			want:    []string{"cancel", "cancel", "tap 100 200"},
			pending: true,
		},
		"TooFar": {
			gapMs:   100,
			secondX: 160,
			want:    []string{"cancel", "cancel", "tap 100 200"},
			pending: true,
		},
	}

	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			b, rec, clock := newTestBridge()

			b.MouseDown(common.MouseButtonLeft, 100, 200, 0)
			b.MouseUp(common.MouseButtonLeft, 100, 200, 0)
			clock.advance(tt.gapMs)
			b.MouseDown(common.MouseButtonLeft, tt.secondX, 200, 0)
			b.MouseUp(common.MouseButtonLeft, tt.secondX, 200, 0)

			expectCalls(t, rec, tt.want...)

			clock.advance(1000)
			b.Update()
			want := tt.want
			if tt.pending {
				want = append(want, fmt.Sprintf("tap %.0f 200", tt.secondX))
			}
			expectCalls(t, rec, want...)
		})
	}
}

func TestDragPansAndFlings(t *testing.T) {
	b, rec, clock := newTestBridge()

	b.MouseDown(common.MouseButtonLeft, 100, 100, 0)
	clock.advance(10)
	b.MouseMove(102, 100) // inside the tap slop
	clock.advance(10)
	b.MouseMove(120, 110)
	clock.advance(10)
	b.MouseMove(140, 120)
	clock.advance(10)
	b.MouseUp(common.MouseButtonLeft, 160, 130, 0)

	// 60 px right and 30 px down over the 40 ms sample window
	expectCalls(t, rec,
		"cancel",
		"pan 100 100 120 110",
		"pan 120 110 140 120",
		"pan 140 120 160 130",
		"fling 160 130 1500 750",
	)

	clock.advance(1000)
	b.Update()
	if len(rec.calls) != 5 {
		t.Errorf("a drag must not leave a pending tap: %s", rec)
	}
}

func TestDragReleasedAfterPauseFlingsSlowly(t *testing.T) {
	b, rec, clock := newTestBridge()

	b.MouseDown(common.MouseButtonLeft, 0, 0, 0)
	clock.advance(10)
	b.MouseMove(50, 0)
	clock.advance(500)
	b.MouseUp(common.MouseButtonLeft, 50, 0, 0)

	expectCalls(t, rec, "cancel", "pan 0 0 50 0", "fling 50 0 0 0")
}

func TestScrollPinches(t *testing.T) {
	testCases := map[string]struct {
		delta float64
		want  string
	}{
		"In":       {1, "pinch 300 400 1.1892 0"},
		"Out":      {-2, "pinch 300 400 0.7071 0"},
		"FourUp":   {4, "pinch 300 400 2.0000 0"},
		"NoChange": {0, ""},
	}

	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			b, rec, _ := newTestBridge()
			b.Scroll(300, 400, tt.delta)
			if rec.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, rec.String())
			}
		})
	}
}

func TestRightDragRotates(t *testing.T) {
	b, rec, _ := newTestBridge()

	b.MouseDown(common.MouseButtonRight, 500, 400, 0)
	b.MouseMove(750, 420)
	b.MouseMove(750, 500)
	b.MouseUp(common.MouseButtonRight, 750, 500, 0)
	b.MouseMove(900, 500)

	// 250 px of a 1000 px wide view is a quarter turn of π
	expectCalls(t, rec, fmt.Sprintf("rotate 500 400 %.4f", -math.Pi/4))
}

func TestShiftRightDragShoves(t *testing.T) {
	b, rec, _ := newTestBridge()

	b.MouseDown(common.MouseButtonRight, 500, 400, common.ModShift|common.ModControl)
	b.MouseMove(600, 400)
	b.MouseMove(600, 360)
	b.MouseMove(600, 380)
	b.MouseUp(common.MouseButtonRight, 600, 380, 0)

	expectCalls(t, rec, "shove -40", "shove 20")
}

func TestDispatcherDefersWork(t *testing.T) {
	var queue []func()
	b, rec, clock := newTestBridge(WithDispatcher(func(fn func()) { queue = append(queue, fn) }))

	b.MouseDown(common.MouseButtonLeft, 0, 0, 0)
	clock.advance(20)
	b.MouseMove(100, 0)
	clock.advance(20)
	b.MouseUp(common.MouseButtonLeft, 100, 0, 0)

	if len(rec.calls) != 0 {
		t.Fatalf("work ran before the dispatcher drained: %s", rec)
	}

	// Events keep the time they were reported at, not the time they were handled.
	clock.advance(500)
	for _, fn := range queue {
		fn()
	}
	expectCalls(t, rec, "cancel", "pan 0 0 100 0", "fling 100 0 2500 0")
}

func TestBridgeDrivesRealController(t *testing.T) {
	c := camera.NewCamera(camera.WithZoom(14), camera.WithViewport(800, 600))
	cc := camera.NewCameraController(c)
	clock := &fakeClock{t: time.Unix(0, 0)}
	b := NewBridge(cc, WithClock(clock.now))

	b.MouseDown(common.MouseButtonLeft, 400, 300, 0)
	for i := 1; i <= 5; i++ {
		clock.advance(16)
		b.MouseMove(400+float64(i)*20, 300)
	}
	b.MouseUp(common.MouseButtonLeft, 500, 300, 0)

	x, _ := c.Position()
	if x >= 0 {
		t.Errorf("dragging right should move the camera west, got x=%f", x)
	}
	if !cc.Flinging() {
		t.Fatal("a fast release should start momentum")
	}
	vx, _, _ := cc.Velocity()
	if vx >= 0 {
		t.Errorf("momentum should continue westward, got %f", vx)
	}

	// The release frame still carries the pan, so momentum starts on the next one.
	cc.Update(1.0 / 60)
	cc.Update(1.0 / 60)
	moved, _ := c.Position()
	if !(moved < x) {
		t.Errorf("momentum did not move the camera: %f -> %f", x, moved)
	}

	b.MouseDown(common.MouseButtonLeft, 10, 10, 0)
	if cc.Flinging() {
		t.Error("pressing the map should stop momentum")
	}
	if !mgl64.FloatEqualThreshold(c.Zoom(), 14, 1e-12) {
		t.Errorf("zoom changed during a pan: %f", c.Zoom())
	}
}
