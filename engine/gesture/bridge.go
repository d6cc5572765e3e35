package gesture

import (
	"math"
	"time"

	"github.com/Carmen-Shannon/oxy-gesture/common"
	"github.com/Carmen-Shannon/oxy-gesture/engine/camera"
	"github.com/go-gl/mathgl/mgl64"
)

// doubleTapSlop is the largest distance in pixels between the two clicks of a double tap.
const doubleTapSlop = 16.0

// InputSource delivers desktop pointer events. window.Window satisfies it.
type InputSource interface {
	SetMouseDownCallback(callback func(button common.MouseButton, x, y float64, mods common.Modifier))
	SetMouseUpCallback(callback func(button common.MouseButton, x, y float64, mods common.Modifier))
	SetMouseMoveCallback(callback func(x, y float64))
	SetScrollCallback(callback func(x, y, delta float64))
}

// Controller is the gesture surface of camera.CameraController used by the Bridge.
type Controller interface {
	HandleTap(x, y float64)
	HandleDoubleTap(x, y float64)
	HandlePan(startX, startY, endX, endY float64)
	HandleFling(x, y, velocityX, velocityY float64)
	HandlePinch(x, y, scale, velocity float64)
	HandleRotate(x, y, radians float64)
	HandleShove(distance float64)
	Cancel()
	View() camera.View
}

var _ Controller = camera.CameraController(nil)

// Bridge turns mouse input into controller gestures for hosts without a touch recognizer.
//
// Mapping:
//   - left press: stops momentum
//   - left drag: pan, release: fling with the pointer's recent velocity
//   - left click: tap, delivered once the double tap interval passes without a second click
//   - two left clicks within the interval: double tap
//   - scroll: pinch at the cursor
//   - right drag: rotate around the press point (horizontal movement)
//   - shift + right drag: shove (vertical movement)
//
// Event handlers may be called from the window thread; all gesture work, including Update,
// runs through the dispatcher on the goroutine that owns the controller.
type Bridge interface {
	// Attach registers the bridge's handlers as the pointer callbacks of src.
	//
	// Parameters:
	//   - src: the input source, usually a window.Window
	Attach(src InputSource)

	// MouseDown handles a button press.
	//
	// Parameters:
	//   - button: the pressed button
	//   - x, y: cursor position in pixels
	//   - mods: modifiers held during the press
	MouseDown(button common.MouseButton, x, y float64, mods common.Modifier)

	// MouseUp handles a button release.
	//
	// Parameters:
	//   - button: the released button
	//   - x, y: cursor position in pixels
	//   - mods: modifiers held during the release
	MouseUp(button common.MouseButton, x, y float64, mods common.Modifier)

	// MouseMove handles cursor movement.
	//
	// Parameters:
	//   - x, y: cursor position in pixels
	MouseMove(x, y float64)

	// Scroll handles a scroll wheel event.
	//
	// Parameters:
	//   - x, y: cursor position in pixels
	//   - delta: vertical scroll amount in notches, positive zooms in
	Scroll(x, y, delta float64)

	// Update delivers a pending single tap once the double tap interval has passed.
	// Must be called on the controller's goroutine, e.g. from the engine tick callback.
	Update()
}

type rightDragMode int

const (
	rightDragRotate rightDragMode = iota
	rightDragShove
)

type bridgeImpl struct {
	controller Controller
	dispatch   func(fn func())
	now        func() time.Time

	doubleTapInterval time.Duration
	tapSlop           float64
	scrollZoomStep    float64

	velocity *velocityTracker

	// Left button drag state
	leftDown bool
	dragging bool
	pressPos mgl64.Vec2
	lastPos  mgl64.Vec2

	// Right button drag state
	rightDown  bool
	rightMode  rightDragMode
	rightPress mgl64.Vec2
	rightLast  mgl64.Vec2

	// Single tap waiting for a possible second click
	pendingTap     bool
	pendingTapTime time.Time
	pendingTapPos  mgl64.Vec2
}

var _ Bridge = &bridgeImpl{}

// NewBridge creates a Bridge driving controller.
//
// Parameters:
//   - controller: the camera controller receiving gestures
//   - options: functional options to configure the bridge
//
// Returns:
//   - Bridge: the newly created bridge
func NewBridge(controller Controller, options ...BridgeBuilderOption) Bridge {
	b := &bridgeImpl{
		controller:        controller,
		dispatch:          func(fn func()) { fn() },
		now:               time.Now,
		doubleTapInterval: 300 * time.Millisecond,
		tapSlop:           4,
		scrollZoomStep:    0.25,
		velocity:          newVelocityTracker(100 * time.Millisecond),
	}
	for _, option := range options {
		option(b)
	}
	return b
}

func (b *bridgeImpl) Attach(src InputSource) {
	src.SetMouseDownCallback(b.MouseDown)
	src.SetMouseUpCallback(b.MouseUp)
	src.SetMouseMoveCallback(b.MouseMove)
	src.SetScrollCallback(b.Scroll)
}

// Handlers capture the timestamp on the calling thread so dispatch latency does not skew
// velocity or double tap timing.

func (b *bridgeImpl) MouseDown(button common.MouseButton, x, y float64, mods common.Modifier) {
	t := b.now()
	b.dispatch(func() { b.onMouseDown(t, button, x, y, mods) })
}

func (b *bridgeImpl) MouseUp(button common.MouseButton, x, y float64, _ common.Modifier) {
	t := b.now()
	b.dispatch(func() { b.onMouseUp(t, button, x, y) })
}

func (b *bridgeImpl) MouseMove(x, y float64) {
	t := b.now()
	b.dispatch(func() { b.onMouseMove(t, x, y) })
}

func (b *bridgeImpl) Scroll(x, y, delta float64) {
	b.dispatch(func() { b.onScroll(x, y, delta) })
}

func (b *bridgeImpl) Update() {
	if b.pendingTap && b.now().Sub(b.pendingTapTime) > b.doubleTapInterval {
		b.flushTap()
	}
}

func (b *bridgeImpl) onMouseDown(t time.Time, button common.MouseButton, x, y float64, mods common.Modifier) {
	pos := mgl64.Vec2{x, y}
	switch button {
	case common.MouseButtonLeft:
		b.controller.Cancel()
		b.leftDown = true
		b.dragging = false
		b.pressPos = pos
		b.lastPos = pos
		b.velocity.reset()
		b.velocity.add(t, x, y)
	case common.MouseButtonRight:
		b.rightDown = true
		b.rightMode = rightDragRotate
		if mods.Has(common.ModShift) {
			b.rightMode = rightDragShove
		}
		b.rightPress = pos
		b.rightLast = pos
	}
}

func (b *bridgeImpl) onMouseMove(t time.Time, x, y float64) {
	pos := mgl64.Vec2{x, y}

	if b.leftDown {
		b.velocity.add(t, x, y)
		if !b.dragging && pos.Sub(b.pressPos).Len() > b.tapSlop {
			b.dragging = true
		}
		if b.dragging && pos != b.lastPos {
			b.controller.HandlePan(b.lastPos.X(), b.lastPos.Y(), x, y)
			b.lastPos = pos
		}
	}

	if b.rightDown {
		delta := pos.Sub(b.rightLast)
		b.rightLast = pos
		switch b.rightMode {
		case rightDragRotate:
			if width := b.controller.View().Width(); delta.X() != 0 && width > 0 {
				b.controller.HandleRotate(b.rightPress.X(), b.rightPress.Y(), -math.Pi*delta.X()/width)
			}
		case rightDragShove:
			if delta.Y() != 0 {
				b.controller.HandleShove(delta.Y())
			}
		}
	}
}

func (b *bridgeImpl) onMouseUp(t time.Time, button common.MouseButton, x, y float64) {
	switch button {
	case common.MouseButtonLeft:
		if !b.leftDown {
			return
		}
		b.leftDown = false
		pos := mgl64.Vec2{x, y}

		if !b.dragging && pos.Sub(b.pressPos).Len() <= b.tapSlop {
			b.click(t, pos)
			return
		}

		if pos != b.lastPos {
			b.controller.HandlePan(b.lastPos.X(), b.lastPos.Y(), x, y)
			b.lastPos = pos
		}
		b.velocity.add(t, x, y)
		v := b.velocity.velocity(t)
		b.controller.HandleFling(x, y, v.X(), v.Y())
		b.dragging = false
	case common.MouseButtonRight:
		b.rightDown = false
	}
}

// click resolves a completed click into a double tap or a pending single tap.
func (b *bridgeImpl) click(t time.Time, pos mgl64.Vec2) {
	if b.pendingTap {
		if t.Sub(b.pendingTapTime) <= b.doubleTapInterval && pos.Sub(b.pendingTapPos).Len() <= doubleTapSlop {
			b.pendingTap = false
			b.controller.HandleDoubleTap(pos.X(), pos.Y())
			return
		}
		b.flushTap()
	}
	b.pendingTap = true
	b.pendingTapTime = t
	b.pendingTapPos = pos
}

func (b *bridgeImpl) flushTap() {
	b.pendingTap = false
	b.controller.HandleTap(b.pendingTapPos.X(), b.pendingTapPos.Y())
}

func (b *bridgeImpl) onScroll(x, y, delta float64) {
	if delta == 0 {
		return
	}
	b.controller.HandlePinch(x, y, math.Exp2(delta*b.scrollZoomStep), 0)
}
