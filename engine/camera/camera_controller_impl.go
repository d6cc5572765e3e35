package camera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-gesture/common"
	"github.com/go-gl/mathgl/mgl64"
)

// cameraControllerImpl is the single implementation of CameraController.
// It holds a non-owning reference to its View and two momentum channels that are
// written exclusively through setMomentum.
type cameraControllerImpl struct {
	view View

	// Residual momentum
	translateVelocity mgl64.Vec2 // ground-plane metres per second
	zoomVelocity      float64    // zoom levels per second

	// Set by every discrete gesture, cleared at the end of every Update.
	gestureOccurred bool

	// Tracks whether a started momentum has been reported as settled.
	animating bool

	// Tuning
	dampingTranslate        float64
	dampingZoom             float64
	thresholdStartTranslate float64
	thresholdStartZoom      float64
	thresholdStopTranslate  float64
	thresholdStopZoom       float64
	flingSampleInterval     float64
	exactDecay              bool

	requestRender func()
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController binds a new controller to view. The view must outlive the controller.
//
// Defaults: translation damping 4/s, zoom damping 6/s, momentum starts above 16 px/s or
// 1 level/s, stops below 2 px/s or 0.3 level/s, flings are sampled over 0.0167 s.
//
// Parameters:
//   - view: the camera view to drive
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(view View, options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		view: view,

		dampingTranslate:        4.0,
		dampingZoom:             6.0,
		thresholdStartTranslate: 16.0,
		thresholdStartZoom:      1.0,
		thresholdStopTranslate:  2.0,
		thresholdStopZoom:       0.3,
		flingSampleInterval:     0.0167,
	}

	for _, option := range options {
		option(cc)
	}

	if cc.requestRender == nil {
		cc.requestRender = func() {}
	}
	return cc
}

// --- internal helpers ---

// setMomentum is the only writer of the momentum channels.
func (cc *cameraControllerImpl) setMomentum(m momentum) {
	switch m.kind {
	case momentumTranslate:
		cc.translateVelocity = m.translate
		cc.zoomVelocity = 0
	case momentumZoom:
		cc.translateVelocity = mgl64.Vec2{}
		cc.zoomVelocity = m.zoom
	default:
		cc.translateVelocity = mgl64.Vec2{}
		cc.zoomVelocity = 0
	}
	if m.kind != momentumNone {
		cc.animating = true
		common.Logger().Debug("momentum started",
			"translate_x", cc.translateVelocity.X(),
			"translate_y", cc.translateVelocity.Y(),
			"zoom", cc.zoomVelocity,
		)
	}
}

// onGesture runs at the start of every discrete gesture: it cancels in-flight momentum
// and blocks integration for the current frame.
func (cc *cameraControllerImpl) onGesture() {
	cc.gestureOccurred = true
	cc.setMomentum(noMomentum())
	cc.requestRender()
}

// decayFraction returns the share of a velocity removed by damping rate k over dt.
func (cc *cameraControllerImpl) decayFraction(k, dt float64) float64 {
	if cc.exactDecay {
		return 1 - math.Exp(-k*dt)
	}
	return dt * k
}

// --- CameraController ---

func (cc *cameraControllerImpl) Update(dt float64) {
	flinging := cc.Flinging()

	if !cc.gestureOccurred && flinging {
		cc.translateVelocity = cc.translateVelocity.Sub(cc.translateVelocity.Mul(cc.decayFraction(cc.dampingTranslate, dt)))
		cc.view.Translate(dt*cc.translateVelocity.X(), dt*cc.translateVelocity.Y())

		cc.zoomVelocity -= cc.decayFraction(cc.dampingZoom, dt) * cc.zoomVelocity
		cc.view.ZoomBy(dt * cc.zoomVelocity)

		cc.requestRender()
	}

	if !flinging && cc.animating {
		cc.animating = false
		common.Logger().Debug("momentum settled")
	}

	cc.gestureOccurred = false
}

func (cc *cameraControllerImpl) View() View {
	return cc.view
}

// --- gestureHandler ---

func (cc *cameraControllerImpl) HandleTap(x, y float64) {
	cc.onGesture()

	centerX, centerY := cc.view.ScreenToGroundPlane(0.5*cc.view.Width(), 0.5*cc.view.Height())
	tapX, tapY := cc.view.ScreenToGroundPlane(x, y)

	cc.view.Translate(tapX-centerX, tapY-centerY)
}

func (cc *cameraControllerImpl) HandleDoubleTap(x, y float64) {
	cc.HandlePinch(x, y, 2, 0)
}

func (cc *cameraControllerImpl) HandlePan(startX, startY, endX, endY float64) {
	cc.onGesture()

	sx, sy := cc.view.ScreenToGroundPlane(startX, startY)
	ex, ey := cc.view.ScreenToGroundPlane(endX, endY)

	cc.view.Translate(sx-ex, sy-ey)
}

func (cc *cameraControllerImpl) HandleFling(x, y, velocityX, velocityY float64) {
	if math.Hypot(velocityX, velocityY) <= cc.thresholdStartTranslate {
		return
	}

	eps := cc.flingSampleInterval
	sx, sy := cc.view.ScreenToGroundPlane(x, y)
	ex, ey := cc.view.ScreenToGroundPlane(x+eps*velocityX, y+eps*velocityY)

	cc.setMomentum(translateMomentum(mgl64.Vec2{(sx - ex) / eps, (sy - ey) / eps}))
}

func (cc *cameraControllerImpl) HandlePinch(x, y, scale, velocity float64) {
	cc.onGesture()

	z := cc.view.Zoom()
	cc.view.ZoomBy(math.Log2(scale))

	fx, fy := cc.view.ScreenToGroundPlane(x, y)
	s := math.Exp2(cc.view.Zoom()-z) - 1
	cc.view.Translate(s*fx, s*fy)

	// z(s) = log2(s) + C, so z'(s) = s' / s / ln(2)
	zoomVelocity := velocity / scale / math.Ln2
	if math.Abs(zoomVelocity) >= cc.thresholdStartZoom {
		cc.setMomentum(zoomMomentum(zoomVelocity))
	}
}

func (cc *cameraControllerImpl) HandleRotate(_, _, radians float64) {
	cc.onGesture()
	cc.view.RollBy(radians)
}

func (cc *cameraControllerImpl) HandleShove(distance float64) {
	cc.onGesture()

	angle := -math.Pi * distance / cc.view.Height()
	cc.view.PitchBy(angle)
}

func (cc *cameraControllerImpl) Cancel() {
	cc.setMomentum(noMomentum())
}

// --- momentumState ---

func (cc *cameraControllerImpl) Velocity() (vx, vy, vz float64) {
	return cc.translateVelocity.X(), cc.translateVelocity.Y(), cc.zoomVelocity
}

func (cc *cameraControllerImpl) Flinging() bool {
	screenVelocity := cc.translateVelocity.Mul(cc.view.PixelsPerMeter())
	return screenVelocity.Len() > cc.thresholdStopTranslate || math.Abs(cc.zoomVelocity) > cc.thresholdStopZoom
}

func (cc *cameraControllerImpl) GestureOccurred() bool {
	return cc.gestureOccurred
}

func (cc *cameraControllerImpl) DampingTranslate() float64 {
	return cc.dampingTranslate
}

func (cc *cameraControllerImpl) DampingZoom() float64 {
	return cc.dampingZoom
}

func (cc *cameraControllerImpl) ThresholdStartTranslate() float64 {
	return cc.thresholdStartTranslate
}

func (cc *cameraControllerImpl) ThresholdStartZoom() float64 {
	return cc.thresholdStartZoom
}

func (cc *cameraControllerImpl) ThresholdStopTranslate() float64 {
	return cc.thresholdStopTranslate
}

func (cc *cameraControllerImpl) ThresholdStopZoom() float64 {
	return cc.thresholdStopZoom
}

func (cc *cameraControllerImpl) FlingSampleInterval() float64 {
	return cc.flingSampleInterval
}
