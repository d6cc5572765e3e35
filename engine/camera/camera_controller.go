package camera

// CameraController turns gesture events into camera motion and keeps the camera moving
// after a fling or pinch until the residual velocity decays away.
//
// Gesture handlers apply an instantaneous change to the bound View. Fling and pinch also
// record a velocity that Update damps and integrates once per frame. A CameraController is
// not safe for concurrent use: every method must be called from the same goroutine, and
// the render-request callback must not call back into the controller.
type CameraController interface {
	gestureHandler
	momentumState

	// Update advances the momentum simulation by dt seconds. When a discrete gesture ran
	// since the previous Update the step is skipped for this frame. Otherwise, while the
	// residual velocity is above the stop thresholds, the velocity is damped, applied to the
	// view and a render is requested.
	//
	// Parameters:
	//   - dt: elapsed seconds since the previous call (0 is a legal no-op)
	Update(dt float64)

	// View returns the view this controller is bound to.
	//
	// Returns:
	//   - View: the controlled view
	View() View
}

// gestureHandler defines one entry point per gesture kind. Coordinates are screen pixels.
type gestureHandler interface {
	// HandleTap pans the view so the tapped point moves to the viewport centre.
	//
	// Parameters:
	//   - x, y: tap position in pixels
	HandleTap(x, y float64)

	// HandleDoubleTap zooms in one level around the tapped point, without momentum.
	//
	// Parameters:
	//   - x, y: tap position in pixels
	HandleDoubleTap(x, y float64)

	// HandlePan drags the ground point under start so it ends up under end.
	// Panning never produces momentum.
	//
	// Parameters:
	//   - startX, startY: previous pointer position in pixels
	//   - endX, endY: current pointer position in pixels
	HandlePan(startX, startY, endX, endY float64)

	// HandleFling starts translation momentum from a pointer release velocity.
	// Speeds at or below ThresholdStartTranslate are ignored entirely.
	//
	// Parameters:
	//   - x, y: release position in pixels
	//   - velocityX, velocityY: release velocity in pixels per second
	HandleFling(x, y, velocityX, velocityY float64)

	// HandlePinch zooms by a linear scale factor around a focal point and may start zoom
	// momentum from the scale velocity.
	//
	// Parameters:
	//   - x, y: focal point in pixels
	//   - scale: scale factor of this pinch step (2 zooms in one level)
	//   - velocity: scale change per second
	HandlePinch(x, y, scale, velocity float64)

	// HandleRotate rolls the view.
	//
	// Parameters:
	//   - x, y: rotation centre in pixels (currently unused)
	//   - radians: roll delta
	HandleRotate(x, y, radians float64)

	// HandleShove tilts the view from a vertical drag. Dragging the full viewport height
	// changes the pitch by π.
	//
	// Parameters:
	//   - distance: vertical drag distance in pixels
	HandleShove(distance float64)

	// Cancel drops any residual momentum without moving the view.
	Cancel()
}

// momentumState exposes the controller's transient state and tuning.
type momentumState interface {
	// Velocity returns the residual momentum.
	//
	// Returns:
	//   - vx, vy: translation velocity in ground-plane metres per second
	//   - vz: zoom velocity in levels per second
	Velocity() (vx, vy, vz float64)

	// Flinging reports whether the residual momentum is above the stop thresholds.
	//
	// Returns:
	//   - bool: true while Update would still move the view
	Flinging() bool

	// GestureOccurred reports whether a discrete gesture ran since the last Update.
	//
	// Returns:
	//   - bool: true if the next Update will skip momentum integration
	GestureOccurred() bool

	// DampingTranslate returns the translation damping rate.
	//
	// Returns:
	//   - float64: reciprocal decay period in seconds
	DampingTranslate() float64

	// DampingZoom returns the zoom damping rate.
	//
	// Returns:
	//   - float64: reciprocal decay period in seconds
	DampingZoom() float64

	// ThresholdStartTranslate returns the minimum fling speed that starts momentum.
	//
	// Returns:
	//   - float64: speed in pixels per second
	ThresholdStartTranslate() float64

	// ThresholdStartZoom returns the minimum zoom velocity that starts momentum.
	//
	// Returns:
	//   - float64: zoom levels per second
	ThresholdStartZoom() float64

	// ThresholdStopTranslate returns the screen speed below which translation stops.
	//
	// Returns:
	//   - float64: speed in pixels per second
	ThresholdStopTranslate() float64

	// ThresholdStopZoom returns the zoom velocity below which zoom momentum stops.
	//
	// Returns:
	//   - float64: zoom levels per second
	ThresholdStopZoom() float64

	// FlingSampleInterval returns the time step used to project fling velocities onto
	// the ground plane.
	//
	// Returns:
	//   - float64: interval in seconds
	FlingSampleInterval() float64
}
