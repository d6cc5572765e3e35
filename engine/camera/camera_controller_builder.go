package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithRenderRequest sets the callback invoked whenever the controller needs a new frame.
// The callback must only schedule a frame; it must not call back into the controller.
//
// Parameters:
//   - requestRender: fire-and-forget frame request (nil disables requests)
//
// Returns:
//   - CameraControllerOption: functional option to set the render request callback
func WithRenderRequest(requestRender func()) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.requestRender = requestRender
	}
}

// WithDamping sets the exponential damping rates for both momentum channels.
//
// Parameters:
//   - translate: translation damping, reciprocal decay period in seconds
//   - zoom: zoom damping, reciprocal decay period in seconds
//
// Returns:
//   - CameraControllerOption: functional option to set the damping rates
func WithDamping(translate, zoom float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.dampingTranslate = translate
		cc.dampingZoom = zoom
	}
}

// WithStartThresholds sets the minimum velocities that start momentum.
//
// Parameters:
//   - translate: minimum fling speed in pixels per second
//   - zoom: minimum zoom velocity in levels per second
//
// Returns:
//   - CameraControllerOption: functional option to set the start thresholds
func WithStartThresholds(translate, zoom float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.thresholdStartTranslate = translate
		cc.thresholdStartZoom = zoom
	}
}

// WithStopThresholds sets the velocities below which momentum stops.
//
// Parameters:
//   - translate: screen speed in pixels per second
//   - zoom: zoom velocity in levels per second
//
// Returns:
//   - CameraControllerOption: functional option to set the stop thresholds
func WithStopThresholds(translate, zoom float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.thresholdStopTranslate = translate
		cc.thresholdStopZoom = zoom
	}
}

// WithFlingSampleInterval sets the time step used to turn a screen fling velocity into a
// ground-plane velocity.
//
// Parameters:
//   - interval: sample interval in seconds (about one frame)
//
// Returns:
//   - CameraControllerOption: functional option to set the sample interval
func WithFlingSampleInterval(interval float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.flingSampleInterval = interval
	}
}

// WithExactDecay switches Update from the first-order step v -= dt*k*v to the exact
// exponential v *= exp(-k*dt). The exact form never overshoots for large dt*k.
//
// Parameters:
//   - exact: true to use exact exponential decay
//
// Returns:
//   - CameraControllerOption: functional option to select the decay integrator
func WithExactDecay(exact bool) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.exactDecay = exact
	}
}
