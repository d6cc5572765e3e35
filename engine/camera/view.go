package camera

// View is the camera contract consumed by the CameraController.
//
// Ground-plane coordinates are metres on the z = 0 plane, expressed relative to the
// view's current position. Screen coordinates are pixels with the origin at the
// top-left corner of the viewport and y pointing down.
//
// Implementations own all clamping of zoom, pitch and roll; the controller never
// validates the deltas it feeds in.
type View interface {
	// Zoom returns the current zoom level (log2 of the map scale).
	//
	// Returns:
	//   - float64: zoom level
	Zoom() float64

	// Pitch returns the current tilt away from straight down, in radians.
	//
	// Returns:
	//   - float64: pitch in radians
	Pitch() float64

	// Width returns the viewport width in pixels.
	//
	// Returns:
	//   - float64: width in pixels
	Width() float64

	// Height returns the viewport height in pixels.
	//
	// Returns:
	//   - float64: height in pixels
	Height() float64

	// PixelsPerMeter returns the screen scale at the current zoom.
	//
	// Returns:
	//   - float64: pixels per ground-plane metre
	PixelsPerMeter() float64

	// Translate moves the view position by a relative ground-plane offset.
	//
	// Parameters:
	//   - dx, dy: offset in metres
	Translate(dx, dy float64)

	// ZoomBy changes the zoom level by a relative amount.
	//
	// Parameters:
	//   - dz: zoom delta in levels
	ZoomBy(dz float64)

	// PitchBy changes the pitch by a relative angle.
	//
	// Parameters:
	//   - dAngle: pitch delta in radians
	PitchBy(dAngle float64)

	// RollBy changes the roll by a relative angle.
	//
	// Parameters:
	//   - dAngle: roll delta in radians
	RollBy(dAngle float64)

	// ScreenToGroundPlane maps a screen coordinate to the ground-plane point under it,
	// relative to the view position. For a fixed view state the mapping is deterministic
	// and injective below the horizon.
	//
	// Parameters:
	//   - x, y: screen coordinate in pixels
	//
	// Returns:
	//   - gx, gy: ground-plane coordinate in metres
	ScreenToGroundPlane(x, y float64) (gx, gy float64)
}
