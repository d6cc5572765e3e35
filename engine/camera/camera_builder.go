package camera

type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the initial ground-plane position.
//
// Parameters:
//   - x, y: position in Web Mercator metres
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(x, y float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position[0] = x
		c.position[1] = y
	}
}

// WithZoom sets the initial zoom level. The value is clamped to the zoom bounds once all
// options have been applied.
//
// Parameters:
//   - zoom: zoom level
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's zoom
func WithZoom(zoom float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.zoom = zoom
	}
}

// WithPitch sets the initial pitch in radians.
//
// Parameters:
//   - pitch: tilt away from straight down, in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's pitch
func WithPitch(pitch float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.pitch = pitch
	}
}

// WithRoll sets the initial roll in radians.
//
// Parameters:
//   - roll: rotation around the vertical axis, in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's roll
func WithRoll(roll float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.roll = roll
	}
}

// WithViewport sets the viewport size in pixels.
//
// Parameters:
//   - width, height: viewport size in pixels
//
// Returns:
//   - CameraBuilderOption: a function that sets the viewport
func WithViewport(width, height float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.width = width
		c.height = height
	}
}

// WithFov sets the vertical field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithPixelsPerTile sets the on-screen size of one map tile.
//
// Parameters:
//   - pixels: tile edge length in pixels (256 for standard raster tiles)
//
// Returns:
//   - CameraBuilderOption: a function that sets the tile size
func WithPixelsPerTile(pixels float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.pixelsPerTile = pixels
	}
}

// WithZoomBounds sets the minimum and maximum zoom levels.
//
// Parameters:
//   - min: minimum zoom level
//   - max: maximum zoom level
//
// Returns:
//   - CameraBuilderOption: functional option to set zoom bounds
func WithZoomBounds(min, max float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.minZoom = min
		c.maxZoom = max
	}
}

// WithMaxPitch sets the largest allowed pitch in radians.
//
// Parameters:
//   - maxPitch: maximum tilt in radians
//
// Returns:
//   - CameraBuilderOption: functional option to set the pitch bound
func WithMaxPitch(maxPitch float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.maxPitch = maxPitch
	}
}
