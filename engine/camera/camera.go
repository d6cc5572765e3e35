package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-gesture/common"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// EarthCircumference is the length of the equator in Web Mercator metres.
	EarthCircumference = 40075016.68557849

	// horizonTiles bounds the ground distance of rays near or above the horizon,
	// measured in world tiles at the current zoom.
	horizonTiles = 64.0
)

type cameraImpl struct {
	mu *sync.Mutex

	position mgl64.Vec2
	zoom     float64
	pitch    float64
	roll     float64

	width  float64
	height float64

	fov           float64
	pixelsPerTile float64

	minZoom  float64
	maxZoom  float64
	maxPitch float64

	// Derived state, recomputed by updateMatrices when dirty.
	dirty                       bool
	eye                         mgl64.Vec3
	pixelsPerMeter              float64
	viewMatrix                  mgl64.Mat4
	projectionMatrix            mgl64.Mat4
	viewProjectionMatrix        mgl64.Mat4
	inverseViewProjectionMatrix mgl64.Mat4
}

// Camera is a perspective map camera looking down at the z = 0 ground plane.
// It implements View, so it can be driven directly by a CameraController, and adds
// absolute setters, forward projection and matrix access for hosts and renderers.
//
// All methods are safe for concurrent use.
type Camera interface {
	View

	// Position returns the ground-plane position the camera is centred on.
	//
	// Returns:
	//   - x, y: position in Web Mercator metres
	Position() (x, y float64)

	// SetPosition moves the camera to an absolute ground-plane position.
	//
	// Parameters:
	//   - x, y: position in Web Mercator metres
	SetPosition(x, y float64)

	// SetZoom sets the zoom level, clamped to the configured bounds.
	//
	// Parameters:
	//   - zoom: zoom level
	SetZoom(zoom float64)

	// SetPitch sets the pitch, clamped to [0, MaxPitch].
	//
	// Parameters:
	//   - pitch: pitch in radians
	SetPitch(pitch float64)

	// Roll returns the current roll around the vertical axis.
	//
	// Returns:
	//   - float64: roll in radians, within (-π, π]
	Roll() float64

	// SetRoll sets the roll, wrapped to (-π, π].
	//
	// Parameters:
	//   - roll: roll in radians
	SetRoll(roll float64)

	// SetViewport sets the viewport size in pixels.
	//
	// Parameters:
	//   - width, height: viewport size in pixels
	SetViewport(width, height float64)

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float64: field of view in radians
	Fov() float64

	// MinZoom returns the lowest allowed zoom level.
	//
	// Returns:
	//   - float64: minimum zoom
	MinZoom() float64

	// MaxZoom returns the highest allowed zoom level.
	//
	// Returns:
	//   - float64: maximum zoom
	MaxZoom() float64

	// MaxPitch returns the largest allowed pitch.
	//
	// Returns:
	//   - float64: maximum pitch in radians
	MaxPitch() float64

	// WorldToScreen projects a ground-plane point (relative to the camera position)
	// to screen coordinates. It is the inverse of ScreenToGroundPlane below the horizon.
	//
	// Parameters:
	//   - gx, gy: ground-plane coordinate in metres
	//
	// Returns:
	//   - x, y: screen coordinate in pixels
	WorldToScreen(gx, gy float64) (x, y float64)

	// ViewProjectionMatrix returns the combined view-projection matrix.
	//
	// Returns:
	//   - mgl64.Mat4: projection * view, column-major
	ViewProjectionMatrix() mgl64.Mat4

	// Update recomputes the matrices if any camera state changed since the last call.
	Update()
}

var _ Camera = &cameraImpl{}

// NewCamera creates a map camera with default settings: zoom 0, looking straight down,
// a 1280x720 viewport, 45° field of view and 256 px tiles.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:            &sync.Mutex{},
		width:         1280,
		height:        720,
		fov:           45.0 * (math.Pi / 180.0),
		pixelsPerTile: 256,
		minZoom:       0,
		maxZoom:       20.5,
		maxPitch:      1.0,
	}
	for _, option := range options {
		option(c)
	}
	c.zoom = common.Clamp(c.zoom, c.minZoom, c.maxZoom)
	c.pitch = common.Clamp(c.pitch, 0, c.maxPitch)
	c.roll = common.WrapAngle(c.roll)
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Zoom() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoom
}

func (c *cameraImpl) SetZoom(zoom float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoom = common.Clamp(zoom, c.minZoom, c.maxZoom)
	c.dirty = true
}

func (c *cameraImpl) ZoomBy(dz float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoom = common.Clamp(c.zoom+dz, c.minZoom, c.maxZoom)
	c.dirty = true
}

func (c *cameraImpl) Pitch() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pitch
}

func (c *cameraImpl) SetPitch(pitch float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pitch = common.Clamp(pitch, 0, c.maxPitch)
	c.dirty = true
}

func (c *cameraImpl) PitchBy(dAngle float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pitch = common.Clamp(c.pitch+dAngle, 0, c.maxPitch)
	c.dirty = true
}

func (c *cameraImpl) Roll() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roll
}

func (c *cameraImpl) SetRoll(roll float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roll = common.WrapAngle(roll)
	c.dirty = true
}

func (c *cameraImpl) RollBy(dAngle float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roll = common.WrapAngle(c.roll + dAngle)
	c.dirty = true
}

func (c *cameraImpl) Width() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width
}

func (c *cameraImpl) Height() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.height
}

func (c *cameraImpl) SetViewport(width, height float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width = width
	c.height = height
	c.dirty = true
}

func (c *cameraImpl) Fov() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) MinZoom() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.minZoom
}

func (c *cameraImpl) MaxZoom() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.maxZoom
}

func (c *cameraImpl) MaxPitch() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.maxPitch
}

func (c *cameraImpl) PixelsPerMeter() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureMatrices()
	return c.pixelsPerMeter
}

func (c *cameraImpl) Position() (x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position.X(), c.position.Y()
}

func (c *cameraImpl) SetPosition(x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = mgl64.Vec2{x, y}
}

func (c *cameraImpl) Translate(dx, dy float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = c.position.Add(mgl64.Vec2{dx, dy})
}

func (c *cameraImpl) ViewProjectionMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureMatrices()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureMatrices()
}

// ScreenToGroundPlane casts a ray from the eye through the screen point and intersects
// it with z = 0. Rays that miss the plane (at or above the horizon) or land farther
// than horizonTiles world tiles away are clamped to that distance.
func (c *cameraImpl) ScreenToGroundPlane(x, y float64) (gx, gy float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureMatrices()

	clip := mgl64.Vec4{2*x/c.width - 1, 1 - 2*y/c.height, -1, 1}
	target := c.inverseViewProjectionMatrix.Mul4x1(clip)
	target = target.Mul(1 / target.W())

	ray := target.Vec3().Sub(c.eye)
	t := 0.0
	if ray.Z() != 0 {
		t = -c.eye.Z() / ray.Z()
	}
	ray = ray.Mul(math.Abs(t))

	maxDistance := horizonTiles * c.worldTileSize()
	distance := math.Hypot(ray.X(), ray.Y())
	if (distance > maxDistance || t < 0) && distance > 0 {
		ray = ray.Mul(maxDistance / distance)
	}
	return ray.X() + c.eye.X(), ray.Y() + c.eye.Y()
}

func (c *cameraImpl) WorldToScreen(gx, gy float64) (x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureMatrices()

	clip := c.viewProjectionMatrix.Mul4x1(mgl64.Vec4{gx, gy, 0, 1})
	ndcX := clip.X() / clip.W()
	ndcY := clip.Y() / clip.W()
	return (ndcX + 1) * 0.5 * c.width, (1 - ndcY) * 0.5 * c.height
}

// worldTileSize returns the ground size of one tile at the current zoom.
// Caller must hold the mutex.
func (c *cameraImpl) worldTileSize() float64 {
	return EarthCircumference * math.Exp2(-c.zoom)
}

// ensureMatrices recomputes derived state if the camera is dirty.
// Caller must hold the mutex.
func (c *cameraImpl) ensureMatrices() {
	if c.dirty {
		c.updateMatrices()
	}
}

// updateMatrices recalculates the scale, eye, view, projection and inverse view-projection
// matrices. The eye sits above the origin at the height that makes one tile span
// pixelsPerTile pixels vertically, then is rotated by pitch about X and by roll about Z.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	tileSize := c.worldTileSize()
	c.pixelsPerMeter = c.pixelsPerTile / tileSize

	viewHeight := c.height / c.pixelsPerMeter
	eyeHeight := viewHeight * 0.5 / math.Tan(c.fov*0.5)

	orient := mgl64.Rotate3DZ(c.roll).Mul3(mgl64.Rotate3DX(c.pitch))
	c.eye = orient.Mul3x1(mgl64.Vec3{0, 0, eyeHeight})
	up := orient.Mul3x1(mgl64.Vec3{0, 1, 0})

	aspect := c.width / c.height
	near := eyeHeight / 50
	far := eyeHeight * 2 * horizonTiles

	c.viewMatrix = mgl64.LookAtV(c.eye, mgl64.Vec3{}, up)
	c.projectionMatrix = mgl64.Perspective(c.fov, aspect, near, far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
	c.inverseViewProjectionMatrix = c.viewProjectionMatrix.Inv()
	c.dirty = false
}
