package camera

import "math"

// fakeView is an orthographic top-down View: one pixel covers 1/PixelsPerMeter metres
// and the viewport centre sits over the view position.
type fakeView struct {
	x, y  float64
	zoom  float64
	pitch float64
	roll  float64

	width, height float64
	ppmAtZoom0    float64

	mutations int
	renders   int
}

var _ View = &fakeView{}

func newFakeView() *fakeView {
	return &fakeView{width: 800, height: 600, zoom: 10, ppmAtZoom0: 1.0 / 1024}
}

func (v *fakeView) Zoom() float64  { return v.zoom }
func (v *fakeView) Pitch() float64 { return v.pitch }
func (v *fakeView) Width() float64 { return v.width }

func (v *fakeView) Height() float64 { return v.height }

func (v *fakeView) PixelsPerMeter() float64 {
	return v.ppmAtZoom0 * math.Exp2(v.zoom)
}

func (v *fakeView) Translate(dx, dy float64) {
	v.x += dx
	v.y += dy
	v.mutations++
}

func (v *fakeView) ZoomBy(dz float64) {
	v.zoom += dz
	v.mutations++
}

func (v *fakeView) PitchBy(dAngle float64) {
	v.pitch += dAngle
	v.mutations++
}

func (v *fakeView) RollBy(dAngle float64) {
	v.roll += dAngle
	v.mutations++
}

func (v *fakeView) ScreenToGroundPlane(x, y float64) (float64, float64) {
	ppm := v.PixelsPerMeter()
	return (x - v.width/2) / ppm, (v.height/2 - y) / ppm
}

// newTestController binds a controller to a fake view and counts render requests on it.
func newTestController(options ...CameraControllerOption) (*cameraControllerImpl, *fakeView) {
	v := newFakeView()
	options = append([]CameraControllerOption{WithRenderRequest(func() { v.renders++ })}, options...)
	return NewCameraController(v, options...).(*cameraControllerImpl), v
}
