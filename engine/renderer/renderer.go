package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-gesture/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// Color is a linear RGB colour with channels in [0, 1].
type Color struct {
	R, G, B float64
}

// SurfaceSource is anything that can back a WebGPU surface. window.Window satisfies it.
type SurfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	clearColor Color

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
}

// Renderer presents frames to a window surface.
//
// The map view itself is drawn by the host; the Renderer owns the GPU device and swapchain,
// keeps the surface sized to the window, and clears and presents one frame per request.
// All methods are safe to call from the render goroutine while the window thread resizes.
type Renderer interface {
	// Resize reconfigures the surface after the window framebuffer changed size.
	// Zero sizes (minimised windows) are ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode changes the present mode. Takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the background colour used by the next frames.
	//
	// Parameters:
	//   - c: the clear colour
	SetClearColor(c Color)

	// ClearColor returns the current background colour.
	//
	// Returns:
	//   - Color: the clear colour
	ClearColor() Color

	// BeginFrame acquires the next surface texture and opens a render pass that clears it.
	// Must be followed by EndFrame and Present.
	//
	// Returns:
	//   - error: an error if the surface texture could not be acquired
	BeginFrame() error

	// EndFrame closes the render pass and submits the frame's command buffer.
	//
	// Returns:
	//   - error: an error if the command buffer could not be finished
	EndFrame() error

	// Present shows the submitted frame and releases the surface texture.
	Present()

	// DrawFrame runs BeginFrame, EndFrame and Present in order.
	//
	// Returns:
	//   - error: the first error encountered
	DrawFrame() error

	// Release frees every GPU object owned by the renderer.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer bound to the given surface source and configures the surface to
// its current size. Panics if no adapter or device is available, matching window creation.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - source: the window providing the surface descriptor and size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, source SurfaceSource, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		clearColor:  Color{R: 0.1, G: 0.1, B: 0.1},
		presentMode: PresentModeVSync,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		backend, err := newWGPURendererBackend(source.SurfaceDescriptor(), r.forceFallbackAdapter)
		if err != nil {
			panic(fmt.Sprintf("failed to create renderer backend: %v", err))
		}
		r.backend = backend
	}

	r.backend.SetPresentMode(r.presentMode)
	r.backend.ConfigureSurface(source.Width(), source.Height())
	common.Logger().Info("renderer created", "width", source.Width(), "height", source.Height())
	return r
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.backend.ConfigureSurface(width, height)
	common.Logger().Debug("surface resized", "width", width, "height", height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	r.presentMode = mode
	r.mu.Unlock()
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SetClearColor(c Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearColor = c
}

func (r *renderer) ClearColor() Color {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clearColor
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame(r.ClearColor())
}

func (r *renderer) EndFrame() error {
	return r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) DrawFrame() error {
	if err := r.BeginFrame(); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	if err := r.EndFrame(); err != nil {
		return fmt.Errorf("end frame: %w", err)
	}
	r.Present()
	return nil
}

func (r *renderer) Release() {
	r.backend.Release()
}
