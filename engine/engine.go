package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-gesture/common"
	"github.com/Carmen-Shannon/oxy-gesture/engine/profiler"
)

// Window is the part of window.Window the engine drives.
type Window interface {
	SetResizeCallback(callback func(width, height int))
	ProcessMessages()
	IsRunning() bool
	Width() int
	Height() int
}

// Renderer is the part of renderer.Renderer the engine drives.
type Renderer interface {
	Resize(width, height int)
	DrawFrame() error
}

// engine implements the Engine interface.
// Coordinates the tick, render and window threads.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window   Window
	renderer Renderer

	tickProfiler     *profiler.Profiler
	renderProfiler   *profiler.Profiler
	profilingEnabled atomic.Bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float64)
	renderCallback func(deltaTime float64)
	resizeCallback func(width, height int)

	// Work posted by Dispatch, run on the tick goroutine.
	queueMu sync.Mutex
	queue   []func()

	// Render scheduling
	renderRequested atomic.Bool
	renderSignal    chan struct{}

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the engine.
// It orchestrates the tick loop, the on-demand render loop and window management.
//
// The tick goroutine is the only goroutine that runs tick callbacks and dispatched work, so state
// touched from both (a camera controller, typically) needs no locking when input handlers go
// through Dispatch.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - Window: the window instance, or nil for a headless engine
	Window() Window

	// EnableProfiler enables tick and render rate output to the log.
	EnableProfiler()

	// DisableProfiler disables tick and render rate output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick, after dispatched work.
	// Use this to advance momentum and other animations.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float64))

	// SetRenderCallback registers the function called before each rendered frame.
	// Frames are only rendered after RequestRender.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the time since the previous frame in seconds
	SetRenderCallback(callback func(deltaTime float64))

	// SetResizeCallback registers the function called after the window and renderer were resized.
	// Runs on the window thread.
	//
	// Parameters:
	//   - callback: function receiving the new framebuffer size in pixels
	SetResizeCallback(callback func(width, height int))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Dispatch queues fn to run on the tick goroutine before the next tick callback.
	// Safe to call from any goroutine; never blocks.
	//
	// Parameters:
	//   - fn: the work to run
	Dispatch(fn func())

	// RequestRender schedules one frame. Multiple requests before the frame is drawn collapse
	// into one. Safe to call from any goroutine; never blocks.
	RequestRender()

	// Run starts the tick and render loops and processes window messages.
	// Blocks until the window closes or Quit is called.
	Run()

	// Quit signals all engine goroutines to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (window, renderer, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		renderSignal:    make(chan struct{}, 1),
		tickProfiler:    profiler.NewProfiler("tick"),
		renderProfiler:  profiler.NewProfiler("render"),
		engineTickRate:  time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		e.window.SetResizeCallback(e.handleResize)
	}

	return e
}

func (e *engine) Window() Window {
	return e.window
}

func (e *engine) Run() {
	e.running.Store(true)
	common.Logger().Info("engine started", "tick_rate", e.engineTickRate.String())

	e.handle()
	e.RequestRender()

	if e.window != nil {
		e.window.ProcessMessages()
		e.signalQuit()
	} else {
		<-e.quitChannel
	}

	e.wg.Wait()
	e.running.Store(false)
	common.Logger().Info("engine stopped")
}

func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// handle launches the tick and render goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(2)
	go e.handleEngine()
	go e.handleRender()
}

// handleEngine runs the fixed-rate engine tick loop in its own goroutine.
// Listens for dynamic rate changes via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := now.Sub(lastTick).Seconds()
			lastTick = now
			e.tick(dt)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// tick drains dispatched work, then runs the tick callback.
func (e *engine) tick(dt float64) {
	e.queueMu.Lock()
	pending := e.queue
	e.queue = nil
	e.queueMu.Unlock()

	for _, fn := range pending {
		fn()
	}

	if e.tickCallback != nil {
		e.tickCallback(dt)
	}

	if e.profilingEnabled.Load() {
		e.tickProfiler.Tick()
	}
}

// handleRender waits for render requests and draws one frame per wake-up.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			common.Logger().Warn("render goroutine recovered from panic", "panic", r)
			e.signalQuit()
		}
	}()

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-e.renderSignal:
			start := time.Now()
			if !e.renderFrame(start.Sub(lastRender).Seconds()) {
				continue
			}
			lastRender = start

			if e.renderFrameLimit > 0 {
				if remaining := e.renderFrameLimit - time.Since(start); remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

// renderFrame draws a frame if one was requested since the last frame.
//
// Returns:
//   - bool: true if a frame was drawn
func (e *engine) renderFrame(dt float64) bool {
	if !e.renderRequested.Swap(false) {
		return false
	}

	if e.renderCallback != nil {
		e.renderCallback(dt)
	}

	if e.renderer != nil {
		if err := e.renderer.DrawFrame(); err != nil {
			common.Logger().Warn("frame dropped", "error", err)
		}
	}

	if e.profilingEnabled.Load() {
		e.renderProfiler.Tick()
	}
	return true
}

// handleResize keeps the renderer in step with the window framebuffer.
func (e *engine) handleResize(width, height int) {
	if e.renderer != nil {
		e.renderer.Resize(width, height)
	}
	if e.resizeCallback != nil {
		e.resizeCallback(width, height)
	}
	e.RequestRender()
}

func (e *engine) Dispatch(fn func()) {
	if fn == nil {
		return
	}
	e.queueMu.Lock()
	e.queue = append(e.queue, fn)
	e.queueMu.Unlock()
}

func (e *engine) RequestRender() {
	e.renderRequested.Store(true)
	select {
	case e.renderSignal <- struct{}{}:
	default:
	}
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

// SetTickRate sets the engine tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	newRate := tickInterval(fps)

	if !e.running.Load() {
		e.engineTickRate = newRate
		return
	}

	// Non-blocking send; replace a pending value if the channel is full
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		e.tickRateChannel <- newRate
	}
}

func (e *engine) SetTickCallback(callback func(deltaTime float64)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float64)) {
	e.renderCallback = callback
}

func (e *engine) SetResizeCallback(callback func(width, height int)) {
	e.resizeCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameInterval(fps)
}

// tickInterval converts a tick rate to a ticker period, treating non-positive rates as 60.
func tickInterval(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}

// frameInterval converts a frame cap to a minimum frame duration, 0 meaning uncapped.
func frameInterval(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
