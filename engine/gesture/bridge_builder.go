package gesture

import "time"

// BridgeBuilderOption is a functional option for configuring a Bridge.
type BridgeBuilderOption func(*bridgeImpl)

// WithDispatcher sets the function used to move gesture handling onto the goroutine that owns
// the controller, typically engine.Engine.Dispatch. By default work runs on the calling goroutine.
//
// Parameters:
//   - dispatch: function that runs fn later on the controller's goroutine
//
// Returns:
//   - BridgeBuilderOption: option function to apply
func WithDispatcher(dispatch func(fn func())) BridgeBuilderOption {
	return func(b *bridgeImpl) {
		b.dispatch = dispatch
	}
}

// WithClock replaces time.Now as the source of event timestamps.
//
// Parameters:
//   - now: clock function
//
// Returns:
//   - BridgeBuilderOption: option function to apply
func WithClock(now func() time.Time) BridgeBuilderOption {
	return func(b *bridgeImpl) {
		b.now = now
	}
}

// WithDoubleTapInterval sets the longest gap between two clicks that still counts as a double tap.
// Single taps are delivered once this interval has passed without a second click.
//
// Parameters:
//   - interval: maximum gap between clicks (default 300ms)
//
// Returns:
//   - BridgeBuilderOption: option function to apply
func WithDoubleTapInterval(interval time.Duration) BridgeBuilderOption {
	return func(b *bridgeImpl) {
		b.doubleTapInterval = interval
	}
}

// WithTapSlop sets how far the pointer may move between press and release and still be a click.
//
// Parameters:
//   - pixels: movement tolerance in pixels (default 4)
//
// Returns:
//   - BridgeBuilderOption: option function to apply
func WithTapSlop(pixels float64) BridgeBuilderOption {
	return func(b *bridgeImpl) {
		b.tapSlop = pixels
	}
}

// WithScrollZoomStep sets the zoom change per scroll notch.
//
// Parameters:
//   - levels: zoom levels per notch (default 0.25, a pinch scale of 2^(delta/4))
//
// Returns:
//   - BridgeBuilderOption: option function to apply
func WithScrollZoomStep(levels float64) BridgeBuilderOption {
	return func(b *bridgeImpl) {
		b.scrollZoomStep = levels
	}
}

// WithVelocityWindow sets how far back release velocity is measured.
//
// Parameters:
//   - window: trailing sample window (default 100ms)
//
// Returns:
//   - BridgeBuilderOption: option function to apply
func WithVelocityWindow(window time.Duration) BridgeBuilderOption {
	return func(b *bridgeImpl) {
		b.velocity = newVelocityTracker(window)
	}
}
