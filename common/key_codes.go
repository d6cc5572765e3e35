package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyR     = 82  // R key (ASCII)
	KeySpace = 32  // Spacebar (ASCII)
	KeyEsc   = 256 // Escape key (GLFW)
	KeyUp    = 265 // Arrow up (GLFW)
	KeyDown  = 264 // Arrow down (GLFW)
	KeyLeft  = 263 // Arrow left (GLFW)
	KeyRight = 262 // Arrow right (GLFW)
)
