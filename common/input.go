package common

// MouseButton identifies a pointer button independently of the windowing backend.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonRight:
		return "right"
	case MouseButtonMiddle:
		return "middle"
	default:
		return "unknown"
	}
}

// Modifier is a bit set of modifier keys held during a pointer event.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModControl
	ModAlt
)

// Has reports whether every bit of flag is set in m.
//
// Parameters:
//   - flag: one or more modifier bits
//
// Returns:
//   - bool: true if all bits in flag are held
func (m Modifier) Has(flag Modifier) bool {
	return m&flag == flag
}
