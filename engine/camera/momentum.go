package camera

import "github.com/go-gl/mathgl/mgl64"

type momentumKind int

const (
	momentumNone momentumKind = iota
	momentumTranslate
	momentumZoom
)

// momentum is the value written by setMomentum. Only one channel is ever live: setting
// translation momentum clears zoom momentum and vice versa.
type momentum struct {
	kind      momentumKind
	translate mgl64.Vec2
	zoom      float64
}

func translateMomentum(v mgl64.Vec2) momentum {
	return momentum{kind: momentumTranslate, translate: v}
}

func zoomMomentum(z float64) momentum {
	return momentum{kind: momentumZoom, zoom: z}
}

func noMomentum() momentum {
	return momentum{kind: momentumNone}
}
