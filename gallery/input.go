package gallery

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	// defaultDragDeadZone is how far, in pixels, the pointer travels before
	// a press becomes a drag.
	defaultDragDeadZone = 4.0
	// orbitSpeed is radians of orbit per dragged pixel.
	orbitSpeed = 0.008
	// zoomStep scales the camera distance per wheel notch.
	zoomStep = 0.9
)

// HitCircle is a circular hit area in screen coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// pointerSample is one frame of pointer input.
type pointerSample struct {
	X, Y    float64
	Pressed bool
	WheelY  float64
}

// pointerState tracks the press-drag-release cycle of the mouse.
type pointerState struct {
	down     bool
	dragging bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
}

// readPointer returns the next injected sample, or the live mouse state when
// nothing is queued.
func (g *Game) readPointer() pointerSample {
	if in, ok := g.popInjected(); ok {
		return in
	}
	mx, my := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()
	return pointerSample{
		X:       float64(mx),
		Y:       float64(my),
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		WheelY:  wy,
	}
}

// readKeys handles keyboard shortcuts.
func (g *Game) readKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Refresh()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.Screenshot("gallery")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.selectedID = ""
	}
}

// processPointer runs the pointer state machine: drags orbit the camera,
// a press and release without a drag selects, the wheel zooms.
func (g *Game) processPointer(in pointerSample) {
	ps := &g.pointer

	if in.WheelY != 0 {
		g.camera.Zoom(math.Pow(zoomStep, in.WheelY))
	}

	switch {
	case in.Pressed && !ps.down:
		ps.down = true
		ps.dragging = false
		ps.startX, ps.startY = in.X, in.Y
		ps.lastX, ps.lastY = in.X, in.Y

	case in.Pressed && ps.down:
		if in.X == ps.lastX && in.Y == ps.lastY {
			return
		}
		if !ps.dragging {
			dx := in.X - ps.startX
			dy := in.Y - ps.startY
			if math.Sqrt(dx*dx+dy*dy) > defaultDragDeadZone {
				ps.dragging = true
			}
		}
		if ps.dragging {
			g.camera.Orbit(-(in.X-ps.lastX)*orbitSpeed, (in.Y-ps.lastY)*orbitSpeed)
		}
		ps.lastX, ps.lastY = in.X, in.Y

	case !in.Pressed && ps.down:
		if !ps.dragging {
			g.selectAt(in.X, in.Y)
		}
		ps.down = false
		ps.dragging = false
	}
}
