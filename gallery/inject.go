package gallery

// InjectPress queues a left-button press at the given screen coordinates.
// Injected samples replace live mouse input, one per frame.
func (g *Game) InjectPress(x, y float64) {
	g.inject = append(g.inject, pointerSample{X: x, Y: y, Pressed: true})
}

// InjectMove queues a pointer move with the button held down.
func (g *Game) InjectMove(x, y float64) {
	g.inject = append(g.inject, pointerSample{X: x, Y: y, Pressed: true})
}

// InjectRelease queues a button release.
func (g *Game) InjectRelease(x, y float64) {
	g.inject = append(g.inject, pointerSample{X: x, Y: y})
}

// InjectClick queues a press and release at the same point. Consumes two
// frames.
func (g *Game) InjectClick(x, y float64) {
	g.InjectPress(x, y)
	g.InjectRelease(x, y)
}

// InjectDrag queues a press at (fromX, fromY), evenly spaced moves and a
// release at (toX, toY), spread over frames frames (at least 2).
func (g *Game) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	g.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		g.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	g.InjectRelease(toX, toY)
}

// InjectWheel queues a wheel scroll of dy notches. Positive dy zooms in.
func (g *Game) InjectWheel(dy float64) {
	g.inject = append(g.inject, pointerSample{WheelY: dy})
}

func (g *Game) popInjected() (pointerSample, bool) {
	if len(g.inject) == 0 {
		return pointerSample{}, false
	}
	in := g.inject[0]
	copy(g.inject, g.inject[1:])
	g.inject = g.inject[:len(g.inject)-1]
	return in, true
}
