package canvas

import "archcanvas/internal/domain"

// PanZoomController adjusts the viewport from background drags and wheel
// ticks
type PanZoomController struct {
	viewport *Viewport
	state    *Interaction
}

// NewPanZoomController wires a pan/zoom controller to shared engine state
func NewPanZoomController(viewport *Viewport, state *Interaction) *PanZoomController {
	return &PanZoomController{viewport: viewport, state: state}
}

// Begin starts a pan at the screen point. Ignored unless idle, which is
// what suppresses a background press that arrives while a card is held.
func (c *PanZoomController) Begin(screen domain.Point) bool {
	if !c.state.IsIdle() {
		return false
	}
	c.state.set(Panning{Anchor: screen})
	return true
}

// Move pans by the screen delta since the previous move. Reports whether
// the offset changed.
func (c *PanZoomController) Move(screen domain.Point) bool {
	p, ok := c.state.Gesture().(Panning)
	if !ok {
		return false
	}
	delta := screen.Sub(p.Anchor)
	c.state.set(Panning{Anchor: screen})
	if delta.X == 0 && delta.Y == 0 {
		return false
	}
	c.viewport.Pan(delta.X, delta.Y)
	return true
}

// End finishes the pan. Reports whether a pan was active.
func (c *PanZoomController) End() bool {
	if !c.state.IsPanning() {
		return false
	}
	return c.state.reset()
}

// Wheel zooms one tick. Wheel events are honored in every gesture state.
func (c *PanZoomController) Wheel(deltaY float64, screen domain.Point) bool {
	return c.viewport.Zoom(deltaY, screen)
}
