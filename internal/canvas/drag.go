package canvas

import "archcanvas/internal/domain"

// DragController moves one card while a pointer button is held on it
type DragController struct {
	store    *Store
	viewport *Viewport
	state    *Interaction
}

// NewDragController wires a drag controller to shared engine state
func NewDragController(store *Store, viewport *Viewport, state *Interaction) *DragController {
	return &DragController{store: store, viewport: viewport, state: state}
}

// Begin starts dragging card index from the screen point. Ignored unless
// the interaction is idle and the index exists.
func (c *DragController) Begin(index int, screen domain.Point) bool {
	if !c.state.IsIdle() {
		return false
	}
	card, ok := c.store.Card(index)
	if !ok {
		return false
	}
	anchor := c.viewport.ToCanvas(screen).Sub(card.TopLeft())
	c.state.set(Dragging{Index: index, Anchor: anchor})
	return true
}

// Move repositions the dragged card under the pointer, snapped to the
// grid. Reports whether the card moved.
func (c *DragController) Move(screen domain.Point) bool {
	d, ok := c.state.Gesture().(Dragging)
	if !ok {
		return false
	}
	target := c.viewport.ToCanvas(screen).Sub(d.Anchor)
	return c.store.Move(d.Index, domain.Snap(target.X), domain.Snap(target.Y))
}

// End finishes the drag. Reports whether a drag was active.
func (c *DragController) End() bool {
	if !c.state.IsDragging() {
		return false
	}
	return c.state.reset()
}
