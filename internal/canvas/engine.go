package canvas

import (
	"archcanvas/internal/domain"
)

// ChangeReason says which mutation produced a Change
type ChangeReason string

const (
	ChangeDrag    ChangeReason = "drag"
	ChangePan     ChangeReason = "pan"
	ChangeZoom    ChangeReason = "zoom"
	ChangeGesture ChangeReason = "gesture"
)

// Change is delivered to observers after every state mutation
type Change struct {
	Reason ChangeReason `json:"reason"`
	Frame  Frame        `json:"frame"`
}

// Observer receives changes synchronously, from inside the event call that
// caused them. Observers must not call back into the engine.
type Observer func(Change)

type observerEntry struct {
	id uint32
	fn Observer
}

// Engine composes the card store, viewport and both pointer controllers
// behind a raw-event API
type Engine struct {
	store     *Store
	viewport  *Viewport
	state     *Interaction
	drag      *DragController
	panZoom   *PanZoomController
	observers []observerEntry
	nextID    uint32
}

// Option configures an Engine
type Option func(*Engine)

// WithPivotPolicy selects the zoom pivot policy
func WithPivotPolicy(p PivotPolicy) Option {
	return func(e *Engine) {
		e.viewport.Pivot = p
	}
}

// WithViewport starts the engine from a saved transform
func WithViewport(offsetX, offsetY, scale float64) Option {
	return func(e *Engine) {
		e.viewport.OffsetX = offsetX
		e.viewport.OffsetY = offsetY
		e.viewport.Scale = clamp(scale, MinScale, MaxScale)
	}
}

// NewEngine builds an engine over a copy of the diagram. Invalid
// connections fail here rather than reaching the router.
func NewEngine(d *domain.Diagram, opts ...Option) (*Engine, error) {
	store, err := NewStore(d)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		store:    store,
		viewport: NewViewport(),
		state:    NewInteraction(),
	}
	e.drag = NewDragController(e.store, e.viewport, e.state)
	e.panZoom = NewPanZoomController(e.viewport, e.state)

	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Store exposes the card store for read access
func (e *Engine) Store() *Store {
	return e.store
}

// Viewport returns a copy of the current transform
func (e *Engine) Viewport() Viewport {
	return *e.viewport
}

// Gesture returns the current interaction state
func (e *Engine) Gesture() Gesture {
	return e.state.Gesture()
}

// IsDragging reports whether a card is being dragged
func (e *Engine) IsDragging() bool {
	return e.state.IsDragging()
}

// IsPanning reports whether the canvas is being panned
func (e *Engine) IsPanning() bool {
	return e.state.IsPanning()
}

// HitTest returns the topmost card under a screen point, or -1
func (e *Engine) HitTest(screen domain.Point) int {
	return e.store.HitTest(e.viewport.ToCanvas(screen))
}

// PointerDown handles a press at a screen point. The card under the
// pointer sees the press first; the background sees it afterwards, the way
// a DOM event bubbles from card to canvas. A card that starts a drag
// therefore suppresses the pan.
func (e *Engine) PointerDown(screen domain.Point) {
	if idx := e.HitTest(screen); idx >= 0 {
		e.CardPointerDown(idx, screen)
	}
	e.BackgroundPointerDown(screen)
}

// CardPointerDown handles a press that the renderer attributed to a card
func (e *Engine) CardPointerDown(index int, screen domain.Point) bool {
	if !e.drag.Begin(index, screen) {
		return false
	}
	e.notify(ChangeGesture)
	return true
}

// BackgroundPointerDown handles a press on the empty canvas
func (e *Engine) BackgroundPointerDown(screen domain.Point) bool {
	if !e.panZoom.Begin(screen) {
		return false
	}
	e.notify(ChangeGesture)
	return true
}

// PointerMove advances whichever gesture is active
func (e *Engine) PointerMove(screen domain.Point) {
	switch e.state.Gesture().Kind() {
	case GestureDragging:
		if e.drag.Move(screen) {
			e.notify(ChangeDrag)
		}
	case GesturePanning:
		if e.panZoom.Move(screen) {
			e.notify(ChangePan)
		}
	}
}

// PointerUp ends any active gesture
func (e *Engine) PointerUp() {
	if e.drag.End() || e.panZoom.End() {
		e.notify(ChangeGesture)
	}
}

// PointerLeave ends any active gesture when the pointer leaves the surface
func (e *Engine) PointerLeave() {
	e.PointerUp()
}

// Wheel zooms by one tick
func (e *Engine) Wheel(deltaY float64, screen domain.Point) {
	if e.panZoom.Wheel(deltaY, screen) {
		e.notify(ChangeZoom)
	}
}

// Route returns the connector path between two card indices
func (e *Engine) Route(from, to int) (string, error) {
	return e.store.Route(from, to)
}

// Frame builds the render boundary for the current state
func (e *Engine) Frame() Frame {
	return buildFrame(e.store, e.viewport, e.state)
}

// Subscribe registers an observer and returns a function that removes it
func (e *Engine) Subscribe(fn Observer) (cancel func()) {
	e.nextID++
	id := e.nextID
	e.observers = append(e.observers, observerEntry{id: id, fn: fn})
	return func() {
		for i, o := range e.observers {
			if o.id == id {
				e.observers = append(e.observers[:i], e.observers[i+1:]...)
				return
			}
		}
	}
}

func (e *Engine) notify(reason ChangeReason) {
	if len(e.observers) == 0 {
		return
	}
	change := Change{Reason: reason, Frame: e.Frame()}
	for _, o := range e.observers {
		o.fn(change)
	}
}
