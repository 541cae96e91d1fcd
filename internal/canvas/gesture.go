package canvas

import "archcanvas/internal/domain"

// GestureKind names the active pointer gesture
type GestureKind string

const (
	GestureIdle     GestureKind = "idle"
	GestureDragging GestureKind = "dragging"
	GesturePanning  GestureKind = "panning"
)

// Gesture is the interaction state: exactly one of Idle, Dragging or
// Panning
type Gesture interface {
	Kind() GestureKind
}

// Idle means no pointer button is held on the canvas
type Idle struct{}

// Dragging tracks a card under the pointer. Anchor is the pointer's canvas
// position relative to the card's top-left corner at pointer-down.
type Dragging struct {
	Index  int
	Anchor domain.Point
}

// Panning tracks the last screen position seen during a pan
type Panning struct {
	Anchor domain.Point
}

func (Idle) Kind() GestureKind     { return GestureIdle }
func (Dragging) Kind() GestureKind { return GestureDragging }
func (Panning) Kind() GestureKind  { return GesturePanning }

// Interaction owns the current gesture. The drag and pan/zoom controllers
// share one Interaction, which is what keeps them mutually exclusive.
type Interaction struct {
	gesture Gesture
}

// NewInteraction starts idle
func NewInteraction() *Interaction {
	return &Interaction{gesture: Idle{}}
}

// Gesture returns the current gesture
func (s *Interaction) Gesture() Gesture {
	return s.gesture
}

// IsIdle reports whether no gesture is active
func (s *Interaction) IsIdle() bool {
	return s.gesture.Kind() == GestureIdle
}

// IsDragging reports whether a card is being dragged
func (s *Interaction) IsDragging() bool {
	return s.gesture.Kind() == GestureDragging
}

// IsPanning reports whether the canvas is being panned
func (s *Interaction) IsPanning() bool {
	return s.gesture.Kind() == GesturePanning
}

// DraggedCard returns the index of the dragged card, if any
func (s *Interaction) DraggedCard() (int, bool) {
	if d, ok := s.gesture.(Dragging); ok {
		return d.Index, true
	}
	return -1, false
}

func (s *Interaction) set(g Gesture) {
	s.gesture = g
}

// reset returns to Idle and reports whether anything was active
func (s *Interaction) reset() bool {
	if s.IsIdle() {
		return false
	}
	s.gesture = Idle{}
	return true
}
