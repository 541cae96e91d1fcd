package canvas

import "archcanvas/internal/domain"

// Frame is everything a renderer needs to draw the canvas once
type Frame struct {
	Transform  string          `json:"transform"`
	OffsetX    float64         `json:"offset_x"`
	OffsetY    float64         `json:"offset_y"`
	Scale      float64         `json:"scale"`
	Gesture    GestureView     `json:"gesture"`
	Cards      []CardView      `json:"cards"`
	Connectors []ConnectorView `json:"connectors"`
}

// GestureView is the serializable form of the interaction state
type GestureView struct {
	State GestureKind `json:"state"`
	Card  *int        `json:"card,omitempty"`
}

// CardView is a card as drawn, in canvas coordinates
type CardView struct {
	domain.Card
	Index     int    `json:"index"`
	IconClass string `json:"icon_class"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Dragging  bool   `json:"dragging,omitempty"`
}

// ConnectorView is one routed connection, keyed by connection index
type ConnectorView struct {
	Index  int            `json:"index"`
	From   int            `json:"from"`
	To     int            `json:"to"`
	Path   string         `json:"path"`
	Points []domain.Point `json:"points"`
}

func buildFrame(store *Store, viewport *Viewport, state *Interaction) Frame {
	dragged, dragging := state.DraggedCard()

	frame := Frame{
		Transform:  viewport.Transform(),
		OffsetX:    viewport.OffsetX,
		OffsetY:    viewport.OffsetY,
		Scale:      viewport.Scale,
		Gesture:    GestureView{State: state.Gesture().Kind()},
		Cards:      make([]CardView, 0, store.Len()),
		Connectors: make([]ConnectorView, 0, len(store.connections)),
	}
	if dragging {
		idx := dragged
		frame.Gesture.Card = &idx
	}

	for i, card := range store.cards {
		frame.Cards = append(frame.Cards, CardView{
			Card:      card,
			Index:     i,
			IconClass: card.IconClass(),
			Width:     domain.CardWidth,
			Height:    domain.CardHeight,
			Dragging:  dragging && dragged == i,
		})
	}

	for i, conn := range store.connections {
		points := RoutePoints(store.cards[conn.From], store.cards[conn.To])
		frame.Connectors = append(frame.Connectors, ConnectorView{
			Index:  i,
			From:   conn.From,
			To:     conn.To,
			Path:   PathData(points),
			Points: points,
		})
	}
	return frame
}
