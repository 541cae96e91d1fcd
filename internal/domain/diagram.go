package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Diagram is the static input to the canvas: an ordered card list and the
// connections between them
type Diagram struct {
	Cards       []Card       `json:"cards"`
	Connections []Connection `json:"connections"`
}

// NewDiagram creates an empty diagram with initialized collections
func NewDiagram() *Diagram {
	return &Diagram{
		Cards:       make([]Card, 0),
		Connections: make([]Connection, 0),
	}
}

// AddCard appends a card and returns its index
func (d *Diagram) AddCard(card Card) int {
	d.Cards = append(d.Cards, card)
	return len(d.Cards) - 1
}

// AddConnection appends a connection between two card indices
func (d *Diagram) AddConnection(from, to int) {
	d.Connections = append(d.Connections, Connection{From: from, To: to})
}

// EnsureIDs assigns a fresh ID to every card that lacks one
func (d *Diagram) EnsureIDs() {
	for i := range d.Cards {
		if d.Cards[i].ID == "" {
			d.Cards[i].ID = uuid.NewString()
		}
	}
}

// Validate checks that every connection references an existing card and
// that card IDs are unique. It returns the first problem as a *ConfigError.
func (d *Diagram) Validate() error {
	seen := make(map[string]int, len(d.Cards))
	for i, card := range d.Cards {
		if card.ID == "" {
			continue
		}
		if prev, ok := seen[card.ID]; ok {
			return &ConfigError{
				Field: fmt.Sprintf("cards[%d].id", i),
				Err:   ErrDuplicateCardID,
				Msg:   fmt.Sprintf("%q already used by cards[%d]", card.ID, prev),
			}
		}
		seen[card.ID] = i
	}

	n := len(d.Cards)
	for i, conn := range d.Connections {
		if conn.From < 0 || conn.From >= n {
			return &ConfigError{
				Field: fmt.Sprintf("connections[%d].from", i),
				Err:   ErrInvalidConnection,
				Msg:   fmt.Sprintf("index %d out of range [0,%d)", conn.From, n),
			}
		}
		if conn.To < 0 || conn.To >= n {
			return &ConfigError{
				Field: fmt.Sprintf("connections[%d].to", i),
				Err:   ErrInvalidConnection,
				Msg:   fmt.Sprintf("index %d out of range [0,%d)", conn.To, n),
			}
		}
	}
	return nil
}

// SelfLoops returns the indices of connections whose ends are the same card
func (d *Diagram) SelfLoops() []int {
	var loops []int
	for i, conn := range d.Connections {
		if conn.SelfLoop() {
			loops = append(loops, i)
		}
	}
	return loops
}

// Clone returns a deep copy so the static configuration is never mutated by
// drags on a live canvas
func (d *Diagram) Clone() *Diagram {
	clone := &Diagram{
		Cards:       make([]Card, len(d.Cards)),
		Connections: make([]Connection, len(d.Connections)),
	}
	copy(clone.Cards, d.Cards)
	copy(clone.Connections, d.Connections)
	return clone
}
