package canvas

import (
	"fmt"

	"archcanvas/internal/domain"
)

// Store is the ordered card list plus its connections. Card order never
// changes after construction, so indices held by connections stay valid.
type Store struct {
	cards       []domain.Card
	connections []domain.Connection
	byID        map[string]int
}

// NewStore validates the diagram and copies it into a store. The diagram
// itself is left untouched.
func NewStore(d *domain.Diagram) (*Store, error) {
	if d == nil {
		d = domain.NewDiagram()
	}
	d = d.Clone()
	d.EnsureIDs()
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid diagram: %w", err)
	}

	s := &Store{
		cards:       d.Cards,
		connections: d.Connections,
		byID:        make(map[string]int, len(d.Cards)),
	}
	for i, card := range s.cards {
		s.byID[card.ID] = i
	}
	return s, nil
}

// Len returns the number of cards
func (s *Store) Len() int {
	return len(s.cards)
}

// Card returns the card at index i
func (s *Store) Card(i int) (domain.Card, bool) {
	if i < 0 || i >= len(s.cards) {
		return domain.Card{}, false
	}
	return s.cards[i], true
}

// IndexOf resolves a stable card ID to its index
func (s *Store) IndexOf(id string) (int, bool) {
	i, ok := s.byID[id]
	return i, ok
}

// Cards returns a copy of the card list
func (s *Store) Cards() []domain.Card {
	out := make([]domain.Card, len(s.cards))
	copy(out, s.cards)
	return out
}

// Connections returns a copy of the connection list
func (s *Store) Connections() []domain.Connection {
	out := make([]domain.Connection, len(s.connections))
	copy(out, s.connections)
	return out
}

// Move sets a card's top-left corner. Reports whether the position changed.
func (s *Store) Move(i, x, y int) bool {
	if i < 0 || i >= len(s.cards) {
		return false
	}
	card := &s.cards[i]
	if card.X == x && card.Y == y {
		return false
	}
	card.X, card.Y = x, y
	return true
}

// HitTest returns the index of the topmost card containing the canvas
// point p, or -1. Later cards are drawn over earlier ones.
func (s *Store) HitTest(p domain.Point) int {
	for i := len(s.cards) - 1; i >= 0; i-- {
		if s.cards[i].Bounds().Contains(p) {
			return i
		}
	}
	return -1
}

// Route computes the connector path for a pair of card indices
func (s *Store) Route(from, to int) (string, error) {
	a, ok := s.Card(from)
	if !ok {
		return "", fmt.Errorf("card %d: %w", from, domain.ErrCardNotFound)
	}
	b, ok := s.Card(to)
	if !ok {
		return "", fmt.Errorf("card %d: %w", to, domain.ErrCardNotFound)
	}
	return Route(a, b), nil
}

// Diagram returns a snapshot of the current layout
func (s *Store) Diagram() *domain.Diagram {
	return &domain.Diagram{
		Cards:       s.Cards(),
		Connections: s.Connections(),
	}
}
