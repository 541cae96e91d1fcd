package domain

import "fmt"

// Connection is a directional link between two cards, by card index
type Connection struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// String renders the connection as "from->to"
func (c Connection) String() string {
	return fmt.Sprintf("%d->%d", c.From, c.To)
}

// SelfLoop reports whether the connection starts and ends on the same card
func (c Connection) SelfLoop() bool {
	return c.From == c.To
}
