package domain

import (
	"strings"

	"github.com/google/uuid"
)

const (
	// CardWidth is the fixed logical width of every card
	CardWidth = 300
	// CardHeight is the fixed logical height of every card
	CardHeight = 160
	// GridSize is the snap grid applied to dragged cards
	GridSize = 40
)

// Card is a service box placed on the canvas
type Card struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	URL      string `json:"url,omitempty"`
	Status   string `json:"status,omitempty"`
	Icon     string `json:"icon,omitempty"`
	Replicas int    `json:"replicas,omitempty"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

// NewCard creates a card at (x, y) with a fresh ID
func NewCard(name, cardType string, x, y int) *Card {
	return &Card{
		ID:   uuid.NewString(),
		Name: name,
		Type: cardType,
		X:    x,
		Y:    y,
	}
}

// Bounds returns the card rectangle in canvas space
func (c Card) Bounds() Rect {
	return Rect{X: float64(c.X), Y: float64(c.Y), W: CardWidth, H: CardHeight}
}

// Center returns the card midpoint in canvas space
func (c Card) Center() Point {
	return c.Bounds().Center()
}

// TopLeft returns the stored corner as a Point
func (c Card) TopLeft() Point {
	return Point{X: float64(c.X), Y: float64(c.Y)}
}

// iconClasses maps well-known service types to the icon class the renderer
// styles. Unknown types fall back to "service".
var iconClasses = map[string]string{
	"javascript": "js",
	"typescript": "js",
	"node":       "js",
	"go":         "go",
	"golang":     "go",
	"python":     "py",
	"postgres":   "db",
	"postgresql": "db",
	"mysql":      "db",
	"database":   "db",
	"redis":      "cache",
	"cache":      "cache",
	"queue":      "queue",
	"kafka":      "queue",
	"worker":     "worker",
}

// IconClass returns the renderer icon class: the explicit icon if set,
// otherwise one derived from the card type
func (c Card) IconClass() string {
	if c.Icon != "" {
		return c.Icon
	}
	if class, ok := iconClasses[strings.ToLower(c.Type)]; ok {
		return class
	}
	return "service"
}
