package canvas

import (
	"fmt"
	"math"

	"archcanvas/internal/domain"
)

const (
	// MinScale is the smallest zoom factor
	MinScale = 0.5
	// MaxScale is the largest zoom factor
	MaxScale = 2.0
	// ZoomStep is the multiplicative change applied per wheel tick
	ZoomStep = 1.1
	// MaxOffset bounds the pan offset on either axis
	MaxOffset = domain.MaxCoordinate * MaxScale
)

// PivotPolicy selects which point stays fixed on screen while zooming
type PivotPolicy string

const (
	// PivotOrigin scales around the transform origin with no correction.
	// Panned content drifts under the pointer while zooming.
	PivotOrigin PivotPolicy = "origin"
	// PivotPointer keeps the canvas point under the pointer fixed
	PivotPointer PivotPolicy = "pointer"
)

// ParsePivotPolicy converts a config string to a PivotPolicy
func ParsePivotPolicy(s string) (PivotPolicy, error) {
	switch PivotPolicy(s) {
	case "", PivotOrigin:
		return PivotOrigin, nil
	case PivotPointer:
		return PivotPointer, nil
	default:
		return PivotOrigin, fmt.Errorf("unknown zoom pivot %q (must be origin or pointer)", s)
	}
}

// Viewport holds the pan offset and zoom scale.
// screen = canvas*Scale + Offset
type Viewport struct {
	OffsetX float64     `json:"offset_x"`
	OffsetY float64     `json:"offset_y"`
	Scale   float64     `json:"scale"`
	Pivot   PivotPolicy `json:"-"`
}

// NewViewport returns the identity transform
func NewViewport() *Viewport {
	return &Viewport{Scale: 1, Pivot: PivotOrigin}
}

// Pan adds a screen-space delta to the offset, unscaled. The offset stays
// within [-MaxOffset, MaxOffset].
func (v *Viewport) Pan(dx, dy float64) {
	if math.IsNaN(dx) || math.IsNaN(dy) {
		return
	}
	v.OffsetX = clamp(v.OffsetX+dx, -MaxOffset, MaxOffset)
	v.OffsetY = clamp(v.OffsetY+dy, -MaxOffset, MaxOffset)
}

// Zoom scales by one wheel tick. Negative deltaY (wheel up) zooms in, any
// other value zooms out. The result is clamped to [MinScale, MaxScale].
// pivot is the pointer's screen position and only matters under
// PivotPointer. Reports whether the scale changed.
func (v *Viewport) Zoom(deltaY float64, pivot domain.Point) bool {
	factor := 1 / ZoomStep
	if deltaY < 0 {
		factor = ZoomStep
	}
	newScale := clamp(v.Scale*factor, MinScale, MaxScale)
	if newScale == v.Scale {
		return false
	}

	if v.Pivot == PivotPointer {
		anchor := v.ToCanvas(pivot)
		v.OffsetX = clamp(pivot.X-anchor.X*newScale, -MaxOffset, MaxOffset)
		v.OffsetY = clamp(pivot.Y-anchor.Y*newScale, -MaxOffset, MaxOffset)
	}
	v.Scale = newScale
	return true
}

// ToCanvas maps a screen point into canvas space
func (v *Viewport) ToCanvas(p domain.Point) domain.Point {
	return domain.Point{
		X: (p.X - v.OffsetX) / v.Scale,
		Y: (p.Y - v.OffsetY) / v.Scale,
	}
}

// ToScreen maps a canvas point into screen space
func (v *Viewport) ToScreen(p domain.Point) domain.Point {
	return domain.Point{
		X: p.X*v.Scale + v.OffsetX,
		Y: p.Y*v.Scale + v.OffsetY,
	}
}

// Transform returns the CSS transform for the canvas layer
func (v *Viewport) Transform() string {
	return fmt.Sprintf("translate(%spx, %spx) scale(%s)",
		formatNumber(v.OffsetX), formatNumber(v.OffsetY), formatNumber(v.Scale))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
