package session

import (
	"fmt"
	"math"

	"archcanvas/internal/domain"
)

// InputType is the kind of raw pointer event a renderer forwards
type InputType string

const (
	InputPointerDown  InputType = "pointerdown"
	InputPointerMove  InputType = "pointermove"
	InputPointerUp    InputType = "pointerup"
	InputPointerLeave InputType = "pointerleave"
	InputWheel        InputType = "wheel"
)

// Target says which element received a pointer-down
type Target string

const (
	// TargetAuto hit-tests the pointer position and bubbles card first
	TargetAuto Target = ""
	// TargetCard delivers the press to Input.Card only
	TargetCard Target = "card"
	// TargetBackground delivers the press to the canvas background only
	TargetBackground Target = "background"
)

// Input is one pointer or wheel event in screen coordinates
type Input struct {
	Type   InputType `json:"type"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Target Target    `json:"target,omitempty"`
	Card   *int      `json:"card,omitempty"`
	DeltaY float64   `json:"delta_y,omitempty"`
}

// Point returns the event position
func (in Input) Point() domain.Point {
	return domain.Pt(in.X, in.Y)
}

// MaxInputValue bounds the magnitude of X, Y and DeltaY
const MaxInputValue = domain.MaxCoordinate

// Validate rejects inputs the engine cannot interpret
func (in Input) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{{"x", in.X}, {"y", in.Y}, {"delta_y", in.DeltaY}} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || math.Abs(f.v) > MaxInputValue {
			return fmt.Errorf("%s out of range: %v", f.name, f.v)
		}
	}

	switch in.Type {
	case InputPointerDown:
		switch in.Target {
		case TargetAuto, TargetBackground:
		case TargetCard:
			if in.Card == nil {
				return fmt.Errorf("pointerdown with target card needs a card index")
			}
		default:
			return fmt.Errorf("unknown target %q", in.Target)
		}
	case InputPointerMove, InputPointerUp, InputPointerLeave, InputWheel:
	default:
		return fmt.Errorf("unknown input type %q", in.Type)
	}
	return nil
}
