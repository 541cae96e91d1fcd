// Package session hosts one canvas engine for concurrent callers.
//
// The engine is single-threaded. A Session serializes every input under a
// mutex so HTTP and websocket handlers can deliver events from any
// goroutine while the engine still sees them strictly one at a time.
// Engine changes are republished on an EventBus for live subscribers.
package session

import (
	"fmt"
	"log"
	"sync"

	"archcanvas/internal/canvas"
	"archcanvas/internal/domain"
)

// Session owns a canvas engine built from a static diagram
type Session struct {
	mu      sync.Mutex
	diagram *domain.Diagram
	opts    []canvas.Option
	engine  *canvas.Engine
	bus     *EventBus
}

// New validates the diagram and starts a session over a copy of it. A nil
// diagram starts an empty canvas.
func New(d *domain.Diagram, bus *EventBus, opts ...canvas.Option) (*Session, error) {
	if bus == nil {
		bus = NewEventBus()
	}
	s := &Session{
		diagram: staticCopy(d),
		opts:    opts,
		bus:     bus,
	}
	engine, err := s.newEngine()
	if err != nil {
		return nil, err
	}
	s.engine = engine
	return s, nil
}

// staticCopy clones d and fixes card IDs so every reset yields the same ones
func staticCopy(d *domain.Diagram) *domain.Diagram {
	if d == nil {
		return domain.NewDiagram()
	}
	c := d.Clone()
	c.EnsureIDs()
	return c
}

func (s *Session) newEngine() (*canvas.Engine, error) {
	engine, err := canvas.NewEngine(s.diagram, s.opts...)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	engine.Subscribe(func(c canvas.Change) {
		s.bus.Publish(Event{Type: EventFrameUpdated, Payload: c})
	})
	return engine, nil
}

// Bus returns the event bus frames are published on
func (s *Session) Bus() *EventBus {
	return s.bus
}

// Dispatch applies inputs in order and returns the resulting frame.
// All inputs are validated before any is applied.
func (s *Session) Dispatch(inputs ...Input) (canvas.Frame, error) {
	for i, in := range inputs {
		if err := in.Validate(); err != nil {
			return canvas.Frame{}, fmt.Errorf("input %d: %w", i, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, in := range inputs {
		s.apply(in)
	}
	return s.engine.Frame(), nil
}

func (s *Session) apply(in Input) {
	p := in.Point()
	switch in.Type {
	case InputPointerDown:
		switch in.Target {
		case TargetCard:
			s.engine.CardPointerDown(*in.Card, p)
		case TargetBackground:
			s.engine.BackgroundPointerDown(p)
		default:
			s.engine.PointerDown(p)
		}
	case InputPointerMove:
		s.engine.PointerMove(p)
	case InputPointerUp:
		s.engine.PointerUp()
	case InputPointerLeave:
		s.engine.PointerLeave()
	case InputWheel:
		s.engine.Wheel(in.DeltaY, p)
	}
}

// Frame returns the current frame
func (s *Session) Frame() canvas.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Frame()
}

// Route returns the connector path between two card indices
func (s *Session) Route(from, to int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Route(from, to)
}

// Layout returns the diagram with current card positions
func (s *Session) Layout() *domain.Diagram {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Store().Diagram()
}

// Reset discards all drags and viewport changes and starts over from the
// static diagram
func (s *Session) Reset() (canvas.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	engine, err := s.newEngine()
	if err != nil {
		return canvas.Frame{}, err
	}
	s.engine = engine
	frame := engine.Frame()

	log.Printf("Canvas reset to static diagram (%d cards)", len(frame.Cards))
	s.bus.Publish(Event{Type: EventCanvasReset, Payload: frame})
	return frame, nil
}

// Reload replaces the static diagram and resets the canvas to it. An
// invalid diagram leaves the session untouched; nil loads an empty canvas.
func (s *Session) Reload(d *domain.Diagram) (canvas.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.diagram
	s.diagram = staticCopy(d)
	engine, err := s.newEngine()
	if err != nil {
		s.diagram = previous
		return canvas.Frame{}, err
	}
	s.engine = engine
	frame := engine.Frame()

	log.Printf("Diagram reloaded (%d cards, %d connections)", len(frame.Cards), len(frame.Connectors))
	s.bus.Publish(Event{Type: EventCanvasReset, Payload: frame})
	return frame, nil
}
