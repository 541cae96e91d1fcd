// Package domain defines the core types of the archcanvas diagram editor.
//
// # Core Types
//
// Card is a positioned service box on the canvas. Cards have a fixed
// logical size (CardWidth × CardHeight) and their top-left corner is stored
// in canvas space. After any drag the corner sits on the snap grid.
//
// Connection is a directional link between two cards, addressed by their
// index in the diagram's card list.
//
// Diagram is the ordered card list plus its connections, as loaded from
// static configuration. Card order is identity: connections stay valid only
// while indices are stable. Each card also carries an opaque ID so callers
// that need a stable handle can resolve it back to an index.
//
// # Design Principles
//
// - No I/O and no external state
// - Validation happens once, when a diagram is loaded
// - Plain value types that copy cleanly
package domain
