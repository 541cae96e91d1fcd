// Package canvas implements the interaction engine behind the diagram
// editor: the pan/zoom viewport transform, the card store, the drag and
// pan/zoom pointer state machines, and the connector router.
//
// Everything here is synchronous and single-threaded. An Engine is driven
// by a host that delivers pointer and wheel events one at a time; every
// call either mutates state immediately or is a no-op. Hosts that deliver
// events from several goroutines must serialize them (see package session).
//
// The interaction state is a tagged union (Idle, Dragging, Panning) so a
// drag and a pan can never be active at once.
//
// Observers registered with Engine.Subscribe receive a Change carrying the
// fresh Frame after every mutation. A Frame is the render boundary: the
// transform string for the canvas layer, the cards with their icon class,
// and one SVG path per connection.
package canvas
