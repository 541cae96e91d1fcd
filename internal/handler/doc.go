// Package handler implements the HTTP surface of the canvas host.
//
// # Handlers
//
// CanvasHandler serves the REST API over a session.Session: the current
// frame, batched input events, connector routes, reset and layout export.
//
// LiveHandler upgrades /ws to a websocket. Clients send input events as
// JSON and receive every frame the session publishes.
//
// Middleware provides request logging, panic recovery, and CORS support.
//
// # Response Format
//
// Success responses return JSON data with status 200. Error responses
// return JSON with {error, details} structure.
package handler
