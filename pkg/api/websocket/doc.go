// Package websocket provides real-time snapshot streaming via WebSocket.
//
// Clients connect to /traffic/stream and receive every snapshot published
// by the feed as a JSON text frame.
package websocket
