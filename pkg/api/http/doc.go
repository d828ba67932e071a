// Package http provides the HTTP REST API implementation.
//
// The HTTP server exposes endpoints for:
//   - The service banner (JSON message or HTML page, per variant)
//   - Traffic snapshots
//   - Health checks
//   - Prometheus metrics
//   - The WebSocket snapshot stream, when the feed is enabled
package http
