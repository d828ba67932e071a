// Package events provides event bus implementations for the snapshot feed.
//
// Implementations:
//   - redis: Redis Streams with consumer groups
//   - memory: In-process fan-out, the default backend
package events
