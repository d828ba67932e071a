// Package domain holds the traffic types shared by the API, the feed and
// the adapters: congestion labels, junction snapshots and feed events.
package domain
