// Package feed publishes traffic snapshots on the event bus at a fixed
// interval, so dashboards can receive updates without polling /traffic.
//
// The publisher runs a single ticker goroutine. Each tick builds a fresh
// snapshot through the traffic service and publishes it on the
// traffic.snapshots topic. Failed publications are logged and counted.
package feed
