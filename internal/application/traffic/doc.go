// Package traffic builds the congestion snapshots served by the API.
//
// Two sources exist and one is selected at start-up:
//   - random: four junctions, each label drawn independently and uniformly
//   - fixed: three junctions with constant labels
//
// The service wraps a source, records metrics and logs each snapshot.
package traffic
