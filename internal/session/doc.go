// Package session tracks decode statistics for one run of the interactive
// front end: line and frame counts, failure counts by reason, and a snapshot
// of the last successfully decoded frame. The tracker is safe for use from
// the REPL goroutine and the HTTP monitoring server concurrently.
package session
