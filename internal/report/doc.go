// Package report renders decoded beacon frames as human-readable text for
// the interactive front end. Rendering never fails; it consumes already
// validated records.
package report
