// Package cw implements the legacy pattern-substitution decoder used for
// non-telemetry CW traffic. A decoder holds an immutable pattern-to-text
// mapping, populated at construction from the built-in Morse table, a caller
// supplied map, or a YAML mapping file.
package cw
