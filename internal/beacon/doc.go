// Package beacon implements parsing and decoding of BOTAN satellite CW
// beacons. It handles frame tokenization and header validation, the optional
// signal-quality field, hex payload extraction, and conversion of the 8-byte
// telemetry block into engineering values and status bitfields.
package beacon
