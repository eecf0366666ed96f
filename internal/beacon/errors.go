package beacon

import "errors"

// Decode failures are deterministic for a given input and are never retried
// here; callers decide whether to report, re-prompt, or abort. All errors
// returned by this package wrap one of these sentinels and are matchable
// with errors.Is.
var (
	// ErrMalformedFrame indicates the wrong number of whitespace tokens.
	ErrMalformedFrame = errors.New("malformed beacon frame")

	// ErrBadHeader indicates a satellite name or call sign mismatch.
	ErrBadHeader = errors.New("invalid beacon header")

	// ErrBadSignalQuality indicates a malformed optional signal-quality
	// field (prefix, length, or hex digits).
	ErrBadSignalQuality = errors.New("invalid signal quality field")

	// ErrBadPayloadLength indicates a payload token that is not exactly
	// 16 hex characters.
	ErrBadPayloadLength = errors.New("invalid payload length")

	// ErrBadHexDigit indicates a non-hex character in the payload.
	ErrBadHexDigit = errors.New("invalid hex digit")

	// ErrInvalidByteCount indicates DecodeTelemetry was invoked with other
	// than 8 bytes.
	ErrInvalidByteCount = errors.New("invalid telemetry byte count")

	// ErrOutOfDomain indicates a temperature conversion formula was
	// evaluated outside its valid input domain.
	ErrOutOfDomain = errors.New("conversion out of domain")
)
