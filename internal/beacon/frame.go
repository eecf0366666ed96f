package beacon

import (
	"fmt"
	"strconv"
	"strings"
)

// Frame format constants from the BOTAN beacon definition
const (
	// SatelliteName is the fixed first header token.
	SatelliteName = "BOTAN"

	// CallSign is the fixed second header token.
	CallSign = "JS1YPT"

	// PayloadSize is the number of telemetry bytes in a beacon.
	PayloadSize = 8

	// PayloadHexLen is the payload length in hex characters.
	PayloadHexLen = PayloadSize * 2

	// Signal-quality field layout: "SI" prefix followed by two hex bytes.
	signalPrefix   = "SI"
	signalFieldLen = 6
)

// SignalQuality holds the two magnitudes reported by the optional signal
// field. The beacon definition does not specify units or scaling for either
// value, so the raw parsed byte values are reported as-is.
type SignalQuality struct {
	RSSI float64 // first byte of the SI field, unit undefined
	SNR  float64 // second byte of the SI field, unit undefined
}

// BeaconFrame is a tokenized and validated beacon line. The payload is
// always exactly PayloadSize bytes; a frame with any other payload is never
// constructed.
type BeaconFrame struct {
	SatelliteName string
	CallSign      string
	Signal        *SignalQuality // nil when the optional field is absent
	Payload       []byte
}

// ParseFrame tokenizes and validates a raw beacon line. It verifies the
// fixed header tokens, extracts the optional signal-quality field, and
// converts the hex payload token into raw bytes. ParseFrame is a pure
// function: no logging, no I/O, no retained state.
func ParseFrame(line string) (*BeaconFrame, error) {
	tokens := strings.Fields(strings.TrimSpace(line))

	if len(tokens) < 3 {
		return nil, fmt.Errorf("%w: expected %q %q [SIxxxx] <payload>, got %d tokens",
			ErrMalformedFrame, SatelliteName, CallSign, len(tokens))
	}

	if tokens[0] != SatelliteName {
		return nil, fmt.Errorf("%w: satellite name %q, expected %q", ErrBadHeader, tokens[0], SatelliteName)
	}
	if tokens[1] != CallSign {
		return nil, fmt.Errorf("%w: call sign %q, expected %q", ErrBadHeader, tokens[1], CallSign)
	}

	frame := &BeaconFrame{
		SatelliteName: SatelliteName,
		CallSign:      CallSign,
	}

	// Token count decides whether the optional signal field is present:
	// 3 tokens means header + payload, 4 tokens means header + signal +
	// payload. Anything else is malformed.
	var payloadToken string
	switch len(tokens) {
	case 3:
		payloadToken = tokens[2]
	case 4:
		signal, err := parseSignalQuality(tokens[2])
		if err != nil {
			return nil, err
		}
		frame.Signal = signal
		payloadToken = tokens[3]
	default:
		return nil, fmt.Errorf("%w: expected 3 or 4 tokens, got %d", ErrMalformedFrame, len(tokens))
	}

	payload, err := parsePayload(payloadToken)
	if err != nil {
		return nil, err
	}
	frame.Payload = payload

	return frame, nil
}

// parseSignalQuality decodes the optional "SI" field: the 2-character prefix
// followed by two adjacent hex bytes. No scaling is applied to either value.
func parseSignalQuality(token string) (*SignalQuality, error) {
	if len(token) != signalFieldLen {
		return nil, fmt.Errorf("%w: expected %d characters, got %d", ErrBadSignalQuality, signalFieldLen, len(token))
	}
	if !strings.HasPrefix(token, signalPrefix) {
		return nil, fmt.Errorf("%w: missing %q prefix in %q", ErrBadSignalQuality, signalPrefix, token)
	}

	rssi, err := strconv.ParseUint(token[2:4], 16, 8)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid RSSI hex %q", ErrBadSignalQuality, token[2:4])
	}
	snr, err := strconv.ParseUint(token[4:6], 16, 8)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid SNR hex %q", ErrBadSignalQuality, token[4:6])
	}

	return &SignalQuality{RSSI: float64(rssi), SNR: float64(snr)}, nil
}

// parsePayload converts the 16-character hex token into PayloadSize raw
// bytes, left to right. A non-hex character reports its position.
func parsePayload(token string) ([]byte, error) {
	if len(token) != PayloadHexLen {
		return nil, fmt.Errorf("%w: expected %d hex characters, got %d", ErrBadPayloadLength, PayloadHexLen, len(token))
	}

	payload := make([]byte, 0, PayloadSize)
	for i := 0; i < PayloadHexLen; i += 2 {
		b, err := strconv.ParseUint(token[i:i+2], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: %q at position %d-%d", ErrBadHexDigit, token[i:i+2], i, i+1)
		}
		payload = append(payload, byte(b))
	}

	return payload, nil
}
