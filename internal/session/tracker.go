package session

import (
	"sync"
	"time"

	"github.com/Ives-Natsume/botan-cw-decoder/internal/beacon"
	"github.com/Ives-Natsume/botan-cw-decoder/internal/metrics"
)

// LastFrame is a snapshot of the most recent successful decode.
type LastFrame struct {
	DecodedAt time.Time              `json:"decoded_at"`
	Signal    *beacon.SignalQuality  `json:"signal,omitempty"`
	Telemetry beacon.TelemetryRecord `json:"telemetry"`
}

// Info is a point-in-time view of the tracker, served by the HTTP stats
// endpoint and logged at shutdown.
type Info struct {
	StartTime      time.Time         `json:"start_time"`
	Uptime         string            `json:"uptime"`
	LinesReceived  uint64            `json:"lines_received"`
	FramesDecoded  uint64            `json:"frames_decoded"`
	DecodeErrors   uint64            `json:"decode_errors"`
	ErrorsByReason map[string]uint64 `json:"errors_by_reason"`
	CWDecodes      uint64            `json:"cw_decodes"`
	CWErrors       uint64            `json:"cw_errors"`
	LastFrame      *LastFrame        `json:"last_frame,omitempty"`
}

// Tracker accumulates per-run decode statistics.
type Tracker struct {
	mu sync.RWMutex

	startTime      time.Time
	linesReceived  uint64
	framesDecoded  uint64
	decodeErrors   uint64
	errorsByReason map[string]uint64
	cwDecodes      uint64
	cwErrors       uint64
	lastFrame      *LastFrame
}

// NewTracker returns an empty tracker with the start time set to now.
func NewTracker() *Tracker {
	return &Tracker{
		startTime:      time.Now(),
		errorsByReason: make(map[string]uint64),
	}
}

// RecordLine counts one received input line.
func (t *Tracker) RecordLine() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.linesReceived++
}

// RecordFrame counts a successful beacon decode and snapshots the result.
func (t *Tracker) RecordFrame(frame *beacon.BeaconFrame, rec *beacon.TelemetryRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.framesDecoded++
	t.lastFrame = &LastFrame{
		DecodedAt: time.Now(),
		Signal:    frame.Signal,
		Telemetry: *rec,
	}
}

// RecordDecodeError counts a beacon decode failure under its taxonomy reason.
func (t *Tracker) RecordDecodeError(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.decodeErrors++
	t.errorsByReason[metrics.ErrorReason(err)]++
}

// RecordCWDecode counts a legacy CW decode attempt.
func (t *Tracker) RecordCWDecode(ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if ok {
		t.cwDecodes++
	} else {
		t.cwErrors++
	}
}

// Snapshot returns a copy of the current statistics.
func (t *Tracker) Snapshot() Info {
	t.mu.RLock()
	defer t.mu.RUnlock()

	reasons := make(map[string]uint64, len(t.errorsByReason))
	for k, v := range t.errorsByReason {
		reasons[k] = v
	}

	info := Info{
		StartTime:      t.startTime,
		Uptime:         time.Since(t.startTime).String(),
		LinesReceived:  t.linesReceived,
		FramesDecoded:  t.framesDecoded,
		DecodeErrors:   t.decodeErrors,
		ErrorsByReason: reasons,
		CWDecodes:      t.cwDecodes,
		CWErrors:       t.cwErrors,
	}
	if t.lastFrame != nil {
		lf := *t.lastFrame
		info.LastFrame = &lf
	}

	return info
}
