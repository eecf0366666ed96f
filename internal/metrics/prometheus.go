package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Ives-Natsume/botan-cw-decoder/internal/beacon"
	"github.com/Ives-Natsume/botan-cw-decoder/internal/cw"
)

// Metrics contains all Prometheus metrics for the beacon decoder
type Metrics struct {
	// Input metrics
	LinesReceived     prometheus.Counter
	FramesDecoded     prometheus.Counter
	DecodeErrors      *prometheus.CounterVec
	SignalQualitySeen prometheus.Counter

	// Last decoded analog channel values
	BatteryVoltage     prometheus.Gauge
	BatteryCurrent     prometheus.Gauge
	BatteryTemp        prometheus.Gauge
	BoardTemp          prometheus.Gauge
	CurrentConsumption prometheus.Gauge

	// CW fallback decoder metrics
	CWDecodes      prometheus.Counter
	CWDecodeErrors prometheus.Counter

	// HTTP API metrics
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPErrors          *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics() *Metrics {
	return &Metrics{
		LinesReceived: promauto.NewCounter(prometheus.CounterOpts{
			Name: "botan_lines_received_total",
			Help: "Total number of input lines received",
		}),
		FramesDecoded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "botan_frames_decoded_total",
			Help: "Total number of beacon frames decoded successfully",
		}),
		DecodeErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "botan_decode_errors_total",
			Help: "Total number of beacon decode failures by reason",
		}, []string{"reason"}),
		SignalQualitySeen: promauto.NewCounter(prometheus.CounterOpts{
			Name: "botan_signal_quality_fields_total",
			Help: "Total number of frames carrying the optional SI field",
		}),

		BatteryVoltage: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "botan_battery_voltage_volts",
			Help: "Battery voltage from the last decoded frame",
		}),
		BatteryCurrent: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "botan_battery_current_milliamps",
			Help: "Battery current from the last decoded frame",
		}),
		BatteryTemp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "botan_battery_temperature_celsius",
			Help: "Battery temperature from the last decoded frame",
		}),
		BoardTemp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "botan_board_temperature_celsius",
			Help: "Circuit board temperature from the last decoded frame",
		}),
		CurrentConsumption: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "botan_current_consumption_milliamps",
			Help: "Current consumption from the last decoded frame",
		}),

		CWDecodes: promauto.NewCounter(prometheus.CounterOpts{
			Name: "botan_cw_decodes_total",
			Help: "Total number of successful legacy CW decodes",
		}),
		CWDecodeErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "botan_cw_decode_errors_total",
			Help: "Total number of legacy CW decode failures",
		}),

		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "botan_http_requests_total",
			Help: "Total number of HTTP requests by method, endpoint and status",
		}, []string{"method", "endpoint", "status"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "botan_http_request_duration_seconds",
			Help:    "HTTP request duration by method and endpoint",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10), // 1ms to ~1s
		}, []string{"method", "endpoint"}),
		HTTPErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "botan_http_errors_total",
			Help: "Total number of HTTP error responses by method, endpoint and type",
		}, []string{"method", "endpoint", "error_type"}),
	}
}

// RecordFrame updates the success counters and channel gauges for a decoded
// frame.
func (m *Metrics) RecordFrame(frame *beacon.BeaconFrame, rec *beacon.TelemetryRecord) {
	m.FramesDecoded.Inc()
	if frame.Signal != nil {
		m.SignalQualitySeen.Inc()
	}

	m.BatteryVoltage.Set(rec.BatteryVoltage)
	m.BatteryCurrent.Set(rec.BatteryCurrent)
	m.BatteryTemp.Set(rec.BatteryTemp)
	m.BoardTemp.Set(rec.BoardTemp)
	m.CurrentConsumption.Set(rec.CurrentConsumption)
}

// RecordDecodeError counts a beacon decode failure under its taxonomy label.
func (m *Metrics) RecordDecodeError(err error) {
	m.DecodeErrors.WithLabelValues(ErrorReason(err)).Inc()
}

// RecordHTTPRequest records metrics for an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint, status string, duration float64) {
	m.HTTPRequests.WithLabelValues(method, endpoint, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordHTTPError records an HTTP error response
func (m *Metrics) RecordHTTPError(method, endpoint, errorType string) {
	m.HTTPErrors.WithLabelValues(method, endpoint, errorType).Inc()
}

// ErrorReason maps a decode error onto its stable metric label.
func ErrorReason(err error) string {
	switch {
	case errors.Is(err, beacon.ErrMalformedFrame):
		return "malformed_frame"
	case errors.Is(err, beacon.ErrBadHeader):
		return "bad_header"
	case errors.Is(err, beacon.ErrBadSignalQuality):
		return "bad_signal_quality"
	case errors.Is(err, beacon.ErrBadPayloadLength):
		return "bad_payload_length"
	case errors.Is(err, beacon.ErrBadHexDigit):
		return "bad_hex_digit"
	case errors.Is(err, beacon.ErrInvalidByteCount):
		return "invalid_byte_count"
	case errors.Is(err, beacon.ErrOutOfDomain):
		return "out_of_domain"
	case errors.Is(err, cw.ErrUnknownPattern):
		return "unknown_pattern"
	default:
		return "other"
	}
}
