package common

import (
	"io"
	"time"

	"github.com/VictoriaMetrics/metrics"
)

// ServerMetrics holds the metrics of the connection dispatcher.
// All methods are safe to call on a nil receiver, which disables recording.
type ServerMetrics struct {
	set *metrics.Set

	accepted     *metrics.Counter
	reaped       *metrics.Counter
	failed       *metrics.Counter
	rejected     *metrics.Counter
	active       *metrics.Counter
	requestSize  *metrics.Histogram
	responseSize *metrics.Histogram
	processing   *metrics.Histogram
	lifetime     *metrics.Histogram
}

// NewServerMetrics creates a new isolated metrics set for one server
func NewServerMetrics() *ServerMetrics {
	s := metrics.NewSet()
	return &ServerMetrics{
		set:          s,
		accepted:     s.NewCounter("sfc_connections_accepted_total"),
		reaped:       s.NewCounter("sfc_connections_reaped_total"),
		failed:       s.NewCounter("sfc_connections_failed_total"),
		rejected:     s.NewCounter("sfc_frames_rejected_total"),
		active:       s.NewCounter("sfc_connections_active"),
		requestSize:  s.NewHistogram("sfc_request_bytes"),
		responseSize: s.NewHistogram("sfc_response_bytes"),
		processing:   s.NewHistogram("sfc_processing_seconds"),
		lifetime:     s.NewHistogram("sfc_connection_lifetime_seconds"),
	}
}

// ConnectionAccepted records a new connection
func (m *ServerMetrics) ConnectionAccepted() {
	if m == nil {
		return
	}
	m.accepted.Inc()
	m.active.Inc()
}

// ConnectionFailed records a connection that ended with an error
func (m *ServerMetrics) ConnectionFailed() {
	if m == nil {
		return
	}
	m.failed.Inc()
}

// FrameRejected records a frame rejected because of its declared length
func (m *ServerMetrics) FrameRejected() {
	if m == nil {
		return
	}
	m.rejected.Inc()
}

// ConnectionReaped records a finished connection collected by the reaper
func (m *ServerMetrics) ConnectionReaped(started time.Time) {
	if m == nil {
		return
	}
	m.reaped.Inc()
	m.active.Dec()
	m.lifetime.Update(time.Since(started).Seconds())
}

// RequestProcessed records the sizes of one exchange and its processing time
func (m *ServerMetrics) RequestProcessed(reqBytes, respBytes int, took time.Duration) {
	if m == nil {
		return
	}
	m.requestSize.Update(float64(reqBytes))
	m.responseSize.Update(float64(respBytes))
	m.processing.Update(took.Seconds())
}

// Accepted returns the number of accepted connections
func (m *ServerMetrics) Accepted() uint64 {
	if m == nil {
		return 0
	}
	return m.accepted.Get()
}

// Reaped returns the number of reaped connections
func (m *ServerMetrics) Reaped() uint64 {
	if m == nil {
		return 0
	}
	return m.reaped.Get()
}

// WritePrometheus writes all metrics plus process metrics in Prometheus text format
func (m *ServerMetrics) WritePrometheus(w io.Writer) {
	if m == nil {
		return
	}
	m.set.WritePrometheus(w)
	metrics.WriteProcessMetrics(w)
}
