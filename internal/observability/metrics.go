package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	framesDecoded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "camrx",
			Subsystem: "decode",
			Name:      "frames_total",
			Help:      "Fully validated frames decoded and published.",
		},
	)
	framingErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "camrx",
			Subsystem: "decode",
			Name:      "framing_errors_total",
			Help:      "Frame attempts aborted during resynchronization.",
		},
		[]string{"reason"},
	)
	checksumFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "camrx",
			Subsystem: "decode",
			Name:      "checksum_failures_total",
			Help:      "Frames with a valid envelope but a CRC-8 mismatch.",
		},
	)
	bytesDiscarded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "camrx",
			Subsystem: "decode",
			Name:      "bytes_discarded_total",
			Help:      "Garbage bytes dropped while hunting for a start marker.",
		},
	)
	recordsTaken = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "camrx",
			Subsystem: "store",
			Name:      "takes_total",
			Help:      "Take calls on the latest-value store.",
		},
		[]string{"hit"},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "camrx",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "camrx",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			framesDecoded,
			framingErrors,
			checksumFailures,
			bytesDiscarded,
			recordsTaken,
			httpRequests,
			httpDuration,
		)
	})
}

func RecordFrameDecoded() {
	framesDecoded.Inc()
}

func RecordFramingError(reason string) {
	framingErrors.WithLabelValues(reason).Inc()
}

func RecordChecksumFailure() {
	checksumFailures.Inc()
}

func RecordBytesDiscarded(n int) {
	if n > 0 {
		bytesDiscarded.Add(float64(n))
	}
}

func RecordTake(hit bool) {
	recordsTaken.WithLabelValues(strconv.FormatBool(hit)).Inc()
}

func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, path, code).Inc()
	httpDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
}
