// Package metrics exposes Prometheus collectors and the health snapshot
// served on /health.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SourceFetchTotal counts source fetches by source and outcome.
	SourceFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "telconews",
			Name:      "source_fetch_total",
			Help:      "Upstream source fetches by outcome",
		},
		[]string{"source", "status"},
	)

	// SourceFetchDuration measures upstream source latency.
	SourceFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "telconews",
			Name:      "source_fetch_duration_seconds",
			Help:      "Duration of upstream source fetches in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	// ArticlesFiltered counts articles dropped per pipeline stage.
	ArticlesFiltered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "telconews",
			Name:      "articles_filtered_total",
			Help:      "Articles removed by each filter stage",
		},
		[]string{"stage"},
	)

	// LinksChecked counts URL repair outcomes.
	LinksChecked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "telconews",
			Name:      "links_total",
			Help:      "Article links by repair outcome",
		},
		[]string{"status"},
	)
)

// RecordFetch records one source fetch.
func RecordFetch(source string, err error, duration time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	SourceFetchTotal.WithLabelValues(source, status).Inc()
	SourceFetchDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordFiltered records n articles dropped at stage.
func RecordFiltered(stage string, n int) {
	if n > 0 {
		ArticlesFiltered.WithLabelValues(stage).Add(float64(n))
	}
}

// RecordLink records the repair outcome of one article link.
func RecordLink(status string) {
	LinksChecked.WithLabelValues(status).Inc()
}

// Status is the process health snapshot.
type Status struct {
	mu sync.RWMutex

	LastProcessingTime time.Duration
	LastRunTime        time.Time
	LastErrorTime      time.Time
	LastError          string
	IsHealthy          bool
}

var Global = &Status{IsHealthy: true}

func (s *Status) SetLastRun(duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastRunTime = time.Now()
	s.LastProcessingTime = duration
	s.IsHealthy = true
}

func (s *Status) SetError(err string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastError = err
	s.LastErrorTime = time.Now()
	s.IsHealthy = false
}

func (s *Status) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"last_processing_time_ms": s.LastProcessingTime.Milliseconds(),
		"last_run_time":           formatTime(s.LastRunTime),
		"last_error_time":         formatTime(s.LastErrorTime),
		"last_error":              s.LastError,
		"is_healthy":              s.IsHealthy,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
