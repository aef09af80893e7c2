package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	resumeIngestTotal       atomic.Uint64
	resumeIngestFailedTotal atomic.Uint64

	matchRunStartedTotal   atomic.Uint64
	matchRunCompletedTotal atomic.Uint64
	matchRunFailedTotal    atomic.Uint64

	matchRunDuration = newHistogram([]float64{250, 500, 1000, 2000, 5000, 10000, 30000, 60000, 120000})
)

// IncResumeIngested increments the resume ingestion counter.
func IncResumeIngested() {
	resumeIngestTotal.Add(1)
}

// IncResumeIngestFailed increments the failed ingestion counter.
func IncResumeIngestFailed() {
	resumeIngestFailedTotal.Add(1)
}

// IncMatchRunStarted increments the auto-match run counter.
func IncMatchRunStarted() {
	matchRunStartedTotal.Add(1)
}

// IncMatchRunCompleted increments the completed run counter.
func IncMatchRunCompleted() {
	matchRunCompletedTotal.Add(1)
}

// IncMatchRunFailed increments the failed run counter.
func IncMatchRunFailed() {
	matchRunFailedTotal.Add(1)
}

// ObserveMatchRunDurationMs records an auto-match run duration in milliseconds.
func ObserveMatchRunDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	matchRunDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "resume_ingest_total", "Total resume uploads ingested", resumeIngestTotal.Load())
	writeCounter(&buf, "resume_ingest_failed_total", "Total resume uploads persisted as failed", resumeIngestFailedTotal.Load())
	writeCounter(&buf, "match_run_started_total", "Total auto-match runs started", matchRunStartedTotal.Load())
	writeCounter(&buf, "match_run_completed_total", "Total auto-match runs completed", matchRunCompletedTotal.Load())
	writeCounter(&buf, "match_run_failed_total", "Total auto-match runs failed", matchRunFailedTotal.Load())
	writeHistogram(&buf, "match_run_duration_ms", "Auto-match run duration in milliseconds", matchRunDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	for i, bound := range snap.buckets {
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), snap.counts[i])
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
