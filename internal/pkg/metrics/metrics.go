// Package metrics 评论区的 Prometheus 指标
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultSuccess = "success"
	ResultDenied  = "denied"
	ResultError   = "error"
)

// CommentMetrics 评论操作计数与耗时
type CommentMetrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	eventsPublished   *prometheus.CounterVec
}

func NewCommentMetrics(registry prometheus.Registerer) (*CommentMetrics, error) {
	m := &CommentMetrics{
		operationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "studentquiz_comment_operations_total",
				Help: "Total comment area operations by operation and result",
			},
			[]string{"operation", "result"},
		),
		operationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "studentquiz_comment_operation_duration_seconds",
				Help:    "Comment area operation latency",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"operation"},
		),
		eventsPublished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "studentquiz_comment_events_published_total",
				Help: "Comment lifecycle events handed to the broker by action and status",
			},
			[]string{"action", "status"},
		),
	}

	for _, c := range []prometheus.Collector{m.operationsTotal, m.operationDuration, m.eventsPublished} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register comment metrics: %w", err)
		}
	}
	return m, nil
}

// RecordOperation m 为 nil 时不记录
func (m *CommentMetrics) RecordOperation(operation, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.operationsTotal.WithLabelValues(operation, result).Inc()
	m.operationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func (m *CommentMetrics) RecordEvent(action string, err error) {
	if m == nil {
		return
	}
	status := ResultSuccess
	if err != nil {
		status = ResultError
	}
	m.eventsPublished.WithLabelValues(action, status).Inc()
}
