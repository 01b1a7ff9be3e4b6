// ============================================================================
// gopool Telemetry - Prometheus Monitoring
// ============================================================================
//
// Package: internal/telemetry
// File: telemetry.go
// Purpose: Collect and expose worker pool metrics for Prometheus monitoring
//
// Monitoring Philosophy:
//   Based on RED (Rate, Errors, Duration) and USE (Utilization, Saturation, Errors)
//   Provides comprehensive dispatcher/worker observability
//
// Metric Categories:
//
//   1. Task Counters - Cumulative, monotonically increasing:
//      - pool_tasks_scheduled_total: Total one-shot tasks submitted to the ready queue
//      - pool_tasks_completed_total: Total tasks that returned normally
//      - pool_tasks_panicked_total: Total tasks that panicked
//      - pool_tasks_aborted_total: Total tasks aborted by shutdown
//      - pool_periodic_runs_total: Total periodic task invocations
//
//   2. Performance Metrics (Histogram) - Distribution stats:
//      - pool_task_latency_seconds: Task run-time distribution
//        * Buckets: the Prometheus client's default bucket ladder
//        * For SLA monitoring and task run-time analysis
//
//   3. Status Metrics (Gauge) - Instantaneous values:
//      - pool_queue_depth: Current length of the ready queue
//      - pool_timer_depth: Current number of pending periodic tasks
//      - pool_active_workers: Workers currently running a task
//
// Use Cases:
//
//   Alerting:
//   - pool_task_latency_seconds > 5s     → scheduling or task regression
//   - pool_tasks_panicked_total rate     → task code is crashing
//   - pool_queue_depth continuous growth → insufficient worker count
//
//   Capacity Planning:
//   - pool_tasks_completed_total / time → throughput trends
//   - pool_active_workers / pool size   → worker utilization
//   - pool_queue_depth peaks            → required worker count
//
// Prometheus Query Examples:
//
//   # Tasks per minute
//   rate(pool_tasks_completed_total[1m])
//
//   # 95th percentile task latency
//   histogram_quantile(0.95, pool_task_latency_seconds_bucket)
//
//   # Panic rate
//   rate(pool_tasks_panicked_total[5m]) / rate(pool_tasks_scheduled_total[5m])
//
// Performance:
//   - Counter/Gauge operations are atomic, thread-safe
//   - Histogram calculates multiple buckets with overhead
//
// ============================================================================
// Telemetry Module
// Responsibility: collect and expose Prometheus metrics for a pool
// ============================================================================

package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector collects Prometheus metrics for a single pool instance.
//
// A nil *Collector is valid and every method on it is a no-op; the core
// dispatcher holds an optional collector and never needs to branch on
// whether telemetry was configured.
type Collector struct {
	tasksScheduled prometheus.Counter
	tasksCompleted prometheus.Counter
	tasksPanicked  prometheus.Counter
	tasksAborted   prometheus.Counter
	periodicRuns   prometheus.Counter

	taskLatency prometheus.Histogram

	queueDepth    prometheus.Gauge
	timerDepth    prometheus.Gauge
	activeWorkers prometheus.Gauge
}

// NewCollector creates a collector labeled with the given pool name and
// registers its metrics against reg. A nil registerer falls back to the
// Prometheus default registry.
func NewCollector(pool string, reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	constLabels := prometheus.Labels{"pool": pool}

	c := &Collector{
		tasksScheduled: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "pool_tasks_scheduled_total",
			Help:        "Total number of one-shot tasks submitted to the ready queue.",
			ConstLabels: constLabels,
		}),
		tasksCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "pool_tasks_completed_total",
			Help:        "Total number of tasks that returned normally.",
			ConstLabels: constLabels,
		}),
		tasksPanicked: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "pool_tasks_panicked_total",
			Help:        "Total number of tasks that panicked.",
			ConstLabels: constLabels,
		}),
		tasksAborted: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "pool_tasks_aborted_total",
			Help:        "Total number of tasks aborted before running, typically by shutdown.",
			ConstLabels: constLabels,
		}),
		periodicRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "pool_periodic_runs_total",
			Help:        "Total number of periodic task invocations.",
			ConstLabels: constLabels,
		}),
		taskLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "pool_task_latency_seconds",
			Help:        "Task run-time distribution in seconds.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "pool_queue_depth",
			Help:        "Current length of the ready queue.",
			ConstLabels: constLabels,
		}),
		timerDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "pool_timer_depth",
			Help:        "Current number of pending periodic tasks.",
			ConstLabels: constLabels,
		}),
		activeWorkers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "pool_active_workers",
			Help:        "Number of workers currently running a task.",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(
		c.tasksScheduled,
		c.tasksCompleted,
		c.tasksPanicked,
		c.tasksAborted,
		c.periodicRuns,
		c.taskLatency,
		c.queueDepth,
		c.timerDepth,
		c.activeWorkers,
	)

	return c
}

// RecordScheduled records a task entering the ready queue.
func (c *Collector) RecordScheduled() {
	if c == nil {
		return
	}
	c.tasksScheduled.Inc()
}

// RecordCompleted records a task returning normally with its run-time.
func (c *Collector) RecordCompleted(latencySeconds float64) {
	if c == nil {
		return
	}
	c.tasksCompleted.Inc()
	c.taskLatency.Observe(latencySeconds)
}

// RecordPanicked records a task panicking, with its run-time up to the panic.
func (c *Collector) RecordPanicked(latencySeconds float64) {
	if c == nil {
		return
	}
	c.tasksPanicked.Inc()
	c.taskLatency.Observe(latencySeconds)
}

// RecordAborted records a task aborted before it ran.
func (c *Collector) RecordAborted() {
	if c == nil {
		return
	}
	c.tasksAborted.Inc()
}

// RecordPeriodicRun records one invocation of a periodic task.
func (c *Collector) RecordPeriodicRun() {
	if c == nil {
		return
	}
	c.periodicRuns.Inc()
}

// SetQueueDepth sets the current ready-queue length.
func (c *Collector) SetQueueDepth(n int) {
	if c == nil {
		return
	}
	c.queueDepth.Set(float64(n))
}

// SetTimerDepth sets the current count of pending periodic tasks.
func (c *Collector) SetTimerDepth(n int) {
	if c == nil {
		return
	}
	c.timerDepth.Set(float64(n))
}

// SetActiveWorkers sets the number of workers currently running a task.
func (c *Collector) SetActiveWorkers(n int) {
	if c == nil {
		return
	}
	c.activeWorkers.Set(float64(n))
}
