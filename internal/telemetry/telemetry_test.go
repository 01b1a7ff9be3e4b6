package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

func TestNewCollector(t *testing.T) {
	reg := newTestRegistry()
	collector := NewCollector("test-pool", reg)

	assert.NotNil(t, collector, "NewCollector should return a non-nil collector")
	assert.NotNil(t, collector.tasksScheduled, "tasksScheduled counter should be initialized")
	assert.NotNil(t, collector.tasksCompleted, "tasksCompleted counter should be initialized")
	assert.NotNil(t, collector.tasksPanicked, "tasksPanicked counter should be initialized")
	assert.NotNil(t, collector.tasksAborted, "tasksAborted counter should be initialized")
	assert.NotNil(t, collector.periodicRuns, "periodicRuns counter should be initialized")
	assert.NotNil(t, collector.taskLatency, "taskLatency histogram should be initialized")
	assert.NotNil(t, collector.queueDepth, "queueDepth gauge should be initialized")
	assert.NotNil(t, collector.timerDepth, "timerDepth gauge should be initialized")
	assert.NotNil(t, collector.activeWorkers, "activeWorkers gauge should be initialized")
}

func TestRecordScheduled(t *testing.T) {
	collector := NewCollector("test-pool", newTestRegistry())

	assert.NotPanics(t, func() {
		collector.RecordScheduled()
	}, "RecordScheduled should not panic")

	for i := 0; i < 5; i++ {
		collector.RecordScheduled()
	}
}

func TestRecordCompleted(t *testing.T) {
	collector := NewCollector("test-pool", newTestRegistry())

	latencies := []float64{0.001, 0.01, 0.1, 1.0, 5.0}

	for _, latency := range latencies {
		assert.NotPanics(t, func() {
			collector.RecordCompleted(latency)
		}, "RecordCompleted should not panic with latency %f", latency)
	}
}

func TestRecordPanicked(t *testing.T) {
	collector := NewCollector("test-pool", newTestRegistry())

	assert.NotPanics(t, func() {
		collector.RecordPanicked(0.05)
	}, "RecordPanicked should not panic")

	for i := 0; i < 3; i++ {
		collector.RecordPanicked(0.01)
	}
}

func TestRecordAborted(t *testing.T) {
	collector := NewCollector("test-pool", newTestRegistry())

	assert.NotPanics(t, func() {
		collector.RecordAborted()
	}, "RecordAborted should not panic")

	for i := 0; i < 2; i++ {
		collector.RecordAborted()
	}
}

func TestRecordPeriodicRun(t *testing.T) {
	collector := NewCollector("test-pool", newTestRegistry())

	assert.NotPanics(t, func() {
		collector.RecordPeriodicRun()
	}, "RecordPeriodicRun should not panic")
}

func TestSetQueueAndTimerDepth(t *testing.T) {
	collector := NewCollector("test-pool", newTestRegistry())

	testCases := []struct {
		name    string
		queue   int
		timer   int
		workers int
	}{
		{"zero values", 0, 0, 0},
		{"normal values", 10, 5, 2},
		{"high queue depth", 100, 8, 4},
		{"high timer depth", 5, 50, 1},
		{"equal values", 20, 20, 20},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				collector.SetQueueDepth(tc.queue)
				collector.SetTimerDepth(tc.timer)
				collector.SetActiveWorkers(tc.workers)
			}, "Set* gauges should not panic")
		})
	}
}

func TestConcurrentMetricUpdates(t *testing.T) {
	collector := NewCollector("test-pool", newTestRegistry())

	// Prometheus metrics should be thread-safe.
	done := make(chan bool, 100)

	for i := 0; i < 100; i++ {
		go func() {
			collector.RecordScheduled()
			collector.RecordCompleted(0.1)
			collector.SetQueueDepth(10)
			collector.SetActiveWorkers(5)
			done <- true
		}()
	}

	for i := 0; i < 100; i++ {
		<-done
	}
}

func TestNilCollectorIsNoOp(t *testing.T) {
	var collector *Collector

	assert.NotPanics(t, func() {
		collector.RecordScheduled()
		collector.RecordCompleted(1.0)
		collector.RecordPanicked(1.0)
		collector.RecordAborted()
		collector.RecordPeriodicRun()
		collector.SetQueueDepth(3)
		collector.SetTimerDepth(1)
		collector.SetActiveWorkers(2)
	}, "a nil collector must be safe to call")
}

func TestCollectorIsolation(t *testing.T) {
	reg := newTestRegistry()

	collector1 := NewCollector("pool-a", reg)
	require.NotNil(t, collector1)

	// Registering a second collector under the same pool label on the same
	// registry panics on duplicate registration.
	assert.Panics(t, func() {
		NewCollector("pool-a", reg)
	}, "registering a second collector under the same label should panic")

	// A different pool label on the same registry is fine.
	assert.NotPanics(t, func() {
		NewCollector("pool-b", reg)
	}, "a distinct pool label should register cleanly")
}

func TestMetricOperationSequence(t *testing.T) {
	collector := NewCollector("test-pool", newTestRegistry())

	assert.NotPanics(t, func() {
		// 1. Task scheduled.
		collector.RecordScheduled()
		collector.SetQueueDepth(1)

		// 2. Task starts running.
		collector.SetActiveWorkers(1)
		collector.SetQueueDepth(0)

		// 3. Task completes.
		collector.RecordCompleted(0.5)
		collector.SetActiveWorkers(0)
	}, "a full task lifecycle should not panic")
}

func TestMetricOperationWithPanic(t *testing.T) {
	collector := NewCollector("test-pool", newTestRegistry())

	assert.NotPanics(t, func() {
		collector.RecordScheduled()
		collector.SetActiveWorkers(1)
		collector.RecordPanicked(0.02)
		collector.SetActiveWorkers(0)
	}, "a panicking task lifecycle should not panic the collector itself")
}

func TestZeroAndNegativeValues(t *testing.T) {
	collector := NewCollector("test-pool", newTestRegistry())

	assert.NotPanics(t, func() {
		collector.RecordCompleted(0.0)   // zero latency
		collector.SetQueueDepth(0)       // empty queue
		collector.SetQueueDepth(-1)      // negative values (shouldn't happen)
		collector.SetActiveWorkers(-1)   // negative values (shouldn't happen)
	}, "edge case values should not panic")
}
