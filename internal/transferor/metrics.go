package transferor

import (
	"github.com/prometheus/client_golang/prometheus"
)

const NAMESPACE = "gridwm"
const SUBSYSTEM = "transferor"

type TransferorMetrics struct {
	// Number of workflows planned successfully.
	workflowsPlanned prometheus.Counter
	// Number of workflows that failed planning.
	planningFailures prometheus.Counter
	// Number of chunks produced per plan.
	chunksPerPlan prometheus.Histogram
	// Size in bytes of each produced chunk.
	chunkSizeBytes prometheus.Histogram
}

func NewTransferorMetrics(registerer prometheus.Registerer) *TransferorMetrics {
	workflowsPlanned := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: NAMESPACE,
			Subsystem: SUBSYSTEM,
			Name:      "workflows_planned_total",
			Help:      "Number of workflows planned successfully.",
		},
	)

	planningFailures := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: NAMESPACE,
			Subsystem: SUBSYSTEM,
			Name:      "planning_failures_total",
			Help:      "Number of workflows that failed planning.",
		},
	)

	chunksPerPlan := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: NAMESPACE,
			Subsystem: SUBSYSTEM,
			Name:      "chunks_per_plan",
			Help:      "Number of chunks produced per planned workflow.",
			Buckets:   []float64{1, 2, 4, 8, 16, 32},
		},
	)

	chunkSizeBytes := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: NAMESPACE,
			Subsystem: SUBSYSTEM,
			Name:      "chunk_size_bytes",
			Help:      "Size in bytes of each produced chunk.",
			Buckets:   prometheus.ExponentialBuckets(1e9, 4, 10),
		},
	)

	registerer.MustRegister(workflowsPlanned, planningFailures, chunksPerPlan, chunkSizeBytes)

	return &TransferorMetrics{
		workflowsPlanned: workflowsPlanned,
		planningFailures: planningFailures,
		chunksPerPlan:    chunksPerPlan,
		chunkSizeBytes:   chunkSizeBytes,
	}
}

func (m *TransferorMetrics) ReportPlan(sizes []int64) {
	m.workflowsPlanned.Inc()
	m.chunksPerPlan.Observe(float64(len(sizes)))
	for _, size := range sizes {
		m.chunkSizeBytes.Observe(float64(size))
	}
}

func (m *TransferorMetrics) ReportFailure() {
	m.planningFailures.Inc()
}
