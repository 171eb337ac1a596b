package transferor

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransferorMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewTransferorMetrics(registry)

	metrics.ReportPlan([]int64{70, 80})
	metrics.ReportFailure()

	families, err := registry.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 4)

	byName := map[string]float64{}
	for _, family := range families {
		if family.GetType() == 0 { // counter
			byName[family.GetName()] = family.GetMetric()[0].GetCounter().GetValue()
		}
	}
	assert.Equal(t, float64(1), byName["gridwm_transferor_workflows_planned_total"])
	assert.Equal(t, float64(1), byName["gridwm_transferor_planning_failures_total"])
}
