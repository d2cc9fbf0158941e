package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMetrics_ObservePlan(t *testing.T) {
	m := New()

	m.ObservePlan(SourceComputed, 241, 2*time.Millisecond)
	m.ObservePlan(SourceCache, 241, 0)
	m.ObservePlan(SourceCache, 241, 0)

	body := scrape(t, m)
	assert.Contains(t, body, `wealthflow_planner_plans_total{source="computed"} 1`)
	assert.Contains(t, body, `wealthflow_planner_plans_total{source="cache"} 2`)
	assert.Contains(t, body, "wealthflow_planner_plan_duration_seconds_count 1")
	assert.Contains(t, body, "wealthflow_planner_plan_months_count 1")
}

func TestMetrics_Snapshots(t *testing.T) {
	m := New()

	m.SnapshotRecorded()
	m.SnapshotsPruned(3)

	body := scrape(t, m)
	assert.Contains(t, body, "wealthflow_snapshots_recorded_total 1")
	assert.Contains(t, body, "wealthflow_snapshots_pruned_total 3")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObservePlan(SourceComputed, 10, time.Second)
		m.SnapshotRecorded()
		m.SnapshotsPruned(1)
	})
}
