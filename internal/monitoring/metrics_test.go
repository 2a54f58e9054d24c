package monitoring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shortlist-hq/shortlist-api/internal/pipeline"
)

func TestRecordPipelineAggregates(t *testing.T) {
	m := NewMetrics()

	m.RecordPipeline("jd_analysis", &pipeline.Result{
		TotalMs:  120,
		Attempts: map[string]int{"jd_extract": 3},
	})
	m.RecordPipeline("jd_analysis", &pipeline.Result{
		TotalMs:  80,
		Failed:   true,
		Err:      errors.New("boom"),
		Degraded: []string{"repo_scoring"},
		Attempts: map[string]int{"jd_extract": 1},
	})

	snap := m.Snapshot()
	require.Len(t, snap.Pipelines, 1)
	ps := snap.Pipelines[0]
	assert.Equal(t, "jd_analysis", ps.Name)
	assert.Equal(t, int64(2), ps.Runs)
	assert.Equal(t, int64(1), ps.Failures)
	assert.Equal(t, int64(1), ps.Degraded)
	assert.Equal(t, int64(2), ps.Retries)
	assert.Equal(t, 0.5, ps.ErrorRate)
	assert.Equal(t, int64(80), ps.P50Ms)
}

func TestRecordRequestInfo(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("POST /api/v1/analyses", 201, 40)
	m.RecordRequest("POST /api/v1/analyses", 500, 10)
	m.RecordRequest("GET /health", 200, 1)

	info := m.Info()
	assert.Equal(t, int64(3), info.Requests)
	assert.Equal(t, int64(1), info.Errors)
	assert.InDelta(t, 1.0/3.0, info.ErrorRate, 1e-9)
	assert.Equal(t, int64(1), info.StatusCodes["500"])
	assert.Equal(t, int64(1), info.StatusCodes["201"])

	require.Len(t, info.Routes, 2)
	// sorted by route name
	assert.Equal(t, "GET /health", info.Routes[0].Route)
	assert.Equal(t, "POST /api/v1/analyses", info.Routes[1].Route)
	assert.Equal(t, int64(2), info.Routes[1].Requests)
	assert.Equal(t, int64(1), info.Routes[1].Errors)
}

func TestReservoirBounded(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < maxSamples+100; i++ {
		m.RecordRequest("GET /api/v1/analyses", 200, int64(i))
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	assert.Len(t, m.routes["GET /api/v1/analyses"].LatencyMs, maxSamples)
}
