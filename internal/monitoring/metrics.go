// Package monitoring keeps in-process counters and latency summaries
// for the generation pipelines and the HTTP surface. Everything lives
// in memory; the monitor endpoints render snapshots on demand.
package monitoring

import (
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/shortlist-hq/shortlist-api/internal/pipeline"
)

// maxSamples bounds the latency reservoir per pipeline. Oldest samples
// fall off first.
const maxSamples = 1024

type pipelineStats struct {
	Runs      int64
	Failures  int64
	Degraded  int64
	Retries   int64
	LatencyMs []int64
}

type routeStats struct {
	Requests  int64
	Errors    int64
	LatencyMs []int64
}

// Metrics aggregates pipeline runs and HTTP traffic. Safe for
// concurrent use.
type Metrics struct {
	mu        sync.Mutex
	startedAt time.Time
	pipelines map[string]*pipelineStats

	requests    int64
	errors      int64
	statusCodes map[int]int64
	routes      map[string]*routeStats
}

func NewMetrics() *Metrics {
	return &Metrics{
		startedAt:   time.Now(),
		pipelines:   make(map[string]*pipelineStats),
		statusCodes: make(map[int]int64),
		routes:      make(map[string]*routeStats),
	}
}

// RecordPipeline folds one pipeline result into the stats for name.
func (m *Metrics) RecordPipeline(name string, res *pipeline.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.pipelines[name]
	if st == nil {
		st = &pipelineStats{}
		m.pipelines[name] = st
	}
	st.Runs++
	if res.Failed {
		st.Failures++
	}
	st.Degraded += int64(len(res.Degraded))
	for _, attempts := range res.Attempts {
		if attempts > 1 {
			st.Retries += int64(attempts - 1)
		}
	}
	st.LatencyMs = append(st.LatencyMs, res.TotalMs)
	if len(st.LatencyMs) > maxSamples {
		st.LatencyMs = st.LatencyMs[len(st.LatencyMs)-maxSamples:]
	}
}

// RecordRequest folds one handled HTTP request into the traffic stats.
// route should be the method plus the registered path, not the raw URL,
// so parameterized routes aggregate together.
func (m *Metrics) RecordRequest(route string, status int, latencyMs int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests++
	if status >= 500 {
		m.errors++
	}
	m.statusCodes[status]++

	st := m.routes[route]
	if st == nil {
		st = &routeStats{}
		m.routes[route] = st
	}
	st.Requests++
	if status >= 500 {
		st.Errors++
	}
	st.LatencyMs = append(st.LatencyMs, latencyMs)
	if len(st.LatencyMs) > maxSamples {
		st.LatencyMs = st.LatencyMs[len(st.LatencyMs)-maxSamples:]
	}
}

// PipelineSnapshot is one pipeline's aggregate view.
type PipelineSnapshot struct {
	Name      string  `json:"name"`
	Runs      int64   `json:"runs"`
	Failures  int64   `json:"failures"`
	Degraded  int64   `json:"degraded"`
	Retries   int64   `json:"retries"`
	P50Ms     int64   `json:"p50_ms"`
	P95Ms     int64   `json:"p95_ms"`
	P99Ms     int64   `json:"p99_ms"`
	ErrorRate float64 `json:"error_rate"`
}

// Snapshot renders the current aggregates, sorted by pipeline name.
type Snapshot struct {
	UptimeSeconds int64              `json:"uptime_seconds"`
	Pipelines     []PipelineSnapshot `json:"pipelines"`
}

func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{UptimeSeconds: int64(time.Since(m.startedAt).Seconds())}
	names := make([]string, 0, len(m.pipelines))
	for name := range m.pipelines {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		st := m.pipelines[name]
		ps := PipelineSnapshot{
			Name:     name,
			Runs:     st.Runs,
			Failures: st.Failures,
			Degraded: st.Degraded,
			Retries:  st.Retries,
		}
		if st.Runs > 0 {
			ps.ErrorRate = float64(st.Failures) / float64(st.Runs)
		}
		ps.P50Ms = percentile(st.LatencyMs, 0.50)
		ps.P95Ms = percentile(st.LatencyMs, 0.95)
		ps.P99Ms = percentile(st.LatencyMs, 0.99)
		snap.Pipelines = append(snap.Pipelines, ps)
	}
	return snap
}

// RouteSnapshot is one endpoint's aggregate view.
type RouteSnapshot struct {
	Route    string `json:"route"`
	Requests int64  `json:"requests"`
	Errors   int64  `json:"errors"`
	P50Ms    int64  `json:"p50_ms"`
	P95Ms    int64  `json:"p95_ms"`
	P99Ms    int64  `json:"p99_ms"`
}

// InfoSnapshot is the service-level traffic view.
type InfoSnapshot struct {
	UptimeSeconds int64            `json:"uptime_seconds"`
	Requests      int64            `json:"requests"`
	Errors        int64            `json:"errors"`
	ErrorRate     float64          `json:"error_rate"`
	StatusCodes   map[string]int64 `json:"status_codes"`
	Routes        []RouteSnapshot  `json:"routes"`
}

func (m *Metrics) Info() InfoSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	info := InfoSnapshot{
		UptimeSeconds: int64(time.Since(m.startedAt).Seconds()),
		Requests:      m.requests,
		Errors:        m.errors,
		StatusCodes:   make(map[string]int64, len(m.statusCodes)),
	}
	if m.requests > 0 {
		info.ErrorRate = float64(m.errors) / float64(m.requests)
	}
	for code, count := range m.statusCodes {
		info.StatusCodes[strconv.Itoa(code)] = count
	}

	routes := make([]string, 0, len(m.routes))
	for route := range m.routes {
		routes = append(routes, route)
	}
	sort.Strings(routes)
	for _, route := range routes {
		st := m.routes[route]
		info.Routes = append(info.Routes, RouteSnapshot{
			Route:    route,
			Requests: st.Requests,
			Errors:   st.Errors,
			P50Ms:    percentile(st.LatencyMs, 0.50),
			P95Ms:    percentile(st.LatencyMs, 0.95),
			P99Ms:    percentile(st.LatencyMs, 0.99),
		})
	}
	return info
}

func percentile(samples []int64, q float64) int64 {
	if len(samples) == 0 {
		return 0
	}
	sorted := make([]int64, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	idx := int(q * float64(len(sorted)-1))
	return sorted[idx]
}
