// Package monitor reports on the running service: Prometheus domain counters and a
// point-in-time system snapshot for the admin console.
package monitor

import (
	"context"
	"database/sql"
	"runtime"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"stallhub/internal/cache"
)

// DB is the part of *sql.DB the monitor inspects.
type DB interface {
	PingContext(ctx context.Context) error
	Stats() sql.DBStats
}

// RuntimeStats describes the Go runtime.
type RuntimeStats struct {
	GoVersion      string `json:"go_version"`
	NumCPU         int    `json:"num_cpu"`
	Goroutines     int    `json:"goroutines"`
	HeapAllocBytes uint64 `json:"heap_alloc_bytes"`
	HeapObjects    uint64 `json:"heap_objects"`
	SysBytes       uint64 `json:"sys_bytes"`
	NumGC          uint32 `json:"num_gc"`
}

// DatabaseStats describes the connection pool and its reachability.
type DatabaseStats struct {
	Status          string  `json:"status"`
	PingMillis      float64 `json:"ping_ms"`
	OpenConnections int     `json:"open_connections"`
	InUse           int     `json:"in_use"`
	Idle            int     `json:"idle"`
	WaitCount       int64   `json:"wait_count"`
	WaitMillis      int64   `json:"wait_ms"`
	Error           string  `json:"error,omitempty"`
}

// RequestStats are totals summed from http_requests_total.
type RequestStats struct {
	Total        float64 `json:"total"`
	ClientErrors float64 `json:"client_errors"`
	ServerErrors float64 `json:"server_errors"`
}

// Snapshot is the system view shown on the admin console.
type Snapshot struct {
	Status        string        `json:"status"`
	StartedAt     time.Time     `json:"started_at"`
	UptimeSeconds float64       `json:"uptime_seconds"`
	Runtime       RuntimeStats  `json:"runtime"`
	Database      DatabaseStats `json:"database"`
	Cache         cache.Stats   `json:"cache"`
	Requests      RequestStats  `json:"requests"`
}

// Monitor builds snapshots. Any dependency may be nil; the matching section is then left empty.
type Monitor struct {
	started  time.Time
	db       DB
	cache    *cache.Manager
	gatherer prometheus.Gatherer
	now      func() time.Time
}

// New returns a Monitor that counts uptime from now.
func New(db DB, c *cache.Manager, g prometheus.Gatherer) *Monitor {
	return &Monitor{started: time.Now(), db: db, cache: c, gatherer: g, now: time.Now}
}

// Snapshot collects the current state. Status is "degraded" when the database ping fails.
func (m *Monitor) Snapshot(ctx context.Context) Snapshot {
	s := Snapshot{
		Status:        "ok",
		StartedAt:     m.started,
		UptimeSeconds: m.now().Sub(m.started).Seconds(),
		Runtime:       runtimeStats(),
	}

	if m.db != nil {
		s.Database = m.databaseStats(ctx)
		if s.Database.Status != "ok" {
			s.Status = "degraded"
		}
	}
	if m.cache != nil {
		s.Cache = m.cache.Stats()
	}
	if m.gatherer != nil {
		s.Requests = m.requestStats()
	}
	return s
}

func runtimeStats() RuntimeStats {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return RuntimeStats{
		GoVersion:      runtime.Version(),
		NumCPU:         runtime.NumCPU(),
		Goroutines:     runtime.NumGoroutine(),
		HeapAllocBytes: ms.HeapAlloc,
		HeapObjects:    ms.HeapObjects,
		SysBytes:       ms.Sys,
		NumGC:          ms.NumGC,
	}
}

func (m *Monitor) databaseStats(ctx context.Context) DatabaseStats {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := m.db.PingContext(ctx)
	elapsed := time.Since(start)

	st := m.db.Stats()
	out := DatabaseStats{
		Status:          "ok",
		PingMillis:      float64(elapsed.Microseconds()) / 1000,
		OpenConnections: st.OpenConnections,
		InUse:           st.InUse,
		Idle:            st.Idle,
		WaitCount:       st.WaitCount,
		WaitMillis:      st.WaitDuration.Milliseconds(),
	}
	if err != nil {
		out.Status = "unavailable"
		out.Error = err.Error()
	}
	return out
}

func (m *Monitor) requestStats() RequestStats {
	var out RequestStats
	mfs, err := m.gatherer.Gather()
	if err != nil {
		return out
	}
	for _, mf := range mfs {
		if mf.GetName() != "http_requests_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			v := metric.GetCounter().GetValue()
			out.Total += v
			for _, lp := range metric.GetLabel() {
				if lp.GetName() != "status" {
					continue
				}
				switch {
				case strings.HasPrefix(lp.GetValue(), "4"):
					out.ClientErrors += v
				case strings.HasPrefix(lp.GetValue(), "5"):
					out.ServerErrors += v
				}
			}
		}
	}
	return out
}
