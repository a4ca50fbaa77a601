// Package metrics provides in-memory statistics for a table build.
package metrics

import (
	"math"
	"sort"
	"sync"
	"time"
)

// StageMetrics holds aggregated timings for a single pipeline stage.
type StageMetrics struct {
	Count     int64
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
}

// StageSnapshot provides computed stats from raw stage metrics.
type StageSnapshot struct {
	Name        string
	Count       int64
	TotalTimeMs int64
	AvgTimeMs   float64
	MinTimeMs   int64
	MaxTimeMs   int64
}

// Snapshot represents the collected statistics at a point in time.
type Snapshot struct {
	ElapsedSeconds float64
	Stages         []StageSnapshot // sorted by name
	Counters       map[string]int64
}

// Stage names for the collector.
const (
	StageParseEquivalence = "parse_equivalence"
	StageParseStrokes     = "parse_strokes"
	StageSelect           = "select"
	StageWrite            = "write"
	StagePublish          = "publish"
	StageDownload         = "download"
)

// Counter names for the collector.
const (
	CounterEquivalenceLines     = "equivalence_lines"
	CounterEquivalenceMalformed = "equivalence_malformed"
	CounterVariantPairs         = "variant_pairs"
	CounterVariantsFiltered     = "variants_filtered"
	CounterStrokeLines          = "stroke_lines"
	CounterStrokeMalformed      = "stroke_malformed"
	CounterStrokeOutOfRange     = "stroke_out_of_range"
	CounterStrokeSimplified     = "stroke_simplified"
	CounterResolved             = "resolved"
	CounterUnresolved           = "unresolved"
	CounterAmbiguous            = "ambiguous"
	CounterUnlinkedTargets      = "unlinked_targets"
	CounterBytesDownloaded      = "bytes_downloaded"
)

// Collector aggregates in-memory statistics.
// All methods are thread-safe.
type Collector struct {
	mu        sync.RWMutex
	startTime time.Time
	stages    map[string]*StageMetrics
	counters  map[string]int64
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{
		startTime: time.Now(),
		stages:    make(map[string]*StageMetrics),
		counters:  make(map[string]int64),
	}
}

// getOrCreate returns existing metrics or creates new ones for a stage.
// Caller must hold write lock.
func (c *Collector) getOrCreate(stage string) *StageMetrics {
	m, ok := c.stages[stage]
	if !ok {
		m = &StageMetrics{MinTime: time.Duration(math.MaxInt64)}
		c.stages[stage] = m
	}
	return m
}

// RecordTiming records timing for a stage.
func (c *Collector) RecordTiming(stage string, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.getOrCreate(stage)
	m.Count++
	m.TotalTime += duration

	if duration < m.MinTime {
		m.MinTime = duration
	}
	if duration > m.MaxTime {
		m.MaxTime = duration
	}
}

// Time runs fn and records its duration under stage.
func (c *Collector) Time(stage string, fn func() error) error {
	start := time.Now()
	err := fn()
	c.RecordTiming(stage, time.Since(start))
	return err
}

// Add increments a named counter.
func (c *Collector) Add(counter string, n int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counters[counter] += n
}

// Counter returns the current value of a named counter.
func (c *Collector) Counter(counter string) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.counters[counter]
}

// snapshotStage creates a snapshot for a stage, returning false if no data.
func snapshotStage(name string, m *StageMetrics) (StageSnapshot, bool) {
	if m == nil || m.Count == 0 {
		return StageSnapshot{}, false
	}
	return StageSnapshot{
		Name:        name,
		Count:       m.Count,
		TotalTimeMs: m.TotalTime.Milliseconds(),
		AvgTimeMs:   float64(m.TotalTime.Milliseconds()) / float64(m.Count),
		MinTimeMs:   m.MinTime.Milliseconds(),
		MaxTimeMs:   m.MaxTime.Milliseconds(),
	}, true
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (c *Collector) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := Snapshot{
		ElapsedSeconds: time.Since(c.startTime).Seconds(),
		Counters:       make(map[string]int64, len(c.counters)),
	}
	for name, m := range c.stages {
		if s, ok := snapshotStage(name, m); ok {
			snap.Stages = append(snap.Stages, s)
		}
	}
	sort.Slice(snap.Stages, func(i, j int) bool { return snap.Stages[i].Name < snap.Stages[j].Name })
	for name, v := range c.counters {
		snap.Counters[name] = v
	}
	return snap
}

// Stage returns the snapshot of a single stage.
func (s Snapshot) Stage(name string) (StageSnapshot, bool) {
	for _, st := range s.Stages {
		if st.Name == name {
			return st, true
		}
	}
	return StageSnapshot{}, false
}
