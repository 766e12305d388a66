package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric summarizes the work a search agent performed since its collector started.
type SearchMetric struct {
	Duration   time.Duration
	Expansions int // Nodes expanded (cache misses that recursed or scored a terminal)
	CacheHits  int
	Prunes     int // Sibling scans cut short by alpha-beta
	Scans      int // Children inspected by the move selector
	CacheSize  int
}

type Collector interface {
	Start()
	AddExpansion()
	AddCacheHit()
	AddPrune()
	AddScan()
	Complete(cacheSize int) SearchMetric
}

type collector struct {
	startTime  time.Time
	expansions atomic.Int64
	cacheHits  atomic.Int64
	prunes     atomic.Int64
	scans      atomic.Int64
}

func NewCollector() Collector {
	c := &collector{}
	c.Start()
	return c
}

func (m *collector) Start() {
	m.startTime = time.Now()
}

func (m *collector) AddExpansion() {
	m.expansions.Add(1)
}

func (m *collector) AddCacheHit() {
	m.cacheHits.Add(1)
}

func (m *collector) AddPrune() {
	m.prunes.Add(1)
}

func (m *collector) AddScan() {
	m.scans.Add(1)
}

func (m *collector) Complete(cacheSize int) SearchMetric {
	return SearchMetric{
		Duration:   time.Since(m.startTime),
		Expansions: int(m.expansions.Load()),
		CacheHits:  int(m.cacheHits.Load()),
		Prunes:     int(m.prunes.Load()),
		Scans:      int(m.scans.Load()),
		CacheSize:  cacheSize,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()        {}
func (m *dummyCollector) AddExpansion() {}
func (m *dummyCollector) AddCacheHit()  {}
func (m *dummyCollector) AddPrune()     {}
func (m *dummyCollector) AddScan()      {}
func (m *dummyCollector) Complete(cacheSize int) SearchMetric {
	return SearchMetric{CacheSize: cacheSize}
}
