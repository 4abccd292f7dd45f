package searcher

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Algorithm   string
	StartTime   time.Time
	Duration    time.Duration
	Depth       int   // Deepest fully completed depth
	Nodes       int64 // States visited
	Evaluations int64 // Evaluator calls at the depth horizon
	Cutoffs     int64 // Alpha-beta prunes
	TimedOut    bool
}

type Collector interface {
	Start(algorithm string)
	AddNode()
	AddEvaluation()
	AddCutoff()
	CompleteDepth(depth int)
	TimeOut()
	Complete() SearchMetric
}

type metricsCollector struct {
	algorithm   string
	startTime   time.Time
	depth       atomic.Int32
	nodes       atomic.Int64
	evaluations atomic.Int64
	cutoffs     atomic.Int64
	timedOut    atomic.Bool
}

func NewMetricsCollector() Collector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start(algorithm string) {
	m.algorithm = algorithm
	m.startTime = time.Now()
}

func (m *metricsCollector) AddNode() {
	m.nodes.Add(1)
}

func (m *metricsCollector) AddEvaluation() {
	m.evaluations.Add(1)
}

func (m *metricsCollector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *metricsCollector) CompleteDepth(depth int) {
	m.depth.Store(int32(depth))
}

func (m *metricsCollector) TimeOut() {
	m.timedOut.Store(true)
}

func (m *metricsCollector) Complete() SearchMetric {
	return SearchMetric{
		Algorithm:   m.algorithm,
		StartTime:   m.startTime,
		Duration:    time.Since(m.startTime),
		Depth:       int(m.depth.Load()),
		Nodes:       m.nodes.Load(),
		Evaluations: m.evaluations.Load(),
		Cutoffs:     m.cutoffs.Load(),
		TimedOut:    m.timedOut.Load(),
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() Collector {
	return noMetricsCollector{}
}

func (noMetricsCollector) Start(string)           {}
func (noMetricsCollector) AddNode()               {}
func (noMetricsCollector) AddEvaluation()         {}
func (noMetricsCollector) AddCutoff()             {}
func (noMetricsCollector) CompleteDepth(int)      {}
func (noMetricsCollector) TimeOut()               {}
func (noMetricsCollector) Complete() SearchMetric { return SearchMetric{} }
