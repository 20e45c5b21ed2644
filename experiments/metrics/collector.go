package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Strategy     string
	Goroutines   int
	Budget       time.Duration
	Duration     time.Duration
	Depth        int // Deepest completed iteration, minimax only
	Nodes        int
	Episodes     int // ISMCTS only
	FullPlayouts int // Episodes whose rollout reached a terminal state
}

type MoveMetric struct {
	Step int
	Side string
	Move string
	SearchMetric
}

type GameMetric struct {
	Winner     string // Empty on a draw
	Reason     string
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
	Fallbacks  int // Agent moves replaced by the first legal move
}

// Collector gathers metrics of one search. Counters may be updated from
// several goroutines.
type Collector interface {
	Start(strategy string, goroutines int, budget time.Duration)
	AddNodes(n int)
	SetDepth(depth int)
	AddEpisode()
	AddFullPlayout()
	Complete() SearchMetric
}

type collector struct {
	strategy     string
	goroutines   int
	budget       time.Duration
	startTime    time.Time
	nodes        atomic.Int64
	depth        atomic.Int32
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(strategy string, goroutines int, budget time.Duration) {
	m.startTime = time.Now()
	m.strategy = strategy
	m.goroutines = goroutines
	m.budget = budget
	m.nodes.Store(0)
	m.depth.Store(0)
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
}

func (m *collector) AddNodes(n int) {
	m.nodes.Add(int64(n))
}

func (m *collector) SetDepth(depth int) {
	m.depth.Store(int32(depth))
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Strategy:     m.strategy,
		Goroutines:   m.goroutines,
		Budget:       m.budget,
		Duration:     time.Since(m.startTime),
		Depth:        int(m.depth.Load()),
		Nodes:        int(m.nodes.Load()),
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(strategy string, goroutines int, budget time.Duration) {}
func (m *dummyCollector) AddNodes(n int)                                              {}
func (m *dummyCollector) SetDepth(depth int)                                          {}
func (m *dummyCollector) AddEpisode()                                                 {}
func (m *dummyCollector) AddFullPlayout()                                             {}
func (m *dummyCollector) Complete() SearchMetric                                      { return SearchMetric{} }
