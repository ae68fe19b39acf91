package stats

import (
	"time"

	"github.com/omniscale/osmcsv/log"
)

// Counts of processed elements and written records.
type Counts struct {
	Nodes       int64
	Ways        int64
	Tags        int64
	DroppedTags int64
	WayNodes    int64
}

type counter struct {
	Counts
	start      time.Time
	lastReport time.Time
	last       Counts
}

// Statistics counts processed elements and logs the progress at most once
// per interval. It is not safe for concurrent use.
type Statistics struct {
	c        counter
	interval time.Duration
	metrics  *Metrics
	now      func() time.Time
}

// NewStatistics returns Statistics that report every interval. Counts are
// also added to metrics if it is not nil.
func NewStatistics(interval time.Duration, metrics *Metrics) *Statistics {
	s := &Statistics{interval: interval, metrics: metrics, now: time.Now}
	s.c.start = s.now()
	s.c.lastReport = s.c.start
	return s
}

func (s *Statistics) AddNodes(n int) {
	s.c.Nodes += int64(n)
	s.metrics.addElements("node", n)
	s.tick()
}

func (s *Statistics) AddWays(n int) {
	s.c.Ways += int64(n)
	s.metrics.addElements("way", n)
	s.tick()
}

func (s *Statistics) AddTags(written, dropped int) {
	s.c.Tags += int64(written)
	s.c.DroppedTags += int64(dropped)
	s.metrics.addTags(written, dropped)
}

func (s *Statistics) AddWayNodes(n int) {
	s.c.WayNodes += int64(n)
	s.metrics.addWayNodes(n)
}

func (s *Statistics) Counts() Counts {
	return s.c.Counts
}

// Elapsed returns the time since the Statistics were created.
func (s *Statistics) Elapsed() time.Duration {
	return s.now().Sub(s.c.start)
}

func (s *Statistics) tick() {
	if s.interval <= 0 {
		return
	}
	if now := s.now(); now.Sub(s.c.lastReport) >= s.interval {
		s.c.Print(now)
	}
}

// Print logs the final counts.
func (s *Statistics) Print() {
	c := s.c.Counts
	log.Printf("[info] Nodes: %d Ways: %d Tags: %d (%d dropped) Way nodes: %d in %s",
		c.Nodes, c.Ways, c.Tags, c.DroppedTags, c.WayNodes, s.Elapsed().Truncate(time.Millisecond))
}

func (c *counter) Print(now time.Time) {
	dur := now.Sub(c.lastReport).Seconds()
	nodesPS := int64(float64(c.Nodes-c.last.Nodes)/dur/100) * 100
	waysPS := int64(float64(c.Ways-c.last.Ways)/dur/100) * 100

	log.Printf("[progress] Nodes: %7d/s (%10d) Ways: %7d/s (%9d) Tags: %10d",
		nodesPS, c.Nodes,
		waysPS, c.Ways,
		c.Tags,
	)
	c.last = c.Counts
	c.lastReport = now
}
