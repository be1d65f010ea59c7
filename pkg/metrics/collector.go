package metrics

import (
	"time"
)

// DefaultCollectInterval is how often the collector polls its source
const DefaultCollectInterval = 15 * time.Second

// CountSource reports the current item count of every collection
type CountSource interface {
	Counts() map[string]int
}

// Collector copies collection sizes into the items gauge
type Collector struct {
	source   CountSource
	interval time.Duration
	stopCh   chan struct{}
}

// NewCollector creates a new metrics collector
func NewCollector(source CountSource) *Collector {
	return &Collector{
		source:   source,
		interval: DefaultCollectInterval,
		stopCh:   make(chan struct{}),
	}
}

// WithInterval overrides the polling interval
func (c *Collector) WithInterval(d time.Duration) *Collector {
	c.interval = d
	return c
}

// Start begins collecting metrics
func (c *Collector) Start() {
	ticker := time.NewTicker(c.interval)
	go func() {
		// Collect immediately on start
		c.Collect()

		for {
			select {
			case <-ticker.C:
				c.Collect()
			case <-c.stopCh:
				ticker.Stop()
				return
			}
		}
	}()
}

// Stop stops the collector
func (c *Collector) Stop() {
	close(c.stopCh)
}

// Collect takes one sample
func (c *Collector) Collect() {
	for name, n := range c.source.Counts() {
		CollectionItems.WithLabelValues(name).Set(float64(n))
	}
}
