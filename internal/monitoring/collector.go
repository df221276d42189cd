// Package monitoring tracks in-process request and upstream-call counters
// for the /stats endpoint.
package monitoring

import (
	"sync"
	"time"
)

// Snapshot is a point-in-time view of collected metrics.
type Snapshot struct {
	// Inbound requests by route pattern.
	Requests map[string]int64 `json:"requests"`
	// Inbound responses with status >= 500.
	ServerErrors int64 `json:"server_errors"`
	// Inbound responses with status 400-499.
	ClientErrors int64 `json:"client_errors"`

	// Outbound catalog calls by operation.
	UpstreamCalls map[string]int64 `json:"upstream_calls"`
	// Outbound catalog call failures by operation.
	UpstreamErrors map[string]int64 `json:"upstream_errors"`
	// Cumulative and worst-case upstream latency.
	UpstreamTotalMS int64 `json:"upstream_total_ms"`
	UpstreamMaxMS   int64 `json:"upstream_max_ms"`

	StartedAt   time.Time `json:"started_at"`
	CollectedAt time.Time `json:"collected_at"`
}

// Collector accumulates counters. All methods are safe for concurrent use.
type Collector struct {
	mu sync.Mutex

	requests     map[string]int64
	serverErrors int64
	clientErrors int64

	upstreamCalls   map[string]int64
	upstreamErrors  map[string]int64
	upstreamTotalMS int64
	upstreamMaxMS   int64

	startedAt time.Time
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{
		requests:       make(map[string]int64),
		upstreamCalls:  make(map[string]int64),
		upstreamErrors: make(map[string]int64),
		startedAt:      time.Now().UTC(),
	}
}

// ObserveRequest records one inbound request and its response status.
func (c *Collector) ObserveRequest(route string, status int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests[route]++
	switch {
	case status >= 500:
		c.serverErrors++
	case status >= 400:
		c.clientErrors++
	}
}

// ObserveUpstream records one outbound catalog call. It satisfies the
// catalog client's Observer hook.
func (c *Collector) ObserveUpstream(operation string, elapsed time.Duration, err error) {
	ms := elapsed.Milliseconds()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.upstreamCalls[operation]++
	if err != nil {
		c.upstreamErrors[operation]++
	}
	c.upstreamTotalMS += ms
	if ms > c.upstreamMaxMS {
		c.upstreamMaxMS = ms
	}
}

// Snapshot returns a copy of the current counters.
func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		Requests:        make(map[string]int64, len(c.requests)),
		ServerErrors:    c.serverErrors,
		ClientErrors:    c.clientErrors,
		UpstreamCalls:   make(map[string]int64, len(c.upstreamCalls)),
		UpstreamErrors:  make(map[string]int64, len(c.upstreamErrors)),
		UpstreamTotalMS: c.upstreamTotalMS,
		UpstreamMaxMS:   c.upstreamMaxMS,
		StartedAt:       c.startedAt,
		CollectedAt:     time.Now().UTC(),
	}
	for k, v := range c.requests {
		snap.Requests[k] = v
	}
	for k, v := range c.upstreamCalls {
		snap.UpstreamCalls[k] = v
	}
	for k, v := range c.upstreamErrors {
		snap.UpstreamErrors[k] = v
	}
	return snap
}
