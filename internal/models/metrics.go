package models

import "time"

// SystemMetrics is the aggregate snapshot served by the status
// endpoint, alongside the full Prometheus exposition.
type SystemMetrics struct {
	RequestsTotal             uint64    `json:"requestsTotal"`
	AverageRequestDurationMs  float64   `json:"averageRequestDurationMs"`
	UpstreamRequestsTotal     uint64    `json:"upstreamRequestsTotal"`
	AverageUpstreamDurationMs float64   `json:"averageUpstreamDurationMs"`
	PlanningGridSkippedTotal  uint64    `json:"planningGridSkippedTotal"`
	Goroutines                int       `json:"goroutines"`
	GeneratedAt               time.Time `json:"generatedAt"`
}
