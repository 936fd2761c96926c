package models

import "time"

// SystemMetrics is a point-in-time summary of instrumentation counters.
type SystemMetrics struct {
	CacheHitRatio                float64   `json:"cache_hit_ratio"`
	CacheHits                    uint64    `json:"cache_hits"`
	CacheMisses                  uint64    `json:"cache_misses"`
	RequestsTotal                uint64    `json:"requests_total"`
	AverageRequestDurationMs     float64   `json:"average_request_duration_ms"`
	TransactionCount             uint64    `json:"transaction_count"`
	AverageTransactionDurationMs float64   `json:"average_transaction_duration_ms"`
	Enrollments                  uint64    `json:"enrollments"`
	WaitlistAdmissions           uint64    `json:"waitlist_admissions"`
	Goroutines                   int       `json:"goroutines"`
	GeneratedAt                  time.Time `json:"generated_at"`
}
