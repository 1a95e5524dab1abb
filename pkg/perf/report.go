package perf

import (
	log "github.com/cloudposse/tfmatrix/pkg/logger"
)

// LogSummary writes one info-level line per tracked function. Nothing is
// logged when tracking is disabled.
func LogSummary() {
	if !IsTrackingEnabled() {
		return
	}

	for _, m := range Snapshot() {
		log.Info("perf",
			"func", m.Name,
			"count", m.Count,
			"total", m.Total,
			"p50", m.P50,
			"p95", m.P95,
			"max", m.Max,
		)
	}
}
