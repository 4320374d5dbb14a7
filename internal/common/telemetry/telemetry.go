// File path: internal/common/telemetry/telemetry.go
package telemetry

import (
	"expvar"
	"sync"
	"time"
)

var (
	initOnce sync.Once

	searchTotal     *expvar.Int
	searchMatched   *expvar.Int
	searchLatencyMS *expvar.Int
	matchesBySource *expvar.Map

	chatTotal        *expvar.Int
	chatFallback     *expvar.Int
	chatGenFailure   *expvar.Int
	chatGenLatencyMS *expvar.Int
)

func ensureInit() {
	initOnce.Do(func() {
		searchTotal = expvar.NewInt("assist_search_total")
		searchMatched = expvar.NewInt("assist_search_matched")
		searchLatencyMS = expvar.NewInt("assist_search_latency_ms")
		matchesBySource = expvar.NewMap("assist_matches_by_source")

		chatTotal = expvar.NewInt("assist_chat_total")
		chatFallback = expvar.NewInt("assist_chat_fallback_total")
		chatGenFailure = expvar.NewInt("assist_chat_generation_failures")
		chatGenLatencyMS = expvar.NewInt("assist_chat_generation_latency_ms")
	})
}

// RecordSearch tracks one aggregator invocation.
func RecordSearch(matched bool, source string, elapsed time.Duration) {
	ensureInit()
	searchTotal.Add(1)
	searchLatencyMS.Add(elapsed.Milliseconds())
	if matched {
		searchMatched.Add(1)
		if source != "" {
			matchesBySource.Add(source, 1)
		}
	}
}

// RecordChat tracks one chat request and whether it needed the generation
// fallback.
func RecordChat(fallback bool) {
	ensureInit()
	chatTotal.Add(1)
	if fallback {
		chatFallback.Add(1)
	}
}

// RecordGeneration tracks the outcome of one generation call.
func RecordGeneration(elapsed time.Duration, err error) {
	ensureInit()
	chatGenLatencyMS.Add(elapsed.Milliseconds())
	if err != nil {
		chatGenFailure.Add(1)
	}
}
