// File path: internal/kb/aggregate.go
package kb

// Search runs every matcher against the query and keeps the single result
// with the strictly highest confidence. Ties keep the earlier matcher, so
// the outcome is deterministic. When nothing clears its threshold the
// sentinel not-found result is returned and the caller falls back to the
// generation service.
func (s *Searcher) Search(query string) MatchResult {
	matchers := []func(string) *MatchResult{
		s.SearchProducts,
		s.SearchFAQs,
		s.SearchSupportTickets,
		s.SearchEmployeeKB,
		s.SearchCompanyInfo,
	}
	var best *MatchResult
	for _, matcher := range matchers {
		result := matcher(query)
		if result == nil {
			continue
		}
		if best == nil || result.Confidence > best.Confidence {
			best = result
		}
	}
	if best == nil {
		return MatchResult{Matched: false, Confidence: 0}
	}
	return *best
}
