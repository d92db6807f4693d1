package coordinator

import "suited/pkg/types"

// statistics holds the cache activity counters. Guarded by the coordinator
// lock; the counters only ever increase.
type statistics struct {
	totalLoads   uint64
	totalUnloads uint64
	cacheHits    uint64
	cacheMisses  uint64
}

// efficiency derives hits/(hits+misses), 0 when nothing has been requested.
func (s *statistics) efficiency() float64 {
	total := s.cacheHits + s.cacheMisses
	if total == 0 {
		return 0
	}
	return float64(s.cacheHits) / float64(total)
}

func (s *statistics) snapshot() types.Statistics {
	return types.Statistics{
		TotalLoads:      s.totalLoads,
		TotalUnloads:    s.totalUnloads,
		CacheHits:       s.cacheHits,
		CacheMisses:     s.cacheMisses,
		CacheEfficiency: s.efficiency(),
	}
}
