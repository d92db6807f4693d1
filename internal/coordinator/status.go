package coordinator

import (
	"sort"
	"time"

	"suited/pkg/types"
)

// SuiteStatus reports one suite by name: residency, loaded models, memory,
// and the registered configuration.
func (c *Coordinator) SuiteStatus(name string) (types.SuiteStatus, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cfg, ok := c.configs[name]
	if !ok {
		return types.SuiteStatus{}, errNotFound(name)
	}
	st := types.SuiteStatus{Name: name, Configuration: cfg}
	if s, loaded := c.cache.get(name); loaded {
		st.IsLoaded = true
		st.MemoryUsageMB = s.totalMB
		st.LastAccessed = s.lastUsed.Unix()
		st.PinCount = s.pins
		st.Models = make([]types.ModelStatus, 0, len(s.handles))
		for _, h := range s.handles {
			st.Models = append(st.Models, types.ModelStatus{
				Kind:        h.Kind,
				Path:        h.SourcePath,
				EstMemoryMB: h.EstMemoryMB,
				State:       string(h.State),
			})
		}
		return st, nil
	}
	if rec, seen := c.accessMeta[name]; seen {
		st.LastAccessed = rec.LastAccessedUnix
	}
	return st, nil
}

// Status builds the system snapshot: resident suites, aggregate usage and
// utilization, cache limits, and the statistics block.
func (c *Coordinator) Status() types.StatusReport {
	c.mu.RLock()
	defer c.mu.RUnlock()

	report := types.StatusReport{
		ActiveSuites:     make([]string, 0, c.cache.len()),
		RegisteredSuites: make([]string, 0, len(c.configs)),
		UsedMemoryMB:     c.accountant.usedMB,
		BudgetMB:         c.accountant.budgetMB,
		Utilization:      c.accountant.utilization(),
		CacheSizeLimit:   c.cacheSize,
		CurrentSize:      c.cache.len(),
		Statistics:       c.stats.snapshot(),
		UptimeSeconds:    int64(time.Since(c.startTime).Seconds()),
		ServerTimeUnix:   time.Now().Unix(),
	}
	c.cache.each(func(s *loadedSuite) {
		report.ActiveSuites = append(report.ActiveSuites, s.name)
	})
	for name := range c.configs {
		if _, loaded := c.cache.get(name); !loaded {
			report.RegisteredSuites = append(report.RegisteredSuites, name)
		}
	}
	sort.Strings(report.RegisteredSuites)
	return report
}
