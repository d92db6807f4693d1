package coordinator

import "suited/pkg/types"

// evictUntilFits removes least-recently-accessed unpinned suites until
// requiredMB fits the budget and extraSlots cache slots are free. Callers
// hold c.mu. Fails with a resource-exhausted error when no evictable suite
// remains; nothing is loaded in that case.
func (c *Coordinator) evictUntilFits(requiredMB, extraSlots int) error {
	for {
		slotsOK := c.cache.len()+extraSlots <= c.cacheSize
		memOK := c.accountant.wouldFit(requiredMB)
		if slotsOK && memOK {
			return nil
		}
		victim := c.cache.lruInactive()
		if victim == nil {
			return errResourceExhausted(
				"need %dMB and %d slot(s); %dMB used of %dMB, %d/%d suites resident, none evictable",
				requiredMB, extraSlots, c.accountant.usedMB, c.accountant.budgetMB,
				c.cache.len(), c.cacheSize)
		}
		if err := c.evictLocked(victim); err != nil {
			return err
		}
	}
}

// evictLocked removes one resident suite and releases its handles. Callers
// hold c.mu.
func (c *Coordinator) evictLocked(s *loadedSuite) error {
	c.cache.remove(s)
	c.releaseHandles(s.handles)
	if err := c.accountant.recordRelease(s.totalMB); err != nil {
		return err
	}
	c.stats.totalUnloads++
	unloadsTotal.WithLabelValues("evict").Inc()
	c.syncGauges()
	c.log.Info().Str("suite", s.name).Int("freed_mb", s.totalMB).Msg("suite evicted")
	c.publish("evict", s.name, map[string]any{"freed_mb": s.totalMB})
	return nil
}

// OptimizeMemory evicts least-recently-accessed unpinned suites until usage
// falls to the configured target fraction of the budget, or nothing
// evictable remains. It never evicts a pinned suite and never increases
// usage.
func (c *Coordinator) OptimizeMemory() (types.OptimizationReport, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	report := types.OptimizationReport{}
	if c.accountant.budgetMB <= 0 {
		report.ResultingEfficiency = c.accountant.utilization()
		return report, nil
	}
	targetMB := int(float64(c.accountant.budgetMB) * c.optimizeTarget)
	before := c.accountant.usedMB
	for c.accountant.usedMB > targetMB {
		victim := c.cache.lruInactive()
		if victim == nil {
			break
		}
		if err := c.evictLocked(victim); err != nil {
			return report, err
		}
		report.SuitesEvicted++
	}
	report.MemorySavedMB = before - c.accountant.usedMB
	report.ResultingEfficiency = c.accountant.utilization()
	c.log.Info().Int("saved_mb", report.MemorySavedMB).Int("evicted", report.SuitesEvicted).
		Msg("memory optimized")
	c.publish("optimize", "", map[string]any{
		"saved_mb": report.MemorySavedMB,
		"evicted":  report.SuitesEvicted,
	})
	return report, nil
}
