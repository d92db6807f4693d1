package coordinator

// UnloadSuite releases every handle of a resident suite and frees its memory
// accounting. Unloading a name that is not resident is an idempotent no-op,
// logged but not an error. Unloading a pinned suite is a conflict.
func (c *Coordinator) UnloadSuite(name string) (bool, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.cache.get(name)
	if !ok {
		c.log.Warn().Str("suite", name).Msg("unload requested for suite that is not loaded")
		return false, nil
	}
	if s.pins > 0 {
		return false, errPinned(name)
	}
	c.cache.remove(s)
	c.releaseHandles(s.handles)
	if err := c.accountant.recordRelease(s.totalMB); err != nil {
		return false, err
	}
	c.stats.totalUnloads++
	unloadsTotal.WithLabelValues("unload").Inc()
	c.syncGauges()
	c.log.Info().Str("suite", name).Int("freed_mb", s.totalMB).Msg("suite unloaded")
	c.publish("unload", name, map[string]any{"freed_mb": s.totalMB})
	return true, nil
}

// Cleanup unloads every resident suite, pinned or not. Intended for
// process-wide teardown; pins do not survive shutdown.
func (c *Coordinator) Cleanup() error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	var suites []*loadedSuite
	c.cache.each(func(s *loadedSuite) { suites = append(suites, s) })
	for _, s := range suites {
		c.cache.remove(s)
		c.releaseHandles(s.handles)
		if err := c.accountant.recordRelease(s.totalMB); err != nil {
			return err
		}
		c.stats.totalUnloads++
		unloadsTotal.WithLabelValues("cleanup").Inc()
		c.publish("unload", s.name, map[string]any{"freed_mb": s.totalMB, "reason": "cleanup"})
	}
	c.syncGauges()
	c.saveAccessMetadata()
	c.log.Info().Int("suites", len(suites)).Msg("cleanup complete")
	return nil
}
