package coordinator

// Pin marks a resident suite as in use. Pinned suites are skipped by
// eviction and refuse UnloadSuite until every pin is dropped. Callers wrap
// each inference in a Pin/Unpin pair.
func (c *Coordinator) Pin(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.cache.get(name)
	if !ok {
		return errNotFound(name)
	}
	s.pins++
	return nil
}

// Unpin drops one pin. Unpinning below zero indicates a caller bug and is
// reported as a desync rather than clamped.
func (c *Coordinator) Unpin(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.cache.get(name)
	if !ok {
		return errNotFound(name)
	}
	if s.pins == 0 {
		return desyncError{msg: "unpin without matching pin: " + name}
	}
	s.pins--
	return nil
}
