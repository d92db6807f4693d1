package coordinator

import (
	"context"
	"time"

	"github.com/google/uuid"

	"suited/pkg/types"
)

// LoadResult reports the outcome of a LoadSuite call.
type LoadResult struct {
	Name     string
	CacheHit bool
	OpID     string
}

// LoadSuite makes the named suite resident. A resident suite is a cache hit:
// the access time is bumped and no loader is touched. Otherwise the
// projected footprint is computed, least-recently-accessed unpinned suites
// are evicted until the new suite fits, and every referenced model is loaded
// in the fixed order base, refiner, VAE, LoRAs, ControlNets. Any individual
// load failure releases everything acquired in this call and leaves the
// cache and accountant exactly as they were.
func (c *Coordinator) LoadSuite(ctx context.Context, name string) (LoadResult, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	res := LoadResult{Name: name, OpID: uuid.NewString()}

	c.mu.Lock()
	cfg, ok := c.configs[name]
	if !ok {
		c.mu.Unlock()
		return res, errNotFound(name)
	}
	if s, hit := c.cache.get(name); hit {
		s.lastUsed = time.Now()
		c.cache.touch(s)
		c.noteAccess(name, s.lastUsed.Unix(), s.totalMB)
		c.stats.cacheHits++
		cacheHitsTotal.Inc()
		c.mu.Unlock()
		res.CacheHit = true
		c.log.Debug().Str("suite", name).Msg("cache hit")
		return res, nil
	}
	c.stats.cacheMisses++
	cacheMissesTotal.Inc()
	c.mu.Unlock()

	refs := cfg.ModelPaths()
	projectedMB := c.projectCost(refs)

	c.mu.Lock()
	err := c.evictUntilFits(projectedMB, 1)
	c.mu.Unlock()
	if err != nil {
		return res, err
	}

	c.publish("load_start", name, map[string]any{"op_id": res.OpID, "projected_mb": projectedMB})
	start := time.Now()

	handles, totalMB, err := c.loadModels(ctx, refs)
	if err != nil {
		c.publish("load_failed", name, map[string]any{"op_id": res.OpID, "error": err.Error()})
		return res, err
	}

	s := &loadedSuite{
		name:     name,
		config:   cfg,
		handles:  handles,
		totalMB:  totalMB,
		lastUsed: time.Now(),
	}

	c.mu.Lock()
	// The projection may have undershot; re-check with the real footprint so
	// the budget invariant holds at commit.
	if !c.accountant.wouldFit(totalMB) {
		if ferr := c.evictUntilFits(totalMB, 1); ferr != nil {
			c.mu.Unlock()
			c.releaseHandles(handles)
			c.publish("load_failed", name, map[string]any{"op_id": res.OpID, "error": ferr.Error()})
			return res, ferr
		}
	}
	c.cache.insert(s)
	c.accountant.recordAllocation(totalMB)
	c.noteAccess(name, s.lastUsed.Unix(), totalMB)
	c.stats.totalLoads++
	loadsTotal.Inc()
	c.syncGauges()
	c.mu.Unlock()

	if cfg.MaxMemoryMB > 0 && totalMB > cfg.MaxMemoryMB {
		c.log.Warn().Str("suite", name).Int("total_mb", totalMB).Int("cap_mb", cfg.MaxMemoryMB).
			Msg("suite exceeds its soft memory cap")
	}
	c.log.Info().Str("suite", name).Int("total_mb", totalMB).
		Dur("dur", time.Since(start)).Msg("suite loaded")
	c.publish("load_done", name, map[string]any{"op_id": res.OpID, "total_mb": totalMB})
	return res, nil
}

// projectCost sums per-model estimates, falling back to the conservative
// default when a loader cannot estimate.
func (c *Coordinator) projectCost(refs []types.ModelRef) int {
	total := 0
	for _, ref := range refs {
		total += c.estimateModel(ref)
	}
	return total
}

func (c *Coordinator) estimateModel(ref types.ModelRef) int {
	if est, ok := c.loaderFor(ref.Kind).(SizeEstimator); ok {
		if mb, err := est.EstimateSize(ref.Path); err == nil && mb > 0 {
			return mb
		}
	}
	return c.defaultEstimateMB
}

// loadModels loads every referenced model in order. On any failure it
// releases the handles already obtained, in reverse order, and returns the
// failure wrapped as a load error. Paths are re-validated here: files may
// vanish between registration and load.
func (c *Coordinator) loadModels(ctx context.Context, refs []types.ModelRef) ([]*ModelHandle, int, error) {
	handles := make([]*ModelHandle, 0, len(refs))
	totalMB := 0
	for _, ref := range refs {
		if err := c.validator.Validate(ref.Path); err != nil {
			c.releaseHandles(handles)
			return nil, 0, errLoad(ref.Path, err)
		}
		loader := c.loaderFor(ref.Kind)
		lctx := ctx
		var cancel context.CancelFunc
		if c.loadTimeout > 0 {
			lctx, cancel = context.WithTimeout(ctx, c.loadTimeout)
		}
		h, err := loader.Load(lctx, ref.Path)
		if cancel != nil {
			cancel()
		}
		if err != nil {
			c.releaseHandles(handles)
			return nil, 0, errLoad(ref.Path, err)
		}
		h.Kind = ref.Kind
		h.State = HandleReady
		handles = append(handles, h)
		totalMB += h.EstMemoryMB
	}
	return handles, totalMB, nil
}

// releaseHandles frees handles in reverse acquisition order through their
// originating loaders.
func (c *Coordinator) releaseHandles(handles []*ModelHandle) {
	for i := len(handles) - 1; i >= 0; i-- {
		h := handles[i]
		if err := c.loaderFor(h.Kind).Release(h); err != nil {
			c.log.Error().Err(err).Str("path", h.SourcePath).Msg("release failed")
		}
	}
}
