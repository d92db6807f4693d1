package coordinator

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"suited/pkg/types"
)

// Coordinator is the facade over suite registration, the bounded cache, the
// memory accountant, and cache statistics.
//
// Locking: opMu serializes structural mutations (register/load/unload/
// optimize) so at most one is in flight. mu guards the state itself and is
// held only for short critical sections, so status reads stay concurrent
// with a long-running load and observe the pre-commit state.
type Coordinator struct {
	opMu sync.Mutex
	mu   sync.RWMutex

	configs    map[string]types.SuiteConfiguration
	cache      *lruIndex
	accountant *accountant
	stats      statistics

	loaders   map[types.ModelKind]ModelLoader
	validator PathValidator
	publisher EventPublisher
	log       zerolog.Logger

	cacheSize         int
	defaultEstimateMB int
	optimizeTarget    float64
	loadTimeout       time.Duration
	accessMetaPath    string
	accessMeta        map[string]accessRecord

	startTime time.Time
}

// CacheSize returns the configured cap on concurrently resident suites.
func (c *Coordinator) CacheSize() int { return c.cacheSize }

// BudgetMB returns the configured global memory budget (0 = unlimited).
func (c *Coordinator) BudgetMB() int { return c.accountant.budgetMB }

// UsedMB returns the currently tracked aggregate memory.
func (c *Coordinator) UsedMB() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accountant.usedMB
}

// Registered returns the registered configuration for name, if any.
func (c *Coordinator) Registered(name string) (types.SuiteConfiguration, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cfg, ok := c.configs[name]
	return cfg, ok
}

// IsLoaded reports whether the named suite is currently resident.
func (c *Coordinator) IsLoaded(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.cache.get(name)
	return ok
}

func (c *Coordinator) loaderFor(kind types.ModelKind) ModelLoader {
	return c.loaders[kind]
}
