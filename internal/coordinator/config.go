package coordinator

import (
	"time"

	"github.com/rs/zerolog"

	"suited/pkg/types"
)

// Defaults applied when corresponding Config fields are unset.
const (
	defaultCacheSize      = 4
	defaultEstimateMB     = 1024
	defaultOptimizeTarget = 0.8
)

// Config encapsulates all tunables for Coordinator construction.
type Config struct {
	// CacheSize caps the number of concurrently resident suites.
	CacheSize int
	// MaxMemoryMB is the global memory budget (0 = unlimited).
	MaxMemoryMB int
	// DefaultEstimateMB is charged per model when a loader cannot estimate.
	DefaultEstimateMB int
	// OptimizeTarget is the used/budget fraction OptimizeMemory evicts down to.
	OptimizeTarget float64
	// LoadTimeout bounds each individual model load (0 = none).
	LoadTimeout time.Duration
	// Loaders by kind. Kinds without an entry fall back to the filesystem loader.
	Loaders map[types.ModelKind]ModelLoader
	// Resolver for path validation; defaults to the local filesystem.
	Resolver FilesystemResolver
	// Publisher receives lifecycle events; defaults to a no-op.
	Publisher EventPublisher
	// AccessMetaPath, when set, persists last-accessed metadata across restarts.
	AccessMetaPath string
	// Logger defaults to zerolog.Nop.
	Logger zerolog.Logger
}

// NewWithConfig constructs a Coordinator from Config.
func NewWithConfig(cfg Config) *Coordinator {
	c := &Coordinator{
		configs:    make(map[string]types.SuiteConfiguration),
		cache:      newLRUIndex(),
		accountant: &accountant{budgetMB: cfg.MaxMemoryMB},
		loaders:    DefaultLoaders(),
		publisher:  noopPublisher{},
		log:        cfg.Logger,
		startTime:  time.Now(),
	}
	if cfg.CacheSize <= 0 {
		c.cacheSize = defaultCacheSize
	} else {
		c.cacheSize = cfg.CacheSize
	}
	if cfg.DefaultEstimateMB <= 0 {
		c.defaultEstimateMB = defaultEstimateMB
	} else {
		c.defaultEstimateMB = cfg.DefaultEstimateMB
	}
	if cfg.OptimizeTarget <= 0 || cfg.OptimizeTarget > 1 {
		c.optimizeTarget = defaultOptimizeTarget
	} else {
		c.optimizeTarget = cfg.OptimizeTarget
	}
	c.loadTimeout = cfg.LoadTimeout
	for k, l := range cfg.Loaders {
		c.loaders[k] = l
	}
	resolver := cfg.Resolver
	if resolver == nil {
		resolver = osResolver{}
	}
	c.validator = newExtValidator(resolver)
	if cfg.Publisher != nil {
		c.publisher = cfg.Publisher
	}
	c.accessMetaPath = cfg.AccessMetaPath
	c.loadAccessMetadata()
	return c
}

// New constructs a Coordinator with the given cache size and budget and
// default collaborators.
func New(cacheSize, maxMemoryMB int) *Coordinator {
	return NewWithConfig(Config{CacheSize: cacheSize, MaxMemoryMB: maxMemoryMB})
}
