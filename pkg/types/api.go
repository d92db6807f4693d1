package types

// RegisterResponse is returned by POST /suites.
type RegisterResponse struct {
	// Suite name that was registered.
	// example: basic_sdxl
	Name string `json:"name" example:"basic_sdxl"`
	// Whether the configuration was accepted.
	// example: true
	Registered bool `json:"registered" example:"true"`
}

// LoadResponse is returned by POST /suites/{name}/load.
type LoadResponse struct {
	// Suite name that was loaded.
	// example: basic_sdxl
	Name string `json:"name" example:"basic_sdxl"`
	// Whether the load request left the suite resident.
	// example: true
	Loaded bool `json:"loaded" example:"true"`
	// True when the suite was already resident (cache hit).
	// example: false
	CacheHit bool `json:"cache_hit" example:"false"`
	// Operation id assigned to this load request.
	// example: 6f1c2a1e-0b4e-4d15-9c53-1f6f3f0b8a11
	OpID string `json:"op_id,omitempty" example:"6f1c2a1e-0b4e-4d15-9c53-1f6f3f0b8a11"`
}

// ModelStatus summarizes one loaded model handle inside a suite.
type ModelStatus struct {
	// Role of the model within the suite.
	// example: base
	Kind ModelKind `json:"kind" example:"base"`
	// Path the model was loaded from.
	Path string `json:"path"`
	// Estimated resident memory in MB.
	// example: 6617
	EstMemoryMB int `json:"est_memory_mb" example:"6617"`
	// Handle lifecycle state (loading, ready, failed).
	// example: ready
	State string `json:"state" example:"ready"`
}

// SuiteStatus describes one suite for GET /suites/{name}.
type SuiteStatus struct {
	// Suite name.
	// example: basic_sdxl
	Name string `json:"name" example:"basic_sdxl"`
	// Whether the suite is currently resident in the cache.
	// example: true
	IsLoaded bool `json:"is_loaded" example:"true"`
	// Loaded model handles, in load order. Empty when not resident.
	Models []ModelStatus `json:"models,omitempty"`
	// Total estimated memory for the suite in MB.
	// example: 5000
	MemoryUsageMB int `json:"memory_usage_mb" example:"5000"`
	// Last time the suite was requested (unix seconds). Zero when never loaded.
	// example: 1700000000
	LastAccessed int64 `json:"last_accessed_unix,omitempty" example:"1700000000"`
	// Number of outstanding pins holding the suite in memory.
	// example: 0
	PinCount int `json:"pin_count" example:"0"`
	// The registered configuration backing this suite.
	Configuration SuiteConfiguration `json:"configuration"`
}

// Statistics holds the coordinator's monotonic counters.
type Statistics struct {
	// Total successful suite loads.
	// example: 12
	TotalLoads uint64 `json:"total_loads" example:"12"`
	// Total suite unloads, including evictions.
	// example: 5
	TotalUnloads uint64 `json:"total_unloads" example:"5"`
	// Requests served from the cache.
	// example: 40
	CacheHits uint64 `json:"cache_hits" example:"40"`
	// Requests that required a fresh load.
	// example: 12
	CacheMisses uint64 `json:"cache_misses" example:"12"`
	// hits / (hits + misses); 0 when no requests have been seen.
	// example: 0.77
	CacheEfficiency float64 `json:"cache_efficiency" example:"0.77"`
}

// StatusReport is the system snapshot returned by GET /status.
type StatusReport struct {
	// Names of currently resident suites.
	ActiveSuites []string `json:"active_suites"`
	// Names of registered but not resident configurations.
	RegisteredSuites []string `json:"registered_suites"`
	// Aggregate resident memory in MB.
	// example: 11000
	UsedMemoryMB int `json:"used_memory_mb" example:"11000"`
	// Configured memory budget in MB.
	// example: 20000
	BudgetMB int `json:"budget_mb" example:"20000"`
	// used / budget, in [0,1]. Zero when no budget is configured.
	// example: 0.55
	Utilization float64 `json:"utilization" example:"0.55"`
	// Maximum number of concurrently resident suites.
	// example: 3
	CacheSizeLimit int `json:"cache_size_limit" example:"3"`
	// Number of currently resident suites.
	// example: 2
	CurrentSize int `json:"current_size" example:"2"`
	// Cache counters and derived efficiency.
	Statistics Statistics `json:"statistics"`
	// Uptime of the coordinator in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}

// OptimizationReport is returned by POST /optimize.
type OptimizationReport struct {
	// Memory freed by the optimization pass in MB.
	// example: 6000
	MemorySavedMB int `json:"memory_saved_mb" example:"6000"`
	// Number of suites evicted.
	// example: 1
	SuitesEvicted int `json:"suites_evicted" example:"1"`
	// used / budget after the pass.
	// example: 0.55
	ResultingEfficiency float64 `json:"resulting_efficiency" example:"0.55"`
}

// ModelsResponse wraps the registry scan returned by GET /models.
type ModelsResponse struct {
	Models []ModelFile `json:"models"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: suite not found: missing
	Error string `json:"error" example:"suite not found: missing"`
	// HTTP status code.
	// example: 404
	Code int `json:"code" example:"404"`
}
