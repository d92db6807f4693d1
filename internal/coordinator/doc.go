// Package coordinator manages the lifecycle of named model suites under a
// hard memory budget and a bounded cache size. It is structured into small
// files by concern:
//
//   - coordinator.go: core Coordinator type, constructor, simple getters.
//   - config.go: Config and package defaults; NewWithConfig applies defaults.
//   - types.go: internal state types (HandleState, ModelHandle, loadedSuite).
//   - errors.go: error types and helpers (IsNotFound, IsResourceExhausted, ...).
//   - accountant.go: memory budget bookkeeping.
//   - validator.go: path existence/extension validation.
//   - loader_iface.go: the injected ModelLoader boundary.
//   - loader_fs.go: default filesystem-backed loader (stat-based estimates).
//   - lru.go: access-ordered suite index used for eviction selection.
//   - register.go: suite configuration registration.
//   - load.go: LoadSuite lifecycle, projection, and rollback.
//   - unload.go: UnloadSuite and Cleanup.
//   - evict.go: eviction loop and OptimizeMemory.
//   - pin.go: pin/unpin protection for in-use suites.
//   - status.go: SuiteStatus/Status reporting.
//   - stats.go: hit/miss/load/unload counters and derived efficiency.
//   - events.go: lifecycle event publishing.
//   - metrics.go: prometheus collectors.
//   - access_persist.go: last-accessed metadata persistence across restarts.
//
// External packages should treat this package as the orchestration layer and
// use public methods only (RegisterSuite, LoadSuite, UnloadSuite, Status,
// OptimizeMemory, Cleanup). Internal types are subject to change.
package coordinator
