package coordinator

import "context"

// ModelLoader performs the actual load/release of one model kind. One loader
// is injected per kind (base, refiner, vae, lora, controlnet); the
// coordinator never touches model content itself.
type ModelLoader interface {
	// Load materializes the model at path and returns a handle for it.
	// Implementations must return promptly when the context is canceled.
	Load(ctx context.Context, path string) (*ModelHandle, error)
	// Release frees the resources behind a handle produced by this loader.
	Release(h *ModelHandle) error
}

// SizeEstimator is an optional ModelLoader extension. When a loader
// implements it, the coordinator uses the estimate to project a suite's
// footprint before loading; otherwise a conservative default is charged.
type SizeEstimator interface {
	EstimateSize(path string) (int, error)
}
