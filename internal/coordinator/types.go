package coordinator

import (
	"container/list"
	"time"

	"suited/pkg/types"
)

// HandleState represents the lifecycle state of one model handle.
type HandleState string

const (
	HandleLoading HandleState = "loading"
	HandleReady   HandleState = "ready"
	HandleFailed  HandleState = "failed"
)

// ModelHandle is an opaque reference to one loaded model. It is owned by the
// suite that created it and must only be released through the loader that
// produced it.
type ModelHandle struct {
	SourcePath  string
	Kind        types.ModelKind
	EstMemoryMB int
	State       HandleState
}

// loadedSuite is a resident suite: every referenced model loaded, memory
// accounted, and an entry in the access-ordered index.
type loadedSuite struct {
	name     string
	config   types.SuiteConfiguration
	handles  []*ModelHandle // load order: base, refiner, vae, loras, controlnets
	totalMB  int
	lastUsed time.Time
	pins     int
	elem     *list.Element // owned by the lru index
}
