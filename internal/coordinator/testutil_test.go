package coordinator

import (
	"context"
	"errors"
	"sync"

	"suited/pkg/types"
)

// mapResolver resolves only the paths it was seeded with.
type mapResolver map[string]bool

func (m mapResolver) Exists(path string) bool { return m[path] }

// fakeLoader is an in-memory ModelLoader with declared per-path sizes. It
// records every Load/Release call and can be told to fail specific paths.
type fakeLoader struct {
	mu       sync.Mutex
	sizes    map[string]int
	failOn   map[string]error
	loads    []string
	releases []string
}

func newFakeLoader(sizes map[string]int) *fakeLoader {
	return &fakeLoader{sizes: sizes, failOn: make(map[string]error)}
}

func (l *fakeLoader) Load(ctx context.Context, path string) (*ModelHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.failOn[path]; err != nil {
		return nil, err
	}
	mb, ok := l.sizes[path]
	if !ok {
		return nil, errors.New("unknown path: " + path)
	}
	l.loads = append(l.loads, path)
	return &ModelHandle{SourcePath: path, EstMemoryMB: mb, State: HandleReady}, nil
}

func (l *fakeLoader) Release(h *ModelHandle) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.releases = append(l.releases, h.SourcePath)
	return nil
}

func (l *fakeLoader) EstimateSize(path string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	mb, ok := l.sizes[path]
	if !ok {
		return 0, errors.New("unknown path: " + path)
	}
	return mb, nil
}

func (l *fakeLoader) loadCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.loads)
}

func (l *fakeLoader) releaseCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.releases)
}

// testEnv bundles a coordinator with its fake loader and resolver.
type testEnv struct {
	coord    *Coordinator
	loader   *fakeLoader
	resolver mapResolver
}

// newTestEnv builds a coordinator whose every kind shares one fake loader.
// sizes seeds both the loader and the resolver.
func newTestEnv(cacheSize, budgetMB int, sizes map[string]int) *testEnv {
	loader := newFakeLoader(sizes)
	resolver := make(mapResolver, len(sizes))
	for p := range sizes {
		resolver[p] = true
	}
	loaders := make(map[types.ModelKind]ModelLoader, len(types.Kinds()))
	for _, k := range types.Kinds() {
		loaders[k] = loader
	}
	coord := NewWithConfig(Config{
		CacheSize:   cacheSize,
		MaxMemoryMB: budgetMB,
		Loaders:     loaders,
		Resolver:    resolver,
	})
	return &testEnv{coord: coord, loader: loader, resolver: resolver}
}

// suiteCfg builds a minimal configuration around one base model path.
func suiteCfg(name, base string) types.SuiteConfiguration {
	return types.SuiteConfiguration{Name: name, BaseModel: base}
}
