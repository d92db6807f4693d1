package coordinator

import (
	"context"
	"path/filepath"
	"testing"

	"suited/pkg/types"
)

func newPersistEnv(t *testing.T, metaPath string, sizes map[string]int) *testEnv {
	t.Helper()
	loader := newFakeLoader(sizes)
	resolver := make(mapResolver, len(sizes))
	for p := range sizes {
		resolver[p] = true
	}
	loaders := make(map[types.ModelKind]ModelLoader)
	for _, k := range types.Kinds() {
		loaders[k] = loader
	}
	coord := NewWithConfig(Config{
		CacheSize:      3,
		Loaders:        loaders,
		Resolver:       resolver,
		AccessMetaPath: metaPath,
	})
	return &testEnv{coord: coord, loader: loader, resolver: resolver}
}

func TestAccessMetadataSurvivesRestart(t *testing.T) {
	meta := filepath.Join(t.TempDir(), "access.json")
	sizes := map[string]int{"/m/base/a.safetensors": 100}

	env := newPersistEnv(t, meta, sizes)
	if err := env.coord.RegisterSuite(suiteCfg("a", "/m/base/a.safetensors")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := env.coord.LoadSuite(context.Background(), "a"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := env.coord.Cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	// A fresh coordinator sees the prior access trace.
	env2 := newPersistEnv(t, meta, sizes)
	if err := env2.coord.RegisterSuite(suiteCfg("a", "/m/base/a.safetensors")); err != nil {
		t.Fatalf("register: %v", err)
	}
	st, err := env2.coord.SuiteStatus("a")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if st.IsLoaded {
		t.Fatalf("suite resident on a fresh coordinator")
	}
	if st.LastAccessed == 0 {
		t.Fatalf("access trace did not survive restart")
	}
}

func TestAccessMetadataMissingFileIsFine(t *testing.T) {
	meta := filepath.Join(t.TempDir(), "does-not-exist.json")
	env := newPersistEnv(t, meta, map[string]int{"/m/base/a.safetensors": 100})
	if err := env.coord.RegisterSuite(suiteCfg("a", "/m/base/a.safetensors")); err != nil {
		t.Fatalf("register: %v", err)
	}
}
