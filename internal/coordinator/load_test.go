package coordinator

import (
	"context"
	"errors"
	"testing"

	"suited/pkg/types"
)

func TestLoadSuiteNotFound(t *testing.T) {
	env := newTestEnv(2, 0, nil)
	if _, err := env.coord.LoadSuite(context.Background(), "missing"); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLoadSuiteLoadsModelsInFixedOrder(t *testing.T) {
	sizes := map[string]int{
		"/m/base/b.safetensors":  1000,
		"/m/refiner/r.ckpt":      500,
		"/m/vae/v.pt":            200,
		"/m/lora/l1.safetensors": 50,
		"/m/lora/l2.safetensors": 60,
		"/m/controlnet/c1.pth":   300,
	}
	env := newTestEnv(2, 0, sizes)
	cfg := types.SuiteConfiguration{
		Name:             "full",
		BaseModel:        "/m/base/b.safetensors",
		RefinerModel:     "/m/refiner/r.ckpt",
		VAEModel:         "/m/vae/v.pt",
		LoRAModels:       []string{"/m/lora/l1.safetensors", "/m/lora/l2.safetensors"},
		ControlNetModels: []string{"/m/controlnet/c1.pth"},
	}
	if err := env.coord.RegisterSuite(cfg); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := env.coord.LoadSuite(context.Background(), "full"); err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{
		"/m/base/b.safetensors",
		"/m/refiner/r.ckpt",
		"/m/vae/v.pt",
		"/m/lora/l1.safetensors",
		"/m/lora/l2.safetensors",
		"/m/controlnet/c1.pth",
	}
	if len(env.loader.loads) != len(want) {
		t.Fatalf("loads=%v want=%v", env.loader.loads, want)
	}
	for i := range want {
		if env.loader.loads[i] != want[i] {
			t.Fatalf("load order[%d]=%s want %s", i, env.loader.loads[i], want[i])
		}
	}
	if got := env.coord.UsedMB(); got != 2110 {
		t.Fatalf("used=%dMB want 2110", got)
	}
}

func TestLoadSuiteSecondCallIsCacheHit(t *testing.T) {
	env := newTestEnv(2, 0, map[string]int{"/m/base/a.safetensors": 500})
	if err := env.coord.RegisterSuite(suiteCfg("s", "/m/base/a.safetensors")); err != nil {
		t.Fatalf("register: %v", err)
	}
	res1, err := env.coord.LoadSuite(context.Background(), "s")
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	if res1.CacheHit {
		t.Fatalf("first load reported a cache hit")
	}
	used := env.coord.UsedMB()
	loads := env.loader.loadCount()

	res2, err := env.coord.LoadSuite(context.Background(), "s")
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if !res2.CacheHit {
		t.Fatalf("second load was not a cache hit")
	}
	if env.loader.loadCount() != loads {
		t.Fatalf("cache hit touched the loader")
	}
	if env.coord.UsedMB() != used {
		t.Fatalf("cache hit changed memory: %d -> %d", used, env.coord.UsedMB())
	}
	st := env.coord.Status().Statistics
	if st.CacheHits != 1 || st.CacheMisses != 1 {
		t.Fatalf("hits=%d misses=%d, want 1/1", st.CacheHits, st.CacheMisses)
	}
}

func TestLoadSuiteMidLoadFailureRollsBack(t *testing.T) {
	sizes := map[string]int{
		"/m/base/b.safetensors": 1000,
		"/m/refiner/r.ckpt":     500,
		"/m/vae/v.pt":           200,
	}
	env := newTestEnv(2, 0, sizes)
	env.loader.failOn["/m/refiner/r.ckpt"] = errors.New("corrupt header")
	cfg := types.SuiteConfiguration{
		Name:         "s",
		BaseModel:    "/m/base/b.safetensors",
		RefinerModel: "/m/refiner/r.ckpt",
		VAEModel:     "/m/vae/v.pt",
	}
	if err := env.coord.RegisterSuite(cfg); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := env.coord.LoadSuite(context.Background(), "s")
	if !IsLoadFailure(err) {
		t.Fatalf("expected load failure, got %v", err)
	}
	// Symmetrical rollback: the base handle obtained before the failure is released.
	if env.loader.releaseCount() != 1 || env.loader.releases[0] != "/m/base/b.safetensors" {
		t.Fatalf("releases=%v, want just the base model", env.loader.releases)
	}
	if env.coord.UsedMB() != 0 {
		t.Fatalf("used=%dMB after rollback, want 0", env.coord.UsedMB())
	}
	if env.coord.IsLoaded("s") {
		t.Fatalf("suite visible after failed load")
	}
}

func TestLoadSuiteWrapsLoaderCause(t *testing.T) {
	env := newTestEnv(2, 0, map[string]int{"/m/base/a.safetensors": 100})
	cause := errors.New("device out of memory")
	env.loader.failOn["/m/base/a.safetensors"] = cause
	if err := env.coord.RegisterSuite(suiteCfg("s", "/m/base/a.safetensors")); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := env.coord.LoadSuite(context.Background(), "s")
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}

func TestLoadSuiteRevalidatesPathAtLoadTime(t *testing.T) {
	env := newTestEnv(2, 0, map[string]int{"/m/base/a.safetensors": 100})
	if err := env.coord.RegisterSuite(suiteCfg("s", "/m/base/a.safetensors")); err != nil {
		t.Fatalf("register: %v", err)
	}
	// The file vanishes between registration and load.
	delete(env.resolver, "/m/base/a.safetensors")
	_, err := env.coord.LoadSuite(context.Background(), "s")
	if !IsLoadFailure(err) {
		t.Fatalf("expected load failure for vanished file, got %v", err)
	}
}

func TestLoadSuiteCanceledContext(t *testing.T) {
	env := newTestEnv(2, 0, map[string]int{"/m/base/a.safetensors": 100})
	if err := env.coord.RegisterSuite(suiteCfg("s", "/m/base/a.safetensors")); err != nil {
		t.Fatalf("register: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := env.coord.LoadSuite(ctx, "s"); err == nil {
		t.Fatalf("expected error for canceled context")
	}
	if env.coord.UsedMB() != 0 {
		t.Fatalf("used=%dMB after canceled load", env.coord.UsedMB())
	}
}

func TestLoadSuiteDefaultEstimateWhenLoaderCannotSize(t *testing.T) {
	// plainLoader has no EstimateSize; projection falls back to the default.
	loader := &plainLoader{inner: newFakeLoader(map[string]int{"/m/base/a.safetensors": 300})}
	loaders := map[types.ModelKind]ModelLoader{}
	for _, k := range types.Kinds() {
		loaders[k] = loader
	}
	coord := NewWithConfig(Config{
		CacheSize:         1,
		MaxMemoryMB:       200, // below the default estimate
		DefaultEstimateMB: 512,
		Loaders:           loaders,
		Resolver:          mapResolver{"/m/base/a.safetensors": true},
	})
	if err := coord.RegisterSuite(suiteCfg("s", "/m/base/a.safetensors")); err != nil {
		t.Fatalf("register: %v", err)
	}
	// Projection of 512MB exceeds the 200MB budget with nothing to evict.
	if _, err := coord.LoadSuite(context.Background(), "s"); !IsResourceExhausted(err) {
		t.Fatalf("expected resource exhausted from projection, got %v", err)
	}
}

// plainLoader hides the fake's EstimateSize to exercise the default path.
type plainLoader struct{ inner *fakeLoader }

func (p *plainLoader) Load(ctx context.Context, path string) (*ModelHandle, error) {
	return p.inner.Load(ctx, path)
}

func (p *plainLoader) Release(h *ModelHandle) error { return p.inner.Release(h) }
