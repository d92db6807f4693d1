package registry

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"suited/internal/common/fsutil"
	"suited/pkg/types"
)

// kindDirs maps conventional subdirectory names to model kinds.
var kindDirs = map[string]types.ModelKind{
	"base":       types.KindBase,
	"refiner":    types.KindRefiner,
	"vae":        types.KindVAE,
	"lora":       types.KindLoRA,
	"loras":      types.KindLoRA,
	"controlnet": types.KindControlNet,
}

// ScanDir walks a directory tree for model files and classifies each by the
// first known subdirectory on its relative path (base/, refiner/, vae/,
// lora/, controlnet/). Files outside a known subdirectory get no kind.
func ScanDir(dir string) ([]types.ModelFile, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	var models []types.ModelFile
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !fsutil.HasModelExt(d.Name()) {
			return nil
		}
		rel, rerr := filepath.Rel(abs, path)
		if rerr != nil {
			rel = d.Name()
		}
		mf := types.ModelFile{Name: d.Name(), Path: path, Kind: classify(rel)}
		if fi, serr := os.Stat(path); serr == nil {
			mf.SizeMB = int(fi.Size() / (1024 * 1024))
		}
		models = append(models, mf)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", abs, err)
	}
	sort.Slice(models, func(i, j int) bool { return models[i].Path < models[j].Path })
	return models, nil
}

// classify picks the kind from the first recognized directory component.
func classify(rel string) types.ModelKind {
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if k, ok := kindDirs[strings.ToLower(part)]; ok {
			return k
		}
	}
	return ""
}
