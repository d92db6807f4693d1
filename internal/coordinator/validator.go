package coordinator

import (
	"path/filepath"
	"strings"

	"suited/internal/common/fsutil"
)

// FilesystemResolver answers existence queries for model paths. Injected so
// tests and remote-backed loaders can substitute their own resolution.
type FilesystemResolver interface {
	Exists(path string) bool
}

// PathValidator checks that a referenced model path is usable before any
// load is attempted. Implementations must not read model content.
type PathValidator interface {
	Validate(path string) error
}

// osResolver resolves paths against the local filesystem.
type osResolver struct{}

func (osResolver) Exists(path string) bool { return fsutil.PathExists(path) }

// extValidator validates existence plus a known model-file extension. It
// never reads model content.
type extValidator struct {
	resolver FilesystemResolver
}

func newExtValidator(r FilesystemResolver) *extValidator {
	return &extValidator{resolver: r}
}

func (v *extValidator) Validate(path string) error {
	if strings.TrimSpace(path) == "" {
		return errValidation("empty model path")
	}
	if !fsutil.HasModelExt(path) {
		return errValidation("unsupported model extension %q: %s", strings.ToLower(filepath.Ext(path)), path)
	}
	if !v.resolver.Exists(path) {
		return errValidation("model path does not exist: %s", path)
	}
	return nil
}
