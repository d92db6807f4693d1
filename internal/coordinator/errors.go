package coordinator

import "fmt"

// validationError signals a bad configuration at registration time.
type validationError struct{ msg string }

func (e validationError) Error() string { return "validation: " + e.msg }

func errValidation(format string, args ...any) error {
	return validationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err indicates a rejected configuration.
func IsValidation(err error) bool {
	_, ok := err.(validationError)
	return ok
}

// notFoundError signals an operation on an unregistered suite name.
type notFoundError struct{ name string }

func (e notFoundError) Error() string { return "suite not found: " + e.name }

func errNotFound(name string) error { return notFoundError{name: name} }

// IsNotFound reports whether err indicates a missing suite name.
func IsNotFound(err error) bool {
	_, ok := err.(notFoundError)
	return ok
}

// loadError wraps a collaborator failure from the load path.
type loadError struct {
	path  string
	cause error
}

func (e loadError) Error() string { return fmt.Sprintf("load %s: %v", e.path, e.cause) }
func (e loadError) Unwrap() error { return e.cause }

func errLoad(path string, cause error) error { return loadError{path: path, cause: cause} }

// IsLoadFailure reports whether err came from a model load attempt.
func IsLoadFailure(err error) bool {
	_, ok := err.(loadError)
	return ok
}

// resourceExhaustedError signals that eviction could not free enough
// capacity for a requested load.
type resourceExhaustedError struct{ msg string }

func (e resourceExhaustedError) Error() string { return "resource exhausted: " + e.msg }

func errResourceExhausted(format string, args ...any) error {
	return resourceExhaustedError{msg: fmt.Sprintf(format, args...)}
}

// IsResourceExhausted reports whether err indicates the cache/budget could
// not accommodate a load even after evicting everything evictable.
func IsResourceExhausted(err error) bool {
	_, ok := err.(resourceExhaustedError)
	return ok
}

// alreadyActiveError signals an attempt to overwrite or remove the
// configuration of a currently resident suite.
type alreadyActiveError struct{ name string }

func (e alreadyActiveError) Error() string { return "suite is active: " + e.name }

func errAlreadyActive(name string) error { return alreadyActiveError{name: name} }

// IsAlreadyActive reports whether err indicates a conflict with a resident suite.
func IsAlreadyActive(err error) bool {
	_, ok := err.(alreadyActiveError)
	return ok
}

// pinnedError signals an unload/evict attempt against a pinned suite.
type pinnedError struct{ name string }

func (e pinnedError) Error() string { return "suite is pinned: " + e.name }

func errPinned(name string) error { return pinnedError{name: name} }

// IsPinned reports whether err indicates the suite is held by outstanding pins.
func IsPinned(err error) bool {
	_, ok := err.(pinnedError)
	return ok
}

// desyncError signals that the cache and accountant disagree about tracked
// memory. This is a bookkeeping bug, never a recoverable condition.
type desyncError struct{ msg string }

func (e desyncError) Error() string { return "accounting desync: " + e.msg }

// IsDesync reports whether err indicates cache/accountant drift.
func IsDesync(err error) bool {
	_, ok := err.(desyncError)
	return ok
}
