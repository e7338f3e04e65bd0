package lazy

import (
	"errors"
	"fmt"
)

// Sentinel errors for module validation.
var (
	ErrNoDefault      = errors.New("lazy: module has no default export")
	ErrNotConstructor = errors.New("lazy: default export is not a component constructor")
	ErrNilComponent   = errors.New("lazy: constructor returned nil component")
)

// LoadError reports a failed lazy load. Err is one of the sentinels above or
// the loader's own error.
type LoadError struct {
	Ref string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("lazy: load %q: %v", e.Ref, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsLoadError checks if err is, or wraps, a *LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}
