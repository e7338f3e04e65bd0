package runtime

import "fmt"

// LifecycleError reports a BeforeMount rejection or a panicking hook.
type LifecycleError struct {
	RouteName string
	Hook      string
	Err       error
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("runtime: %s of %q failed: %v", e.Hook, e.RouteName, e.Err)
}

func (e *LifecycleError) Unwrap() error {
	return e.Err
}
