package menu

import (
	"fmt"
	"strings"
)

// ScopeNotFoundError reports that the application has no menu or toolbar
// root registered under the requested name.
type ScopeNotFoundError struct {
	Scope string
	Err   error
}

func (e *ScopeNotFoundError) Error() string {
	return fmt.Sprintf("menu scope %q not found", e.Scope)
}

func (e *ScopeNotFoundError) Unwrap() error { return e.Err }

// PathNotFoundError reports that no child matched at some level of the
// path. Consumed is the number of path elements that resolved before the
// miss, so the caller can see exactly where the traversal stopped.
type PathNotFoundError struct {
	Scope    string
	Path     []string
	Consumed int
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("menu path %s not found in scope %q: no match for %q (matched %d of %d elements)",
		joinPath(e.Path), e.Scope, e.Path[e.Consumed], e.Consumed, len(e.Path))
}

// AmbiguousPathError reports that the path resolved to a node that still
// has children — the path under-specifies the target.
type AmbiguousPathError struct {
	Scope    string
	Path     []string
	Children int
}

func (e *AmbiguousPathError) Error() string {
	return fmt.Sprintf("menu path %s in scope %q is not a terminal item (%d children remain)",
		joinPath(e.Path), e.Scope, e.Children)
}

// ItemDisabledError reports that the resolved item is disabled and the
// caller did not allow invoking disabled items. No invocation happened.
type ItemDisabledError struct {
	Scope string
	Path  []string
}

func (e *ItemDisabledError) Error() string {
	return fmt.Sprintf("menu item %s in scope %q is disabled", joinPath(e.Path), e.Scope)
}

// InvocationError wraps a failure raised by the application while invoking
// a successfully resolved item. The original diagnostic is preserved.
type InvocationError struct {
	Scope string
	Path  []string
	Err   error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("invoking menu item %s in scope %q: %v", joinPath(e.Path), e.Scope, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

func joinPath(path []string) string {
	if len(path) == 0 {
		return "(root)"
	}
	return strings.Join(path, " > ")
}
