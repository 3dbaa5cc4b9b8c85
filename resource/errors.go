package resource

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedDialect matches every *UnsupportedDialectError via errors.Is.
var ErrUnsupportedDialect = errors.New("resource: unsupported dialect")

// UnsupportedDialectError reports a dialect name absent from the store.
// It is recoverable: callers typically fall back to Store.Default.
type UnsupportedDialectError struct {
	Name  string
	Known []string
}

func (e *UnsupportedDialectError) Error() string {
	return fmt.Sprintf("resource: unsupported dialect %q (known: %s)", e.Name, strings.Join(e.Known, ", "))
}

// Is makes errors.Is(err, ErrUnsupportedDialect) hold.
func (e *UnsupportedDialectError) Is(target error) bool {
	return target == ErrUnsupportedDialect
}

// ResourceError reports a missing or malformed table. It is fatal for
// initialization: a store is never built from partial data.
type ResourceError struct {
	Path string // file or logical table name
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("resource: %s: %v", e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

func resourceErr(path string, format string, args ...any) error {
	return &ResourceError{Path: path, Err: fmt.Errorf(format, args...)}
}
