// Package sandbox executes synthesized generator programs under the fixed
// contract: a single generate(count, fields) entry point, no ambient access
// beyond the two arguments, and an array-shaped result. The Executor
// interface keeps the isolation primitive swappable; the built-in
// implementation runs programs in an embedded ECMAScript interpreter.
package sandbox

import (
	"context"
	"fmt"

	"github.com/goliatone/go-datagen/pkg/schema"
)

// Executor runs a synthesized program against the live field configuration.
// The fields argument is passed through verbatim so the program re-reads
// current option values instead of values frozen at synthesis time.
type Executor interface {
	Execute(ctx context.Context, source string, count int, fields []schema.FieldConfig) ([]map[string]any, error)
}

// ExecutionError wraps any failure raised while running a synthesized
// program: compile errors, thrown exceptions, a missing entry point, or a
// result that is not array-shaped. Callers receive it instead of the raw
// interpreter error; a previously cached program is left in place when it
// occurs.
type ExecutionError struct {
	Err error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("sandbox: program execution failed: %v", e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

func execError(format string, args ...any) *ExecutionError {
	return &ExecutionError{Err: fmt.Errorf(format, args...)}
}
