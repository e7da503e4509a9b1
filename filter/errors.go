package filter

import (
	"fmt"
)

// CompilationError is returned by Compile when a --filter expression is not
// a valid boolean expression over a Target.
type CompilationError struct {
	Expression string
	Reason     string
	Position   int // column reported by expr, -1 if unknown
	Err        error
}

func (e *CompilationError) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("invalid filter %q at column %d: %s", e.Expression, e.Position, e.Reason)
	}
	return fmt.Sprintf("invalid filter %q: %s", e.Expression, e.Reason)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

// EvaluationError is returned by Match when a compiled filter fails at run
// time for one command line argument, e.g. a custom helper panicked.
type EvaluationError struct {
	Expression string
	Input      string
	Reason     string
	Err        error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("filter %q failed on %s: %s", e.Expression, e.Input, e.Reason)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
