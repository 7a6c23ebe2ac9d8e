package ir

import "fmt"

// InvariantError reports a violated IR well-formedness invariant (spec
// taxonomy "ir-invariant"): a programming error in the lowering engine,
// not a user-facing diagnostic. The lowering engine recovers these at its
// single top-level boundary and converts them to a report diagnostic.
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string { return e.Message }

func invariantf(format string, args ...any) {
	panic(&InvariantError{Message: fmt.Sprintf(format, args...)})
}
