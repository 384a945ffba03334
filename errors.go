package dagre

import (
	"fmt"

	"go.uber.org/multierr"
	"golang.org/x/xerrors"
)

// InvalidInputError reports a single precondition violation caught
// during intake, before any mutation of the caller's graph.
type InvalidInputError struct {
	Node, Edge string // whichever is relevant; the other is empty
	Reason     string
}

func (e *InvalidInputError) Error() string {
	switch {
	case e.Node != "":
		return fmt.Sprintf("dagre: invalid input at node %q: %s", e.Node, e.Reason)
	case e.Edge != "":
		return fmt.Sprintf("dagre: invalid input at edge %s: %s", e.Edge, e.Reason)
	default:
		return fmt.Sprintf("dagre: invalid input: %s", e.Reason)
	}
}

// GeometryError reports a degenerate geometric query, such as
// intersecting a rectangle with its own center.
type GeometryError struct {
	Reason string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("dagre: geometric degeneracy: %s", e.Reason)
}

// InvariantError marks a bug: an internal assertion the pipeline
// relies on did not hold. It is never expected in a correct caller
// and is never recovered from.
type InvariantError struct {
	Stage  string
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("dagre: internal invariant violated in %s: %s", e.Stage, e.Reason)
}

// validator accumulates independent invalid-input findings during
// intake so a caller sees every problem in one error instead of
// fixing them one at a time.
type validator struct {
	err error
}

func (v *validator) check(cond bool, err error) {
	if !cond {
		v.err = multierr.Append(v.err, err)
	}
}

func (v *validator) errOrNil() error {
	return v.err
}

// wrapInvariant adds a call-frame-preserving wrap around an
// InvariantError, for the rare case a caller wants %w-style
// inspection of where the assertion actually fired.
func wrapInvariant(stage, reason string) error {
	return xerrors.Errorf("dagre: %s: %w", stage, &InvariantError{Stage: stage, Reason: reason})
}
