package convert

import "fmt"

// ParseError means the conformant repair parser failed. parseDocument runs
// it when the fast parser fails or its tree trips a repair trigger, and
// does not retry it (§4.3, §7).
type ParseError struct {
	Stage string // parser stage that failed; parseDocument reports "repair"
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("gomark: parse error at %s stage: %v", e.Stage, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError means an Options value violates one of its documented
// constraints (§7, spec.md §6 validation rules).
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("gomark: invalid option %s: %s", e.Field, e.Msg)
}

// VisitorError wraps the first error an external Visitor reported during
// a walk. Traversal completes regardless so side-effectful collectors
// still observe a consistent document; the top-level call surfaces this
// error afterward (§4.8, §9).
type VisitorError struct {
	Node string // tag name or node kind the visitor was invoked on
	Err  error
}

func (e *VisitorError) Error() string {
	return fmt.Sprintf("gomark: visitor error at <%s>: %v", e.Node, e.Err)
}

func (e *VisitorError) Unwrap() error { return e.Err }
