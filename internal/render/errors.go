package render

import "fmt"

// UnsupportedNodeError indicates a child value of a kind the renderer does
// not handle. It is surfaced rather than swallowed so that integrators
// notice unhandled component types instead of silently losing content.
type UnsupportedNodeError struct {
	Kind string
}

func (e *UnsupportedNodeError) Error() string {
	return fmt.Sprintf("unsupported node kind: %s", e.Kind)
}

// StructuralError indicates the tree exceeded the configured depth limit,
// usually because the acyclic-input precondition was violated.
type StructuralError struct {
	MaxDepth int
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("layout exceeds maximum depth %d; tree may be cyclic", e.MaxDepth)
}
