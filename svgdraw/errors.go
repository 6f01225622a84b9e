package svgdraw

import (
	"errors"
	"fmt"

	"github.com/benoitkugler/giosvg/svgtree"
)

// ErrorMode is the policy applied to unsupported nodes.
type ErrorMode = svgtree.ErrorMode

const (
	// IgnoreErrorMode skips unsupported nodes silently.
	IgnoreErrorMode = svgtree.IgnoreErrorMode
	// WarnErrorMode logs a warning and skips unsupported nodes.
	WarnErrorMode = svgtree.WarnErrorMode
	// StrictErrorMode stops the rendering at the first unsupported node.
	StrictErrorMode = svgtree.StrictErrorMode
)

// ErrUnsupported is matched by all the *UnsupportedError values.
var ErrUnsupported = errors.New("unsupported svg feature")

// Unsupported features
const (
	FeatureImage          = "image"
	FeatureLinearGradient = "linear gradient"
	FeatureRadialGradient = "radial gradient"
	FeaturePattern        = "pattern"
)

// UnsupportedError is returned when a node can't be drawn.
// The node is skipped.
type UnsupportedError struct {
	Feature string
	NodeID  string // may be empty
}

func (e *UnsupportedError) Error() string {
	if e.NodeID != "" {
		return fmt.Sprintf("svgdraw: unsupported %s in node %q", e.Feature, e.NodeID)
	}
	return fmt.Sprintf("svgdraw: unsupported %s", e.Feature)
}

// Is makes errors.Is(err, ErrUnsupported) true.
func (e *UnsupportedError) Is(target error) bool { return target == ErrUnsupported }

// ParseError is returned by New for invalid documents.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "svgdraw: invalid svg document: " + e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }
