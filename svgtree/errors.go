package svgtree

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrorMode is the for setting how the parser reacts to unparsed elements
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unparsed SVG elements.
	IgnoreErrorMode ErrorMode = iota

	// WarnErrorMode logs a warning when an unparsed SVG element is found
	WarnErrorMode

	// StrictErrorMode returns an error when an unparsed SVG element is found
	StrictErrorMode
)

func (m ErrorMode) String() string {
	switch m {
	case IgnoreErrorMode:
		return "ignore"
	case WarnErrorMode:
		return "warn"
	case StrictErrorMode:
		return "strict"
	default:
		return "<unknown ErrorMode>"
	}
}

// ParseErrorMode accepts "ignore", "warn" and "strict".
func ParseErrorMode(s string) (ErrorMode, error) {
	switch s {
	case "ignore":
		return IgnoreErrorMode, nil
	case "warn":
		return WarnErrorMode, nil
	case "strict":
		return StrictErrorMode, nil
	}
	return 0, fmt.Errorf("invalid error mode %q", s)
}

var (
	errParamMismatch = errors.New("param mismatch")
	errEmptyDocument = errors.New("invalid svg xml: no element found")
	errNoSVGRoot     = errors.New("invalid svg xml: root element is not svg")
	errRecursiveUse  = errors.New("recursive use element")
)

// ElementError is returned when an element can't be processed.
type ElementError struct {
	Element string // tag name
	ID      string // may be empty
	Err     error
}

func (e *ElementError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("svg element <%s id=%q>: %s", e.Element, e.ID, e.Err)
	}
	return fmt.Sprintf("svg element <%s>: %s", e.Element, e.Err)
}

func (e *ElementError) Unwrap() error { return e.Err }

// handleError applies the error mode policy to a
// non fatal problem.
func (b *builder) handleError(el *element, msg string) error {
	switch b.opts.ErrorMode {
	case StrictErrorMode:
		return &ElementError{Element: el.name, ID: el.attr("id"), Err: errors.New(msg)}
	case WarnErrorMode:
		b.logger.Warn(msg, slog.String("element", el.name), slog.String("id", el.attr("id")))
	}
	return nil
}
