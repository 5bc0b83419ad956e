// Package failure models build failures as a small recursive taxonomy:
// plain message errors, file-attributed wrappers, and lossless aggregates.
//
// Aggregation never drops a member and never flattens eagerly; Flatten is a
// display-time concern so nested attribution survives composition.
package failure

import (
	"errors"
	"fmt"
)

// New returns a plain failure with the given message.
func New(msg string) error {
	return errors.New(msg)
}

// Newf returns a failure with a formatted message. Like fmt.Errorf, %w
// verbs wrap their operands, keeping them reachable via errors.Is and
// errors.As.
func Newf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// Wrap annotates err with a message while keeping it reachable via Unwrap.
func Wrap(err error, msg string) error {
	return fmt.Errorf("%s: %w", msg, err)
}

// FileError attributes a failure to the source file that caused it.
// Attribution may nest: a FileError can wrap another FileError or an
// Aggregate produced further down the pipeline.
type FileError struct {
	Path string
	Err  error
}

// AtFile wraps err with a source file attribution.
func AtFile(path string, err error) error {
	return &FileError{Path: path, Err: err}
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Aggregate holds several failures as one. Members keep their original
// order and structure.
type Aggregate struct {
	Errs []error
}

// NewAggregate combines errs into a single failure. It returns nil when
// errs is empty so callers can propagate the result directly.
func NewAggregate(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return &Aggregate{Errs: errs}
}

func (a *Aggregate) Error() string {
	if len(a.Errs) == 1 {
		return a.Errs[0].Error()
	}
	return fmt.Sprintf("%d failures (first: %v)", len(a.Errs), a.Errs[0])
}

// Unwrap exposes the members for errors.Is/As traversal.
func (a *Aggregate) Unwrap() []error {
	return a.Errs
}

// Flatten expands err into its leaf failures, in order. Aggregates are
// recursed into; file attribution is re-applied to each leaf underneath it
// so every reported line still names the offending file. A non-aggregate
// error flattens to itself.
func Flatten(err error) []error {
	if err == nil {
		return nil
	}
	switch e := err.(type) {
	case *Aggregate:
		out := make([]error, 0, len(e.Errs))
		for _, member := range e.Errs {
			out = append(out, Flatten(member)...)
		}
		return out
	case *FileError:
		inner := Flatten(e.Err)
		if len(inner) == 1 {
			return []error{err}
		}
		out := make([]error, 0, len(inner))
		for _, member := range inner {
			out = append(out, AtFile(e.Path, member))
		}
		return out
	default:
		return []error{err}
	}
}

// FlattenAll flattens every error in errs, concatenated in order.
func FlattenAll(errs []error) []error {
	var out []error
	for _, err := range errs {
		out = append(out, Flatten(err)...)
	}
	return out
}
