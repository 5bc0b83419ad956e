// Package result provides the aggregation combinator the build is built on:
// many independent fallible operations folded into either all values or
// every error, never stopping at the first problem.
package result

// Result is the outcome of one fallible operation.
type Result[T any] struct {
	Value T
	Err   error
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Err wraps a failed outcome.
func Err[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// Combine folds results into (values, nil) when every result succeeded, or
// (nil, errors) when at least one failed. Both slices preserve the relative
// order of their inputs, and every error is collected — Combine never
// short-circuits. Empty input yields an empty value slice and no errors.
func Combine[T any](results []Result[T]) ([]T, []error) {
	values := make([]T, 0, len(results))
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
			continue
		}
		values = append(values, r.Value)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return values, nil
}

// Each applies fn to every element of in, collecting one Result per element.
// It always runs to completion so callers learn about every failure.
func Each[I, O any](in []I, fn func(I) (O, error)) []Result[O] {
	out := make([]Result[O], 0, len(in))
	for _, item := range in {
		v, err := fn(item)
		if err != nil {
			out = append(out, Err[O](err))
			continue
		}
		out = append(out, Ok(v))
	}
	return out
}
