// Package result provides an algebraic success/failure container used as the
// sole error-propagation mechanism across every fallible operation in the
// iroha storage library.
//
// A Result holds exactly one of a value or an error, and the only way to get
// either out is to supply handlers for both cases. No boundary in this
// library lets a driver fault escape: faults are converted to Result errors
// holding plain, inspectable data.
package result

// Unit is the value type of a Result carrying no payload.
//
// It stands in for "void" in operations that can fail but produce nothing,
// such as rolling back a prepared transaction.
type Unit struct{}

// Result is a two-variant tagged union holding either a value of type V or
// an error of type E, never both and never neither.
//
// Results are immutable once constructed. The zero value of Result is a
// value-holding Result wrapping the zero value of V; prefer the Ok and Err
// constructors.
//
// Extraction goes through Match (or Fold when a return value is needed):
// both branches must be supplied and exactly one runs, so every caller
// addresses the error path explicitly.
type Result[V, E any] struct {
	value V
	err   E
	isErr bool
}

// Ok constructs a value-holding Result.
//
// Parameters:
//   - value: The success value to wrap
//
// Returns:
//   - Result[V, E]: A Result in the value state
func Ok[V, E any](value V) Result[V, E] {
	return Result[V, E]{value: value}
}

// Err constructs an error-holding Result.
//
// Parameters:
//   - err: The error value to wrap
//
// Returns:
//   - Result[V, E]: A Result in the error state
func Err[V, E any](err E) Result[V, E] {
	return Result[V, E]{err: err, isErr: true}
}

// Match runs exactly one of the two supplied functions depending on the
// Result's state. Both functions must be non-nil; there is no way to ignore
// one of the branches.
//
// Parameters:
//   - onValue: Called with the value when the Result holds one
//   - onError: Called with the error when the Result holds one
func (r Result[V, E]) Match(onValue func(V), onError func(E)) {
	if r.isErr {
		onError(r.err)
		return
	}
	onValue(r.value)
}

// HasValue reports whether the Result holds a value.
func (r Result[V, E]) HasValue() bool {
	return !r.isErr
}

// HasError reports whether the Result holds an error.
func (r Result[V, E]) HasError() bool {
	return r.isErr
}

// ValueOr returns the held value, or fallback when the Result holds an error.
//
// Parameters:
//   - fallback: The value to return in the error case
//
// Returns:
//   - V: The held value or the fallback
func (r Result[V, E]) ValueOr(fallback V) V {
	if r.isErr {
		return fallback
	}
	return r.value
}

// ToValue converts the Result to an optional value.
//
// Returns:
//   - V: The held value, or the zero value of V
//   - bool: true when the Result holds a value
func (r Result[V, E]) ToValue() (V, bool) {
	return r.value, !r.isErr
}

// ToError converts the Result to an optional error.
//
// Returns:
//   - E: The held error, or the zero value of E
//   - bool: true when the Result holds an error
func (r Result[V, E]) ToError() (E, bool) {
	return r.err, r.isErr
}

// And composes this Result with a second one of the same type, keeping the
// first error encountered and otherwise the second value. For a type-changing
// composition use the package-level And.
//
// Parameters:
//   - next: The second Result
//
// Returns:
//   - Result[V, E]: next when r holds a value, otherwise r
func (r Result[V, E]) And(next Result[V, E]) Result[V, E] {
	if r.isErr {
		return r
	}
	return next
}

// Fold is the value-returning form of Match: exactly one of the two supplied
// functions runs and its return value becomes Fold's return value.
//
// Go methods cannot introduce type parameters, so Fold is a package function.
//
// Parameters:
//   - r: The Result to fold
//   - onValue: Called with the value when r holds one
//   - onError: Called with the error when r holds one
//
// Returns:
//   - T: Whatever the executed branch returned
func Fold[V, E, T any](r Result[V, E], onValue func(V) T, onError func(E) T) T {
	if r.isErr {
		return onError(r.err)
	}
	return onValue(r.value)
}

// Bind chains a Result-returning function onto a Result.
//
// If r holds an error, the error short-circuits through unchanged and f is
// never called. Otherwise f is applied to the value and its Result becomes
// the output.
//
// Parameters:
//   - r: The input Result
//   - f: Transformation from the value to the next Result
//
// Returns:
//   - Result[V2, E]: f's output, or r's error re-wrapped
func Bind[V, V2, E any](r Result[V, E], f func(V) Result[V2, E]) Result[V2, E] {
	if r.isErr {
		return Err[V2, E](r.err)
	}
	return f(r.value)
}

// Map chains a plain function onto a Result, auto-wrapping its output.
//
// Equivalent to Bind with the function's result lifted into a value-holding
// Result.
//
// Parameters:
//   - r: The input Result
//   - f: Transformation from the value to the next value
//
// Returns:
//   - Result[V2, E]: Ok(f(value)), or r's error re-wrapped
func Map[V, V2, E any](r Result[V, E], f func(V) V2) Result[V2, E] {
	if r.isErr {
		return Err[V2, E](r.err)
	}
	return Ok[V2, E](f(r.value))
}

// MapError rewrites the error of a Result, leaving values untouched.
//
// Used when a Result crosses a layer that speaks a different error
// vocabulary.
//
// Parameters:
//   - r: The input Result
//   - f: Transformation from the old error type to the new one
//
// Returns:
//   - Result[V, E2]: r's value, or f(error)
func MapError[V, E, E2 any](r Result[V, E], f func(E) E2) Result[V, E2] {
	if r.isErr {
		return Err[V, E2](f(r.err))
	}
	return Ok[V, E2](r.value)
}

// And composes two Results with lazy boolean-AND semantics:
//
//	err1 * any  -> err1
//	val1 * err2 -> err2
//	val1 * val2 -> val2
//
// Parameters:
//   - r: The first Result
//   - next: The second Result
//
// Returns:
//   - Result[V2, E]: next when r holds a value, otherwise r's error
func And[V, V2, E any](r Result[V, E], next Result[V2, E]) Result[V2, E] {
	if r.isErr {
		return Err[V2, E](r.err)
	}
	return next
}

// Or composes two Results with lazy boolean-OR semantics:
//
//	val1 * any  -> val1
//	err1 * val2 -> val2
//	err1 * err2 -> err2
//
// Parameters:
//   - r: The first Result
//   - next: The second Result
//
// Returns:
//   - Result[V, E]: r when it holds a value, otherwise next
func Or[V, E any](r Result[V, E], next Result[V, E]) Result[V, E] {
	if r.isErr {
		return next
	}
	return r
}
