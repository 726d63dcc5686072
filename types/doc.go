// Package types provides shared types and error definitions for the iroha
// storage library.
//
// This is a leaf package with zero iroha imports to prevent import cycles.
// All packages in the library can safely import this package.
//
// # Diagnostics
//
// Every diagnostic that crosses a package boundary is a sanitized single-line
// string produced by [FormatDiagnostic]. PostgreSQL messages may span several
// lines; sanitization keeps log output greppable and lets callers surface the
// text verbatim.
//
// # Logging
//
// The [Logger] interface follows zap's sugared key/value convention, so a
// thin adapter over zap.SugaredLogger (mapping Debug to Debugw and so on)
// satisfies it.
//
// A no-op implementation is installed by default so library code never needs
// nil checks.
//
// # Errors
//
// Sentinel errors (ErrReconnectionExhausted, ErrConnectionBroken, ...) are
// plain values suitable for errors.Is. [SessionError] carries the pool index
// of the failing session and unwraps to its cause.
package types
