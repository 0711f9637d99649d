// Package errors provides structured error types for the xterm-go module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: member path, Go/JS type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseConvert, errors.KindTypeMismatch).
//		Path("UnicodeVersionProvider", "wcwidth").
//		GoType("uint32").
//		JSType("string").
//		Detail("argument 0").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Disposed("listener")
//	err := errors.Exception(errors.PhaseCall, []string{"terminal", "write"}, cause)
//
// All errors implement the standard error interface and support errors.Is/As.
// Two *Error values match under errors.Is when their Phase and Kind agree.
package errors
