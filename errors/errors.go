package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDefine  Phase = "define"  // capability descriptor construction
	PhaseBind    Phase = "bind"    // building bridge objects
	PhaseConvert Phase = "convert" // value conversion across the boundary
	PhaseCall    Phase = "call"    // Go calling into JS or JS calling into Go
	PhaseDispose Phase = "dispose" // disposal lifecycle
	PhaseEval    Phase = "eval"    // script evaluation and module loading
	PhaseConfig  Phase = "config"  // options and configuration files
)

// Kind categorizes the error
type Kind string

const (
	KindTypeMismatch   Kind = "type_mismatch"
	KindInvalidInput   Kind = "invalid_input"
	KindInvalidEnum    Kind = "invalid_enum"
	KindNotFound       Kind = "not_found"
	KindNotFunction    Kind = "not_function"
	KindNotCloneable   Kind = "not_cloneable"
	KindNotInitialized Kind = "not_initialized"
	KindCollision      Kind = "collision"
	KindReentrant      Kind = "reentrant"
	KindDisposed       Kind = "disposed"
	KindException      Kind = "exception"
	KindUnsupported    Kind = "unsupported"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	JSType string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.JSType != "" {
		b.WriteString(": ")
		switch {
		case e.GoType != "" && e.JSType != "":
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", JS type ")
			b.WriteString(e.JSType)
		case e.GoType != "":
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		default:
			b.WriteString("JS type ")
			b.WriteString(e.JSType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.JSType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the member path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// JSType sets the JS type name
func (b *Builder) JSType(t string) *Builder {
	b.err.JSType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, jsType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		GoType: goType,
		JSType: jsType,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// InvalidEnum creates an invalid enum value error
func InvalidEnum(phase Phase, path []string, value any, enumType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidEnum,
		Path:   path,
		GoType: enumType,
		Detail: fmt.Sprintf("invalid enum value %v for %s", value, enumType),
		Value:  value,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// NotFunction creates an error for a member that was expected to be callable
func NotFunction(phase Phase, path []string, jsType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFunction,
		Path:   path,
		JSType: jsType,
		Detail: "value is not callable",
	}
}

// NotCloneable creates an error for by-reference conversion of a value
// that cannot be duplicated
func NotCloneable(capability, goType string) *Error {
	return &Error{
		Phase:  PhaseConvert,
		Kind:   KindNotCloneable,
		Path:   []string{capability},
		GoType: goType,
		Detail: "local implementation must provide Clone to be bridged by reference",
	}
}

// NotInitialized creates a not-initialized error
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// Collision creates an authoring error for two ancestors contributing the same member
func Collision(capability, member string, first, second string) *Error {
	return &Error{
		Phase:  PhaseDefine,
		Kind:   KindCollision,
		Path:   []string{capability, member},
		Detail: fmt.Sprintf("member defined by both %s and %s", first, second),
	}
}

// Reentrant creates an error for a mutable borrow taken while another is active
func Reentrant(goType string) *Error {
	return &Error{
		Phase:  PhaseCall,
		Kind:   KindReentrant,
		GoType: goType,
		Detail: "value already mutably borrowed",
	}
}

// Disposed creates an error for an operation on a disposed value
func Disposed(what string) *Error {
	return &Error{
		Phase:  PhaseDispose,
		Kind:   KindDisposed,
		Detail: fmt.Sprintf("%s already disposed", what),
	}
}

// Exception wraps an exception thrown by the JS runtime
func Exception(phase Phase, path []string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindException,
		Path:   path,
		Detail: "uncaught exception",
		Cause:  cause,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
