package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseConvert,
				Kind:   KindTypeMismatch,
				Path:   []string{"UnicodeVersionProvider", "wcwidth", "0"},
				GoType: "uint32",
				JSType: "object",
				Detail: "cannot convert",
			},
			contains: []string{"[convert]", "type_mismatch", "UnicodeVersionProvider.wcwidth.0", "uint32", "object", "cannot convert"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDispose,
				Kind:  KindDisposed,
			},
			contains: []string{"[dispose]", "disposed"},
		},
		{
			name: "go type only",
			err: &Error{
				Phase:  PhaseCall,
				Kind:   KindReentrant,
				GoType: "*counter",
				Detail: "busy",
			},
			contains: []string{"Go type *counter - busy"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseCall,
				Kind:   KindException,
				Detail: "uncaught exception",
				Cause:  errors.New("TypeError: boom"),
			},
			contains: []string{"[call]", "exception", "uncaught exception", "caused by", "TypeError: boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseEval,
		Kind:  KindException,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseConvert,
		Kind:  KindTypeMismatch,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseConvert, Kind: KindTypeMismatch}) {
		t.Error("Is should match same phase and kind")
	}

	if err.Is(&Error{Phase: PhaseCall, Kind: KindTypeMismatch}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhaseConvert, Kind: KindNotFound}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseConvert, Kind: KindTypeMismatch}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseConvert, KindTypeMismatch).
		Path("Frobber", "frob").
		GoType("uint64").
		JSType("string").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "number", "string").
		Build()

	if err.Phase != PhaseConvert {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseConvert)
	}
	if err.Kind != KindTypeMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
	}
	if len(err.Path) != 2 || err.Path[0] != "Frobber" || err.Path[1] != "frob" {
		t.Errorf("Path = %v, want [Frobber frob]", err.Path)
	}
	if err.GoType != "uint64" {
		t.Errorf("GoType = %v, want 'uint64'", err.GoType)
	}
	if err.JSType != "string" {
		t.Errorf("JSType = %v, want 'string'", err.JSType)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected number, got string" {
		t.Errorf("Detail = %v, want 'expected number, got string'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name  string
		err   *Error
		phase Phase
		kind  Kind
	}{
		{"TypeMismatch", TypeMismatch(PhaseConvert, []string{"arg"}, "int", "string"), PhaseConvert, KindTypeMismatch},
		{"InvalidInput", InvalidInput(PhaseBind, "nil implementation"), PhaseBind, KindInvalidInput},
		{"InvalidEnum", InvalidEnum(PhaseConfig, []string{"cursorStyle"}, "round", "CursorStyle"), PhaseConfig, KindInvalidEnum},
		{"NotFound", NotFound(PhaseEval, "module", "xterm"), PhaseEval, KindNotFound},
		{"NotFunction", NotFunction(PhaseCall, []string{"onKey"}, "undefined"), PhaseCall, KindNotFunction},
		{"NotCloneable", NotCloneable("Frobber", "*frob"), PhaseConvert, KindNotCloneable},
		{"NotInitialized", NotInitialized(PhaseBind, "binder"), PhaseBind, KindNotInitialized},
		{"Collision", Collision("Child", "frob", "A", "B"), PhaseDefine, KindCollision},
		{"Reentrant", Reentrant("*state"), PhaseCall, KindReentrant},
		{"Disposed", Disposed("listener"), PhaseDispose, KindDisposed},
		{"Exception", Exception(PhaseCall, []string{"write"}, cause), PhaseCall, KindException},
		{"Unsupported", Unsupported(PhaseBind, "channels"), PhaseBind, KindUnsupported},
		{"Wrap", Wrap(PhaseEval, KindException, cause, "run script"), PhaseEval, KindException},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Phase != tt.phase {
				t.Errorf("Phase = %v, want %v", tt.err.Phase, tt.phase)
			}
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.kind)
			}
			if tt.err.Error() == "" {
				t.Error("empty message")
			}
		})
	}

	t.Run("Collision detail", func(t *testing.T) {
		err := Collision("Child", "frob", "A", "B")
		if !strings.Contains(err.Error(), "Child.frob") {
			t.Errorf("message %q should name the member path", err.Error())
		}
	})

	t.Run("Exception keeps cause", func(t *testing.T) {
		err := Exception(PhaseCall, nil, cause)
		if !errors.Is(err, cause) {
			t.Error("errors.Is should reach the cause")
		}
	})
}
