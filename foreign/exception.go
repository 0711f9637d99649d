package foreign

import (
	stderrors "errors"

	"github.com/dop251/goja"

	"github.com/wippyai/xterm-go/errors"
)

// convertError maps an error returned by goja into the module's error type.
// Exceptions keep the *goja.Exception as their cause so callers can inspect
// the thrown value; Go errors that were thrown through JS come back unwrapped.
func convertError(phase errors.Phase, path []string, err error) error {
	if err == nil {
		return nil
	}
	var ex *goja.Exception
	if stderrors.As(err, &ex) {
		if inner := ThrownGoError(ex); inner != nil {
			return inner
		}
		return errors.Exception(phase, path, ex)
	}
	var interrupted *goja.InterruptedError
	if stderrors.As(err, &interrupted) {
		return errors.Wrap(phase, errors.KindException, err, "interrupted")
	}
	return errors.Wrap(phase, errors.KindException, err, "")
}

// ThrownGoError returns the Go error carried by an exception created with
// Runtime.Throw, or nil when the exception was raised by script code.
func ThrownGoError(ex *goja.Exception) error {
	if ex == nil {
		return nil
	}
	obj, ok := ex.Value().(*goja.Object)
	if !ok {
		return nil
	}
	inner := obj.Get("value")
	if inner == nil {
		return nil
	}
	if err, ok := inner.Export().(error); ok {
		return err
	}
	return nil
}

// ExceptionMessage returns the string form of the value thrown by script code.
func ExceptionMessage(err error) string {
	var ex *goja.Exception
	if stderrors.As(err, &ex) {
		return ex.Value().String()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
