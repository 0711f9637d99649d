// Package disposable ties teardown of IDisposable values to their Go owner.
//
// A Wrapper holds one value that can be disposed, either a Go implementation
// of Disposer or a JS object that already is one. It moves from holding to
// disposed exactly once:
//
//	w := disposable.New(b, v)
//	defer w.Close() // dispose runs here
//
//	v, err := w.Take() // or: get v back, dispose is now the caller's job
//
// Closing or taking twice returns a KindDisposed error and never calls
// dispose again.
//
// # Ownership
//
// A Group lets a longer-lived object own wrappers it did not create the
// scope for; closing the group closes whatever is still holding.
//
// # Leaks
//
// Wrappers still holding are listed in Live. One collected by the garbage
// collector without being closed is logged as a warning, removed from Live
// and queued. The collector never calls into the JS runtime itself; the
// queue is disposed on the runtime goroutine by the next New on that
// runtime, or by Sweep.
package disposable
