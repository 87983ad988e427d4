package hooked

import (
	"context"
	stderrors "errors"
	"sync"

	"github.com/go-drift/hooked/pkg/errors"
)

// ErrRejected is the rejection reason used when Reject is called with nil.
var ErrRejected = stderrors.New("hooked: deferred rejected")

// Completion is the resolve/reject pair stored in state under the deferred
// marker key. The rendered component settles the pending operation through
// it. Both functions are safe to call from any goroutine; only the first
// call has an effect.
type Completion struct {
	Resolve func(value any)
	Reject  func(err error)
}

// Deferred is the caller's handle on a pending result. It settles exactly
// once, when the Completion stored in state is invoked. There is no timeout;
// use Wait with a cancellable context to stop waiting.
type Deferred struct {
	binding string
	setter  string
	done    chan struct{}
	once    sync.Once
	value   any
	err     error
}

func newDeferred(binding, setter string) *Deferred {
	return &Deferred{
		binding: binding,
		setter:  setter,
		done:    make(chan struct{}),
	}
}

// Resolve settles the deferred with value.
func (d *Deferred) Resolve(value any) {
	d.once.Do(func() {
		d.value = value
		close(d.done)
	})
}

// Reject settles the deferred with err. A nil err is replaced by ErrRejected.
func (d *Deferred) Reject(err error) {
	if err == nil {
		err = ErrRejected
	}
	d.once.Do(func() {
		d.err = errors.Wrap("hooked.Deferred", errors.KindDeferred, d.binding, d.setter, err)
		close(d.done)
	})
}

// Completion returns the resolve/reject pair bound to d.
func (d *Deferred) Completion() Completion {
	return Completion{Resolve: d.Resolve, Reject: d.Reject}
}

// Done is closed once the deferred settles.
func (d *Deferred) Done() <-chan struct{} {
	return d.done
}

// Settled reports whether Resolve or Reject has been called.
func (d *Deferred) Settled() bool {
	select {
	case <-d.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the deferred settles or ctx is done.
func (d *Deferred) Wait(ctx context.Context) (any, error) {
	select {
	case <-d.done:
		return d.value, d.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Value returns the resolved value, or nil if unsettled or rejected.
func (d *Deferred) Value() any {
	if !d.Settled() {
		return nil
	}
	return d.value
}

// Err returns the rejection error, or nil if unsettled or resolved.
func (d *Deferred) Err() error {
	if !d.Settled() {
		return nil
	}
	return d.err
}

// Result is the outcome of a setter call: either applied immediately or
// pending on a Deferred.
type Result struct {
	deferred *Deferred
}

// Pending reports whether the call produced a deferred result.
func (r Result) Pending() bool {
	return r.deferred != nil
}

// Applied reports whether the call completed without a deferred result.
func (r Result) Applied() bool {
	return r.deferred == nil
}

// Deferred returns the pending handle, or nil for applied results.
func (r Result) Deferred() *Deferred {
	return r.deferred
}
