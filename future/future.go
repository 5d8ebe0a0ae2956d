package future

import (
	"context"
	"errors"
	"sync"
)

// ErrNilRejection replaces a nil error passed to Reject.
var ErrNilRejection = errors.New("future: rejected without an error")

// Future is a single-shot result container.
type Future[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

// New creates a pending Future.
func New[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolved returns a Future already resolved with v.
func Resolved[T any](v T) *Future[T] {
	f := New[T]()
	f.Resolve(v)
	return f
}

// Rejected returns a Future already rejected with err.
func Rejected[T any](err error) *Future[T] {
	f := New[T]()
	f.Reject(err)
	return f
}

// Resolve settles the Future with v. It reports whether this call settled it.
func (f *Future[T]) Resolve(v T) bool {
	settled := false
	f.once.Do(func() {
		f.value = v
		settled = true
		close(f.done)
	})
	return settled
}

// Reject settles the Future with err. It reports whether this call settled it.
func (f *Future[T]) Reject(err error) bool {
	if err == nil {
		err = ErrNilRejection
	}
	settled := false
	f.once.Do(func() {
		f.err = err
		settled = true
		close(f.done)
	})
	return settled
}

// Done returns a channel closed once the Future settles.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the Future settles or ctx is done. A done ctx only stops
// the wait; the underlying exchange keeps running and still settles the Future.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result returns the settled outcome without blocking. ok is false while pending.
func (f *Future[T]) Result() (value T, ok bool, err error) {
	select {
	case <-f.done:
		return f.value, true, f.err
	default:
		var zero T
		return zero, false, nil
	}
}

// Then returns a Future settled with fn applied to f's value. A rejection of f
// propagates unchanged and fn is not called.
func Then[T, U any](f *Future[T], fn func(T) (U, error)) *Future[U] {
	next := New[U]()
	go func() {
		<-f.done
		if f.err != nil {
			next.Reject(f.err)
			return
		}
		v, err := fn(f.value)
		if err != nil {
			next.Reject(err)
			return
		}
		next.Resolve(v)
	}()
	return next
}
