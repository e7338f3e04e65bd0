package runtime

import (
	"context"
	"fmt"
)

// Promise is a value or error that becomes available once. Hooks that may
// finish synchronously return Resolved or Rejected; hooks that need to wait
// return Async. A nil *Promise awaits as a resolved nil value.
type Promise struct {
	done  chan struct{}
	value any
	err   error
}

// Resolved returns a promise already settled with v.
func Resolved(v any) *Promise {
	p := &Promise{done: make(chan struct{}), value: v}
	close(p.done)
	return p
}

// Rejected returns a promise already settled with err.
func Rejected(err error) *Promise {
	p := &Promise{done: make(chan struct{}), err: err}
	close(p.done)
	return p
}

// Async runs fn in its own goroutine and settles the promise with its
// result. A panic in fn rejects the promise.
func Async(ctx context.Context, fn func(ctx context.Context) (any, error)) *Promise {
	p := &Promise{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		defer func() {
			if rec := recover(); rec != nil {
				p.err = fmt.Errorf("panic: %v", rec)
			}
		}()
		p.value, p.err = fn(ctx)
	}()
	return p
}

// Await blocks until the promise settles or ctx is done.
func (p *Promise) Await(ctx context.Context) (any, error) {
	if p == nil {
		return nil, nil
	}
	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Settled reports whether the promise already holds its result.
func (p *Promise) Settled() bool {
	if p == nil {
		return true
	}
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}
