//go:build !wasm
// +build !wasm

package runtime

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPromise_Resolved(t *testing.T) {
	p := Resolved("v")
	if !p.Settled() {
		t.Error("Expected resolved promise to be settled")
	}
	v, err := p.Await(context.Background())
	if v != "v" || err != nil {
		t.Errorf("Await = (%v, %v), want (v, nil)", v, err)
	}
}

func TestPromise_Nil(t *testing.T) {
	var p *Promise
	v, err := p.Await(context.Background())
	if v != nil || err != nil {
		t.Errorf("nil promise Await = (%v, %v), want (nil, nil)", v, err)
	}
}

func TestPromise_Rejected(t *testing.T) {
	want := errors.New("nope")
	if _, err := Rejected(want).Await(context.Background()); !errors.Is(err, want) {
		t.Errorf("Expected %v, got %v", want, err)
	}
}

func TestPromise_AsyncPanic(t *testing.T) {
	p := Async(context.Background(), func(ctx context.Context) (any, error) {
		panic("kaboom")
	})
	if _, err := p.Await(context.Background()); err == nil {
		t.Error("Expected panic to reject the promise")
	}
}

func TestPromise_AwaitCancelled(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	p := Async(context.Background(), func(ctx context.Context) (any, error) {
		<-block
		return nil, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := p.Await(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded, got %v", err)
	}
	if p.Settled() {
		t.Error("Expected pending promise")
	}
}

func TestComponentBase_Defaults(t *testing.T) {
	var b ComponentBase
	b.SetState("s")

	v, err := b.Unmount(context.Background()).Await(context.Background())
	if v != "s" || err != nil {
		t.Errorf("Unmount = (%v, %v), want (s, nil)", v, err)
	}
	if v, _ := b.BeforeMount(context.Background()).Await(context.Background()); v != nil {
		t.Errorf("Expected nil default state, got %v", v)
	}
}
