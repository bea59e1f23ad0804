package app

import (
	"context"
	"sync"
)

// flight tracks the in-flight run of one kind of operation
type flight struct {
	mu     sync.Mutex
	gen    uint64
	busy   bool
	cancel context.CancelFunc
}

// tryStart begins a run unless one is already in flight
func (f *flight) tryStart(ctx context.Context) (context.Context, func(), bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.busy {
		return ctx, func() {}, false
	}
	return f.begin(ctx)
}

// replace begins a run, cancelling the one in flight
func (f *flight) replace(ctx context.Context) (context.Context, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cancel != nil {
		f.cancel()
	}
	ctx, done, _ := f.begin(ctx)
	return ctx, done
}

// stop cancels the run in flight, if any
func (f *flight) stop() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cancel != nil {
		f.cancel()
	}
}

// running reports whether a run is in flight
func (f *flight) running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

// begin must be called with f.mu held
func (f *flight) begin(ctx context.Context) (context.Context, func(), bool) {
	ctx, cancel := context.WithCancel(ctx)
	f.gen++
	gen := f.gen
	f.busy = true
	f.cancel = cancel

	return ctx, func() {
		f.mu.Lock()
		if f.gen == gen {
			f.busy = false
			f.cancel = nil
		}
		f.mu.Unlock()
		cancel()
	}, true
}
