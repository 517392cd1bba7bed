package engine

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Template is a compiled, render-ready template that can be executed many
// times with different data.
type Template interface {
	Execute(data any) (string, error)
}

// Engine compiles template text into reusable templates held in a
// content-addressed cache keyed by the caller's cache key. Implementations
// must support concurrent Lookup calls; Compile is always serialized by the
// Renderer's gate and never runs concurrently with itself.
type Engine interface {
	// Lookup returns the compiled template cached under key, if any.
	Lookup(key string) (Template, bool)

	// Compile parses text, caches the result under key, and returns it.
	Compile(key, text string) (Template, error)
}

// Renderer mediates all access to a shared Engine. The engine instance is
// constructed lazily under a mutex so it exists exactly once regardless of
// how many goroutines render concurrently, and compiled-cache lookups happen
// under the same mutex. The compile-and-render path itself is serialized
// through a weighted semaphore admitting one render at a time process-wide:
// a deliberate trade of render throughput for a render path that never races,
// sized for template sets where renders are cheap and templates few.
type Renderer struct {
	mu      sync.Mutex
	factory func() Engine
	engine  Engine

	gate *semaphore.Weighted
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithEngine injects a pre-built engine instead of the default Go
// html/template engine. Useful for alternative template syntaxes and for
// observing engine calls in tests.
func WithEngine(e Engine) RendererOption {
	return func(r *Renderer) {
		if e != nil {
			r.factory = func() Engine { return e }
		}
	}
}

// NewRenderer creates a Renderer backed by the Go html/template engine
// unless WithEngine overrides it.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		factory: func() Engine { return NewGoEngine() },
		gate:    semaphore.NewWeighted(1),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render merges data into the template identified by key. A compiled
// template cached under key is reused, reported by cached == true; otherwise
// text is compiled under key first. Render blocks until the render gate
// admits it or ctx is done. Failures are wrapped with the key and propagated
// without retry.
func (r *Renderer) Render(ctx context.Context, key, text string, data any) (out string, cached bool, err error) {
	r.mu.Lock()
	if r.engine == nil {
		r.engine = r.factory()
	}
	tmpl, cached := r.engine.Lookup(key)
	r.mu.Unlock()

	if err := r.gate.Acquire(ctx, 1); err != nil {
		return "", false, err
	}
	defer r.gate.Release(1)

	if !cached {
		// Re-check under the gate: a racing render may have compiled this key
		// after the lookup above, and each key compiles at most once.
		tmpl, _ = r.engine.Lookup(key)
		if tmpl == nil {
			if tmpl, err = r.engine.Compile(key, text); err != nil {
				return "", false, fmt.Errorf("%w: key %q: %w", ErrCompile, key, err)
			}
		}
	}

	if out, err = tmpl.Execute(data); err != nil {
		return "", cached, fmt.Errorf("%w: key %q: %w", ErrRender, key, err)
	}
	return out, cached, nil
}
