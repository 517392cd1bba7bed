// Package engine merges caller data into template text through a shared,
// lazily constructed rendering engine.
//
// The Engine interface abstracts the actual template syntax behind
// compile-or-fetch-then-render semantics: a content-addressed cache of
// compiled templates keyed by the resolver's cache key, so each distinct
// template compiles at most once per process. GoEngine, the default
// implementation, is backed by html/template.
//
// Renderer owns the concurrency discipline. Engine construction and
// compiled-cache lookups run under a mutex; the compile-and-render call runs
// under a process-wide gate admitting one render at a time:
//
//	r := engine.NewRenderer()
//	body, cached, err := r.Render(ctx, key, text, map[string]any{"Name": "Joe"})
package engine
