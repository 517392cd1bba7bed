package engine

import "errors"

// Error variables define rendering failures that are wrapped with the cache
// key and underlying cause before being returned to the caller.
var (
	ErrCompile = errors.New("failed to compile template")
	ErrRender  = errors.New("failed to render template")
)
