package engine

import (
	"html/template"
	"strings"
	"sync"
)

// GoEngine is the default Engine backed by html/template. Compiled templates
// are cached by key and never evicted, matching the write-once lifetime of
// the resolution caches. GoEngine is safe for concurrent use.
type GoEngine struct {
	mu    sync.RWMutex
	cache map[string]*template.Template
}

// NewGoEngine creates an empty html/template engine.
func NewGoEngine() *GoEngine {
	return &GoEngine{cache: make(map[string]*template.Template)}
}

// Lookup returns the compiled template cached under key.
func (e *GoEngine) Lookup(key string) (Template, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	tmpl, ok := e.cache[key]
	if !ok {
		return nil, false
	}
	return goTemplate{tmpl}, true
}

// Compile parses text and caches the result under key. Template text arrives
// with literal '@' escaped as "@@" (see registry.NormalizeTemplate); the
// escape is folded back before parsing so rendered output carries the
// literal character.
func (e *GoEngine) Compile(key, text string) (Template, error) {
	tmpl, err := template.New(key).Parse(unescapeLiterals(text))
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.cache[key] = tmpl
	e.mu.Unlock()
	return goTemplate{tmpl}, nil
}

// unescapeLiterals folds the "@@" escape back into a literal '@'.
func unescapeLiterals(text string) string {
	return strings.ReplaceAll(text, "@@", "@")
}

type goTemplate struct {
	tmpl *template.Template
}

func (t goTemplate) Execute(data any) (string, error) {
	var buf strings.Builder
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
