package registry

import (
	"regexp"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Registry holds the process-wide resolution caches shared by every loader:
// key aliases, resolved file paths, resolved languages, and raw template
// text. All entries are write-once and never evicted; the universe of
// (template, language) pairs is small and static for the life of a process.
//
// Registry is safe for concurrent use. Loaders normally share one Registry;
// tests construct a fresh one to stay isolated.
type Registry struct {
	mu        sync.RWMutex
	aliases   map[string]string // requested key -> key actually resolved
	paths     map[string]string // resolved key -> absolute file path
	languages map[string]string // resolved key -> candidate language that matched
	texts     map[string]string // resolved key -> normalized template text

	group singleflight.Group
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		aliases:   make(map[string]string),
		paths:     make(map[string]string),
		languages: make(map[string]string),
		texts:     make(map[string]string),
	}
}

// Alias returns the resolved key recorded for a requested key.
func (r *Registry) Alias(key string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	resolved, ok := r.aliases[key]
	return resolved, ok
}

// SetAlias records that a requested key resolved to another key. The first
// writer wins; an existing alias is never overwritten.
func (r *Registry) SetAlias(key, resolved string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.aliases[key]; !exists {
		r.aliases[key] = resolved
	}
}

// Path returns the file path and matched language recorded for a resolved key.
func (r *Registry) Path(key string) (path, language string, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	path, ok = r.paths[key]
	if !ok {
		return "", "", false
	}
	return path, r.languages[key], true
}

// SetPath records the file path and matched language for a resolved key.
// The first writer wins. Concurrent writers always carry identical values
// because key computation is pure, so dropping the second write is harmless.
func (r *Registry) SetPath(key, path, language string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.paths[key]; !exists {
		r.paths[key] = path
		r.languages[key] = language
	}
}

// Text returns the cached template text for a resolved key, or loads and
// caches it. Concurrent calls for the same key are collapsed into a single
// load, which is what keeps disk reads to at most one per key even when many
// goroutines race on a cold cache. Load failures are not cached; a later
// call retries.
func (r *Registry) Text(key string, load func() (string, error)) (string, error) {
	r.mu.RLock()
	text, ok := r.texts[key]
	r.mu.RUnlock()
	if ok {
		return text, nil
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		r.mu.RLock()
		text, ok := r.texts[key]
		r.mu.RUnlock()
		if ok {
			return text, nil
		}

		loaded, err := load()
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.texts[key] = loaded
		r.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

var (
	mediaToken        = regexp.MustCompile(`(?i)@media`)
	escapedMediaToken = regexp.MustCompile(`(?i)@@media`)
)

// NormalizeTemplate protects the literal CSS token "@media" from rendering
// engines that use '@' as their substitution marker by rewriting the first
// occurrence (case-insensitive) into the escaped form "@@media". Text that
// already carries the escaped form is returned unchanged, which makes the
// pass idempotent.
func NormalizeTemplate(text string) string {
	if escapedMediaToken.MatchString(text) {
		return text
	}
	loc := mediaToken.FindStringIndex(text)
	if loc == nil {
		return text
	}
	return text[:loc[0]] + "@" + text[loc[0]:]
}
