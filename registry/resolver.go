package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/mailtmpl/lang"
)

// Config describes how a Resolver maps (template id, language) pairs to
// files on disk. It is immutable after construction.
type Config struct {
	// Languages carries the separator conventions and default language.
	Languages lang.Config

	// DefaultExtension is appended to file names when the caller does not
	// override it, e.g. ".html".
	DefaultExtension string

	// Aliases substitutes non-standard requested languages before fallback
	// expansion, e.g. {"no": "nb-NO"}. Matched verbatim against the
	// requested code, applied at most once.
	Aliases map[string]string
}

// Resolution is the outcome of a successful template resolution.
type Resolution struct {
	// Key is the canonical cache key the template resolved to.
	Key string

	// Language is the candidate language that matched a real file, in
	// normalized internal form.
	Language string

	// Path is the absolute path of the matched template file.
	Path string

	// Text is the template text after escape normalization.
	Text string
}

// Resolver walks the language fallback chain for a requested template,
// consulting the shared Registry before touching the file system and
// populating it on first success. A Resolver is safe for concurrent use.
type Resolver struct {
	cfg Config
	reg *Registry
}

// NewResolver binds a resolution configuration to a shared cache registry.
func NewResolver(cfg Config, reg *Registry) *Resolver {
	return &Resolver{cfg: cfg, reg: reg}
}

// Resolve locates the best-matching template file for the requested language
// and returns its cache key, matched language, path, and text. Candidates are
// tried most specific first; the first cache hit or existing file wins.
// It fails with ErrTemplateNotFound when no candidate yields a file and with
// ErrTemplateRead when the file exists but cannot be read.
func (r *Resolver) Resolve(folder, templateID, language, extension string) (Resolution, error) {
	requested := language
	if substitute, ok := r.cfg.Aliases[language]; ok {
		language = substitute
	}

	candidates := r.cfg.Languages.Expand(language)
	originalKey := r.cfg.Languages.Key(templateID, requested)

	res, ok := r.resolveCandidates(folder, templateID, extension, originalKey, candidates)
	if !ok {
		return Resolution{}, fmt.Errorf("%w: template %q, language %q", ErrTemplateNotFound, templateID, requested)
	}

	text, err := r.reg.Text(res.Key, func() (string, error) {
		raw, err := os.ReadFile(res.Path)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrTemplateRead, res.Path, err)
		}
		return NormalizeTemplate(string(raw)), nil
	})
	if err != nil {
		return Resolution{}, err
	}

	res.Text = text
	return res, nil
}

// resolveCandidates walks the fallback chain against the caches first and the
// file system second, recording every first-time resolution in the registry.
func (r *Resolver) resolveCandidates(folder, templateID, extension, originalKey string, candidates []string) (Resolution, bool) {
	for _, candidate := range candidates {
		key := r.cfg.Languages.Key(templateID, candidate)
		if aliased, ok := r.reg.Alias(key); ok {
			key = aliased
		}

		if path, matched, ok := r.reg.Path(key); ok {
			r.reg.SetAlias(originalKey, key)
			return Resolution{Key: key, Language: matched, Path: path}, true
		}

		path, err := r.filePath(folder, templateID, candidate, extension)
		if err != nil {
			continue
		}
		if !fileExists(path) {
			continue
		}

		r.reg.SetPath(key, path, candidate)
		r.reg.SetAlias(originalKey, key)
		return Resolution{Key: key, Language: candidate, Path: path}, true
	}
	return Resolution{}, false
}

// filePath builds the absolute path of a candidate template file following
// the "{id}{separator}{language-lowercased}{extension}" naming convention.
// No existence check happens here.
func (r *Resolver) filePath(folder, templateID, candidate, extension string) (string, error) {
	if extension == "" {
		extension = r.cfg.DefaultExtension
	}
	folder = strings.TrimRight(folder, `/\`)
	name := templateID + r.cfg.Languages.Separator + strings.ToLower(candidate) + extension
	return filepath.Abs(filepath.Join(folder, name))
}

// fileExists reports whether path names an existing regular file. Directories
// do not count as template files.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
