package mailtmpl

import (
	"fmt"
	"log/slog"
	"maps"

	"github.com/dmitrymomot/mailtmpl/engine"
	"github.com/dmitrymomot/mailtmpl/registry"
)

// DefaultExtension is the file extension appended to template file names
// when the caller does not override it.
const DefaultExtension = ".html"

// Option configures a Loader during construction.
type Option func(*Loader) error

// WithDefaultLanguage sets the language every fallback chain ends in.
// Default is "en-US".
func WithDefaultLanguage(code string) Option {
	return func(l *Loader) error {
		if code == "" {
			return fmt.Errorf("default language cannot be empty")
		}
		l.languages.Default = code
		return nil
	}
}

// WithDefaultExtension sets the default template file extension, ".html"
// unless overridden. An empty extension means template files carry none.
func WithDefaultExtension(ext string) Option {
	return func(l *Loader) error {
		l.extension = ext
		return nil
	}
}

// WithLanguageSeparator sets the character splitting the template id from
// the language in file names. Default is "_".
func WithLanguageSeparator(sep string) Option {
	return func(l *Loader) error {
		l.languages.Separator = sep
		return nil
	}
}

// WithSubLanguageSeparator sets the character splitting language subparts,
// e.g. region from base language. Default is "-". When empty, fallback
// chains never truncate: only the requested language and the default are
// tried.
func WithSubLanguageSeparator(sep string) Option {
	return func(l *Loader) error {
		l.languages.SubSeparator = sep
		return nil
	}
}

// WithLanguageAliases substitutes non-standard requested language codes
// before fallback expansion, e.g. {"no": "nb-NO"}. Codes are matched
// verbatim against the requested value.
func WithLanguageAliases(aliases map[string]string) Option {
	return func(l *Loader) error {
		l.aliases = maps.Clone(aliases)
		return nil
	}
}

// WithTemplateDir sets the directory used when LoadParams.Folder is empty.
func WithTemplateDir(dir string) Option {
	return func(l *Loader) error {
		l.dir = dir
		return nil
	}
}

// WithRegistry shares an explicit cache registry instead of the process-wide
// default. Tests use this to stay isolated from other loaders.
func WithRegistry(reg *registry.Registry) Option {
	return func(l *Loader) error {
		if reg == nil {
			return fmt.Errorf("registry cannot be nil")
		}
		l.reg = reg
		return nil
	}
}

// WithRenderer shares an explicit renderer instead of the process-wide
// default, e.g. one wrapping a custom engine.
func WithRenderer(r *engine.Renderer) Option {
	return func(l *Loader) error {
		if r == nil {
			return fmt.Errorf("renderer cannot be nil")
		}
		l.renderer = r
		return nil
	}
}

// WithLogger configures structured debug logging. Logging is discarded by
// default.
func WithLogger(log *slog.Logger) Option {
	return func(l *Loader) error {
		if log != nil {
			l.log = log
		}
		return nil
	}
}
