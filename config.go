package mailtmpl

import (
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds Loader settings loadable from the environment. Defaults match
// the conventional "{id}_{language}.html" template naming with an "en-US"
// fallback.
type Config struct {
	DefaultLanguage      string `env:"MAILTMPL_DEFAULT_LANGUAGE" envDefault:"en-US"`
	DefaultExtension     string `env:"MAILTMPL_DEFAULT_EXTENSION" envDefault:".html"`
	LanguageSeparator    string `env:"MAILTMPL_LANGUAGE_SEPARATOR" envDefault:"_"`
	SubLanguageSeparator string `env:"MAILTMPL_SUBLANGUAGE_SEPARATOR" envDefault:"-"`
	TemplateDir          string `env:"MAILTMPL_TEMPLATE_DIR"`
}

// dotenvOnce loads a .env file at most once per process, before the first
// environment read.
var dotenvOnce sync.Once

// LoadConfig reads Config from the environment, loading a .env file first if
// one is present in the working directory.
func LoadConfig() (Config, error) {
	dotenvOnce.Do(func() {
		// Missing .env files are fine; real environments set vars directly.
		_ = godotenv.Load()
	})

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse mailtmpl config: %w", err)
	}
	return cfg, nil
}

// NewFromConfig creates a Loader from an environment-driven Config. Extra
// options are applied after the config and may override it.
func NewFromConfig(cfg Config, opts ...Option) (*Loader, error) {
	base := []Option{
		WithDefaultLanguage(cfg.DefaultLanguage),
		WithDefaultExtension(cfg.DefaultExtension),
		WithLanguageSeparator(cfg.LanguageSeparator),
		WithSubLanguageSeparator(cfg.SubLanguageSeparator),
	}
	if cfg.TemplateDir != "" {
		base = append(base, WithTemplateDir(cfg.TemplateDir))
	}
	return New(append(base, opts...)...)
}
