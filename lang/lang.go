package lang

import (
	"slices"
	"strings"
)

// Defaults applied by DefaultConfig.
const (
	DefaultLanguage     = "en-US"
	DefaultSeparator    = "_"
	DefaultSubSeparator = "-"
)

// Config describes how language codes are spelled in template file names.
// It is an immutable value; all methods are pure functions of the receiver
// and their arguments, which keeps cache-key computation deterministic under
// concurrent use.
type Config struct {
	// Default is the language appended to every fallback chain, e.g. "en-US".
	Default string

	// Separator splits the template id from the language in file names,
	// e.g. the "_" in "Zodiac_en-us.html".
	Separator string

	// SubSeparator splits language subparts, e.g. the "-" between base
	// language and region in "en-US".
	SubSeparator string
}

// DefaultConfig returns the conventional configuration: "en-US" default,
// "_" file-name separator, "-" sub-language separator.
func DefaultConfig() Config {
	return Config{
		Default:      DefaultLanguage,
		Separator:    DefaultSeparator,
		SubSeparator: DefaultSubSeparator,
	}
}

// Normalize canonicalizes the spelling of a language code so that codes
// compare equal regardless of input style: empty input falls back to the
// configured default, the result is lower-cased, and file-name separators
// are rewritten to the sub-language separator ("en_US" becomes "en-us").
// Normalize never fails; it returns an empty string when both the input and
// the configured default are empty.
func (c Config) Normalize(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		code = strings.TrimSpace(c.Default)
	}
	if code == "" {
		return ""
	}

	code = strings.ToLower(code)
	if c.Separator != "" && c.SubSeparator != "" {
		code = strings.ReplaceAll(code, c.Separator, c.SubSeparator)
	}
	return code
}

// displaySeparator is the conventional region separator used in
// display-formatted language codes regardless of the configured internal one.
const displaySeparator = "-"

// Display formats an internal (normalized) language code for presentation:
// the base-language segment is lower-cased, everything from the first
// sub-language separator onward is upper-cased, the internal separator is
// rewritten to the conventional "-", and stray leading or trailing separators
// are trimmed. "en-us" becomes "en-US", "es" stays "es".
func (c Config) Display(code string) string {
	if c.SubSeparator == "" {
		return strings.ToLower(code)
	}

	var out string
	if i := strings.Index(code, c.SubSeparator); i < 0 {
		out = strings.ToLower(code)
	} else {
		out = strings.ToLower(code[:i]) + strings.ToUpper(code[i:])
	}

	out = strings.ReplaceAll(out, strings.ToUpper(c.SubSeparator), displaySeparator)
	out = strings.ReplaceAll(out, c.SubSeparator, displaySeparator)
	return strings.Trim(out, displaySeparator)
}

// Expand produces the fallback chain for a requested language: the normalized
// language itself, each progressively less specific truncation at the last
// sub-language separator, and finally the normalized default language. The
// default appears exactly once, even when the request already equals it.
// The chain is ordered most specific first and always has at least one entry.
func (c Config) Expand(code string) []string {
	cur := c.Normalize(code)
	chain := []string{cur}

	if c.SubSeparator != "" {
		for strings.Contains(cur, c.SubSeparator) {
			cur = cur[:strings.LastIndex(cur, c.SubSeparator)]
			chain = append(chain, cur)
		}
	}

	if def := c.Normalize(c.Default); !slices.Contains(chain, def) {
		chain = append(chain, def)
	}
	return chain
}

// Key folds a template id and a language code into a canonical cache key that
// is insensitive to case and separator style, so "Zodiac"+"en-US" and
// "zodiac"+"EN_us" collide on purpose. The key is the compacted, upper-cased
// template id followed by the compacted, upper-cased normalized language.
func (c Config) Key(templateID, code string) string {
	return strings.ToUpper(c.compact(templateID)) + strings.ToUpper(c.compact(c.Normalize(code)))
}

// compact strips both configured separators from s.
func (c Config) compact(s string) string {
	if c.Separator != "" {
		s = strings.ReplaceAll(s, c.Separator, "")
	}
	if c.SubSeparator != "" {
		s = strings.ReplaceAll(s, c.SubSeparator, "")
	}
	return s
}
