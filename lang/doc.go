// Package lang canonicalizes language codes and builds the fallback chains
// used to resolve localized template files.
//
// A Config value captures the separator conventions of a template set and
// derives everything else from them: Normalize folds any spelling of a code
// into a canonical internal form, Expand produces the most-specific-first
// fallback chain ending in the configured default, Key folds a template id
// and a language into a case- and separator-insensitive cache key, and
// Display formats a resolved code for presentation ("en-us" -> "en-US").
//
//	cfg := lang.DefaultConfig()
//	cfg.Expand("es-MX") // ["es-mx", "es", "en-us"]
//	cfg.Key("Zodiac", "EN_us") // "ZODIACENUS"
//
// MatchAcceptLanguage selects the best available template language for an
// HTTP request before resolution starts.
package lang
