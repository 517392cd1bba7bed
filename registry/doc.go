// Package registry implements the resolution and caching layer behind
// localized template loading.
//
// A Registry carries four process-wide, write-once caches: requested-key
// aliases, resolved file paths, resolved languages, and raw template text.
// Entries are never evicted or overwritten; once a (template, language) pair
// resolves, every later request takes the cached route without touching the
// file system. Concurrent first loads of the same key are collapsed with
// singleflight so at most one disk read happens per key.
//
// A Resolver binds a Config (separator conventions, default extension,
// language aliases) to a Registry and walks the fallback chain produced by
// the lang package, most specific candidate first:
//
//	reg := registry.New()
//	res := registry.NewResolver(registry.Config{
//	    Languages:        lang.DefaultConfig(),
//	    DefaultExtension: ".html",
//	}, reg)
//
//	out, err := res.Resolve("./templates", "Zodiac", "es-MX", "")
//	// out.Path -> ".../templates/Zodiac_es.html" when only the base
//	// Spanish template exists on disk
//
// NormalizeTemplate is applied to every loaded file before caching; it
// escapes the literal CSS "@media" token so substitution engines that treat
// '@' as their marker render it verbatim.
package registry
