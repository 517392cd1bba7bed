// Package mailtmpl resolves, loads, and renders localized email templates.
//
// Given a template id and a preferred language, a Loader locates the
// best-matching template file on disk, merges it with caller data, and
// extracts a subject from the HTML <title> and a body from the merged
// document. Sending the result is a separate concern; pair the Loader with
// any email sender.
//
// # Language fallback
//
// Template files follow the "{id}{separator}{language}{extension}" naming
// convention, e.g. "Zodiac_en-us.html". A request is resolved most specific
// first: the requested language, each truncation at the sub-language
// separator, and finally the configured default. With only Zodiac_en-us.html
// and Zodiac_es.html on disk, requesting "es-MX" resolves to "es" and
// requesting "en-CA" or "fr" resolves to "en-US".
//
// # Caching
//
// Resolution outcomes (key aliases, file paths, matched languages, template
// text) and compiled templates are cached process-wide, write-once, and
// never evicted: each distinct (template, resolved language) pair costs at
// most one disk read and one compilation for the life of the process. The
// caches are shared by all Loader instances by default and injectable for
// test isolation via WithRegistry and WithRenderer.
//
// # Usage
//
//	l, err := mailtmpl.New(
//	    mailtmpl.WithTemplateDir("./templates"),
//	    mailtmpl.WithDefaultLanguage("en-US"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := l.Load(ctx, mailtmpl.LoadParams{
//	    TemplateID: "Zodiac",
//	    Language:   lang.MatchAcceptLanguage(r.Header.Get("Accept-Language"), available),
//	    Data:       map[string]any{"Zodiac": "Leo", "Name": "Joe", "Year": 2025},
//	}); err != nil {
//	    log.Fatal(err)
//	}
//
//	subject, body := l.Subject(), l.Body()
//
// A Loader instance is not safe for concurrent Load calls; concurrent
// goroutines each construct their own Loader and automatically share the
// process-wide caches and rendering engine behind it.
package mailtmpl
