package mailtmpl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrymomot/mailtmpl/engine"
	"github.com/dmitrymomot/mailtmpl/lang"
	"github.com/dmitrymomot/mailtmpl/logger"
	"github.com/dmitrymomot/mailtmpl/registry"
)

// Process-wide defaults shared by every Loader unless overridden with
// WithRegistry / WithRenderer. Sharing them is what makes the caches span
// loader instances; tests inject fresh ones for isolation.
var (
	defaultRegistry = registry.New()
	defaultRenderer = engine.NewRenderer()
)

// Loader resolves, loads, and renders localized email templates. Each Load
// call overwrites the instance's Template, Body, Subject, Language, and
// Cached outputs, so a Loader instance must not be shared by concurrent Load
// callers; concurrent goroutines each construct their own Loader and share
// the Registry and Renderer behind it.
//
//	l, err := mailtmpl.New(mailtmpl.WithTemplateDir("./templates"))
//	if err != nil { ... }
//
//	err = l.Load(ctx, mailtmpl.LoadParams{
//	    TemplateID: "Zodiac",
//	    Language:   "es-MX",
//	    Data:       map[string]any{"Zodiac": "Leo", "Name": "Joe"},
//	})
//	// l.Subject(), l.Body(), l.Language(), l.Cached()
type Loader struct {
	languages lang.Config
	extension string
	aliases   map[string]string
	dir       string

	reg      *registry.Registry
	resolver *registry.Resolver
	renderer *engine.Renderer
	log      *slog.Logger

	// Outputs of the last successful Load.
	template string
	body     string
	subject  string
	language string
	cached   bool
}

// New creates a Loader. Without options it resolves "en-US" templates named
// "{id}_{language}.html", shares the process-wide caches and rendering
// engine, and logs nowhere.
func New(opts ...Option) (*Loader, error) {
	l := &Loader{
		languages: lang.DefaultConfig(),
		extension: DefaultExtension,
		reg:       defaultRegistry,
		renderer:  defaultRenderer,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	l.resolver = registry.NewResolver(registry.Config{
		Languages:        l.languages,
		DefaultExtension: l.extension,
		Aliases:          l.aliases,
	}, l.reg)

	return l, nil
}

// LoadParams describes one template load request.
type LoadParams struct {
	// Folder is the directory holding the template files. Optional when the
	// Loader was configured with a template directory.
	Folder string

	// TemplateID is the logical template name grouping all of its localized
	// variants, e.g. "Zodiac". Required.
	TemplateID string

	// Language is the requested language code in any separator or case
	// style: "en-US", "es_mx", "RU".
	Language string

	// Extension overrides the configured default file extension when set.
	Extension string

	// Data is merged into the template. When nil the body is the raw
	// template text and the rendering engine is never consulted.
	Data any
}

// Validate checks that the required load parameters are present.
func (p LoadParams) Validate() error {
	if p.TemplateID == "" {
		return fmt.Errorf("%w: template id is required", ErrInvalidParams)
	}
	return nil
}

// Load resolves the best-matching template file for the requested language,
// merges it with params.Data, and extracts the subject from the rendered
// HTML title. On success the Template, Body, Subject, Language, and Cached
// accessors reflect the new result; on failure all of them are cleared and
// the error is returned without retry. The only blocking point is the render
// gate, which honors ctx cancellation.
func (l *Loader) Load(ctx context.Context, params LoadParams) error {
	start := time.Now()
	l.reset()

	if err := params.Validate(); err != nil {
		return err
	}
	folder := params.Folder
	if folder == "" {
		folder = l.dir
	}
	if folder == "" {
		return fmt.Errorf("%w: template folder is required", ErrInvalidParams)
	}

	res, err := l.resolver.Resolve(folder, params.TemplateID, params.Language, params.Extension)
	if err != nil {
		l.log.DebugContext(ctx, "template resolution failed",
			slog.String("template_id", params.TemplateID),
			slog.String("language", params.Language),
			logger.Error(err))
		return err
	}

	body := res.Text
	cached := false
	if params.Data != nil {
		if body, cached, err = l.renderer.Render(ctx, res.Key, res.Text, params.Data); err != nil {
			return fmt.Errorf("%w: template %q: %w (data: %s)", ErrMerge, params.TemplateID, err, dumpData(params.Data))
		}
	}

	subject, err := extractSubject(body)
	if err != nil {
		return err
	}

	l.template = res.Text
	l.body = body
	l.subject = subject
	l.language = l.languages.Display(res.Language)
	l.cached = cached

	l.log.DebugContext(ctx, "email template loaded",
		logger.Component("mailtmpl"),
		slog.String("template_id", params.TemplateID),
		slog.String("language", l.language),
		slog.Bool("cached", cached),
		logger.Duration(time.Since(start)))

	return nil
}

// Template returns the raw template text of the last successful Load, after
// escape normalization.
func (l *Loader) Template() string { return l.template }

// Body returns the rendered HTML of the last successful Load.
func (l *Loader) Body() string { return l.body }

// Subject returns the collapsed <title> text of the last successful Load.
// Empty when the template carries no title.
func (l *Loader) Subject() string { return l.subject }

// Language returns the display-formatted language the last successful Load
// resolved to, e.g. "en-US".
func (l *Loader) Language() string { return l.language }

// Cached reports whether the last successful Load was rendered from a
// previously compiled template.
func (l *Loader) Cached() bool { return l.cached }

// reset clears all outputs so a failed Load never exposes results of an
// earlier call.
func (l *Loader) reset() {
	l.template = ""
	l.body = ""
	l.subject = ""
	l.language = ""
	l.cached = false
}

// dumpData serializes merge data for error diagnostics.
func dumpData(data any) string {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Sprintf("%+v", data)
	}
	return string(payload)
}
