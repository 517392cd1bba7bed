package mailtmpl

import "errors"

// Error variables define load failures raised by the Loader itself.
// Resolution failures carry registry.ErrTemplateNotFound or
// registry.ErrTemplateRead; render failures wrap the engine error together
// with a JSON snapshot of the merge data for diagnosis.
var (
	ErrInvalidParams = errors.New("invalid load parameters")
	ErrMerge         = errors.New("failed to merge template with data")
	ErrHTMLParse     = errors.New("failed to parse rendered template as html")
)
