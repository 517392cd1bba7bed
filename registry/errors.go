package registry

import "errors"

// Error variables define resolution failures that are wrapped with template
// and language context before being returned to the caller.
var (
	ErrTemplateNotFound = errors.New("email template not found")
	ErrTemplateRead     = errors.New("cannot read email template file")
)
