package api

import "errors"

var (
	ErrInvalidBody        = errors.New("invalid request body")
	ErrMissingRules       = errors.New("no rules given")
	ErrUnsupportedMedia   = errors.New("unsupported content type")
	ErrObjectsUnsupported = errors.New("object references need an object store")
)
