package generator

import "errors"

// Generation errors
var (
	ErrParse            = errors.New("failed to parse package")
	ErrNotStruct        = errors.New("not a struct type")
	ErrUnsupportedField = errors.New("unsupported field type")
	ErrMethodConflict   = errors.New("method already declared")
	ErrTypeNotFound     = errors.New("type not found")
	ErrNoTypes          = errors.New("no types selected for generation")
	ErrInvalidConfig    = errors.New("invalid generator config")
	ErrRender           = errors.New("failed to render generated code")
	ErrWrite            = errors.New("failed to write generated file")
)
