package qsgen

import "errors"

// ErrInvalidURL is returned by AppendQuery when the base URL does not parse.
var ErrInvalidURL = errors.New("invalid URL")
