package options

import "errors"

// ErrMalformed reports an option map document with an unexpected shape.
var ErrMalformed = errors.New("malformed option map")
