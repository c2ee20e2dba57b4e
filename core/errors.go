package core

import "errors"

// ErrMalformedDocument reports input that is not a recognizable PDF: no
// signature, or no recoverable objects.
var ErrMalformedDocument = errors.New("malformed document")
