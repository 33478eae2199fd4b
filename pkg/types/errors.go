package types

import "errors"

// Validation errors shared across packages
var (
	ErrEmptyName       = errors.New("entity name is empty")
	ErrMalformedField  = errors.New("malformed numeric field")
	ErrNoDeclaration   = errors.New("no enclosing declaration header")
	ErrMissingArgument = errors.New("argument index out of range")
)
