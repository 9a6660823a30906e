// Package errors contains sentinel errors shared by chipstack packages.
package errors

import (
	"fmt"
)

var (
	// ErrNotFound error not found.
	ErrNotFound = fmt.Errorf("notfound")
	// ErrMalformed error malformed request.
	ErrMalformed = fmt.Errorf("malformed")
	// ErrInternalServerError Internal Server Error.
	ErrInternalServerError = fmt.Errorf("internal")
	// ErrConfiguration invalid simulation configuration, never retried.
	ErrConfiguration = fmt.Errorf("configuration")
	// ErrMaterial layer references material missing in material dictionary.
	ErrMaterial = fmt.Errorf("material")
)
