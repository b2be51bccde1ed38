package geometry

import "errors"

// Configuration errors, detected eagerly by [Config.Validate].
var (
	// ErrUnknownKind indicates a geometry kind outside the supported set.
	ErrUnknownKind = errors.New("geometry: unknown kind")

	// ErrInvalidCount indicates a discretization count below 1.
	ErrInvalidCount = errors.New("geometry: discretization count must be >= 1")

	// ErrInvalidPermittivity indicates a non-positive permittivity.
	ErrInvalidPermittivity = errors.New("geometry: permittivity must be positive")

	// ErrInvalidShape indicates a non-positive required shape parameter.
	ErrInvalidShape = errors.New("geometry: shape parameter must be positive")
)
