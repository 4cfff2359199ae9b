package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrInvalidInput wraps every rule violation reported by the validator.
	ErrInvalidInput = errors.New("invalid input")
	// ErrIncompleteLocation is reported when only one coordinate is set.
	ErrIncompleteLocation = errors.New("lat and lon must be provided together")
)
