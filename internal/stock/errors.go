package stock

import "errors"

var (
	// ErrInvalidDirection is returned when a movement direction is neither
	// "entrada" nor "salida".
	ErrInvalidDirection = errors.New("invalid movement direction")
	// ErrInvalidQuantity is returned when a quantity is not a positive integer.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	// ErrEmptyResource is returned when a movement names no resource.
	ErrEmptyResource = errors.New("empty resource name")
	// ErrUnknownCategory is returned for category slugs outside the fixed set.
	ErrUnknownCategory = errors.New("unknown stock category")
)
