package mailposture

import "errors"

var (
	// ErrInvalidEmail is returned when the address cannot be parsed,
	// so there is no domain to inspect.
	ErrInvalidEmail = errors.New("mailposture: invalid email address")

	// ErrNoResolver is returned when Check is called on a Checker
	// whose resolver was explicitly set to nil.
	ErrNoResolver = errors.New("mailposture: no DNS resolver configured")
)
