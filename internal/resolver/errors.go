package resolver

import "errors"

var (
	// ErrNXDomain is returned when the queried name does not exist.
	ErrNXDomain = errors.New("resolver: domain does not exist")

	// ErrServFail is returned when every nameserver answered SERVFAIL.
	ErrServFail = errors.New("resolver: server failure")

	// ErrRefused is returned when every nameserver refused the query.
	ErrRefused = errors.New("resolver: query refused")

	// ErrNoNameservers is returned when no nameserver is configured.
	ErrNoNameservers = errors.New("resolver: no nameservers configured")
)

// IsNXDomain reports whether err signals a non-existent domain.
func IsNXDomain(err error) bool {
	return errors.Is(err, ErrNXDomain)
}
