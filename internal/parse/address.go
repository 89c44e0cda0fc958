// Package parse extracts and validates the domain of an email address.
package parse

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/net/idna"
)

// ErrSyntax is wrapped by every error Address returns.
var ErrSyntax = errors.New("invalid email address")

// Address is a parsed email address.
type Address struct {
	Raw           string // trimmed input
	Local         string // part before the last @
	Domain        string // lowercase ASCII/Punycode domain, used for DNS queries
	DomainUnicode string // lowercase Unicode domain, used for display
}

// ParseAddress parses raw and validates it. Unicode local parts
// (RFC 6531) and internationalized domains (IDNA2008) are accepted.
func ParseAddress(raw string) (Address, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Address{}, fmt.Errorf("%w: empty email address", ErrSyntax)
	}

	local, domain, ok := split(raw)
	if !ok {
		return Address{}, fmt.Errorf("%w: %q is not of the form local@domain", ErrSyntax, raw)
	}

	ascii, unicode, err := convertDomain(strings.ToLower(domain))
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	a := Address{Raw: raw, Local: local, Domain: ascii, DomainUnicode: unicode}
	if msg := validate(a); msg != "" {
		return Address{}, fmt.Errorf("%w: %s", ErrSyntax, msg)
	}
	return a, nil
}

// ExtractDomain returns the DNS form of the domain of email.
func ExtractDomain(email string) (string, error) {
	a, err := ParseAddress(email)
	if err != nil {
		return "", err
	}
	return a.Domain, nil
}

// split separates local and domain parts. net/mail handles quoting and
// display names; input it rejects, such as Unicode local parts, is split
// at the last @.
func split(raw string) (local, domain string, ok bool) {
	addr, err := mail.ParseAddress(raw)
	if err != nil {
		addr, err = mail.ParseAddress("<" + raw + ">")
	}
	s := raw
	if err == nil {
		s = addr.Address
	}
	at := strings.LastIndex(s, "@")
	if at < 1 || at == len(s)-1 {
		return "", "", false
	}
	return s[:at], s[at+1:], true
}

// convertDomain returns the ASCII and Unicode forms of domain.
func convertDomain(domain string) (ascii, unicode string, err error) {
	if isASCII(domain) {
		u, err := idna.Display.ToUnicode(domain)
		if err != nil {
			u = domain
		}
		return domain, u, nil
	}
	a, err := idna.Lookup.ToASCII(domain)
	if err != nil {
		return "", "", fmt.Errorf("domain %q: %v", domain, err)
	}
	return a, domain, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return false
		}
	}
	return true
}
