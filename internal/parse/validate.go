package parse

import (
	"strings"
	"unicode"
)

// validate applies the RFC 5321 length limits and character rules.
// It returns a description of the first violation, or "".
func validate(a Address) string {
	if len(a.Raw) > 254 {
		return "email address exceeds 254 characters"
	}
	if len(a.Local) > 64 {
		return "local part exceeds 64 characters"
	}
	if !quotedLocal(a.Raw) {
		if msg := validateLocal(a.Local); msg != "" {
			return msg
		}
	}
	return validateDomain(a.DomainUnicode)
}

// quotedLocal reports whether raw has a "quoted" local part. net/mail
// unquotes it, so the raw input is inspected.
func quotedLocal(raw string) bool {
	at := strings.LastIndex(raw, "@")
	if at < 2 {
		return false
	}
	local := raw[:at]
	return strings.HasPrefix(local, `"`) && strings.HasSuffix(local, `"`)
}

const localSpecials = "!#$%&'*+/=?^_`{|}~-."

func validateLocal(local string) string {
	for _, ch := range local {
		switch {
		case ch > unicode.MaxASCII:
			if unicode.IsControl(ch) {
				return "local part contains control character"
			}
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		case strings.ContainsRune(localSpecials, ch):
		default:
			return "local part contains invalid character: " + string(ch)
		}
	}
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") {
		return "local part cannot start or end with a dot"
	}
	if strings.Contains(local, "..") {
		return "local part cannot contain consecutive dots"
	}
	return ""
}

func validateDomain(domain string) string {
	// IP literals never carry SPF, DMARC or DKIM records.
	if strings.HasPrefix(domain, "[") {
		return "domain literals are not supported"
	}

	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return "domain must have at least two labels"
	}
	for _, label := range labels {
		if label == "" {
			return "domain contains empty label"
		}
		if len(label) > 63 {
			return "domain label exceeds 63 characters"
		}
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return "domain label cannot start or end with a hyphen"
		}
		for _, ch := range label {
			if !unicode.IsLetter(ch) && !unicode.IsDigit(ch) && ch != '-' {
				return "domain label contains invalid character: " + string(ch)
			}
		}
	}

	tld := labels[len(labels)-1]
	if strings.IndexFunc(tld, func(r rune) bool { return !unicode.IsDigit(r) }) < 0 {
		return "TLD cannot be all digits"
	}
	return ""
}
