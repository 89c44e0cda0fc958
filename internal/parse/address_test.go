package parse_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optimode/mailposture/internal/parse"
)

func TestParseAddress_ASCII(t *testing.T) {
	a, err := parse.ParseAddress("  user@EXAMPLE.com ")
	require.NoError(t, err)
	assert.Equal(t, "user@EXAMPLE.com", a.Raw)
	assert.Equal(t, "user", a.Local)
	assert.Equal(t, "example.com", a.Domain)
	assert.Equal(t, "example.com", a.DomainUnicode)
}

func TestParseAddress_IDN(t *testing.T) {
	a, err := parse.ParseAddress("user@münchen.de")
	require.NoError(t, err)
	assert.Equal(t, "xn--mnchen-3ya.de", a.Domain)
	assert.Equal(t, "münchen.de", a.DomainUnicode)

	a, err = parse.ParseAddress("user@xn--mnchen-3ya.de")
	require.NoError(t, err)
	assert.Equal(t, "xn--mnchen-3ya.de", a.Domain)
	assert.Equal(t, "münchen.de", a.DomainUnicode)
}

func TestParseAddress_UnicodeLocal(t *testing.T) {
	a, err := parse.ParseAddress("用户@example.com")
	require.NoError(t, err)
	assert.Equal(t, "用户", a.Local)
	assert.Equal(t, "example.com", a.Domain)
}

func TestParseAddress_Valid(t *testing.T) {
	for _, raw := range []string{
		"user+tag@example.com",
		"first.last@mail.example.co.uk",
		`"user name"@example.com`,
		"user@例え.jp",
	} {
		_, err := parse.ParseAddress(raw)
		assert.NoError(t, err, raw)
	}
}

func TestParseAddress_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"no at sign", "userexample.com"},
		{"no domain", "user@"},
		{"no local", "@example.com"},
		{"double dot local", "user..name@example.com"},
		{"leading dot local", ".user@example.com"},
		{"single label domain", "user@localhost"},
		{"empty label", "user@exam..ple.com"},
		{"numeric TLD", "user@example.123"},
		{"hyphen label", "user@-example.com"},
		{"domain literal", "user@[192.0.2.1]"},
		{"too long", strings.Repeat("a", 250) + "@example.com"},
		{"long local", strings.Repeat("a", 65) + "@example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse.ParseAddress(tt.raw)
			assert.ErrorIs(t, err, parse.ErrSyntax)
		})
	}
}

func TestExtractDomain(t *testing.T) {
	d, err := parse.ExtractDomain("User@Example.COM")
	assert.NoError(t, err)
	assert.Equal(t, "example.com", d)

	_, err = parse.ExtractDomain("nope")
	assert.ErrorIs(t, err, parse.ErrSyntax)
}
