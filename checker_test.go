package mailposture_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optimode/mailposture"
	"github.com/optimode/mailposture/internal/resolver"
)

func securedZone() map[string][]string {
	return map[string][]string{
		"example.com":                      {"v=spf1 include:_spf.google.com -all"},
		"_dmarc.example.com":               {"v=DMARC1; p=reject; rua=mailto:dmarc@example.com"},
		"default._domainkey.example.com":   {"v=DKIM1; p=MIIBIjANBg"},
		"example.org":                      {"v=spf1 -all"},
		"_dmarc.example.org":               {"v=DMARC1; p=none"},
		"selector1._domainkey.example.org": {"v=DKIM1; k=rsa; p=MIGf"},
	}
}

func TestCheck_AllValid(t *testing.T) {
	r := &resolver.MockResolver{TXT: securedZone()}
	c := mailposture.New().WithTXTResolver(r)

	res, err := c.Check(context.Background(), "user@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "user@Example.com", res.Email)
	assert.Equal(t, "example.com", res.Domain)
	assert.Equal(t, mailposture.StatusValid, res.SPF.Status)
	assert.Equal(t, mailposture.StatusValid, res.DMARC.Status)
	assert.Equal(t, mailposture.StatusValid, res.DKIM.Status)
	assert.Equal(t, mailposture.OverallPass, res.OverallStatus)
	assert.Empty(t, res.Issues())
	assert.Equal(t, time.UTC, res.Timestamp.Location())
}

func TestCheck_Warnings(t *testing.T) {
	r := &resolver.MockResolver{TXT: securedZone()}
	res, err := mailposture.New().WithTXTResolver(r).Check(context.Background(), "a@example.org")
	require.NoError(t, err)

	assert.Equal(t, mailposture.StatusValid, res.SPF.Status)
	assert.Equal(t, mailposture.StatusWarning, res.DMARC.Status)
	assert.Equal(t, mailposture.StatusWarning, res.DKIM.Status)
	assert.Equal(t, mailposture.OverallPass, res.OverallStatus)
	assert.Contains(t, res.Issues(), "DKIM: DKIM key might be shorter than recommended 2048 bits")
}

func TestCheck_AllMissingFails(t *testing.T) {
	r := &resolver.MockResolver{TXT: map[string][]string{"example.com": {}}}
	res, err := mailposture.New().WithTXTResolver(r).Check(context.Background(), "user@example.com")
	require.NoError(t, err)

	assert.Equal(t, mailposture.StatusMissing, res.SPF.Status)
	assert.Equal(t, mailposture.StatusMissing, res.DMARC.Status)
	assert.Equal(t, mailposture.StatusMissing, res.DKIM.Status)
	assert.Equal(t, mailposture.OverallFail, res.OverallStatus)
}

func TestCheck_InvalidEmail(t *testing.T) {
	r := &resolver.MockResolver{}
	_, err := mailposture.New().WithTXTResolver(r).Check(context.Background(), "not-an-email")
	assert.ErrorIs(t, err, mailposture.ErrInvalidEmail)
	assert.Empty(t, r.Queries())
}

func TestCheck_NilResolver(t *testing.T) {
	_, err := mailposture.New().WithTXTResolver(nil).Check(context.Background(), "user@example.com")
	assert.ErrorIs(t, err, mailposture.ErrNoResolver)
}

func TestCheck_CustomSelectors(t *testing.T) {
	zone := securedZone()
	zone["custom._domainkey.example.com"] = []string{"v=DKIM1; p=MIIB"}
	r := &resolver.MockResolver{TXT: zone}

	res, err := mailposture.New().
		WithTXTResolver(r).
		WithSelectors(" custom ", "").
		Check(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Selector: custom - v=DKIM1; p=MIIB...", res.DKIM.RecordValue())
	assert.NotContains(t, r.Queries(), "default._domainkey.example.com")
}

func TestCheck_Logs(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.JSONFormatter{})

	r := &resolver.MockResolver{TXT: securedZone()}
	_, err := mailposture.New().WithTXTResolver(r).WithLogger(logrus.NewEntry(l)).
		Check(context.Background(), "user@example.com")
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "domain checked", entry["msg"])
	assert.Equal(t, "example.com", entry["domain"])
	assert.Equal(t, "pass", entry["overall"])
	assert.Equal(t, "mailposture", entry["component"])
}

func TestResult_JSONShape(t *testing.T) {
	r := &resolver.MockResolver{TXT: map[string][]string{"example.com": {"v=spf1 -all"}}}
	res, err := mailposture.New().WithTXTResolver(r).Check(context.Background(), "user@example.com")
	require.NoError(t, err)

	b, err := json.Marshal(res)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "fail", m["overall_status"])
	assert.Contains(t, m, "timestamp")

	dmarc := m["dmarc"].(map[string]any)
	assert.Equal(t, "DMARC", dmarc["type"])
	assert.Equal(t, "missing", dmarc["status"])
	assert.Nil(t, dmarc["record"])

	spf := m["spf"].(map[string]any)
	assert.Equal(t, "v=spf1 -all", spf["record"])
	assert.Equal(t, []any{}, spf["issues"])
}

func TestResult_RecordFor(t *testing.T) {
	r := &resolver.MockResolver{TXT: securedZone()}
	res, _ := mailposture.New().WithTXTResolver(r).Check(context.Background(), "user@example.com")

	rec, ok := res.RecordFor("DMARC")
	assert.True(t, ok)
	assert.Equal(t, mailposture.StatusValid, rec.Status)

	_, ok = res.RecordFor("BIMI")
	assert.False(t, ok)
}

func TestCheckMany(t *testing.T) {
	r := &resolver.MockResolver{TXT: securedZone()}
	c := mailposture.New().WithTXTResolver(r)

	emails := []string{"a@example.org", "b@example.com", "invalid", "c@example.com"}
	results, err := c.CheckMany(context.Background(), emails, mailposture.ConcurrencyOptions{Workers: 2})
	assert.ErrorIs(t, err, mailposture.ErrInvalidEmail)
	require.Len(t, results, 4)

	assert.Equal(t, "example.org", results[0].Domain)
	assert.Equal(t, "example.com", results[1].Domain)
	assert.Empty(t, results[2].Domain)
	assert.Equal(t, "c@example.com", results[3].Email)
	assert.Equal(t, mailposture.OverallPass, results[3].OverallStatus)
}

func TestCheckMany_AllValid(t *testing.T) {
	r := &resolver.MockResolver{TXT: securedZone()}
	results, err := mailposture.New().WithTXTResolver(r).
		CheckMany(context.Background(), []string{"a@example.com", "b@example.org"})
	assert.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestCheckMany_CanceledContext(t *testing.T) {
	r := &resolver.MockResolver{TXT: securedZone()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	emails := []string{"a@example.com", "b@example.org", "c@example.com"}
	results, err := mailposture.New().WithTXTResolver(r).
		CheckMany(ctx, emails, mailposture.ConcurrencyOptions{Workers: 2})
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, len(emails))
	for _, res := range results {
		assert.Zero(t, res)
	}
	assert.Empty(t, r.Queries())
}
