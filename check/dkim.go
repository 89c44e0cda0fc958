package check

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/optimode/mailposture/internal/resolver"
	"github.com/optimode/mailposture/types"
)

// DefaultSelectors are the DKIM selectors probed when none are configured,
// in probe order.
var DefaultSelectors = []string{
	"default", "selector1", "selector2", "google", "k1", "dkim",
	"mail", "email", "mxvault", "pps1", "x",
}

// recordPreviewLen is how many characters of a DKIM record are reported.
const recordPreviewLen = 100

// DKIMConfig is the DKIM checker configuration.
type DKIMConfig struct {
	// Selectors to probe, in order. Empty means DefaultSelectors.
	Selectors []string
}

// DKIMChecker probes selectors under _domainkey.<domain> and reports the
// first published key it finds.
type DKIMChecker struct {
	resolver  resolver.TXTResolver
	selectors []string
}

func NewDKIMChecker(cfg DKIMConfig, r resolver.TXTResolver) *DKIMChecker {
	selectors := slices.Clone(cfg.Selectors)
	if len(selectors) == 0 {
		selectors = slices.Clone(DefaultSelectors)
	}
	return &DKIMChecker{resolver: r, selectors: selectors}
}

// Selectors returns the probe list.
func (c *DKIMChecker) Selectors() []string {
	return slices.Clone(c.selectors)
}

func (c *DKIMChecker) Check(ctx context.Context, domain string) types.DNSRecord {
	selector, record, ok := c.probe(ctx, domain)
	if !ok {
		shown := c.selectors
		if len(shown) > 5 {
			shown = shown[:5]
		}
		return types.NewDNSRecord(types.TypeDKIM, types.StatusMissing, "",
			[]string{"No DKIM records found with common selectors"},
			[]string{
				"Set up DKIM signing for your email service",
				"Common selectors checked: " + strings.Join(shown, ", ") + "...",
			})
	}

	var issues, recs []string
	// Coarse heuristic: a base64 DER RSA key of 2048 bits starts with MII.
	if strings.Contains(record, "k=rsa") && !strings.Contains(record, "b=MII") {
		issues = append(issues, "DKIM key might be shorter than recommended 2048 bits")
		recs = append(recs, "Consider using RSA-2048 or higher for better security")
	}

	summary := fmt.Sprintf("Selector: %s - %s...", selector, truncate(record, recordPreviewLen))
	return types.NewDNSRecord(types.TypeDKIM, statusFor(issues), summary, issues, recs)
}

// probe queries selectors in order and stops at the first TXT record that
// looks like a DKIM key. Lookup errors move on to the next selector.
func (c *DKIMChecker) probe(ctx context.Context, domain string) (selector, record string, ok bool) {
	for _, sel := range c.selectors {
		if ctx.Err() != nil {
			return "", "", false
		}
		txts, err := c.resolver.LookupTXT(ctx, sel+"._domainkey."+domain)
		if err != nil {
			continue
		}
		for _, t := range txts {
			if strings.Contains(t, "v=DKIM1") || strings.Contains(t, "k=rsa") {
				return sel, t, true
			}
		}
	}
	return "", "", false
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
