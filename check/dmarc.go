package check

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/optimode/mailposture/internal/resolver"
	"github.com/optimode/mailposture/types"
)

// policyRe takes the first p= tag value. An sp= tag ahead of p= matches
// first.
var policyRe = regexp.MustCompile(`p=([^;]+)`)

// DMARCChecker inspects the v=DMARC1 TXT record at _dmarc.<domain>.
type DMARCChecker struct {
	resolver resolver.TXTResolver
}

func NewDMARCChecker(r resolver.TXTResolver) *DMARCChecker {
	return &DMARCChecker{resolver: r}
}

func (c *DMARCChecker) Check(ctx context.Context, domain string) types.DNSRecord {
	txts, err := c.resolver.LookupTXT(ctx, "_dmarc."+domain)
	if err != nil && !resolver.IsNXDomain(err) {
		return types.NewDNSRecord(types.TypeDMARC, types.StatusInvalid, "",
			[]string{fmt.Sprintf("Error checking DMARC: %v", err)},
			[]string{"Check DNS configuration"})
	}

	records := filterPrefix(txts, "v=DMARC1")
	if len(records) == 0 {
		return types.NewDNSRecord(types.TypeDMARC, types.StatusMissing, "",
			[]string{"No DMARC record found"},
			[]string{
				"Add a DMARC record to your DNS",
				"Example: v=DMARC1; p=quarantine; rua=mailto:dmarc@yourdomain.com",
			})
	}

	record := records[0]
	var issues, recs []string

	if m := policyRe.FindStringSubmatch(record); m == nil {
		issues = append(issues, "No policy (p=) specified in DMARC record")
		recs = append(recs, "Add a policy like p=quarantine or p=reject")
	} else if strings.TrimSpace(m[1]) == "none" {
		issues = append(issues, "DMARC policy is set to 'none' - emails won't be protected")
		recs = append(recs, "Consider upgrading to p=quarantine or p=reject")
	}

	if !strings.Contains(record, "rua=") && !strings.Contains(record, "ruf=") {
		issues = append(issues, "No reporting addresses specified")
		recs = append(recs, "Add rua= for aggregate reports")
	}

	return types.NewDNSRecord(types.TypeDMARC, statusFor(issues), record, issues, recs)
}
