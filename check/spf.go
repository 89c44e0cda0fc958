package check

import (
	"context"
	"fmt"
	"strings"

	"github.com/optimode/mailposture/internal/resolver"
	"github.com/optimode/mailposture/types"
)

// maxSPFIncludes is the include: count above which an SPF record is flagged.
// RFC 7208 caps DNS-querying mechanisms at 10 per evaluation.
const maxSPFIncludes = 10

// SPFChecker inspects the domain's v=spf1 TXT record.
type SPFChecker struct {
	resolver resolver.TXTResolver
}

func NewSPFChecker(r resolver.TXTResolver) *SPFChecker {
	return &SPFChecker{resolver: r}
}

func (c *SPFChecker) Check(ctx context.Context, domain string) types.DNSRecord {
	txts, err := c.resolver.LookupTXT(ctx, domain)
	if err != nil {
		if resolver.IsNXDomain(err) {
			return types.NewDNSRecord(types.TypeSPF, types.StatusInvalid, "",
				[]string{"Domain does not exist"},
				[]string{"Verify the domain name is correct"})
		}
		return types.NewDNSRecord(types.TypeSPF, types.StatusInvalid, "",
			[]string{fmt.Sprintf("Error checking SPF: %v", err)},
			[]string{"Check DNS configuration"})
	}

	records := filterPrefix(txts, "v=spf1")
	switch {
	case len(records) == 0:
		return types.NewDNSRecord(types.TypeSPF, types.StatusMissing, "",
			[]string{"No SPF record found"},
			[]string{
				"Add an SPF record to your DNS",
				"Example: v=spf1 include:_spf.google.com ~all",
			})
	case len(records) > 1:
		return types.NewDNSRecord(types.TypeSPF, types.StatusInvalid, records[0],
			[]string{"Multiple SPF records found - only one is allowed"},
			[]string{"Combine all SPF mechanisms into a single record"})
	}

	record := records[0]
	var issues, recs []string

	if !hasAllSuffix(record) {
		issues = append(issues, "SPF record should end with an 'all' mechanism")
		recs = append(recs, "Add ~all (softfail) or -all (hardfail) at the end")
	}
	if strings.Count(record, "include:") > maxSPFIncludes {
		issues = append(issues, "Too many include mechanisms may cause DNS lookup limit issues")
		recs = append(recs, "Consolidate include mechanisms to reduce DNS lookups")
	}

	return types.NewDNSRecord(types.TypeSPF, statusFor(issues), record, issues, recs)
}

func hasAllSuffix(record string) bool {
	for _, suffix := range []string{"~all", "-all", "?all"} {
		if strings.HasSuffix(record, suffix) {
			return true
		}
	}
	return false
}

// filterPrefix returns the entries of txts starting with prefix, in order.
func filterPrefix(txts []string, prefix string) []string {
	var out []string
	for _, t := range txts {
		if strings.HasPrefix(t, prefix) {
			out = append(out, t)
		}
	}
	return out
}

// statusFor is valid when no issue was raised and warning otherwise.
func statusFor(issues []string) types.Status {
	if len(issues) == 0 {
		return types.StatusValid
	}
	return types.StatusWarning
}
