// Package mailposture reports on the anti-spoofing DNS posture of an email
// address's domain. It inspects the SPF, DMARC and DKIM TXT records,
// classifies each one and combines them into a pass/warning/fail verdict
// with issues and recommendations.
//
// Basic usage:
//
//	result, err := mailposture.New().Check(ctx, "user@example.com")
//
// Custom resolver and DKIM selectors:
//
//	result, err := mailposture.New().
//	    WithResolver(mailposture.ResolverOptions{
//	        Nameservers: []string{"1.1.1.1:53"},
//	        Timeout:     3 * time.Second,
//	    }).
//	    WithSelectors("s1", "s2").
//	    Check(ctx, "user@example.com")
package mailposture

import "github.com/optimode/mailposture/types"

// Result is a re-export from the types package so that consumers
// don't need to import the types package directly.
type Result = types.DNSCheckResult

// DNSRecord is a re-export.
type DNSRecord = types.DNSRecord

// Status and verdict constants re-exported.
const (
	StatusValid   = types.StatusValid
	StatusWarning = types.StatusWarning
	StatusMissing = types.StatusMissing
	StatusInvalid = types.StatusInvalid

	OverallPass    = types.OverallPass
	OverallWarning = types.OverallWarning
	OverallFail    = types.OverallFail
)
