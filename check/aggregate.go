package check

import "github.com/optimode/mailposture/types"

// Overall combines the SPF, DMARC and DKIM statuses into one verdict.
//
//   - two or more valid, nothing missing or invalid: pass
//   - one or more valid, nothing missing or invalid: pass
//   - two or more missing, or any invalid: fail
//   - otherwise: warning
//
// The first two rules overlap and are kept as separate branches on
// purpose. Do not merge them.
func Overall(spf, dmarc, dkim types.DNSRecord) types.OverallStatus {
	var valid, missing, invalid int
	for _, r := range []types.DNSRecord{spf, dmarc, dkim} {
		switch r.Status {
		case types.StatusValid:
			valid++
		case types.StatusMissing:
			missing++
		case types.StatusInvalid:
			invalid++
		}
	}

	switch {
	case valid >= 2 && invalid == 0 && missing == 0:
		return types.OverallPass
	case valid >= 1 && invalid == 0 && missing == 0:
		return types.OverallPass
	case missing >= 2 || invalid >= 1:
		return types.OverallFail
	default:
		return types.OverallWarning
	}
}
