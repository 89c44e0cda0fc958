// Package types contains the shared types for mailposture.
// This package does not import anything from other mailposture packages
// to avoid circular imports.
package types

import "time"

// RecordType identifies which DNS authentication record was inspected.
type RecordType = string

const (
	TypeSPF   RecordType = "SPF"
	TypeDMARC RecordType = "DMARC"
	TypeDKIM  RecordType = "DKIM"
)

// Status is the classification of a single record.
type Status = string

const (
	StatusValid   Status = "valid"
	StatusWarning Status = "warning"
	StatusMissing Status = "missing"
	StatusInvalid Status = "invalid"
)

// OverallStatus is the aggregated verdict for a domain.
type OverallStatus = string

const (
	OverallPass    OverallStatus = "pass"
	OverallWarning OverallStatus = "warning"
	OverallFail    OverallStatus = "fail"
)

// DNSRecord is the outcome of inspecting one of SPF, DMARC or DKIM.
// Record is nil when nothing usable was found.
type DNSRecord struct {
	Type            RecordType `json:"type"`
	Status          Status     `json:"status"`
	Record          *string    `json:"record"`
	Issues          []string   `json:"issues"`
	Recommendations []string   `json:"recommendations"`
}

// NewDNSRecord builds a DNSRecord. Nil issue and recommendation slices are
// replaced with empty ones so they marshal as [] rather than null.
func NewDNSRecord(typ RecordType, status Status, record string, issues, recommendations []string) DNSRecord {
	r := DNSRecord{
		Type:            typ,
		Status:          status,
		Issues:          issues,
		Recommendations: recommendations,
	}
	if record != "" {
		r.Record = &record
	}
	if r.Issues == nil {
		r.Issues = []string{}
	}
	if r.Recommendations == nil {
		r.Recommendations = []string{}
	}
	return r
}

// RecordValue returns the inspected record text, or "" if none was found.
func (r DNSRecord) RecordValue() string {
	if r.Record == nil {
		return ""
	}
	return *r.Record
}

// DNSCheckResult is the full posture report for one email address.
type DNSCheckResult struct {
	Email         string        `json:"email"`
	Domain        string        `json:"domain"`
	OverallStatus OverallStatus `json:"overall_status"`
	SPF           DNSRecord     `json:"spf"`
	DMARC         DNSRecord     `json:"dmarc"`
	DKIM          DNSRecord     `json:"dkim"`
	Timestamp     time.Time     `json:"timestamp"`
}

// Records returns the SPF, DMARC and DKIM records in that order.
func (r DNSCheckResult) Records() []DNSRecord {
	return []DNSRecord{r.SPF, r.DMARC, r.DKIM}
}

// RecordFor returns the record of the given type.
// The second return value is false for an unknown type.
func (r DNSCheckResult) RecordFor(typ RecordType) (DNSRecord, bool) {
	for _, rec := range r.Records() {
		if rec.Type == typ {
			return rec, true
		}
	}
	return DNSRecord{}, false
}

// Issues returns every issue across the three records, each prefixed
// with its record type.
func (r DNSCheckResult) Issues() []string {
	var out []string
	for _, rec := range r.Records() {
		for _, issue := range rec.Issues {
			out = append(out, rec.Type+": "+issue)
		}
	}
	return out
}
