package check_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/optimode/mailposture/check"
	"github.com/optimode/mailposture/types"
)

func rec(status types.Status) types.DNSRecord {
	return types.NewDNSRecord("", status, "", nil, nil)
}

func TestOverall(t *testing.T) {
	const (
		v = types.StatusValid
		w = types.StatusWarning
		m = types.StatusMissing
		i = types.StatusInvalid
	)

	tests := []struct {
		spf, dmarc, dkim types.Status
		want             types.OverallStatus
	}{
		{v, v, v, types.OverallPass},
		{w, v, v, types.OverallPass},
		{v, w, w, types.OverallPass},
		{w, w, w, types.OverallWarning},
		{m, m, v, types.OverallFail},
		{m, m, m, types.OverallFail},
		{i, v, v, types.OverallFail},
		{v, v, m, types.OverallWarning},
		{w, w, m, types.OverallWarning},
		{v, i, m, types.OverallFail},
	}

	for _, tt := range tests {
		got := check.Overall(rec(tt.spf), rec(tt.dmarc), rec(tt.dkim))
		assert.Equal(t, tt.want, got, "spf=%s dmarc=%s dkim=%s", tt.spf, tt.dmarc, tt.dkim)
	}
}
