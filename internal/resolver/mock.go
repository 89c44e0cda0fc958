package resolver

import (
	"context"
	"slices"
	"strings"
	"sync"
)

// MockResolver is a TXTResolver for tests.
// TXT maps names (without trailing dot) to their records. A name missing
// from TXT is NXDOMAIN; a name mapped to an empty slice exists without data.
type MockResolver struct {
	TXT map[string][]string
	// Fail lists names that answer SERVFAIL.
	Fail []string

	mu      sync.Mutex
	queries []string
}

var _ TXTResolver = (*MockResolver)(nil)

// LookupTXT records the query and answers from the configured maps.
func (m *MockResolver) LookupTXT(ctx context.Context, name string) ([]string, error) {
	name = strings.TrimSuffix(strings.ToLower(name), ".")

	m.mu.Lock()
	m.queries = append(m.queries, name)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if slices.Contains(m.Fail, name) {
		return nil, ErrServFail
	}
	records, ok := m.TXT[name]
	if !ok {
		return nil, ErrNXDomain
	}
	return slices.Clone(records), nil
}

// Queries returns the names looked up so far, in call order.
func (m *MockResolver) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.queries)
}
