package mailposture

import "time"

// ResolverOptions configures the DNS resolver.
type ResolverOptions struct {
	// Nameservers to query, e.g. "8.8.8.8:53". Default: /etc/resolv.conf
	Nameservers []string
	// Timeout is the maximum time per DNS query. Default: 5s
	Timeout time.Duration
	// Retries is how many extra rounds over the nameservers are made
	// when a query fails. Default: 2. A negative value disables retries.
	Retries int
}

func defaultResolverOptions() ResolverOptions {
	return ResolverOptions{
		Timeout: 5 * time.Second,
		Retries: 2,
	}
}

// ConcurrencyOptions configures concurrent processing for CheckMany.
type ConcurrencyOptions struct {
	// Workers is the number of concurrent goroutines. Default: 5
	Workers int
}
