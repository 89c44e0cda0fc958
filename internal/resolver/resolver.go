// Package resolver performs TXT lookups over github.com/miekg/dns.
// It separates NXDOMAIN from other failures, which posture checks
// classify differently.
package resolver

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	mdns "github.com/miekg/dns"
)

// TXTResolver is the lookup surface the checkers depend on.
// A name that does not exist yields ErrNXDomain. A name that exists
// without TXT data yields (nil, nil).
type TXTResolver interface {
	LookupTXT(ctx context.Context, name string) ([]string, error)
}

// Config is the resolver configuration.
type Config struct {
	// Nameservers to query, "host:port". Empty means /etc/resolv.conf,
	// falling back to public resolvers.
	Nameservers []string
	// Timeout per query. Default: 5s
	Timeout time.Duration
	// Retries is how many extra rounds over the nameservers are made.
	// Default: 2. A negative value disables retries.
	Retries int
}

// ednsUDPSize is the UDP payload size advertised with EDNS0.
const ednsUDPSize = 4096

// DNSResolver implements TXTResolver. Truncated UDP answers are
// queried again over TCP.
type DNSResolver struct {
	cfg    Config
	client *mdns.Client
	tcp    *mdns.Client
}

var _ TXTResolver = (*DNSResolver)(nil)

// New creates a resolver, filling unset Config fields with defaults.
func New(cfg Config) *DNSResolver {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	} else if cfg.Retries == 0 {
		cfg.Retries = 2
	}
	if len(cfg.Nameservers) == 0 {
		cfg.Nameservers = systemNameservers("/etc/resolv.conf")
	} else {
		cfg.Nameservers = normalizeNameservers(cfg.Nameservers)
	}
	return &DNSResolver{
		cfg:    cfg,
		client: &mdns.Client{Timeout: cfg.Timeout},
		tcp:    &mdns.Client{Net: "tcp", Timeout: cfg.Timeout},
	}
}

// Config returns the effective configuration.
func (r *DNSResolver) Config() Config {
	return r.cfg
}

func systemNameservers(path string) []string {
	cc, err := mdns.ClientConfigFromFile(path)
	if err != nil || len(cc.Servers) == 0 {
		return []string{"8.8.8.8:53", "1.1.1.1:53"}
	}
	servers := make([]string, 0, len(cc.Servers))
	for _, s := range cc.Servers {
		servers = append(servers, net.JoinHostPort(s, cc.Port))
	}
	return servers
}

// normalizeNameservers appends :53 to entries without a port.
func normalizeNameservers(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, _, err := net.SplitHostPort(s); err != nil {
			s = net.JoinHostPort(strings.Trim(s, "[]"), "53")
		}
		out = append(out, s)
	}
	return out
}

// LookupTXT returns the TXT records at name. Each record's character
// strings are concatenated without separator.
func (r *DNSResolver) LookupTXT(ctx context.Context, name string) ([]string, error) {
	resp, err := r.query(ctx, name, mdns.TypeTXT)
	if err != nil {
		return nil, err
	}

	var records []string
	for _, rr := range resp.Answer {
		if txt, ok := rr.(*mdns.TXT); ok {
			records = append(records, strings.Join(txt.Txt, ""))
		}
	}
	return records, nil
}

func (r *DNSResolver) query(ctx context.Context, name string, qtype uint16) (*mdns.Msg, error) {
	if len(r.cfg.Nameservers) == 0 {
		return nil, ErrNoNameservers
	}

	m := new(mdns.Msg)
	m.SetQuestion(mdns.Fqdn(name), qtype)
	m.RecursionDesired = true
	m.SetEdns0(ednsUDPSize, false)

	var lastErr error
	for i := 0; i <= r.cfg.Retries; i++ {
		for _, server := range r.cfg.Nameservers {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			resp, _, err := r.client.ExchangeContext(ctx, m, server)
			if err == nil && resp.Truncated {
				// Answer did not fit in a datagram, ask again over TCP.
				resp, _, err = r.tcp.ExchangeContext(ctx, m, server)
			}
			if err != nil {
				lastErr = fmt.Errorf("query %s: %w", server, err)
				continue
			}

			switch resp.Rcode {
			case mdns.RcodeSuccess:
				return resp, nil
			case mdns.RcodeNameError:
				return nil, ErrNXDomain
			case mdns.RcodeServerFailure:
				lastErr = ErrServFail
			case mdns.RcodeRefused:
				lastErr = ErrRefused
			default:
				lastErr = fmt.Errorf("resolver: unexpected rcode %s", mdns.RcodeToString[resp.Rcode])
			}
		}
	}
	return nil, lastErr
}
