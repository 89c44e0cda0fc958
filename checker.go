package mailposture

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/optimode/mailposture/check"
	"github.com/optimode/mailposture/internal/parse"
	"github.com/optimode/mailposture/internal/resolver"
	"github.com/optimode/mailposture/types"
)

// recordChecker is the internal interface for the SPF, DMARC and DKIM
// checkers of the check package.
type recordChecker interface {
	Check(ctx context.Context, domain string) types.DNSRecord
}

// Checker is the main fluent builder struct.
// Instantiate with the New() function. A Checker is safe for concurrent
// use once configured.
type Checker struct {
	resolver  resolver.TXTResolver
	selectors []string
	logger    *logrus.Entry
	now       func() time.Time
}

// New creates a Checker using the system nameservers and the default
// DKIM selector list.
func New() *Checker {
	o := defaultResolverOptions()
	return &Checker{
		resolver: resolver.New(resolver.Config{Timeout: o.Timeout, Retries: o.Retries}),
		logger:   discardLogger(),
		now:      time.Now,
	}
}

func discardLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// WithResolver replaces the resolver with one built from opts.
// Unset fields keep their defaults.
func (c *Checker) WithResolver(opts ResolverOptions) *Checker {
	def := defaultResolverOptions()
	if opts.Timeout == 0 {
		opts.Timeout = def.Timeout
	}
	if opts.Retries == 0 {
		opts.Retries = def.Retries
	}
	c.resolver = resolver.New(resolver.Config{
		Nameservers: opts.Nameservers,
		Timeout:     opts.Timeout,
		Retries:     opts.Retries,
	})
	return c
}

// WithTXTResolver sets the resolver used for every lookup. Anything
// implementing LookupTXT(ctx, name) ([]string, error) fits; return
// resolver errors wrapping resolver.ErrNXDomain for non-existent names.
func (c *Checker) WithTXTResolver(r resolver.TXTResolver) *Checker {
	c.resolver = r
	return c
}

// WithSelectors overrides the DKIM selectors probed, in order.
// Calling it with no selectors restores the default list.
func (c *Checker) WithSelectors(selectors ...string) *Checker {
	c.selectors = nil
	for _, s := range selectors {
		if s = strings.TrimSpace(s); s != "" {
			c.selectors = append(c.selectors, s)
		}
	}
	return c
}

// WithLogger sets the logger. By default nothing is logged.
func (c *Checker) WithLogger(l *logrus.Entry) *Checker {
	if l == nil {
		l = discardLogger()
	}
	c.logger = l.WithField("component", "mailposture")
	return c
}

// Check inspects the DNS posture of the domain of email. The SPF, DMARC
// and DKIM lookups run concurrently. DNS failures are reported inside the
// result; an error is returned only when email has no usable domain.
func (c *Checker) Check(ctx context.Context, email string) (Result, error) {
	if c.resolver == nil {
		return Result{}, ErrNoResolver
	}

	domain, err := parse.ExtractDomain(email)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidEmail, err)
	}

	start := c.now()
	checkers := []recordChecker{
		check.NewSPFChecker(c.resolver),
		check.NewDMARCChecker(c.resolver),
		check.NewDKIMChecker(check.DKIMConfig{Selectors: c.selectors}, c.resolver),
	}
	records := make([]types.DNSRecord, len(checkers))

	var wg sync.WaitGroup
	for i, rc := range checkers {
		i, rc := i, rc
		wg.Add(1)
		go func() {
			defer wg.Done()
			records[i] = rc.Check(ctx, domain)
		}()
	}
	wg.Wait()

	result := Result{
		Email:         email,
		Domain:        domain,
		OverallStatus: check.Overall(records[0], records[1], records[2]),
		SPF:           records[0],
		DMARC:         records[1],
		DKIM:          records[2],
		Timestamp:     c.now().UTC(),
	}

	c.logger.WithFields(logrus.Fields{
		"domain":   domain,
		"spf":      result.SPF.Status,
		"dmarc":    result.DMARC.Status,
		"dkim":     result.DKIM.Status,
		"overall":  result.OverallStatus,
		"duration": c.now().Sub(start).String(),
	}).Debug("domain checked")

	return result, nil
}

// CheckMany checks multiple emails concurrently.
// The result order matches the input slice order. Entries for emails that
// fail to parse are left zero and the first such error is returned.
// Once ctx is done no further emails are started and ctx.Err() is
// returned unless a parse error came first.
func (c *Checker) CheckMany(ctx context.Context, emails []string, opts ...ConcurrencyOptions) ([]Result, error) {
	workers := 5
	if len(opts) > 0 && opts[0].Workers > 0 {
		workers = opts[0].Workers
	}

	results := make([]Result, len(emails))
	type job struct {
		idx   int
		email string
	}

	jobs := make(chan job, min(len(emails), 1000))
	go func() {
		defer close(jobs)
		for i, e := range emails {
			if ctx.Err() != nil {
				return
			}
			select {
			case jobs <- job{idx: i, email: e}:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if ctx.Err() != nil {
					continue
				}
				res, err := c.Check(ctx, j.email)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("checking %q: %w", j.email, err)
					}
					mu.Unlock()
					continue
				}
				results[j.idx] = res
			}
		}()
	}

	wg.Wait()
	if firstErr == nil && ctx.Err() != nil {
		firstErr = ctx.Err()
	}
	return results, firstErr
}
