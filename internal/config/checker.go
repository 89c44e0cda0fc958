package config

import (
	"github.com/sirupsen/logrus"

	"github.com/optimode/mailposture"
)

// ResolverOptions converts the DNS settings for mailposture.
// DNS_RETRIES=0 means no retries.
func (c DNSConfig) ResolverOptions() mailposture.ResolverOptions {
	retries := c.Retries
	if retries == 0 {
		retries = -1
	}
	return mailposture.ResolverOptions{
		Nameservers: c.Nameservers,
		Timeout:     c.Timeout(),
		Retries:     retries,
	}
}

// NewChecker builds the posture checker described by the configuration.
func (c *Config) NewChecker(logger *logrus.Entry) *mailposture.Checker {
	return mailposture.New().
		WithResolver(c.DNS.ResolverOptions()).
		WithSelectors(c.DKIM.Selectors...).
		WithLogger(logger)
}
