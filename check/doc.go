// Package check contains the record checkers for mailposture.
// Each checker resolves one kind of DNS authentication record for a domain
// and classifies it. Checkers never return errors: lookup failures become
// part of the returned record's status and issues.
// These types can be used directly, but the recommended approach is
// to use the fluent builder API from the github.com/optimode/mailposture package.
package check
