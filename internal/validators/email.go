// Package validators holds input checks that need more than a binding tag.
package validators

import (
	"context"
	"net"
	"strings"

	"github.com/BruksfildServices01/salon-pos/internal/httperr"
)

var ErrEmailDomain = httperr.ErrBusinessMsg("invalid_email_domain", "The email domain does not look valid.")

// Resolver is the part of *net.Resolver used for domain checks.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// EmailDomain accepts an address whose domain has an MX record or, failing
// that, resolves to at least one address.
func EmailDomain(ctx context.Context, r Resolver, email string) error {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return ErrEmailDomain
	}
	domain := strings.ToLower(email[at+1:])

	if mx, err := r.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return nil
	}
	if ips, err := r.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return nil
	}
	return ErrEmailDomain
}

// CheckEmailDomain runs EmailDomain against the system resolver.
func CheckEmailDomain(ctx context.Context, email string) error {
	return EmailDomain(ctx, net.DefaultResolver, email)
}
