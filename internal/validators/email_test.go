package validators

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/salon-pos/internal/httperr"
)

type stubResolver struct {
	mx  map[string]bool
	ips map[string]bool
}

func (s stubResolver) LookupMX(_ context.Context, name string) ([]*net.MX, error) {
	if s.mx[name] {
		return []*net.MX{{Host: "mx." + name, Pref: 10}}, nil
	}
	return nil, errors.New("no such host")
}

func (s stubResolver) LookupIPAddr(_ context.Context, host string) ([]net.IPAddr, error) {
	if s.ips[host] {
		return []net.IPAddr{{IP: net.IPv4(192, 0, 2, 1)}}, nil
	}
	return nil, errors.New("no such host")
}

func TestEmailDomain(t *testing.T) {
	r := stubResolver{
		mx:  map[string]bool{"example.com": true},
		ips: map[string]bool{"salon.in": true},
	}
	ctx := context.Background()

	assert.NoError(t, EmailDomain(ctx, r, "asha@example.com"))
	assert.NoError(t, EmailDomain(ctx, r, "asha@Example.COM"))
	assert.NoError(t, EmailDomain(ctx, r, "front.desk@salon.in"), "A record is enough")

	for _, bad := range []string{"asha@nowhere.invalid", "asha", "asha@", "@example.com"} {
		err := EmailDomain(ctx, r, bad)
		assert.True(t, httperr.IsBusiness(err, "invalid_email_domain"), bad)
	}
}
