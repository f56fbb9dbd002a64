package validator

import (
	"context"
	"net"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/rulekit/pkg/cache"
)

// Resolver looks up host addresses for the activeurl rule. *net.Resolver
// satisfies it.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// CachingResolver remembers successful lookups for a while and collapses
// concurrent lookups of the same host into one.
type CachingResolver struct {
	next  Resolver
	hosts *cache.LRU[string, []string]
	group singleflight.Group
}

const (
	defaultResolverTTL      = 5 * time.Minute
	defaultResolverCapacity = 1024
)

// NewCachingResolver wraps next. A non-positive ttl selects five minutes.
func NewCachingResolver(next Resolver, ttl time.Duration) *CachingResolver {
	if next == nil {
		next = net.DefaultResolver
	}
	if ttl <= 0 {
		ttl = defaultResolverTTL
	}
	return &CachingResolver{
		next:  next,
		hosts: cache.NewLRU[string, []string](defaultResolverCapacity, cache.WithTTL(ttl)),
	}
}

func (r *CachingResolver) LookupHost(ctx context.Context, host string) ([]string, error) {
	if addrs, ok := r.hosts.Get(host); ok {
		return addrs, nil
	}

	v, err, _ := r.group.Do(host, func() (any, error) {
		if addrs, ok := r.hosts.Get(host); ok {
			return addrs, nil
		}
		addrs, err := r.next.LookupHost(ctx, host)
		if err != nil {
			return nil, err
		}
		r.hosts.Put(host, addrs)
		return addrs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

var defaultResolver Resolver = NewCachingResolver(net.DefaultResolver, 0)
