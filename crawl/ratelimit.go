package crawl

import (
	"context"
	"strings"
	"sync"

	"github.com/TheOne1006/kbsite"
	"golang.org/x/time/rate"
)

var _ kbsite.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces out requests to the same host. Hosts are compared
// case-insensitively and a leading "www." is ignored, so docs.example.com
// and www.docs.example.com share one budget.
type DomainLimiter struct {
	every rate.Limit
	hosts sync.Map // normalized host -> *rate.Limiter
}

// NewDomainLimiter allows rps requests per second to each host, without
// bursts. A non-positive rps disables limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	if rps <= 0 {
		return &DomainLimiter{every: rate.Inf}
	}
	return &DomainLimiter{every: rate.Limit(rps)}
}

// Wait blocks until a request to domain may start or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.limiter(domain).Wait(ctx)
}

// Hosts returns the number of hosts seen so far.
func (d *DomainLimiter) Hosts() int {
	n := 0
	d.hosts.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (d *DomainLimiter) limiter(domain string) *rate.Limiter {
	key := strings.TrimPrefix(strings.ToLower(domain), "www.")
	if l, ok := d.hosts.Load(key); ok {
		return l.(*rate.Limiter)
	}
	l, _ := d.hosts.LoadOrStore(key, rate.NewLimiter(d.every, 1))
	return l.(*rate.Limiter)
}
