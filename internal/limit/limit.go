// Package limit throttles connections per remote address.
package limit

import (
	"net"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// PerIP keeps one token bucket per remote IP.
type PerIP struct {
	mu       sync.Mutex
	limiters map[string]*entry
	rate     rate.Limit
	burst    int
	idle     time.Duration
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewPerIP allows each IP perSecond events with the given burst. Buckets
// unused for idle are forgotten by Prune.
func NewPerIP(perSecond float64, burst int, idle time.Duration) *PerIP {
	return &PerIP{
		limiters: make(map[string]*entry),
		rate:     rate.Limit(perSecond),
		burst:    burst,
		idle:     idle,
	}
}

// Allow reports whether addr may proceed now. addr may be "host:port" or a bare host.
func (p *PerIP) Allow(addr string) bool {
	return p.limiter(Host(addr)).Allow()
}

func (p *PerIP) limiter(ip string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.limiters[ip]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(p.rate, p.burst)}
		p.limiters[ip] = e
	}
	e.lastSeen = time.Now()
	return e.limiter
}

// Prune drops buckets idle for longer than the configured duration and
// returns how many remain.
func (p *PerIP) Prune() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	for ip, e := range p.limiters {
		if time.Since(e.lastSeen) > p.idle {
			delete(p.limiters, ip)
		}
	}
	return len(p.limiters)
}

// Host strips the port from addr when there is one.
func Host(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
