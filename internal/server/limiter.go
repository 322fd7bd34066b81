package server

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"sync"
	"time"
)

type clientIPKey struct{}

// withClientIP stores the resolved client address for handlers further down the chain
func withClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

func clientIPFromContext(ctx context.Context) (string, bool) {
	ip, ok := ctx.Value(clientIPKey{}).(string)
	return ip, ok
}

// clientUsage is what one client has spent in the current window
type clientUsage struct {
	requests   int
	failedAuth int
	sweepSteps int64
}

// ClientLimiter meters each client IP over a fixed window. Plain requests are
// counted; sweeps are charged their worst-case simulation work, so one large
// sweep uses up the allowance that many small ones would.
type ClientLimiter struct {
	mu          sync.Mutex
	maxRequests int
	stepBudget  int64
	window      time.Duration
	windowStart time.Time
	clients     map[string]*clientUsage
	now         func() time.Time
}

// NewClientLimiter allows maxRequests requests and stepBudget sweep steps per client in each window
func NewClientLimiter(maxRequests int, stepBudget int64, window time.Duration) *ClientLimiter {
	return &ClientLimiter{
		maxRequests: maxRequests,
		stepBudget:  stepBudget,
		window:      window,
		windowStart: time.Now(),
		clients:     make(map[string]*clientUsage),
		now:         time.Now,
	}
}

// usage returns the client's counters, starting a fresh window when the old one has passed.
// Caller must hold the mutex.
func (l *ClientLimiter) usage(ip string) *clientUsage {
	if now := l.now(); now.Sub(l.windowStart) > l.window {
		l.clients = make(map[string]*clientUsage)
		l.windowStart = now
	}
	u, ok := l.clients[ip]
	if !ok {
		u = &clientUsage{}
		l.clients[ip] = u
	}
	return u
}

// AllowRequest counts one request and reports whether the client is still under its limit
func (l *ClientLimiter) AllowRequest(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	u := l.usage(ip)
	u.requests++
	if u.requests <= l.maxRequests {
		return true
	}
	if u.requests%highRateLogEvery == 0 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count", u.requests, "window", l.window)
	}
	return false
}

// RecordFailedAuth counts a rejected API key and alerts once a client keeps guessing
func (l *ClientLimiter) RecordFailedAuth(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	u := l.usage(ip)
	u.failedAuth++
	if u.failedAuth >= failedAuthAlertThreshold {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", u.failedAuth)
	}
}

// ChargeSweep charges a sweep of the given worst-case steps to the client in ctx.
// The first sweep in a window is always admitted (the form caps already bound it);
// later ones must fit in what is left of the budget. Requests that did not pass
// through RateLimitMiddleware carry no client and are not metered.
func (l *ClientLimiter) ChargeSweep(ctx context.Context, steps int64) bool {
	ip, ok := clientIPFromContext(ctx)
	if !ok {
		return true
	}
	return l.chargeSteps(ip, steps)
}

func (l *ClientLimiter) chargeSteps(ip string, steps int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	u := l.usage(ip)
	if u.sweepSteps > 0 && steps > l.stepBudget-u.sweepSteps {
		slog.Warn(SecurityAlertSweepBudget,
			"ip", ip,
			"requested_steps", steps,
			"spent_steps", u.sweepSteps,
			"budget", l.stepBudget,
			"window", l.window)
		return false
	}
	if steps > math.MaxInt64-u.sweepSteps {
		u.sweepSteps = math.MaxInt64
	} else {
		u.sweepSteps += steps
	}
	return true
}

// RateLimitMiddleware refuses clients over their request limit and records the
// client address in the request context for ChargeSweep
func RateLimitMiddleware(trustedProxies []string, limiter *ClientLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := extractIP(r, trustedProxies)
			if !limiter.AllowRequest(ip) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r.WithContext(withClientIP(r.Context(), ip)))
		})
	}
}
