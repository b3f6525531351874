package restapi

import (
	"encoding/json"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"dashboard.covid19.org/internal/models"
)

// RateLimitMiddleware provides per-client rate limiting. Clients are told
// apart by IP address. X-Forwarded-For is only read from trusted proxies.
type RateLimitMiddleware struct {
	limiters       map[string]*rate.Limiter
	mu             sync.RWMutex
	rateLimit      rate.Limit
	burstSize      int
	trustedProxies []netip.Prefix
	cleanupTick    *time.Ticker
	done           chan struct{}
	stopOnce       sync.Once
}

// NewRateLimitMiddleware creates a new rate limiting middleware.
// ratePerInterval: number of requests allowed per interval per client; the
// same number may arrive in one burst. A negative value disables limiting,
// zero blocks every request.
// trustedProxies lists the peers whose X-Forwarded-For header is believed.
func NewRateLimitMiddleware(ratePerInterval int, interval time.Duration, trustedProxies ...netip.Prefix) *RateLimitMiddleware {
	var rateLimit rate.Limit
	switch {
	case ratePerInterval < 0:
		rateLimit = rate.Inf
	case ratePerInterval == 0:
		rateLimit = 0
	default:
		rateLimit = rate.Every(interval / time.Duration(ratePerInterval))
	}

	middleware := &RateLimitMiddleware{
		limiters:       make(map[string]*rate.Limiter),
		rateLimit:      rateLimit,
		burstSize:      ratePerInterval,
		trustedProxies: trustedProxies,
		cleanupTick:    time.NewTicker(5 * time.Minute),
		done:           make(chan struct{}),
	}

	go middleware.cleanup()

	return middleware
}

// getLimiter gets or creates a rate limiter for the given client
func (rl *RateLimitMiddleware) getLimiter(client string) *rate.Limiter {
	rl.mu.RLock()
	limiter, exists := rl.limiters[client]
	rl.mu.RUnlock()

	if exists {
		return limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := rl.limiters[client]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rl.rateLimit, rl.burstSize)
	rl.limiters[client] = limiter

	return limiter
}

// clientIP is the peer address. When the peer is a trusted proxy the
// X-Forwarded-For hops are walked from the right and the first hop that is
// not a trusted proxy is the client.
func (rl *RateLimitMiddleware) clientIP(r *http.Request) string {
	peer := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		peer = host
	}
	if !rl.trusted(peer) {
		return peer
	}

	hops := strings.Split(strings.Join(r.Header.Values("X-Forwarded-For"), ","), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop != "" && !rl.trusted(hop) {
			return hop
		}
	}
	return peer
}

func (rl *RateLimitMiddleware) trusted(addr string) bool {
	if len(rl.trustedProxies) == 0 {
		return false
	}
	ip, err := netip.ParseAddr(addr)
	if err != nil {
		return false
	}
	ip = ip.Unmap()
	for _, p := range rl.trustedProxies {
		if p.Contains(ip) {
			return true
		}
	}
	return false
}

// Handler is the HTTP middleware function
func (rl *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.rateLimit == rate.Inf {
			next.ServeHTTP(w, r)
			return
		}

		if !rl.getLimiter(rl.clientIP(r)).Allow() {
			rl.sendRateLimitExceeded(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// sendRateLimitExceeded sends a 429 Too Many Requests response
func (rl *RateLimitMiddleware) sendRateLimitExceeded(w http.ResponseWriter, r *http.Request) {
	retryAfter := time.Second
	if rl.rateLimit == 0 {
		retryAfter = time.Hour
	} else if every := time.Duration(float64(time.Second) / float64(rl.rateLimit)); every > retryAfter {
		retryAfter = every
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.burstSize))
	w.Header().Set("X-RateLimit-Remaining", "0")
	w.WriteHeader(http.StatusTooManyRequests)

	response := models.NewResponse(http.StatusTooManyRequests, nil, "Rate limit exceeded. Please try again later.")
	_ = json.NewEncoder(w).Encode(response)
}

// cleanup periodically drops limiters whose bucket has refilled
func (rl *RateLimitMiddleware) cleanup() {
	for {
		select {
		case <-rl.done:
			return
		case <-rl.cleanupTick.C:
			rl.sweep()
		}
	}
}

func (rl *RateLimitMiddleware) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, limiter := range rl.limiters {
		if limiter.Tokens() >= float64(rl.burstSize) {
			delete(rl.limiters, key)
		}
	}
}

// Stop stops the cleanup goroutine
func (rl *RateLimitMiddleware) Stop() {
	rl.stopOnce.Do(func() {
		rl.cleanupTick.Stop()
		close(rl.done)
	})
}
