package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// idleVisitorTTL is how long an IP's limiter is kept after its last request.
const idleVisitorTTL = 3 * time.Minute

// IPMeta stores the limiter and last seen time for an IP
type IPMeta struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter hands out one token bucket per client IP.
type IPRateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*IPMeta
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

// NewIPRateLimiter creates a limiter allowing requestsPerSecond with the given burst per IP.
func NewIPRateLimiter(requestsPerSecond float64, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		clients: make(map[string]*IPMeta),
		limit:   rate.Limit(requestsPerSecond),
		burst:   burst,
		now:     time.Now,
	}
}

// Allow reports whether ip may make a request now.
func (l *IPRateLimiter) Allow(ip string) bool {
	return l.visitor(ip).AllowN(l.now(), 1)
}

func (l *IPRateLimiter) visitor(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > time.Minute {
		for addr, client := range l.clients {
			if now.Sub(client.lastSeen) > idleVisitorTTL {
				delete(l.clients, addr)
			}
		}
		l.lastSweep = now
	}

	client, exists := l.clients[ip]
	if !exists {
		client = &IPMeta{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = client
	}
	client.lastSeen = now
	return client.limiter
}

func (l *IPRateLimiter) retryAfter() string {
	if l.limit <= 0 {
		return "60"
	}
	secs := int(1/float64(l.limit)) + 1
	return strconv.Itoa(secs)
}

const msgTooManyRequests = "Too many requests. Please try again later."

// RateLimiterFiber creates a Fiber middleware for rate limiting.
// It uses a token bucket algorithm based on IP address.
func RateLimiterFiber(l *IPRateLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !l.Allow(c.IP()) {
			c.Set(fiber.HeaderRetryAfter, l.retryAfter())
			return fiber.NewError(fiber.StatusTooManyRequests, msgTooManyRequests)
		}
		return c.Next()
	}
}

// RateLimiterGin creates a Gin middleware for rate limiting.
func RateLimiterGin(l *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.Header("Retry-After", l.retryAfter())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorBody(msgTooManyRequests))
			return
		}
		c.Next()
	}
}
