package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/mireo/fitvault/internal/pkg/errcode"
	"github.com/mireo/fitvault/internal/pkg/response"
)

// sweepThreshold bounds the tracking map. Once reached, expired
// entries are dropped on the next request.
const sweepThreshold = 4096

type rateLimiter struct {
	mu     sync.Mutex
	window time.Duration
	seen   map[string]time.Time
	now    func() time.Time
}

// RateLimit allows one request per caller per route per window. Meant
// for the expensive endpoints (import deploy, upload), not as a
// general traffic shaper. A zero window disables throttling.
func RateLimit(window time.Duration) gin.HandlerFunc {
	limiter := &rateLimiter{
		window: window,
		seen:   make(map[string]time.Time),
		now:    time.Now,
	}
	return limiter.handle
}

// callerKey identifies a caller by ip, authenticated user and route.
func callerKey(c *gin.Context) string {
	uid := "0"
	if v, ok := c.Get(ContextUserIDKey); ok {
		if id, ok := v.(string); ok && id != "" {
			uid = id
		}
	}
	route := c.FullPath()
	if route == "" {
		route = c.Request.URL.Path
	}
	return strings.Join([]string{c.ClientIP(), uid, route}, "|")
}

func (l *rateLimiter) handle(c *gin.Context) {
	if l.window <= 0 {
		c.Next()
		return
	}
	key := callerKey(c)
	now := l.now()

	l.mu.Lock()
	prev, ok := l.seen[key]
	blocked := ok && now.Sub(prev) < l.window
	if !blocked {
		l.seen[key] = now
		if len(l.seen) >= sweepThreshold {
			l.sweepLocked(now)
		}
	}
	l.mu.Unlock()

	if blocked {
		logutil.GetLogger(c.Request.Context()).Warn("rate limit hit",
			zap.String("key", key))
		response.Error(c, errcode.ErrTooMany, http.StatusText(http.StatusTooManyRequests))
		c.Abort()
		return
	}
	c.Next()
}

// sweepLocked drops entries old enough to never block again. Caller
// holds the mutex.
func (l *rateLimiter) sweepLocked(now time.Time) {
	for key, prev := range l.seen {
		if now.Sub(prev) >= l.window {
			delete(l.seen, key)
		}
	}
}
