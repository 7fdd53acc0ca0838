package middleware

import (
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(window time.Duration) (*rateLimiter, *time.Time) {
	clock := time.Now()
	limiter := &rateLimiter{
		window: window,
		seen:   make(map[string]time.Time),
		now:    func() time.Time { return clock },
	}
	return limiter, &clock
}

func deployRequest() *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/api/imports", nil)
	return c
}

func TestRateLimiterBlocksWithinWindow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter, clock := newTestLimiter(10 * time.Second)

	first := deployRequest()
	limiter.handle(first)
	require.False(t, first.IsAborted())

	second := deployRequest()
	limiter.handle(second)
	require.True(t, second.IsAborted())

	*clock = clock.Add(11 * time.Second)
	third := deployRequest()
	limiter.handle(third)
	require.False(t, third.IsAborted())
}

func TestRateLimiterZeroWindowPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter, _ := newTestLimiter(0)
	for i := 0; i < 3; i++ {
		c := deployRequest()
		limiter.handle(c)
		require.False(t, c.IsAborted())
	}
}

func TestRateLimiterSweepDropsExpiredEntries(t *testing.T) {
	base := time.Now()
	limiter, _ := newTestLimiter(10 * time.Second)
	for i := 0; i < 100; i++ {
		limiter.seen[fmt.Sprintf("expired-%d", i)] = base.Add(-20 * time.Second)
	}
	limiter.seen["active"] = base.Add(-2 * time.Second)

	limiter.mu.Lock()
	limiter.sweepLocked(base)
	limiter.mu.Unlock()

	require.Len(t, limiter.seen, 1)
	require.Contains(t, limiter.seen, "active")
}
