package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(window time.Duration, now time.Time) *rateLimiter {
	l := &rateLimiter{
		window:        window,
		last:          make(map[string]time.Time),
		sweepInterval: window,
	}
	l.now = func() time.Time { return now }
	return l
}

func shareRequestContext(authorID string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/api/v1/shares", nil)
	if authorID != "" {
		c.Set(ContextAuthorIDKey, authorID)
	}
	return c
}

func TestRateLimitSecondRequestBlocked(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := newTestLimiter(10*time.Second, time.Now())

	first := shareRequestContext("a1")
	limiter.handle(first)
	require.False(t, first.IsAborted())

	second := shareRequestContext("a1")
	limiter.handle(second)
	require.True(t, second.IsAborted())
}

func TestRateLimitAllowsAfterWindow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	start := time.Now()
	limiter := newTestLimiter(10*time.Second, start)

	limiter.handle(shareRequestContext("a1"))

	limiter.now = func() time.Time { return start.Add(11 * time.Second) }
	again := shareRequestContext("a1")
	limiter.handle(again)
	require.False(t, again.IsAborted())
}

func TestRateLimitIsolatesAuthors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := newTestLimiter(10*time.Second, time.Now())

	limiter.handle(shareRequestContext("a1"))
	other := shareRequestContext("a2")
	limiter.handle(other)
	require.False(t, other.IsAborted())
}

func TestRateLimitSweepDropsStaleEntries(t *testing.T) {
	base := time.Now()
	limiter := newTestLimiter(10*time.Second, base)
	limiter.last["stale"] = base.Add(-time.Minute)
	limiter.last["fresh"] = base.Add(-time.Second)

	limiter.mu.Lock()
	limiter.cleanupExpiredLocked(base)
	limiter.mu.Unlock()

	require.NotContains(t, limiter.last, "stale")
	require.Contains(t, limiter.last, "fresh")
	require.Equal(t, base, limiter.lastSweep)
}
