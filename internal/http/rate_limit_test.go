package httpapi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoginRateLimiterFixedWindow(t *testing.T) {
	limiter := newLoginRateLimiter(3, time.Hour)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("10.0.0.1"))
	}
	assert.False(t, limiter.Allow("10.0.0.1"), "fourth attempt in the window is blocked")
	assert.True(t, limiter.Allow("10.0.0.2"), "other addresses have their own bucket")
}

func TestLoginRateLimiterWindowReset(t *testing.T) {
	limiter := newLoginRateLimiter(1, 10*time.Millisecond)

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))

	time.Sleep(20 * time.Millisecond)
	assert.True(t, limiter.Allow("10.0.0.1"), "new window starts a fresh count")
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Empty(t, bearerToken(""))
	assert.Empty(t, bearerToken("Bearer "))
	assert.Empty(t, bearerToken("Basic abc"))
}
