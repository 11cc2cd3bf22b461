package ratelimit

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllow_BlocksAfterMaxAttempts(t *testing.T) {
	rl := NewLoginRateLimiter(3, time.Minute)
	defer rl.Close()

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("1.2.3.4"), "attempt %d should be allowed", i+1)
	}
	assert.False(t, rl.Allow("1.2.3.4"))

	// Başka IP etkilenmez
	assert.True(t, rl.Allow("5.6.7.8"))
}

func TestAllow_WindowExpires(t *testing.T) {
	rl := NewLoginRateLimiter(2, 50*time.Millisecond)
	defer rl.Close()

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))

	time.Sleep(60 * time.Millisecond)
	assert.True(t, rl.Allow("1.2.3.4"))
}

func TestReset_ClearsCounter(t *testing.T) {
	rl := NewLoginRateLimiter(2, time.Minute)
	defer rl.Close()

	rl.Allow("1.2.3.4")
	rl.Allow("1.2.3.4")
	assert.False(t, rl.Allow("1.2.3.4"))

	rl.Reset("1.2.3.4")
	assert.True(t, rl.Allow("1.2.3.4"))
}

func TestRetryAfterSeconds(t *testing.T) {
	rl := NewLoginRateLimiter(1, time.Minute)
	defer rl.Close()

	assert.Equal(t, 0, rl.RetryAfterSeconds("1.2.3.4"))

	rl.Allow("1.2.3.4")
	got := rl.RetryAfterSeconds("1.2.3.4")
	assert.Greater(t, got, 0)
	assert.LessOrEqual(t, got, 61)
}

func TestExtractIP(t *testing.T) {
	newReq := func(remoteAddr string, headers map[string]string) *http.Request {
		req, err := http.NewRequest(http.MethodPost, "/api/auth/login", nil)
		require.NoError(t, err)
		req.RemoteAddr = remoteAddr
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		return req
	}

	// X-Forwarded-For'un İLK IP'si gerçek client'tır
	req := newReq("10.0.0.1:1234", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"})
	assert.Equal(t, "203.0.113.7", ExtractIP(req))

	req = newReq("10.0.0.1:1234", map[string]string{"X-Real-IP": "203.0.113.9"})
	assert.Equal(t, "203.0.113.9", ExtractIP(req))

	req = newReq("203.0.113.5:4567", nil)
	assert.Equal(t, "203.0.113.5", ExtractIP(req))
}

func TestFormatRetryMessage(t *testing.T) {
	assert.Equal(t, "45 second(s)", FormatRetryMessage(45))
	assert.Equal(t, "2 minute(s)", FormatRetryMessage(120))
}

func TestClose_Idempotent(t *testing.T) {
	rl := NewLoginRateLimiter(3, time.Minute)

	assert.NotPanics(t, func() {
		rl.Close()
		rl.Close()
	})
}
