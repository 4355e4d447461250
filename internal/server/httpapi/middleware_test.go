package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPLimiter_PerIPBuckets(t *testing.T) {
	now := time.Unix(1000, 0)
	l := newIPLimiter(1, 2)
	l.now = func() time.Time { return now }

	assert.True(t, l.allow("1.1.1.1"))
	assert.True(t, l.allow("1.1.1.1"))
	assert.False(t, l.allow("1.1.1.1"))
	assert.True(t, l.allow("2.2.2.2"))

	now = now.Add(time.Second)
	assert.True(t, l.allow("1.1.1.1"))
}

func TestIPLimiter_DropsIdleBuckets(t *testing.T) {
	now := time.Unix(1000, 0)
	l := newIPLimiter(1, 1)
	l.now = func() time.Time { return now }

	l.allow("1.1.1.1")
	now = now.Add(time.Hour)
	l.allow("2.2.2.2")

	assert.Len(t, l.buckets, 1)
	assert.Contains(t, l.buckets, "2.2.2.2")
}

func TestLoginRateLimit_Returns429(t *testing.T) {
	srv := NewHTTPServer(Options{}, logging.Discard(), nil, func(r fiber.Router) {
		r.Get("/connect", NewLoginRateLimit(0.001, 1), func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})
	})

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/connect", nil), -1)
		require.NoError(t, err)
		codes = append(codes, resp.StatusCode)
		resp.Body.Close()
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestLoginRateLimit_DisabledWhenZero(t *testing.T) {
	srv := NewHTTPServer(Options{}, logging.Discard(), nil, func(r fiber.Router) {
		r.Get("/connect", NewLoginRateLimit(0, 0), func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})
	})

	for i := 0; i < 5; i++ {
		resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/connect", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}
}

func TestNewRequestID_Monotonic(t *testing.T) {
	a := newRequestID()
	b := newRequestID()
	assert.Len(t, a, 26)
	assert.Less(t, a, b)
}
