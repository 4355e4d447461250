package httpapi

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/time/rate"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

// RequestIDFromContext returns the id assigned by the request logger.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// NewRecoveryMW turns handler panics into 500 responses.
func NewRecoveryMW() Middleware {
	return Middleware{
		Priority: 700,
		Handler:  recover.New(),
	}
}

// NewRequestLoggerMW assigns a request id, echoes it in X-Request-Id and logs
// one line per request. The level follows the status code.
func NewRequestLoggerMW(logger logging.Logger) Middleware {
	log := logger.With("module", "http")

	return Middleware{
		Priority: 900,
		Handler: func(c *fiber.Ctx) error {
			id := c.Get(common.RequestIDHeaderName)
			if id == "" {
				id = newRequestID()
			}
			c.Set(common.RequestIDHeaderName, id)

			ctx := context.WithValue(c.UserContext(), requestIDKey, id)
			c.SetUserContext(ctx)

			start := time.Now()
			err := c.Next()
			if err != nil {
				// render now so the logged status is the one sent
				if herr := c.App().ErrorHandler(c, err); herr != nil {
					_ = c.SendStatus(fiber.StatusInternalServerError)
				}
				err = nil
			}

			status := c.Response().StatusCode()
			args := []any{
				"request_id", id,
				"method", c.Method(),
				"path", c.Path(),
				"status", status,
				"duration", time.Since(start),
			}
			switch {
			case status >= 500:
				log.Error(ctx, "request processed", args...)
			case status >= 400:
				log.Warn(ctx, "request processed", args...)
			default:
				log.Info(ctx, "request processed", args...)
			}
			return err
		},
	}
}

// ipLimiter hands out one token bucket per client IP. Idle buckets are
// dropped on access once they exceed ttl.
type ipLimiter struct {
	mu      sync.Mutex
	buckets map[string]*ipBucket
	limit   rate.Limit
	burst   int
	ttl     time.Duration
	now     func() time.Time
}

type ipBucket struct {
	lim  *rate.Limiter
	seen time.Time
}

func newIPLimiter(perSecond float64, burst int) *ipLimiter {
	return &ipLimiter{
		buckets: make(map[string]*ipBucket),
		limit:   rate.Limit(perSecond),
		burst:   burst,
		ttl:     5 * time.Minute,
		now:     time.Now,
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for k, b := range l.buckets {
		if now.Sub(b.seen) > l.ttl {
			delete(l.buckets, k)
		}
	}

	b, ok := l.buckets[ip]
	if !ok {
		b = &ipBucket{lim: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[ip] = b
	}
	b.seen = now
	return b.lim.AllowN(now, 1)
}

// NewLoginRateLimit limits credential checks per client IP. A non-positive
// rate disables the limit.
func NewLoginRateLimit(perSecond float64, burst int) fiber.Handler {
	if perSecond <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	l := newIPLimiter(perSecond, burst)

	return func(c *fiber.Ctx) error {
		if !l.allow(c.IP()) {
			return c.Status(fiber.StatusTooManyRequests).JSON(errorResponse{Error: msgTooManyRequests})
		}
		return c.Next()
	}
}
