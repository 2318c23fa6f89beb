package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"guestbook/internal/ratelimit"
	"guestbook/pkg/httperror"
)

// NewRateLimitMiddleware gates comment creation per client address. The
// limiter is constructed once at startup and shared across requests.
func NewRateLimitMiddleware(limiter *ratelimit.Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		addr := c.IP()
		if addr == "" {
			addr = "unknown"
		}

		if !limiter.Allow(addr, time.Now()) {
			return rateLimited(c, limiter)
		}

		return c.Next()
	}
}

func rateLimited(c *fiber.Ctx, limiter *ratelimit.Limiter) error {
	err := httperror.TooManyRequests(fmt.Sprintf(
		"Max %d posts per %ds",
		limiter.Max(),
		int(limiter.Window().Seconds()),
	))

	return c.Status(err.Status).JSON(err)
}
