package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimiter caps requests per client IP over a sliding window. Requests
// matching one of exempt, given as "METHOD /path", are never counted.
func RateLimiter(max int, expiration time.Duration, exempt ...string) fiber.Handler {
	if max <= 0 {
		max = 60
	}
	if expiration <= 0 {
		expiration = 1 * time.Minute
	}

	skip := make(map[string]bool, len(exempt))
	for _, route := range exempt {
		skip[route] = true
	}

	return limiter.New(limiter.Config{
		Next: func(c *fiber.Ctx) bool {
			return skip[c.Method()+" "+c.Path()]
		},
		Max:        max,
		Expiration: expiration,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please slow down.",
				"code":  fiber.StatusTooManyRequests,
			})
		},
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}
