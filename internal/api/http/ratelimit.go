package http

import (
	"github.com/go-redis/redis_rate/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	apperrors "github.com/auroranet/portal-service/pkg/util"
)

// LoginRateLimiter throttles credential attempts per client IP using a Redis
// backed sliding window. A nil client disables the limiter.
func LoginRateLimiter(client *redis.Client, perMinute int) fiber.Handler {
	if client == nil || perMinute <= 0 {
		return nil
	}
	limiter := redis_rate.NewLimiter(client)

	return func(c *fiber.Ctx) error {
		res, err := limiter.Allow(c.UserContext(), "login:"+c.IP(), redis_rate.PerMinute(perMinute))
		if err != nil {
			// The limiter must not take logins down with Redis.
			return c.Next()
		}
		if res.Allowed == 0 {
			return apperrors.NewDomainError("RATE_LIMITED", "Too many attempts, try again later", fiber.StatusTooManyRequests)
		}
		return c.Next()
	}
}
