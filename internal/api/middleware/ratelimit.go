package middleware

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// RateLimitPerIP applies a token-bucket limit per client IP. Used on the
// login route to slow down credential stuffing; bcrypt makes each attempt
// expensive, this keeps attackers from running many in parallel.
func RateLimitPerIP(rps rate.Limit, burst int) echo.MiddlewareFunc {
	var (
		mu      sync.Mutex
		buckets = make(map[string]*rate.Limiter)
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			mu.Lock()
			lim, ok := buckets[ip]
			if !ok {
				lim = rate.NewLimiter(rps, burst)
				buckets[ip] = lim
			}
			mu.Unlock()

			if !lim.Allow() {
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}
			return next(c)
		}
	}
}
