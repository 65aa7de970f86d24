package middlewares

import (
	"net"
	"net/http"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/sonuudigital/storefront/internal/logs"
	"github.com/sonuudigital/storefront/internal/web"
	"golang.org/x/time/rate"
)

const (
	UnknownClient = iota
	AuthenticatedClient
)

type RateLimitConfig struct {
	Rate  rate.Limit
	Burst int
}

// RateLimiterMiddleware throttles requests per client against Redis. Clients
// carrying admin claims get the authenticated budget; everyone else is keyed
// by IP address. Disabled entirely when no Redis is configured.
type RateLimiterMiddleware struct {
	logger     logs.Logger
	rateLimits map[int]RateLimitConfig
	limiter    *redis_rate.Limiter
	isEnabled  bool
}

func NewRateLimiterMiddleware(logger logs.Logger, rateLimits map[int]RateLimitConfig, limiter *redis_rate.Limiter, isEnabled bool) *RateLimiterMiddleware {
	return &RateLimiterMiddleware{
		logger:     logger,
		rateLimits: rateLimits,
		limiter:    limiter,
		isEnabled:  isEnabled,
	}
}

func (rl *RateLimiterMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.isEnabled {
			next.ServeHTTP(w, r)
			return
		}

		identifier, isAuthenticated, err := rl.getClientIdentifier(r)
		if err != nil {
			rl.logger.Error("could not parse IP from remote address", "error", err)
			web.RespondWithError(w, rl.logger, http.StatusInternalServerError, "Could not process request.")
			return
		}

		rlConfig := rl.getRateLimitConfig(isAuthenticated)
		limit := redis_rate.Limit{
			Rate:   int(rlConfig.Rate),
			Period: time.Second,
			Burst:  rlConfig.Burst,
		}

		res, err := rl.limiter.Allow(r.Context(), identifier, limit)
		if err != nil {
			rl.logger.Error("could not check rate limit", "error", err)
			web.RespondWithError(w, rl.logger, http.StatusInternalServerError, "Could not process request.")
			return
		}

		if res.Allowed == 0 {
			web.RespondWithError(w, rl.logger, http.StatusTooManyRequests, "You have exceeded the request limit.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiterMiddleware) getRateLimitConfig(isAuthenticated bool) RateLimitConfig {
	if isAuthenticated {
		return rl.rateLimits[AuthenticatedClient]
	}
	return rl.rateLimits[UnknownClient]
}

func (rl *RateLimiterMiddleware) getClientIdentifier(r *http.Request) (string, bool, error) {
	claims, ok := GetUserClaims(r)
	if ok {
		return claims.Subject, true, nil
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "", false, err
	}
	return ip, false, nil
}
