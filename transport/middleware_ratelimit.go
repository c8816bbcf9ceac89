package transport

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/olekhymko/contacts-api/cmd/config"
	"github.com/olekhymko/contacts-api/constant"
	redisrepo "github.com/olekhymko/contacts-api/repository/redis"
	"github.com/olekhymko/contacts-api/utils/errors"
	"github.com/olekhymko/contacts-api/utils/logger"
	"go.uber.org/zap"
)

// RateLimitMiddleware enforces a fixed-window per-client limit backed by
// Redis. When Redis is unreachable the request is allowed through: the
// limiter protects against abuse, it is not a correctness gate.
func RateLimitMiddleware(redisRepo redisrepo.Repository, cfg config.RateLimitConfig) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			window := time.Now().Unix() / int64(cfg.Window.Seconds())
			key := fmt.Sprintf("ratelimit:%s:%d", ip, window)

			count, err := redisRepo.IncrWithTTL(r.Context(), key, cfg.Window)
			if err != nil {
				logger.Warn("rate limiter unavailable", zap.String("error", err.Error()))
				next.ServeHTTP(w, r)
				return
			}

			if count > int64(cfg.Requests) {
				logger.Info("rate limit exceeded",
					zap.String("ip", ip),
					zap.String("path", r.URL.Path),
					zap.Int64("count", count),
				)
				writeError(w, errors.SetCustomError(constant.ErrTooManyRequests))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
