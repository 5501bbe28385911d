package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jamroom/booking-service/internal/api/handlers"
)

// KVStore интерфейс счётчика с TTL (Redis)
type KVStore interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// RateLimit ограничивает число мутирующих запросов с одного номера телефона
// за скользящее окно. Счётчики живут в Redis, так что лимит общий для всех
// инстансов сервиса
//
// При недоступности Redis запросы пропускаются: лимитер защищает от спама,
// а не от потери данных
func RateLimit(kv KVStore, limit int64, window time.Duration, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			phone, ok := GetContactPhone(r.Context())
			if !ok {
				// Auth middleware должен стоять раньше лимитера
				handlers.RespondUnauthorized(w, "отсутствует номер телефона")
				return
			}

			key := fmt.Sprintf("ratelimit:bookings:%s", phone)

			count, err := kv.Incr(r.Context(), key, window)
			if err != nil {
				logger.Error("RateLimit - failed to increment counter for %s: %v", phone, err)
				next.ServeHTTP(w, r)
				return
			}

			if count > limit {
				logger.Warn("RateLimit - limit exceeded: phone=%s, count=%d", phone, count)
				handlers.RespondError(w, http.StatusTooManyRequests, "слишком много запросов, попробуйте позже")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
