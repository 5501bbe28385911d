package middleware

import (
	"context"
	"net/http"
	"regexp"

	"github.com/jamroom/booking-service/internal/api/handlers"
)

// HeaderContactPhone заголовок с номером телефона клиента.
// Заголовок проставляет API-гейтвей после прохождения OTP, сам сервис
// поток подтверждения не реализует
const HeaderContactPhone = "X-Contact-Phone"

type contextKey string

const contactPhoneKey contextKey = "contactPhone"

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth проверяет наличие и формат номера телефона в заголовке
// и кладёт его в контекст запроса
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			phone := r.Header.Get(HeaderContactPhone)
			if phone == "" {
				logger.Warn("Auth - missing %s header: %s %s", HeaderContactPhone, r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, "отсутствует номер телефона")
				return
			}

			if !phonePattern.MatchString(phone) {
				logger.Warn("Auth - malformed %s header: %s %s", HeaderContactPhone, r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, "некорректный номер телефона")
				return
			}

			ctx := context.WithValue(r.Context(), contactPhoneKey, phone)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetContactPhone возвращает номер телефона из контекста запроса
func GetContactPhone(ctx context.Context) (string, bool) {
	phone, ok := ctx.Value(contactPhoneKey).(string)
	return phone, ok
}
