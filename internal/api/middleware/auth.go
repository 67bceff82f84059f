package middleware

import (
	"net/http"
	"strings"

	"github.com/m04kA/PFM-BookingService/internal/api/handlers"
)

const msgInvalidToken = "недействительный токен доступа"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AdminAuth проверяет Bearer токен администратора на защищенных маршрутах
func AdminAuth(adminToken string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" || token != adminToken {
				logger.Warn("%s %s - Unauthorized admin request", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
