package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/api/handlers"
)

// InternalAuth защищает внутренние эндпоинты (webhook платежного шлюза)
// статическим токеном из конфигурации, передаваемым в X-Internal-Token.
func InternalAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("X-Internal-Token")
			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				handlers.RespondUnauthorized(w, "некорректный внутренний токен")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
