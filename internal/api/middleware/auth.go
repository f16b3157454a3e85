// Package middleware содержит HTTP middleware: аутентификация по заголовкам
// и сбор метрик запросов. Проверку личности выполняет внешний gateway,
// сервис доверяет заголовку X-User-ID.
package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/api/handlers"
)

type userIDCtxKey struct{}

// Auth извлекает ID пользователя из заголовка X-User-ID и кладет его в context.
// Запросы без корректного заголовка отклоняются с 401.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get("X-User-ID")
		if userIDStr == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDCtxKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth кладет ID пользователя в context, если заголовок задан,
// но не требует его. Используется на публичных эндпоинтах (просмотр
// доступности возможен анонимно).
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userIDStr := r.Header.Get("X-User-ID"); userIDStr != "" {
			if userID, err := strconv.ParseInt(userIDStr, 10, 64); err == nil && userID > 0 {
				ctx := context.WithValue(r.Context(), userIDCtxKey{}, userID)
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID возвращает ID пользователя из context
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDCtxKey{}).(int64)
	return userID, ok
}
