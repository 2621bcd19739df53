package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/PlayCourt-BookingService/internal/api/handlers"
)

const msgInvalidUserID = "отсутствует или некорректен заголовок X-User-ID"

type ctxKey int

const userIDKey ctxKey = iota

// Auth извлекает ID пользователя из заголовка X-User-ID и кладет его
// в контекст запроса. Аутентификацию выполняет API gateway, здесь только
// контроль того, что запрос пришел через него.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get("X-User-ID")
		if userIDStr == "" {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
