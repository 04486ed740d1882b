package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/UkralStul/comment-engagement-service/internal/httputil"
)

// UserHeader - заголовок, в котором шлюз передаёт ID уже проверенного пользователя.
const UserHeader = "X-User-ID"

// Identity переносит ID пользователя из заголовка в контекст запроса.
// Проверку личности выполняет внешний сервис авторизации.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := strings.TrimSpace(r.Header.Get(UserHeader)); id != "" {
			r = r.WithContext(httputil.WithUserID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// Logger пишет одну запись slog на каждый запрос.
func Logger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", chimw.GetReqID(r.Context()),
			)
		})
	}
}
