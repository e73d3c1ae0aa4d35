// Package middlewarectx содержит HTTP middleware сервиса.
//
// JWTMiddleware проверяет токен из заголовка Authorization и кладёт
// идентификатор клиента в контекст запроса. При ошибке проверки
// возвращает HTTP 401 Unauthorized с сообщением об ошибке.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-membership/internal/http/response"
	"github.com/magabrotheeeer/gym-membership/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// ClientID ключ для идентификатора клиента (int64) в контексте.
const ClientID Key = "client_id"

const bearerPrefix = "Bearer "

// TokenVerifier проверяет токен и возвращает идентификатор клиента.
type TokenVerifier interface {
	ValidateToken(ctx context.Context, token string) (int64, error)
}

// JWTMiddleware возвращает middleware, который пропускает запрос дальше
// только с действительным токеном.
func JWTMiddleware(verifier TokenVerifier, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
			if !strings.HasPrefix(authHeader, bearerPrefix) || tokenStr == "" {
				log.Warn("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}

			clientID, err := verifier.ValidateToken(r.Context(), tokenStr)
			if err != nil {
				log.Warn("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), ClientID, clientID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClientIDFromContext достаёт идентификатор клиента, положенный JWTMiddleware.
func ClientIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ClientID).(int64)
	return id, ok && id > 0
}
