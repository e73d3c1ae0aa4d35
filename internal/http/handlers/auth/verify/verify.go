// Package verify отвечает на GET /verify-token для клиента с действительным токеном.
package verify

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-membership/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-membership/internal/http/response"
)

// Response тело ответа для действительного токена.
type Response struct {
	Valid    bool  `json:"valid"`
	ClientID int64 `json:"clientId"`
}

// Handler обрабатывает GET /verify-token. Запрос доходит сюда только
// после JWTMiddleware.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Проверка токена
// @Description Возвращает идентификатор клиента из действующего токена
// @Tags Auth
// @Produce  json
// @Success 200 {object} Response
// @Failure 401 {object} response.Message "Токен отсутствует или недействителен"
// @Router /verify-token [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.verify"

	clientID, ok := middlewarectx.ClientIDFromContext(r.Context())
	if !ok {
		h.log.Error("client id not found in context",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	render.JSON(w, r, Response{Valid: true, ClientID: clientID})
}
