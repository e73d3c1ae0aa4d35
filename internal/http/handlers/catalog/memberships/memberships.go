// Package memberships отдаёт список тарифных планов.
package memberships

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-membership/internal/http/response"
	"github.com/magabrotheeeer/gym-membership/internal/lib/sl"
	"github.com/magabrotheeeer/gym-membership/internal/models"
)

// Service описывает чтение каталога планов.
type Service interface {
	Memberships(ctx context.Context) ([]models.Membership, error)
}

// Handler обрабатывает GET /membresias.
type Handler struct {
	log     *slog.Logger
	catalog Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, catalog Service) *Handler {
	return &Handler{
		log:     log,
		catalog: catalog,
	}
}

// ServeHTTP godoc
// @Summary Список абонементов
// @Tags Catalog
// @Produce  json
// @Success 200 {array} models.Membership
// @Failure 500 {object} response.Message "Внутренняя ошибка"
// @Router /membresias [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.memberships"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	list, err := h.catalog.Memberships(r.Context())
	if err != nil {
		log.Error("failed to list memberships", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list memberships"))
		return
	}
	if list == nil {
		list = []models.Membership{}
	}

	render.JSON(w, r, list)
}
