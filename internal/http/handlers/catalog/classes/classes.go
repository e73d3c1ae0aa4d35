// Package classes отдаёт расписание групповых занятий.
package classes

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

// Service описывает чтение списка занятий.
type Service interface {
	Classes(ctx context.Context) ([]models.GymClass, error)
}

// Handler обрабатывает GET /clases.
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
// @Summary Расписание занятий
// @Tags Catalog
// @Produce  json
// @Success 200 {array} models.GymClass
// @Failure 500 {object} response.Message "Внутренняя ошибка"
// @Router /clases [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.classes"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	list, err := h.catalog.Classes(r.Context())
	if err != nil {
		log.Error("failed to list classes", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list classes"))
		return
	}
	if list == nil {
		list = []models.GymClass{}
	}

	render.JSON(w, r, list)
}
