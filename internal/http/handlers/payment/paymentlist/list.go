// Package paymentlist отдаёт историю покупок клиента со статусом на текущий момент.
package paymentlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-membership/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-membership/internal/http/response"
	"github.com/magabrotheeeer/gym-membership/internal/lib/sl"
	"github.com/magabrotheeeer/gym-membership/internal/models"
)

// Service определяет чтение истории оплат.
type Service interface {
	List(ctx context.Context, clientID int64) ([]models.PaymentView, error)
}

// Handler обрабатывает GET /mis-pagos.
type Handler struct {
	log            *slog.Logger
	paymentService Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, ps Service) *Handler {
	return &Handler{
		log:            log,
		paymentService: ps,
	}
}

// ServeHTTP godoc
// @Summary История оплат
// @Description Оплаты текущего клиента со статусом, вычисленным на момент запроса
// @Tags Payments
// @Produce  json
// @Success 200 {array} models.PaymentView
// @Failure 401 {object} response.Message "Нет авторизации"
// @Failure 500 {object} response.Message "Внутренняя ошибка"
// @Router /mis-pagos [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	clientID, ok := middlewarectx.ClientIDFromContext(r.Context())
	if !ok {
		log.Error("client id not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	payments, err := h.paymentService.List(r.Context(), clientID)
	if err != nil {
		log.Error("failed to list payments", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list payments"))
		return
	}
	if payments == nil {
		payments = []models.PaymentView{}
	}

	log.Debug("list payments", slog.Int("count", len(payments)))
	render.JSON(w, r, payments)
}
