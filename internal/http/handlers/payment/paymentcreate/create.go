// Package paymentcreate обрабатывает покупку абонемента клиентом.
package paymentcreate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gym-membership/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-membership/internal/http/response"
	"github.com/magabrotheeeer/gym-membership/internal/lib/sl"
	"github.com/magabrotheeeer/gym-membership/internal/services/payment"
)

// Request запрос на покупку плана.
type Request struct {
	PlanID int64   `json:"planId" validate:"required"`
	Amount float64 `json:"amount" validate:"required"`
}

// Service определяет интерфейс покупки абонемента.
type Service interface {
	Purchase(ctx context.Context, clientID, membershipID int64, amount float64) (int64, error)
}

// Handler обрабатывает POST /mis-pagos.
type Handler struct {
	log            *slog.Logger // Логгер для записи информации и ошибок
	paymentService Service
	validate       *validator.Validate // Валидатор структуры входящих данных
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, ps Service) *Handler {
	return &Handler{
		log:            log,
		paymentService: ps,
		validate:       validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Покупка абонемента
// @Description Регистрирует оплату плана текущим клиентом
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body Request true "План и сумма"
// @Success 200 {object} response.Message "Оплата зарегистрирована"
// @Failure 400 {object} response.Message "Некорректные данные"
// @Failure 401 {object} response.Message "Нет авторизации"
// @Failure 404 {object} response.Message "План не найден"
// @Failure 500 {object} response.Message "Внутренняя ошибка"
// @Router /mis-pagos [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.create"
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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id, err := h.paymentService.Purchase(r.Context(), clientID, req.PlanID, req.Amount)
	switch {
	case errors.Is(err, payment.ErrMissingFields):
		log.Warn("purchase rejected", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing fields"))
		return
	case errors.Is(err, payment.ErrPlanNotFound):
		log.Warn("purchase rejected", sl.Err(err))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("membership not found"))
		return
	case err != nil:
		log.Error("failed to purchase membership", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register payment"))
		return
	}

	log.Info("membership purchased", slog.Int64("payment_id", id))
	render.JSON(w, r, response.OK("membership purchased successfully"))
}
