// Package register реализует HTTP-обработчик регистрации клиента.
package register

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gym-membership/internal/http/response"
	"github.com/magabrotheeeer/gym-membership/internal/lib/sl"
	"github.com/magabrotheeeer/gym-membership/internal/services/auth"
)

// Request входные данные для регистрации.
type Request struct {
	Name       string `json:"name" validate:"required"`
	NationalID string `json:"nationalId" validate:"required"`
	Email      string `json:"email" validate:"required"`
	Secret     string `json:"secret" validate:"required"`
}

// Handler обрабатывает POST /register.
type Handler struct {
	log         *slog.Logger
	authService Service
	validate    *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, authService Service) *Handler {
	return &Handler{
		log:         log,
		authService: authService,
		validate:    validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация клиента
// @Description Создаёт клиента по имени, номеру документа, email и паролю
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные клиента"
// @Success 200 {object} response.Message "Клиент зарегистрирован"
// @Failure 400 {object} response.Message "Некорректные данные или клиент уже существует"
// @Failure 429 {object} response.Message "Слишком много запросов"
// @Failure 500 {object} response.Message "Внутренняя ошибка"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
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

	id, err := h.authService.Register(r.Context(), req.Name, req.NationalID, req.Email, req.Secret)
	switch {
	case errors.Is(err, auth.ErrMissingFields):
		log.Warn("registration rejected", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing fields"))
		return
	case errors.Is(err, auth.ErrAlreadyRegistered):
		log.Warn("registration rejected", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("national id or email already registered"))
		return
	case err != nil:
		log.Error("registration failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register client"))
		return
	}

	log.Info("client registered", slog.Int64("client_id", id))
	render.JSON(w, r, response.OK("client registered successfully"))
}
