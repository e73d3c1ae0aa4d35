// Package auth содержит регистрацию клиентов, вход и проверку сессионных токенов.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/magabrotheeeer/gym-membership/internal/lib/jwt"
	"github.com/magabrotheeeer/gym-membership/internal/lib/password"
	"github.com/magabrotheeeer/gym-membership/internal/models"
	"github.com/magabrotheeeer/gym-membership/internal/storage"
)

var (
	// ErrMissingFields не заполнено обязательное поле.
	ErrMissingFields = errors.New("missing fields")
	// ErrAlreadyRegistered email или номер документа уже заняты.
	ErrAlreadyRegistered = errors.New("national id or email already registered")
	// ErrClientNotFound клиент с таким идентификатором не найден.
	ErrClientNotFound = errors.New("client not found")
	// ErrInvalidPassword пароль не совпадает с сохранённым хешем.
	ErrInvalidPassword = errors.New("incorrect password")
	// ErrInvalidToken токен не прошёл проверку подписи или срока.
	ErrInvalidToken = errors.New("invalid token")
)

var clientsRegistered = promauto.NewCounter(prometheus.CounterOpts{
	Name: "gym_clients_registered_total",
	Help: "Number of successfully registered clients.",
})

// ClientRepository описывает хранилище клиентов.
type ClientRepository interface {
	// CreateClient сохраняет клиента, storage.ErrDuplicateKey при конфликте.
	CreateClient(ctx context.Context, client models.Client) (int64, error)
	// FindClientByIdentifier ищет по email или номеру документа, storage.ErrNotFound если нет.
	FindClientByIdentifier(ctx context.Context, identifier string) (*models.Client, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	clients  ClientRepository
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(clients ClientRepository, jwtMaker jwt.Maker, log *slog.Logger) *AuthService {
	return &AuthService{
		clients:  clients,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// Register создает клиента; пароль сохраняется только в виде bcrypt-хеша.
func (s *AuthService) Register(ctx context.Context, name, nationalID, email, rawPassword string) (int64, error) {
	const op = "services.auth.Register"
	name, nationalID, email = strings.TrimSpace(name), strings.TrimSpace(nationalID), normalizeEmail(email)
	if name == "" || nationalID == "" || email == "" || rawPassword == "" {
		return 0, fmt.Errorf("%s: %w", op, ErrMissingFields)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.clients.CreateClient(ctx, models.Client{
		Name:         name,
		NationalID:   nationalID,
		Email:        email,
		PasswordHash: hashed,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return 0, fmt.Errorf("%s: %w", op, ErrAlreadyRegistered)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	clientsRegistered.Inc()
	s.log.Info("client registered", slog.Int64("client_id", id))
	return id, nil
}

// normalizeEmail приводит email к нижнему регистру: адреса,
// отличающиеся только регистром, принадлежат одному клиенту.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login проверяет пароль клиента и выпускает токен.
// identifier совпадает либо с email, либо с номером документа.
func (s *AuthService) Login(ctx context.Context, identifier, rawPassword string) (string, error) {
	const op = "services.auth.Login"
	identifier = strings.TrimSpace(identifier)
	if strings.Contains(identifier, "@") {
		identifier = normalizeEmail(identifier)
	}
	if identifier == "" || rawPassword == "" {
		return "", fmt.Errorf("%s: %w", op, ErrMissingFields)
	}

	client, err := s.clients.FindClientByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", fmt.Errorf("%s: %w", op, ErrClientNotFound)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := password.CompareHash(client.PasswordHash, rawPassword); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return "", fmt.Errorf("%s: %w", op, ErrInvalidPassword)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.GenerateToken(client.ID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// ValidateToken проверяет токен и возвращает идентификатор клиента.
// Чистое вычисление: хранилище не опрашивается.
func (s *AuthService) ValidateToken(_ context.Context, token string) (int64, error) {
	const op = "services.auth.ValidateToken"
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %w", op, ErrInvalidToken, err)
	}
	return claims.ClientID, nil
}
