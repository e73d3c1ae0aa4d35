package auth_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gym-membership/internal/lib/jwt"
	"github.com/magabrotheeeer/gym-membership/internal/lib/password"
	"github.com/magabrotheeeer/gym-membership/internal/models"
	"github.com/magabrotheeeer/gym-membership/internal/services/auth"
	"github.com/magabrotheeeer/gym-membership/internal/storage"
)

// Мок для ClientRepository
type ClientRepoMock struct {
	mock.Mock
}

func (m *ClientRepoMock) CreateClient(ctx context.Context, client models.Client) (int64, error) {
	args := m.Called(ctx, client)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ClientRepoMock) FindClientByIdentifier(ctx context.Context, identifier string) (*models.Client, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

const testSecret = "test_secret"

func newService(repo *ClientRepoMock) *auth.AuthService {
	return auth.NewAuthService(repo, jwt.NewJWTMaker(testSecret, 2*time.Hour), newNoopLogger())
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name       string
		fullName   string
		nationalID string
		email      string
		password   string
		setupMocks func(r *ClientRepoMock)
		wantID     int64
		wantErr    error
	}{
		{
			name:       "successful registration",
			fullName:   "Ana Pérez",
			nationalID: "0102030405",
			email:      "ana@example.com",
			password:   "password123",
			setupMocks: func(r *ClientRepoMock) {
				r.On("CreateClient", mock.Anything, mock.MatchedBy(func(c models.Client) bool {
					return c.Name == "Ana Pérez" &&
						c.NationalID == "0102030405" &&
						c.Email == "ana@example.com" &&
						c.PasswordHash != "password123" &&
						password.CompareHash(c.PasswordHash, "password123") == nil
				})).Return(int64(11), nil).Once()
			},
			wantID: 11,
		},
		{
			name:       "email stored in lower case",
			fullName:   "Ana Pérez",
			nationalID: "0102030405",
			email:      " Ana@Example.COM ",
			password:   "password123",
			setupMocks: func(r *ClientRepoMock) {
				r.On("CreateClient", mock.Anything, mock.MatchedBy(func(c models.Client) bool {
					return c.Email == "ana@example.com"
				})).Return(int64(12), nil).Once()
			},
			wantID: 12,
		},
		{
			name:       "duplicate email or national id",
			fullName:   "Ana Pérez",
			nationalID: "0102030405",
			email:      "ana@example.com",
			password:   "password123",
			setupMocks: func(r *ClientRepoMock) {
				r.On("CreateClient", mock.Anything, mock.Anything).
					Return(int64(0), fmt.Errorf("storage.CreateClient: %w", storage.ErrDuplicateKey)).Once()
			},
			wantErr: auth.ErrAlreadyRegistered,
		},
		{
			name:       "repository error",
			fullName:   "Ana Pérez",
			nationalID: "0102030405",
			email:      "ana@example.com",
			password:   "password123",
			setupMocks: func(r *ClientRepoMock) {
				r.On("CreateClient", mock.Anything, mock.Anything).Return(int64(0), errors.New("db error")).Once()
			},
			wantErr: errors.New("db error"),
		},
		{
			name:       "missing email",
			fullName:   "Ana Pérez",
			nationalID: "0102030405",
			password:   "password123",
			setupMocks: func(*ClientRepoMock) {},
			wantErr:    auth.ErrMissingFields,
		},
		{
			name:       "blank name",
			fullName:   "   ",
			nationalID: "0102030405",
			email:      "ana@example.com",
			password:   "password123",
			setupMocks: func(*ClientRepoMock) {},
			wantErr:    auth.ErrMissingFields,
		},
		{
			name:       "missing password",
			fullName:   "Ana Pérez",
			nationalID: "0102030405",
			email:      "ana@example.com",
			setupMocks: func(*ClientRepoMock) {},
			wantErr:    auth.ErrMissingFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(ClientRepoMock)
			tt.setupMocks(repo)

			id, err := newService(repo).Register(context.Background(), tt.fullName, tt.nationalID, tt.email, tt.password)
			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, auth.ErrMissingFields) || errors.Is(tt.wantErr, auth.ErrAlreadyRegistered) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.Contains(t, err.Error(), tt.wantErr.Error())
					assert.NotErrorIs(t, err, auth.ErrAlreadyRegistered)
				}
				assert.Zero(t, id)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := password.GetHash("password123")
	require.NoError(t, err)
	client := &models.Client{ID: 5, Email: "ana@example.com", NationalID: "0102030405", PasswordHash: hash}

	tests := []struct {
		name       string
		identifier string
		password   string
		setupMocks func(r *ClientRepoMock)
		wantErr    error
	}{
		{
			name:       "login by email",
			identifier: "ana@example.com",
			password:   "password123",
			setupMocks: func(r *ClientRepoMock) {
				r.On("FindClientByIdentifier", mock.Anything, "ana@example.com").Return(client, nil).Once()
			},
		},
		{
			name:       "login by email in other case",
			identifier: "ANA@Example.com",
			password:   "password123",
			setupMocks: func(r *ClientRepoMock) {
				r.On("FindClientByIdentifier", mock.Anything, "ana@example.com").Return(client, nil).Once()
			},
		},
		{
			name:       "login by national id",
			identifier: "0102030405",
			password:   "password123",
			setupMocks: func(r *ClientRepoMock) {
				r.On("FindClientByIdentifier", mock.Anything, "0102030405").Return(client, nil).Once()
			},
		},
		{
			name:       "unknown identifier",
			identifier: "ghost@example.com",
			password:   "password123",
			setupMocks: func(r *ClientRepoMock) {
				r.On("FindClientByIdentifier", mock.Anything, "ghost@example.com").
					Return(nil, fmt.Errorf("storage.FindClientByIdentifier: %w", storage.ErrNotFound)).Once()
			},
			wantErr: auth.ErrClientNotFound,
		},
		{
			name:       "wrong password",
			identifier: "ana@example.com",
			password:   "wrong-password",
			setupMocks: func(r *ClientRepoMock) {
				r.On("FindClientByIdentifier", mock.Anything, "ana@example.com").Return(client, nil).Once()
			},
			wantErr: auth.ErrInvalidPassword,
		},
		{
			name:       "missing password",
			identifier: "ana@example.com",
			setupMocks: func(*ClientRepoMock) {},
			wantErr:    auth.ErrMissingFields,
		},
		{
			name:       "missing identifier",
			password:   "password123",
			setupMocks: func(*ClientRepoMock) {},
			wantErr:    auth.ErrMissingFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(ClientRepoMock)
			tt.setupMocks(repo)
			svc := newService(repo)

			token, err := svc.Login(context.Background(), tt.identifier, tt.password)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				require.NotEmpty(t, token)

				clientID, err := svc.ValidateToken(context.Background(), token)
				require.NoError(t, err)
				assert.Equal(t, client.ID, clientID)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login_StoreFailure(t *testing.T) {
	repo := new(ClientRepoMock)
	repo.On("FindClientByIdentifier", mock.Anything, "ana@example.com").Return(nil, errors.New("connection refused")).Once()

	_, err := newService(repo).Login(context.Background(), "ana@example.com", "password123")
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrClientNotFound)
	assert.NotErrorIs(t, err, auth.ErrInvalidPassword)
}

func TestAuthService_ValidateToken(t *testing.T) {
	svc := newService(new(ClientRepoMock))

	otherSigner := jwt.NewJWTMaker("another_secret", 2*time.Hour)
	foreign, err := otherSigner.GenerateToken(5)
	require.NoError(t, err)

	expired, err := jwt.NewJWTMaker(testSecret, -time.Minute).GenerateToken(5)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":        "garbage",
		"empty":          "",
		"foreign secret": foreign,
		"expired":        expired,
	} {
		t.Run(name, func(t *testing.T) {
			clientID, err := svc.ValidateToken(context.Background(), token)
			require.Error(t, err)
			assert.ErrorIs(t, err, auth.ErrInvalidToken)
			assert.Zero(t, clientID)
		})
	}
}
