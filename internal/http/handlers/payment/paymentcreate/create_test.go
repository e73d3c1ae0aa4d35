package paymentcreate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gym-membership/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-membership/internal/services/payment"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Purchase(ctx context.Context, clientID, membershipID int64, amount float64) (int64, error) {
	args := m.Called(ctx, clientID, membershipID, amount)
	return args.Get(0).(int64), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestPaymentCreateHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    any
		clientID       int64
		setupMocks     func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "purchase monthly plan",
			requestBody: Request{PlanID: 3, Amount: 50},
			clientID:    7,
			setupMocks: func(s *MockService) {
				s.On("Purchase", mock.Anything, int64(7), int64(3), 50.0).Return(int64(1), nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"membership purchased successfully"}`,
		},
		{
			name:           "no client in context",
			requestBody:    Request{PlanID: 3, Amount: 50},
			setupMocks:     func(*MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"message":"unauthorized"}`,
		},
		{
			name:           "invalid json",
			requestBody:    "{invalid",
			clientID:       7,
			setupMocks:     func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"invalid request body"}`,
		},
		{
			name:           "missing amount",
			requestBody:    map[string]any{"planId": 3},
			clientID:       7,
			setupMocks:     func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"field Amount is a required field"}`,
		},
		{
			name:        "negative amount",
			requestBody: Request{PlanID: 3, Amount: -1},
			clientID:    7,
			setupMocks: func(s *MockService) {
				s.On("Purchase", mock.Anything, int64(7), int64(3), -1.0).
					Return(int64(0), fmt.Errorf("services.payment.Purchase: %w", payment.ErrMissingFields)).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"missing fields"}`,
		},
		{
			name:        "plan not found",
			requestBody: Request{PlanID: 404, Amount: 50},
			clientID:    7,
			setupMocks: func(s *MockService) {
				s.On("Purchase", mock.Anything, int64(7), int64(404), 50.0).
					Return(int64(0), fmt.Errorf("services.payment.Purchase: %w", payment.ErrPlanNotFound)).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"message":"membership not found"}`,
		},
		{
			name:        "store failure",
			requestBody: Request{PlanID: 3, Amount: 50},
			clientID:    7,
			setupMocks: func(s *MockService) {
				s.On("Purchase", mock.Anything, int64(7), int64(3), 50.0).
					Return(int64(0), errors.New("db down")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"message":"failed to register payment"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMocks(svc)
			handler := New(newNoopLogger(), svc)

			var body []byte
			if s, ok := tt.requestBody.(string); ok {
				body = []byte(s)
			} else {
				var err error
				body, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/mis-pagos", bytes.NewReader(body))
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			if tt.clientID != 0 {
				ctx = context.WithValue(ctx, middlewarectx.ClientID, tt.clientID)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req.WithContext(ctx))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.JSONEq(t, tt.expectedBody, rec.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
