package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gym-membership/internal/lib/expiry"
	"github.com/magabrotheeeer/gym-membership/internal/models"
	"github.com/magabrotheeeer/gym-membership/internal/storage"
)

func TestStorage_CreateClient(t *testing.T) {
	s := setupTestDatabase(t)
	ctx := context.Background()

	firstID := createClient(t, s, "1001", "ana@example.com")
	assert.Positive(t, firstID)

	tests := []struct {
		name       string
		client     models.Client
		wantErr    error
		wantSecond bool
	}{
		{
			name:    "duplicate email",
			client:  models.Client{Name: "Other", NationalID: "2002", Email: "ana@example.com", PasswordHash: "h"},
			wantErr: storage.ErrDuplicateKey,
		},
		{
			name:    "duplicate email in other case",
			client:  models.Client{Name: "Other", NationalID: "4004", Email: "ANA@Example.com", PasswordHash: "h"},
			wantErr: storage.ErrDuplicateKey,
		},
		{
			name:    "duplicate national id",
			client:  models.Client{Name: "Other", NationalID: "1001", Email: "other@example.com", PasswordHash: "h"},
			wantErr: storage.ErrDuplicateKey,
		},
		{
			name:       "unique client",
			client:     models.Client{Name: "Luis", NationalID: "3003", Email: "luis@example.com", PasswordHash: "h"},
			wantSecond: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := s.CreateClient(ctx, tt.client)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Greater(t, id, firstID)
		})
	}
}

func TestStorage_FindClientByIdentifier(t *testing.T) {
	s := setupTestDatabase(t)
	ctx := context.Background()

	id := createClient(t, s, "1001", "ana@example.com")

	tests := []struct {
		name       string
		identifier string
		wantErr    error
	}{
		{name: "by email", identifier: "ana@example.com"},
		{name: "by email in other case", identifier: "Ana@EXAMPLE.com"},
		{name: "by national id", identifier: "1001"},
		{name: "unknown", identifier: "nobody@example.com", wantErr: storage.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := s.FindClientByIdentifier(ctx, tt.identifier)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, id, c.ID)
			assert.Equal(t, "Test Client", c.Name)
			assert.Equal(t, "$2a$10$hash", c.PasswordHash)
		})
	}
}

func TestStorage_Catalog(t *testing.T) {
	s := setupTestDatabase(t)
	ctx := context.Background()

	memberships, err := s.ListMemberships(ctx)
	require.NoError(t, err)
	require.Len(t, memberships, 5)

	monthly := membershipByName(t, s, "Monthly")
	got, err := s.GetMembership(ctx, monthly.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, got.DurationDays)
	assert.InDelta(t, 50.0, got.Price, 0.001)

	_, err = s.GetMembership(ctx, 999_999)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	classes, err := s.ListClasses(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, classes)
}

func TestStorage_Payments(t *testing.T) {
	s := setupTestDatabase(t)
	ctx := context.Background()

	clientID := createClient(t, s, "1001", "ana@example.com")
	otherID := createClient(t, s, "2002", "luis@example.com")
	monthly := membershipByName(t, s, "Monthly")

	purchasedAt := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	payment := models.Payment{
		ClientID:     clientID,
		MembershipID: monthly.ID,
		Amount:       50,
		StoredStatus: expiry.Active,
		PurchasedAt:  purchasedAt,
		ExpiresAt:    expiry.ExpiresAt(purchasedAt, monthly.DurationDays),
	}
	id, err := s.CreatePayment(ctx, payment)
	require.NoError(t, err)
	assert.Positive(t, id)

	// дубликаты активных абонементов допустимы
	_, err = s.CreatePayment(ctx, payment)
	require.NoError(t, err)

	rows, err := s.ListPaymentsByClient(ctx, clientID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Monthly", rows[0].MembershipName)
	assert.Equal(t, 30, rows[0].DurationDays)
	assert.Equal(t, expiry.Active, rows[0].StoredStatus)
	assert.True(t, purchasedAt.Equal(rows[0].PurchasedAt))
	assert.True(t, purchasedAt.Add(30*24*time.Hour).Equal(rows[0].ExpiresAt))

	empty, err := s.ListPaymentsByClient(ctx, otherID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCheckDatabaseReady(t *testing.T) {
	s := setupTestDatabase(t)
	require.NoError(t, CheckDatabaseReady(context.Background(), s))
	require.NoError(t, s.Ping(context.Background()))
}
