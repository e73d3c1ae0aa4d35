package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/gym-membership/internal/lib/expiry"
	"github.com/magabrotheeeer/gym-membership/internal/models"
)

// CreatePayment добавляет запись в журнал оплат и возвращает её ID.
// Запись после создания не изменяется.
func (s *Storage) CreatePayment(ctx context.Context, p models.Payment) (int64, error) {
	const op = "storage.CreatePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (client_id, membership_id, amount, status, purchased_at, expires_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int64
	if err := s.DB.QueryRowContext(ctx, query,
		p.ClientID, p.MembershipID, p.Amount, string(p.StoredStatus), p.PurchasedAt, p.ExpiresAt,
	).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, translate(err))
	}
	return newID, nil
}

// ListPaymentsByClient возвращает оплаты клиента вместе с названием
// и длительностью плана.
func (s *Storage) ListPaymentsByClient(ctx context.Context, clientID int64) ([]models.PaymentRow, error) {
	const op = "storage.ListPaymentsByClient"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT p.id, p.client_id, p.membership_id, p.amount, p.status,
			      p.purchased_at, p.expires_at, m.name, m.duration_days
			  FROM payments p
			  JOIN memberships m ON p.membership_id = m.id
			  WHERE p.client_id = $1
			  ORDER BY p.purchased_at DESC, p.id DESC`
	rows, err := s.DB.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.PaymentRow, 0)
	for rows.Next() {
		var r models.PaymentRow
		var status string
		if err := rows.Scan(&r.ID, &r.ClientID, &r.MembershipID, &r.Amount, &status,
			&r.PurchasedAt, &r.ExpiresAt, &r.MembershipName, &r.DurationDays); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		r.StoredStatus = expiry.Status(status)
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
