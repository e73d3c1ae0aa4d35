package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/gym-membership/internal/models"
)

// CreateClient сохраняет нового клиента и возвращает его ID.
// При совпадении email (без учёта регистра) или номера документа
// возвращает storage.ErrDuplicateKey.
func (s *Storage) CreateClient(ctx context.Context, client models.Client) (int64, error) {
	const op = "storage.CreateClient"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO clients (name, national_id, email, password_hash)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int64
	if err := s.DB.QueryRowContext(ctx, query,
		client.Name, client.NationalID, client.Email, client.PasswordHash).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, translate(err))
	}
	return newID, nil
}

// FindClientByIdentifier ищет клиента по email (без учёта регистра)
// или по номеру документа.
func (s *Storage) FindClientByIdentifier(ctx context.Context, identifier string) (*models.Client, error) {
	const op = "storage.FindClientByIdentifier"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, national_id, email, password_hash, created_at
			  FROM clients
			  WHERE lower(email) = lower($1) OR national_id = $1
			  ORDER BY id
			  LIMIT 1`
	c := &models.Client{}
	if err := s.DB.QueryRowContext(ctx, query, identifier).Scan(
		&c.ID, &c.Name, &c.NationalID, &c.Email, &c.PasswordHash, &c.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}
	return c, nil
}
