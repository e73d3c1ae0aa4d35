package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/gym-membership/internal/models"
)

// ListMemberships возвращает все тарифные планы.
func (s *Storage) ListMemberships(ctx context.Context) ([]models.Membership, error) {
	const op = "storage.ListMemberships"

	rows, err := s.DB.QueryContext(ctx, `SELECT id, name, price, duration_days
			  FROM memberships
			  ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.Membership, 0)
	for rows.Next() {
		var m models.Membership
		if err := rows.Scan(&m.ID, &m.Name, &m.Price, &m.DurationDays); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetMembership возвращает план по ID или storage.ErrNotFound.
func (s *Storage) GetMembership(ctx context.Context, id int64) (*models.Membership, error) {
	const op = "storage.GetMembership"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	m := &models.Membership{}
	err := s.DB.QueryRowContext(ctx, `SELECT id, name, price, duration_days
			  FROM memberships
			  WHERE id = $1`, id).Scan(&m.ID, &m.Name, &m.Price, &m.DurationDays)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}
	return m, nil
}

// ListClasses возвращает расписание групповых занятий.
func (s *Storage) ListClasses(ctx context.Context) ([]models.GymClass, error) {
	const op = "storage.ListClasses"

	rows, err := s.DB.QueryContext(ctx, `SELECT id, name, description, schedule
			  FROM classes
			  ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.GymClass, 0)
	for rows.Next() {
		var c models.GymClass
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Schedule); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
