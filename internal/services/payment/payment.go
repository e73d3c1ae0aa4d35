// Package payment ведёт журнал покупок абонементов и вычисляет статус
// каждой записи в момент чтения.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/magabrotheeeer/gym-membership/internal/lib/expiry"
	"github.com/magabrotheeeer/gym-membership/internal/models"
	"github.com/magabrotheeeer/gym-membership/internal/storage"
)

var (
	// ErrMissingFields не указан план или сумма.
	ErrMissingFields = errors.New("missing fields")
	// ErrPlanNotFound тарифный план не существует.
	ErrPlanNotFound = errors.New("membership not found")
)

var membershipsPurchased = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "gym_memberships_purchased_total",
	Help: "Number of purchased memberships by plan.",
}, []string{"membership"})

// Repository определяет работу с журналом оплат и планами.
type Repository interface {
	GetMembership(ctx context.Context, id int64) (*models.Membership, error)
	CreatePayment(ctx context.Context, p models.Payment) (int64, error)
	ListPaymentsByClient(ctx context.Context, clientID int64) ([]models.PaymentRow, error)
}

// PaymentService реализует покупку абонемента и выдачу истории оплат.
type PaymentService struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

// New создает PaymentService с системными часами.
func New(repo Repository, log *slog.Logger) *PaymentService {
	return &PaymentService{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// WithClock подменяет источник текущего времени.
func (s *PaymentService) WithClock(now func() time.Time) *PaymentService {
	s.now = now
	return s
}

// Purchase записывает покупку плана клиентом. Срок окончания = момент покупки
// + длительность плана. Несколько активных абонементов у клиента допустимы.
func (s *PaymentService) Purchase(ctx context.Context, clientID, membershipID int64, amount float64) (int64, error) {
	const op = "services.payment.Purchase"
	if membershipID <= 0 || amount <= 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrMissingFields)
	}

	plan, err := s.repo.GetMembership(ctx, membershipID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return 0, fmt.Errorf("%s: %w", op, ErrPlanNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	purchasedAt := s.now().UTC()
	id, err := s.repo.CreatePayment(ctx, models.Payment{
		ClientID:     clientID,
		MembershipID: plan.ID,
		Amount:       amount,
		StoredStatus: expiry.Active,
		PurchasedAt:  purchasedAt,
		ExpiresAt:    expiry.ExpiresAt(purchasedAt, plan.DurationDays),
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	membershipsPurchased.WithLabelValues(plan.Name).Inc()
	s.log.Info("membership purchased",
		slog.Int64("payment_id", id),
		slog.Int64("client_id", clientID),
		slog.Int64("membership_id", plan.ID),
	)
	return id, nil
}

// List возвращает оплаты клиента со статусом, вычисленным на текущий момент.
// Сохранённый статус игнорируется и в хранилище не записывается.
func (s *PaymentService) List(ctx context.Context, clientID int64) ([]models.PaymentView, error) {
	const op = "services.payment.List"
	rows, err := s.repo.ListPaymentsByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	views := make([]models.PaymentView, 0, len(rows))
	for _, r := range rows {
		views = append(views, project(r, now))
	}
	return views, nil
}

func project(r models.PaymentRow, now time.Time) models.PaymentView {
	return models.PaymentView{
		ID:             r.ID,
		MembershipID:   r.MembershipID,
		MembershipName: r.MembershipName,
		DurationDays:   r.DurationDays,
		Amount:         r.Amount,
		PurchasedAt:    r.PurchasedAt,
		ExpiresAt:      r.ExpiresAt,
		Status:         expiry.StatusAt(r.PurchasedAt, r.DurationDays, now),
	}
}
