package models

import (
	"time"

	"github.com/magabrotheeeer/gym-membership/internal/lib/expiry"
)

// Payment запись журнала покупок абонементов в том виде, в котором она хранится.
// StoredStatus записывается при покупке и при чтении не используется.
type Payment struct {
	ID           int64
	ClientID     int64
	MembershipID int64
	Amount       float64
	StoredStatus expiry.Status
	PurchasedAt  time.Time
	ExpiresAt    time.Time
}

// PaymentRow строка выборки оплат клиента вместе с данными плана.
type PaymentRow struct {
	Payment
	MembershipName string
	DurationDays   int
}

// PaymentView проекция записи об оплате с вычисленным статусом.
type PaymentView struct {
	ID             int64         `json:"id"`
	MembershipID   int64         `json:"membership_id"`
	MembershipName string        `json:"membership_name"`
	DurationDays   int           `json:"duration_days"`
	Amount         float64       `json:"amount"`
	PurchasedAt    time.Time     `json:"purchased_at"`
	ExpiresAt      time.Time     `json:"expires_at"`
	Status         expiry.Status `json:"status"`
}
