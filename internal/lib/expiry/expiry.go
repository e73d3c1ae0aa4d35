// Package expiry вычисляет срок окончания абонемента и его текущий статус.
//
// Статус не хранится: он выводится при каждом чтении из даты покупки,
// длительности плана и текущего времени.
package expiry

import "time"

// Day длина одного дня абонемента.
const Day = 24 * time.Hour

// Status производный статус записи об оплате.
type Status string

const (
	// Active абонемент ещё действует.
	Active Status = "Active"
	// Inactive срок абонемента истёк.
	Inactive Status = "Inactive"
)

// ExpiresAt возвращает момент окончания абонемента: покупка + durationDays полных суток.
func ExpiresAt(purchasedAt time.Time, durationDays int) time.Time {
	return purchasedAt.Add(time.Duration(durationDays) * Day)
}

// ElapsedDays количество полных суток, прошедших с покупки.
// Если now раньше покупки (расхождение часов), возвращает 0.
func ElapsedDays(purchasedAt, now time.Time) int {
	elapsed := now.Sub(purchasedAt)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed / Day)
}

// StatusAt возвращает статус абонемента на момент now.
// Граница исключающая: ровно durationDays прошедших суток уже Inactive.
func StatusAt(purchasedAt time.Time, durationDays int, now time.Time) Status {
	if ElapsedDays(purchasedAt, now) >= durationDays {
		return Inactive
	}
	return Active
}
