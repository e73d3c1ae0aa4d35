// Package models содержит доменные структуры: клиент, абонементы,
// занятия и записи об оплатах.
package models

import "time"

// Client зарегистрированный клиент зала.
type Client struct {
	ID           int64     // Идентификатор клиента
	Name         string    // Имя
	NationalID   string    // Номер документа (уникальный)
	Email        string    // Электронная почта (уникальная)
	PasswordHash string    // bcrypt-хеш пароля
	CreatedAt    time.Time // Дата регистрации
}
