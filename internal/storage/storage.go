// Package storage объявляет ошибки хранилища, общие для всех реализаций.
package storage

import "errors"

var (
	// ErrNotFound запись не найдена.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateKey нарушено ограничение уникальности.
	ErrDuplicateKey = errors.New("duplicate key")
)
