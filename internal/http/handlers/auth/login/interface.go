package login

import (
	"context"
)

// Service описывает вход клиента.
type Service interface {
	Login(ctx context.Context, identifier, password string) (string, error)
}
