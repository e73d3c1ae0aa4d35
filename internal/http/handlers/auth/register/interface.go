package register

import (
	"context"
)

// Service описывает регистрацию клиента.
type Service interface {
	Register(ctx context.Context, name, nationalID, email, password string) (int64, error)
}
