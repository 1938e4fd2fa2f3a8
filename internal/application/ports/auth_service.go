package ports

import (
	"context"

	"pdf-collab-api/internal/domain/user"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*user.User, error)
	Login(ctx context.Context, email, password string) (string, *user.User, error)
}
