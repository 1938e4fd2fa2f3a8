package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	ID   uint64
	User struct {
		ID           uint64
		UUID         uuid.UUID
		Name         string
		Email        string
		PasswordHash *string

		CreatedAt time.Time
	}
	Users []*User
)
