package user

import (
	domain "pdf-collab-api/internal/domain/user"
)

func fromDBModel(model *User) *domain.User {
	var u = &domain.User{
		UUID:         model.UUID,
		Name:         model.Name,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,

		CreatedAt: model.CreatedAt,
	}

	return u
}
