package validator

import (
	"strings"

	"github.com/google/uuid"

	"pdf-collab-api/internal/interface/api/rest/dto/auth"
)

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}

// ValidateSignup only checks presence: signup must succeed for any
// combination of non-empty name/email/password on a free email.
func ValidateSignup(r auth.SignupRequest) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(r.Name) == "" {
		errs["name"] = "name is required"
	}
	if strings.TrimSpace(r.Email) == "" {
		errs["email"] = "email is required"
	}
	if strings.TrimSpace(r.Password) == "" {
		errs["password"] = "password is required"
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}

func ValidateLogin(r auth.LoginRequest) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(r.Email) == "" {
		errs["email"] = "email is required"
	}
	if strings.TrimSpace(r.Password) == "" {
		errs["password"] = "password is required"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// NormalizeEmail folds the unique key so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
