package utils

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/yungbote/genomelens-backend/internal/apperr"
	"github.com/yungbote/genomelens-backend/internal/types"
)

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateRegistration(user *types.User) error {
	if user == nil {
		return fmt.Errorf("%w: no user given", apperr.ErrInvalidArgument)
	}
	if user.Email == "" {
		return fmt.Errorf("%w: an email is required to register", apperr.ErrInvalidArgument)
	}
	if user.Password == "" {
		return fmt.Errorf("%w: a password is required to register", apperr.ErrInvalidArgument)
	}
	return nil
}

func ValidateLogin(email, password string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required to login", apperr.ErrInvalidArgument)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required to login", apperr.ErrInvalidArgument)
	}
	return nil
}

func HashPassword(user *types.User) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)
	return nil
}
