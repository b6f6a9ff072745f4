package ports

import (
	"context"

	"github.com/classdesk/classroom-api/internal/core/domain"
)

// RegisterInput carries the data needed to create an account. ClassLevel is
// required for students and ignored for teachers.
type RegisterInput struct {
	Username   string
	Password   string
	Role       domain.Role
	ClassLevel domain.ClassLevel
}

// AuthService defines account registration and credential verification.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login verifies the credential pair and issues a bearer token. Unknown
	// username and wrong password fail identically with ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
