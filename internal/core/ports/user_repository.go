package ports

import (
	"context"

	"github.com/classdesk/classroom-api/internal/core/domain"
)

// UserRepository defines persistence for registered users. Lookups by
// username back both login and per-request identity resolution.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
