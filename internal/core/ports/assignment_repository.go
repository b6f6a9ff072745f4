package ports

import (
	"context"

	"github.com/classdesk/classroom-api/internal/core/domain"
)

// AssignmentRepository defines persistence operations for assignments.
// Ownership scoping (createdBy) and class-level scoping are query-side
// concerns here; authorization decisions stay in the service layer.
type AssignmentRepository interface {
	Create(ctx context.Context, a *domain.Assignment) (*domain.Assignment, error)
	FindByID(ctx context.Context, id string) (*domain.Assignment, error)
	FindByCreatedBy(ctx context.Context, teacherID string) ([]*domain.Assignment, error)
	FindByClassLevel(ctx context.Context, level domain.ClassLevel) ([]*domain.Assignment, error)
	Update(ctx context.Context, a *domain.Assignment) error
	Delete(ctx context.Context, id string) error
}
