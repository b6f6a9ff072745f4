package ports

import (
	"context"

	"github.com/classdesk/classroom-api/internal/core/domain"
)

// SubmissionRepository defines persistence operations for submissions.
type SubmissionRepository interface {
	Create(ctx context.Context, s *domain.Submission) (*domain.Submission, error)
	FindByID(ctx context.Context, id string) (*domain.Submission, error)
	FindByStudent(ctx context.Context, studentID string) ([]*domain.Submission, error)
	FindByAssignment(ctx context.Context, assignmentID string) ([]*domain.Submission, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
