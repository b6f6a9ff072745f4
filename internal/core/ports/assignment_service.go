package ports

import (
	"context"
	"time"

	"github.com/classdesk/classroom-api/internal/core/domain"
)

// AssignmentInput carries the writable fields of an assignment, shared by
// create and edit.
type AssignmentInput struct {
	Title         string
	Description   string
	DueDate       time.Time
	ClassLevel    domain.ClassLevel
	AttachmentURL string
}

// AssignmentService defines use-case operations for assignments. Every
// method takes the resolved request identity and consults the authorization
// policy before touching the store.
type AssignmentService interface {
	Create(ctx context.Context, id domain.Identity, in AssignmentInput) (*domain.Assignment, error)
	// ListMine returns assignments created by the calling teacher.
	ListMine(ctx context.Context, id domain.Identity) ([]*domain.Assignment, error)
	// ListAvailable returns assignments published for the calling student's
	// own class level.
	ListAvailable(ctx context.Context, id domain.Identity) ([]*domain.Assignment, error)
	Update(ctx context.Context, id domain.Identity, assignmentID string, in AssignmentInput) (*domain.Assignment, error)
	Delete(ctx context.Context, id domain.Identity, assignmentID string) error
}
