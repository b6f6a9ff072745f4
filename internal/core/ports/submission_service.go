package ports

import (
	"context"

	"github.com/classdesk/classroom-api/internal/core/domain"
)

// SubmitInput carries a student's answer to an assignment.
type SubmitInput struct {
	AssignmentID  string
	Text          string
	AttachmentURL string
}

// SubmissionService defines use-case operations for submissions.
type SubmissionService interface {
	Submit(ctx context.Context, id domain.Identity, in SubmitInput) (*domain.Submission, error)
	// ListMine returns the calling student's own submissions.
	ListMine(ctx context.Context, id domain.Identity) ([]*domain.Submission, error)
	// ListForAssignment returns every submission against an assignment owned
	// by the calling teacher.
	ListForAssignment(ctx context.Context, id domain.Identity, assignmentID string) ([]*domain.Submission, error)
	// UpdateStatus overwrites a submission's status (e.g. "graded") on behalf
	// of the teacher owning its parent assignment.
	UpdateStatus(ctx context.Context, id domain.Identity, submissionID, status string) (*domain.Submission, error)
}
