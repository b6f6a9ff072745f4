package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/classdesk/classroom-api/internal/core/domain"
	"github.com/classdesk/classroom-api/internal/core/ports"
)

// SubmissionService implements submission use cases. Teacher-side operations
// derive ownership from the submission's parent assignment.
type SubmissionService struct {
	repo        ports.SubmissionRepository
	assignments ports.AssignmentRepository
	audit       ports.AuditRecorder
	logger      zerolog.Logger
}

// NewSubmissionService wires the submission use cases. audit may be nil.
func NewSubmissionService(repo ports.SubmissionRepository, assignments ports.AssignmentRepository, audit ports.AuditRecorder, logger zerolog.Logger) *SubmissionService {
	return &SubmissionService{repo: repo, assignments: assignments, audit: audit, logger: logger}
}

func (s *SubmissionService) Submit(ctx context.Context, id domain.Identity, in ports.SubmitInput) (*domain.Submission, error) {
	if !domain.CanSubmitAssignment(id) {
		return nil, domain.ErrAccessDenied
	}

	// The referenced assignment must exist before anything is written.
	if _, err := s.assignments.FindByID(ctx, in.AssignmentID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sub := &domain.Submission{
		AssignmentID:    in.AssignmentID,
		StudentID:       id.UserID,
		StudentUsername: id.Username,
		Text:            in.Text,
		AttachmentURL:   in.AttachmentURL,
		Status:          domain.SubmissionStatusSubmitted,
		SubmittedAt:     now,
		UpdatedAt:       now,
	}

	created, err := s.repo.Create(ctx, sub)
	if err != nil {
		s.logger.Error().Err(err).Str("assignment_id", in.AssignmentID).Msg("failed to create submission")
		return nil, err
	}

	s.logger.Info().Str("submission_id", created.ID).Str("student", id.Username).Msg("assignment submitted")
	s.record(id, ports.AuditSubmit, created.ID)
	return created, nil
}

func (s *SubmissionService) ListMine(ctx context.Context, id domain.Identity) ([]*domain.Submission, error) {
	if !domain.CanViewOwnSubmissions(id) {
		return nil, domain.ErrAccessDenied
	}
	return s.repo.FindByStudent(ctx, id.UserID)
}

func (s *SubmissionService) ListForAssignment(ctx context.Context, id domain.Identity, assignmentID string) ([]*domain.Submission, error) {
	if id.Role != domain.RoleTeacher {
		return nil, domain.ErrAccessDenied
	}
	a, err := s.assignments.FindByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if !domain.CanViewSubmissionsForAssignment(id, a) {
		return nil, domain.ErrAccessDenied
	}
	return s.repo.FindByAssignment(ctx, a.ID)
}

func (s *SubmissionService) UpdateStatus(ctx context.Context, id domain.Identity, submissionID, status string) (*domain.Submission, error) {
	if id.Role != domain.RoleTeacher {
		return nil, domain.ErrAccessDenied
	}

	sub, err := s.repo.FindByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	parent, err := s.assignments.FindByID(ctx, sub.AssignmentID)
	if err != nil {
		return nil, err
	}
	if !domain.CanUpdateSubmissionStatus(id, parent) {
		return nil, domain.ErrAccessDenied
	}

	if err := s.repo.UpdateStatus(ctx, sub.ID, status); err != nil {
		s.logger.Error().Err(err).Str("submission_id", submissionID).Msg("failed to update submission status")
		return nil, err
	}

	sub.Status = status
	sub.UpdatedAt = time.Now().UTC()
	s.record(id, ports.AuditStatusUpdate, sub.ID)
	return sub, nil
}

func (s *SubmissionService) record(id domain.Identity, action, resourceID string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ports.AuditEntry{
		Username:   id.Username,
		Action:     action,
		ResourceID: resourceID,
		OccurredAt: time.Now().UTC(),
	})
}
