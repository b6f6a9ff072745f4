package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/classdesk/classroom-api/internal/core/domain"
	"github.com/classdesk/classroom-api/internal/core/ports"
)

// AssignmentService implements assignment use cases. Checks run in a fixed
// order for every operation: role, then resource existence, then ownership.
// Denials collapse into the single domain.ErrAccessDenied value.
type AssignmentService struct {
	repo   ports.AssignmentRepository
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

// NewAssignmentService wires the assignment use cases. audit may be nil.
func NewAssignmentService(repo ports.AssignmentRepository, audit ports.AuditRecorder, logger zerolog.Logger) *AssignmentService {
	return &AssignmentService{repo: repo, audit: audit, logger: logger}
}

func (s *AssignmentService) Create(ctx context.Context, id domain.Identity, in ports.AssignmentInput) (*domain.Assignment, error) {
	if !domain.CanCreateAssignment(id) {
		return nil, domain.ErrAccessDenied
	}

	now := time.Now().UTC()
	a := &domain.Assignment{
		Title:         in.Title,
		Description:   in.Description,
		DueDate:       in.DueDate,
		ClassLevel:    in.ClassLevel,
		AttachmentURL: in.AttachmentURL,
		CreatedBy:     id.UserID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.Create(ctx, a)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create assignment")
		return nil, err
	}

	s.logger.Info().Str("assignment_id", created.ID).Str("teacher", id.Username).Msg("assignment created")
	s.record(id, ports.AuditAssignmentCreate, created.ID)
	return created, nil
}

func (s *AssignmentService) ListMine(ctx context.Context, id domain.Identity) ([]*domain.Assignment, error) {
	if !domain.CanViewOwnAssignments(id) {
		return nil, domain.ErrAccessDenied
	}
	return s.repo.FindByCreatedBy(ctx, id.UserID)
}

func (s *AssignmentService) ListAvailable(ctx context.Context, id domain.Identity) ([]*domain.Assignment, error) {
	if !domain.CanViewAvailableAssignments(id) {
		return nil, domain.ErrAccessDenied
	}
	// Scope is the student's own class level, read from the store-backed
	// identity rather than anything the client supplied.
	return s.repo.FindByClassLevel(ctx, id.ClassLevel)
}

func (s *AssignmentService) Update(ctx context.Context, id domain.Identity, assignmentID string, in ports.AssignmentInput) (*domain.Assignment, error) {
	a, err := s.authorizeOwner(ctx, id, assignmentID)
	if err != nil {
		return nil, err
	}

	a.Title = in.Title
	a.Description = in.Description
	a.DueDate = in.DueDate
	a.ClassLevel = in.ClassLevel
	a.AttachmentURL = in.AttachmentURL
	a.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, a); err != nil {
		s.logger.Error().Err(err).Str("assignment_id", assignmentID).Msg("failed to update assignment")
		return nil, err
	}

	s.record(id, ports.AuditAssignmentEdit, a.ID)
	return a, nil
}

func (s *AssignmentService) Delete(ctx context.Context, id domain.Identity, assignmentID string) error {
	a, err := s.authorizeOwner(ctx, id, assignmentID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, a.ID); err != nil {
		s.logger.Error().Err(err).Str("assignment_id", assignmentID).Msg("failed to delete assignment")
		return err
	}

	s.record(id, ports.AuditAssignmentDelete, a.ID)
	return nil
}

// authorizeOwner enforces the role → existence → ownership order shared by
// edit and delete.
func (s *AssignmentService) authorizeOwner(ctx context.Context, id domain.Identity, assignmentID string) (*domain.Assignment, error) {
	if id.Role != domain.RoleTeacher {
		return nil, domain.ErrAccessDenied
	}
	a, err := s.repo.FindByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if !domain.CanModifyAssignment(id, a) {
		return nil, domain.ErrAccessDenied
	}
	return a, nil
}

func (s *AssignmentService) record(id domain.Identity, action, resourceID string) {
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
