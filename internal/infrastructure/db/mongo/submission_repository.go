package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/classdesk/classroom-api/internal/core/domain"
)

const submissionCollection = "submissions"

// SubmissionRepository persists submissions in MongoDB.
type SubmissionRepository struct {
	coll *mongo.Collection
}

func NewSubmissionRepository(db *mongo.Database) *SubmissionRepository {
	return &SubmissionRepository{coll: db.Collection(submissionCollection)}
}

type mongoSubmission struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	AssignmentID    string             `bson:"assignment_id"`
	StudentID       string             `bson:"student_id"`
	StudentUsername string             `bson:"student_username"`
	Text            string             `bson:"text,omitempty"`
	AttachmentURL   string             `bson:"attachment_url,omitempty"`
	Status          string             `bson:"status"`
	SubmittedAt     time.Time          `bson:"submitted_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func (ms mongoSubmission) toDomain() *domain.Submission {
	return &domain.Submission{
		ID:              ms.ID.Hex(),
		AssignmentID:    ms.AssignmentID,
		StudentID:       ms.StudentID,
		StudentUsername: ms.StudentUsername,
		Text:            ms.Text,
		AttachmentURL:   ms.AttachmentURL,
		Status:          ms.Status,
		SubmittedAt:     ms.SubmittedAt,
		UpdatedAt:       ms.UpdatedAt,
	}
}

func (r *SubmissionRepository) Create(ctx context.Context, s *domain.Submission) (*domain.Submission, error) {
	doc := mongoSubmission{
		ID:              primitive.NewObjectID(),
		AssignmentID:    s.AssignmentID,
		StudentID:       s.StudentID,
		StudentUsername: s.StudentUsername,
		Text:            s.Text,
		AttachmentURL:   s.AttachmentURL,
		Status:          s.Status,
		SubmittedAt:     s.SubmittedAt,
		UpdatedAt:       s.UpdatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert submission: %w", err)
	}

	created := *s
	created.ID = doc.ID.Hex()
	return &created, nil
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id string) (*domain.Submission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSubmissionNotFound
	}

	var ms mongoSubmission
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("find submission: %w", err)
	}
	return ms.toDomain(), nil
}

func (r *SubmissionRepository) FindByStudent(ctx context.Context, studentID string) ([]*domain.Submission, error) {
	return r.findMany(ctx, bson.M{"student_id": studentID})
}

func (r *SubmissionRepository) FindByAssignment(ctx context.Context, assignmentID string) ([]*domain.Submission, error) {
	return r.findMany(ctx, bson.M{"assignment_id": assignmentID})
}

func (r *SubmissionRepository) findMany(ctx context.Context, filter bson.M) ([]*domain.Submission, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Submission
	for cur.Next(ctx) {
		var ms mongoSubmission
		if err := cur.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode submission: %w", err)
		}
		out = append(out, ms.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return out, nil
}

func (r *SubmissionRepository) UpdateStatus(ctx context.Context, id, status string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrSubmissionNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("update submission status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSubmissionNotFound
	}
	return nil
}
