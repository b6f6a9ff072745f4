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

const assignmentCollection = "assignments"

// AssignmentRepository persists assignments in MongoDB.
type AssignmentRepository struct {
	coll *mongo.Collection
}

func NewAssignmentRepository(db *mongo.Database) *AssignmentRepository {
	return &AssignmentRepository{coll: db.Collection(assignmentCollection)}
}

type mongoAssignment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Description   string             `bson:"description,omitempty"`
	DueDate       time.Time          `bson:"due_date"`
	ClassLevel    string             `bson:"class_level"`
	AttachmentURL string             `bson:"attachment_url,omitempty"`
	CreatedBy     string             `bson:"created_by"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func toMongoAssignment(a *domain.Assignment) mongoAssignment {
	return mongoAssignment{
		Title:         a.Title,
		Description:   a.Description,
		DueDate:       a.DueDate,
		ClassLevel:    string(a.ClassLevel),
		AttachmentURL: a.AttachmentURL,
		CreatedBy:     a.CreatedBy,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func (ma mongoAssignment) toDomain() *domain.Assignment {
	return &domain.Assignment{
		ID:            ma.ID.Hex(),
		Title:         ma.Title,
		Description:   ma.Description,
		DueDate:       ma.DueDate,
		ClassLevel:    domain.ClassLevel(ma.ClassLevel),
		AttachmentURL: ma.AttachmentURL,
		CreatedBy:     ma.CreatedBy,
		CreatedAt:     ma.CreatedAt,
		UpdatedAt:     ma.UpdatedAt,
	}
}

func (r *AssignmentRepository) Create(ctx context.Context, a *domain.Assignment) (*domain.Assignment, error) {
	doc := toMongoAssignment(a)
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert assignment: %w", err)
	}

	created := *a
	created.ID = doc.ID.Hex()
	return &created, nil
}

func (r *AssignmentRepository) FindByID(ctx context.Context, id string) (*domain.Assignment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAssignmentNotFound
	}

	var ma mongoAssignment
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("find assignment: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *AssignmentRepository) FindByCreatedBy(ctx context.Context, teacherID string) ([]*domain.Assignment, error) {
	return r.findMany(ctx, bson.M{"created_by": teacherID})
}

func (r *AssignmentRepository) FindByClassLevel(ctx context.Context, level domain.ClassLevel) ([]*domain.Assignment, error) {
	return r.findMany(ctx, bson.M{"class_level": string(level)})
}

func (r *AssignmentRepository) findMany(ctx context.Context, filter bson.M) ([]*domain.Assignment, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Assignment
	for cur.Next(ctx) {
		var ma mongoAssignment
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode assignment: %w", err)
		}
		out = append(out, ma.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return out, nil
}

func (r *AssignmentRepository) Update(ctx context.Context, a *domain.Assignment) error {
	oid, err := primitive.ObjectIDFromHex(a.ID)
	if err != nil {
		return domain.ErrAssignmentNotFound
	}

	doc := toMongoAssignment(a)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("update assignment: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAssignmentNotFound
	}
	return nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAssignmentNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAssignmentNotFound
	}
	return nil
}
