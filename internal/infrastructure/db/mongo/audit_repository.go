package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/classdesk/classroom-api/internal/core/ports"
)

const auditCollection = "audit_log"

// AuditRepository persists audit entries in MongoDB. Entries are append-only.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEntry struct {
	Username   string    `bson:"username"`
	Action     string    `bson:"action"`
	ResourceID string    `bson:"resource_id,omitempty"`
	OccurredAt time.Time `bson:"occurred_at"`
}

func (r *AuditRepository) Insert(ctx context.Context, entry ports.AuditEntry) error {
	doc := mongoAuditEntry{
		Username:   entry.Username,
		Action:     entry.Action,
		ResourceID: entry.ResourceID,
		OccurredAt: entry.OccurredAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}
