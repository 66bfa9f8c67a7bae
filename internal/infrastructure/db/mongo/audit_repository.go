package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dataprogramming/auth-service/internal/core/domain"
)

const auditCollection = "auth_audit"

// AuditRepository implements ports.AuditRecorder using MongoDB.
type AuditRepository struct {
	db *mongo.Database
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{db: db}
}

// Record appends one audit event to the auth_audit collection.
func (r *AuditRepository) Record(ctx context.Context, event *domain.AuditEvent) error {
	doc := bson.M{
		"action":      event.Action,
		"username":    event.Username,
		"outcome":     event.Outcome,
		"timestamp":   event.Timestamp.UTC(),
		"recorded_at": time.Now().UTC(),
	}

	_, err := r.db.Collection(auditCollection).InsertOne(ctx, doc)
	return err
}
