package repository

import (
	"context"
	"fmt"
	"time"

	"canteen/pkg/config"
	mongodb "canteen/pkg/db/mongo"
	"canteen/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AuditRepository interface {
	// Record stores the audit entry once per event id. Redelivered events
	// leave the first stored entry untouched.
	Record(ctx context.Context, audit model.ReportAudit) (inserted bool, err error)
}

type mongoAuditRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoAuditRepository(cfg *config.Config) AuditRepository {
	return &mongoAuditRepository{
		cfg:        cfg,
		collection: cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(mongodb.CollectionReportAudit),
	}
}

func (r *mongoAuditRepository) Record(ctx context.Context, audit model.ReportAudit) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"event_id": audit.EventID},
		bson.M{"$setOnInsert": audit},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, fmt.Errorf("failed to record report audit: %w", err)
	}
	return res.UpsertedCount > 0, nil
}

// NewAudit stamps an event with the time it was received.
func NewAudit(event model.ReportGeneratedEvent, receivedAt time.Time) model.ReportAudit {
	return model.ReportAudit{
		ReportGeneratedEvent: event,
		ReceivedAt:           receivedAt.UTC(),
	}
}
