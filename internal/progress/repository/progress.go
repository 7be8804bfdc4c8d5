package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	progresserrors "canteen/internal/progress/errors"
	"canteen/pkg/config"
	mongodb "canteen/pkg/db/mongo"
	"canteen/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// taskSource says where a task's backing data lives. An empty arrayField
// means the document only has to exist.
type taskSource struct {
	collection string
	arrayField string
}

var taskSources = map[model.TaskKey]taskSource{
	model.TaskEventDetails:      {collection: mongodb.CollectionEventDetails},
	model.TaskMenuSelection:     {collection: mongodb.CollectionMenuSelections, arrayField: "menus"},
	model.TaskServicesSelection: {collection: mongodb.CollectionServiceSelections, arrayField: "services"},
	model.TaskTableArrangement:  {collection: mongodb.CollectionTableArrangements, arrayField: "tables"},
	model.TaskBarSelection:      {collection: mongodb.CollectionBarSelections, arrayField: "items"},
}

type ProgressRepository interface {
	FindBooking(ctx context.Context, bookingID string) (*model.Booking, error)
	IsTaskComplete(ctx context.Context, task model.TaskKey, bookingID string) (bool, error)
}

type mongoProgressRepository struct {
	cfg *config.Config
	db  *mongo.Database
}

func NewMongoProgressRepository(cfg *config.Config) ProgressRepository {
	return &mongoProgressRepository{
		cfg: cfg,
		db:  cfg.Client.Mongo.Database(cfg.MongoDatabaseName),
	}
}

func (r *mongoProgressRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := r.cfg.ReadTimeout
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithDeadline(ctx, deadline)
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoProgressRepository) FindBooking(ctx context.Context, bookingID string) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var booking model.Booking
	err := r.db.Collection(mongodb.CollectionBookings).
		FindOne(ctx, bson.M{"booking_id": bookingID}).
		Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", progresserrors.ErrBookingNotFound, bookingID)
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return &booking, nil
}

// IsTaskComplete reports whether the booking has non-empty data for task.
func (r *mongoProgressRepository) IsTaskComplete(ctx context.Context, task model.TaskKey, bookingID string) (bool, error) {
	source, ok := taskSources[task]
	if !ok {
		return false, fmt.Errorf("%w: %s", progresserrors.ErrUnknownTask, task)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	n, err := r.db.Collection(source.collection).
		CountDocuments(ctx, presenceFilter(source, bookingID), options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to query %s: %w", source.collection, err)
	}
	return n > 0, nil
}

func presenceFilter(source taskSource, bookingID string) bson.M {
	filter := bson.M{"booking_id": bookingID}
	if source.arrayField != "" {
		filter[source.arrayField+".0"] = bson.M{"$exists": true}
	}
	return filter
}
