package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	reporterrors "canteen/internal/reports/errors"
	"canteen/pkg/config"
	mongodb "canteen/pkg/db/mongo"
	"canteen/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReportRepository interface {
	LoadMenuSummary(ctx context.Context, bookingID string) (*model.MenuSummaryData, error)
	LoadEventReport(ctx context.Context, bookingID string) (*model.EventReportData, error)
	ListBookingReportRows(ctx context.Context) ([]model.BookingReportRow, error)
}

type mongoReportRepository struct {
	cfg    *config.Config
	db     *mongo.Database
	reader mongodb.SnapshotReader
}

func NewMongoReportRepository(cfg *config.Config, reader mongodb.SnapshotReader) ReportRepository {
	return &mongoReportRepository{
		cfg:    cfg,
		db:     cfg.Client.Mongo.Database(cfg.MongoDatabaseName),
		reader: reader,
	}
}

func (r *mongoReportRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := r.cfg.ReadTimeout
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithDeadline(ctx, deadline)
	}
	return context.WithTimeout(ctx, timeout)
}

// LoadMenuSummary reads the booking and its menu selection from one snapshot
// so the printed totals match the printed items.
func (r *mongoReportRepository) LoadMenuSummary(ctx context.Context, bookingID string) (*model.MenuSummaryData, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var data model.MenuSummaryData
	err := r.reader.ReadSnapshot(ctx, func(ctx context.Context) error {
		booking, err := r.findBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		data.Booking = *booking

		data.Menu, err = findOptional[model.MenuSelection](ctx, r.db, mongodb.CollectionMenuSelections, bookingID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (r *mongoReportRepository) LoadEventReport(ctx context.Context, bookingID string) (*model.EventReportData, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var data model.EventReportData
	err := r.reader.ReadSnapshot(ctx, func(ctx context.Context) error {
		booking, err := r.findBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		data.Booking = *booking

		if data.Event, err = findOptional[model.EventDetails](ctx, r.db, mongodb.CollectionEventDetails, bookingID); err != nil {
			return err
		}
		if data.Menu, err = findOptional[model.MenuSelection](ctx, r.db, mongodb.CollectionMenuSelections, bookingID); err != nil {
			return err
		}
		if data.Services, err = findOptional[model.ServicesSelection](ctx, r.db, mongodb.CollectionServiceSelections, bookingID); err != nil {
			return err
		}
		if data.Tables, err = findOptional[model.TableArrangement](ctx, r.db, mongodb.CollectionTableArrangements, bookingID); err != nil {
			return err
		}
		data.Bar, err = findOptional[model.BarSelection](ctx, r.db, mongodb.CollectionBarSelections, bookingID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// ListBookingReportRows joins every booking with its event details. Bookings
// without event details are kept with empty event fields.
func (r *mongoReportRepository) ListBookingReportRows(ctx context.Context) ([]model.BookingReportRow, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cursor, err := r.db.Collection(mongodb.CollectionBookings).Aggregate(ctx, bookingReportPipeline())
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate booking reports: %w", err)
	}
	defer cursor.Close(ctx)

	rows := make([]model.BookingReportRow, 0)
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode booking reports: %w", err)
	}
	return rows, nil
}

func bookingReportPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: mongodb.CollectionEventDetails},
			{Key: "localField", Value: "booking_id"},
			{Key: "foreignField", Value: "booking_id"},
			{Key: "as", Value: "event"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$event"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "booking_id", Value: 1},
			{Key: "customer_name", Value: 1},
			{Key: "email", Value: 1},
			{Key: "phone", Value: 1},
			{Key: "booking_date", Value: 1},
			{Key: "event_type", Value: 1},
			{Key: "guest_count", Value: 1},
			{Key: "status", Value: 1},
			{Key: "event_id", Value: "$event.event_id"},
			{Key: "groom_name", Value: "$event.groom_name"},
			{Key: "bride_name", Value: "$event.bride_name"},
			{Key: "event_name", Value: "$event.event_name"},
			{Key: "contact_person_name", Value: "$event.contact_person_name"},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "booking_date", Value: -1},
			{Key: "booking_id", Value: 1},
		}}},
	}
}

func (r *mongoReportRepository) findBooking(ctx context.Context, bookingID string) (*model.Booking, error) {
	booking, err := findOptional[model.Booking](ctx, r.db, mongodb.CollectionBookings, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: %s", reporterrors.ErrBookingNotFound, bookingID)
	}
	return booking, nil
}

// findOptional returns the document for bookingID, or nil when there is none.
func findOptional[T any](ctx context.Context, db *mongo.Database, collection, bookingID string) (*T, error) {
	var doc T
	err := db.Collection(collection).
		FindOne(ctx, bson.M{"booking_id": bookingID}, options.FindOne().SetProjection(bson.M{"_id": 0})).
		Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", collection, err)
	}
	return &doc, nil
}
