package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"canteen/internal/migrations/mongo/validators"
	mongodb "canteen/pkg/db/mongo"
	"canteen/pkg/logger"
)

// uniqueByBooking is the index every per-booking collection carries: one
// document per booking.
func uniqueByBooking(name string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: "booking_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(name),
	}
}

var (
	BookingsIndexes = []mongo.IndexModel{
		uniqueByBooking("uniq_booking_id"),
		{Keys: bson.D{{Key: "customer_id", Value: 1}}},
		{Keys: bson.D{{Key: "booking_date", Value: -1}, {Key: "booking_id", Value: 1}}},
		{Keys: bson.D{{Key: "event_type", Value: 1}}},
	}

	EventDetailsIndexes = []mongo.IndexModel{
		uniqueByBooking("uniq_event_booking_id"),
	}

	MenuSelectionsIndexes = []mongo.IndexModel{
		uniqueByBooking("uniq_menu_booking_id"),
	}

	ServiceSelectionsIndexes = []mongo.IndexModel{
		uniqueByBooking("uniq_services_booking_id"),
	}

	TableArrangementsIndexes = []mongo.IndexModel{
		uniqueByBooking("uniq_tables_booking_id"),
	}

	BarSelectionsIndexes = []mongo.IndexModel{
		uniqueByBooking("uniq_bar_booking_id"),
	}

	ReportAuditIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_event_id"),
		},
		{Keys: bson.D{{Key: "booking_id", Value: 1}, {Key: "generated_at", Value: -1}}},
	}
)

type collectionDef struct {
	Name      string
	Indexes   []mongo.IndexModel
	Validator bson.M
}

// Collections lists everything the migration manages, in creation order.
var Collections = []collectionDef{
	{Name: mongodb.CollectionBookings, Indexes: BookingsIndexes, Validator: validators.BookingValidator},
	{Name: mongodb.CollectionEventDetails, Indexes: EventDetailsIndexes, Validator: validators.EventDetailsValidator},
	{Name: mongodb.CollectionMenuSelections, Indexes: MenuSelectionsIndexes, Validator: validators.MenuSelectionValidator},
	{Name: mongodb.CollectionServiceSelections, Indexes: ServiceSelectionsIndexes, Validator: validators.ServicesSelectionValidator},
	{Name: mongodb.CollectionTableArrangements, Indexes: TableArrangementsIndexes, Validator: validators.TableArrangementValidator},
	{Name: mongodb.CollectionBarSelections, Indexes: BarSelectionsIndexes, Validator: validators.BarSelectionValidator},
	{Name: mongodb.CollectionReportAudit, Indexes: ReportAuditIndexes, Validator: validators.ReportAuditValidator},
}

func RunMigration(ctx context.Context, client *mongo.Client, dbName string, log *logger.Logger) error {
	db := client.Database(dbName)
	log.Info("Running Mongo migrations", "database", dbName, "collections", len(Collections))

	for _, def := range Collections {
		if err := ensureCollection(ctx, db, def.Name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", def.Name, err)
		}
		if err := ensureIndexes(ctx, db, def.Name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", def.Name, err)
		}
	}

	log.Info("All migrations applied successfully")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	names, err := db.Collection(name).Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "indexes", names)
	return nil
}
