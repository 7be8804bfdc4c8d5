package testutil

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	mongodb "canteen/pkg/db/mongo"
)

const (
	DefaultMongoURI     = "mongodb://localhost:27017"
	DefaultDatabaseName = "canteen"
	ConnectionTimeout   = 10 * time.Second
)

// MongoHelper seeds and cleans the collections the services read.
type MongoHelper struct {
	Client   *mongo.Client
	Database *mongo.Database
	DBName   string
}

func NewMongoHelper(t *testing.T, mongoURI, dbName string) *MongoHelper {
	t.Helper()

	if mongoURI == "" {
		mongoURI = DefaultMongoURI
	}
	if dbName == "" {
		dbName = DefaultDatabaseName
	}

	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		t.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Fatalf("failed to ping MongoDB: %v", err)
	}

	return &MongoHelper{
		Client:   client,
		Database: client.Database(dbName),
		DBName:   dbName,
	}
}

func (m *MongoHelper) Close(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.Client.Disconnect(ctx); err != nil {
		t.Logf("warning: failed to disconnect from MongoDB: %v", err)
	}
}

// Insert stores doc in collection and registers a cleanup removing every
// document for bookingID from it.
func (m *MongoHelper) Insert(t *testing.T, collection, bookingID string, doc any) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := m.Database.Collection(collection).InsertOne(ctx, doc); err != nil {
		t.Fatalf("failed to insert into %s: %v", collection, err)
	}
	t.Cleanup(func() { m.DeleteBooking(t, collection, bookingID) })
}

func (m *MongoHelper) DeleteBooking(t *testing.T, collection, bookingID string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := m.Database.Collection(collection).DeleteMany(ctx, bson.M{"booking_id": bookingID}); err != nil {
		t.Logf("warning: failed to clean %s: %v", collection, err)
	}
}

// Seed inserts every non-nil part of f.
func (m *MongoHelper) Seed(t *testing.T, f *BookingFixture) {
	t.Helper()
	id := f.Booking.BookingID
	m.Insert(t, mongodb.CollectionBookings, id, f.Booking)
	if f.Event != nil {
		m.Insert(t, mongodb.CollectionEventDetails, id, f.Event)
	}
	if f.Menu != nil {
		m.Insert(t, mongodb.CollectionMenuSelections, id, f.Menu)
	}
	if f.Services != nil {
		m.Insert(t, mongodb.CollectionServiceSelections, id, f.Services)
	}
	if f.Tables != nil {
		m.Insert(t, mongodb.CollectionTableArrangements, id, f.Tables)
	}
	if f.Bar != nil {
		m.Insert(t, mongodb.CollectionBarSelections, id, f.Bar)
	}
}
