package mongo

import (
	"context"
	"errors"
	"fmt"

	apperrors "canteen/pkg/errors"
	"canteen/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReadFunc func(ctx context.Context) error

// SnapshotReader runs a group of reads against one point-in-time view of the
// database so that values derived from several documents agree with each other.
type SnapshotReader interface {
	ReadSnapshot(ctx context.Context, fn ReadFunc) error
}

type mongoSnapshotReader struct {
	client *mongo.Client
	log    *logger.Logger
}

func NewSnapshotReader(client *mongo.Client, log *logger.Logger) SnapshotReader {
	return &mongoSnapshotReader{
		client: client,
		log:    log,
	}
}

func (m *mongoSnapshotReader) ReadSnapshot(ctx context.Context, fn ReadFunc) error {
	session, err := m.client.StartSession(options.Session().SetSnapshot(true))
	if err != nil {
		return fmt.Errorf("failed to start snapshot session: %w", err)
	}
	defer session.EndSession(ctx)

	err = mongo.WithSession(ctx, session, func(sessCtx mongo.SessionContext) error {
		return fn(sessCtx)
	})
	if err == nil {
		return nil
	}
	if apperrors.IsAppError(err) {
		return err
	}

	// Standalone servers reject snapshot reads; a single read-once pass is the
	// best available there.
	if snapshotUnsupported(err) {
		m.log.Warn("Snapshot reads unsupported by server, reading without snapshot", "error", err)
		return fn(ctx)
	}

	return fmt.Errorf("snapshot read failed: %w", err)
}

// Server error codes returned when a deployment cannot serve snapshot reads.
const (
	codeIllegalOperation    int32 = 20
	codeInvalidOptions      int32 = 72
	codeNotImplemented      int32 = 238
	codeSnapshotUnavailable int32 = 246
)

func snapshotUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	if !errors.As(err, &cmdErr) {
		return false
	}
	switch cmdErr.Code {
	case codeIllegalOperation, codeInvalidOptions, codeNotImplemented, codeSnapshotUnavailable:
		return true
	default:
		return false
	}
}

// PassthroughReader runs fn directly. Used where no client is available, such as tests.
type PassthroughReader struct{}

func (PassthroughReader) ReadSnapshot(ctx context.Context, fn ReadFunc) error {
	return fn(ctx)
}
