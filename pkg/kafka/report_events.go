package kafka

import (
	"context"
	"fmt"

	"canteen/pkg/model"
)

const (
	EventTypeReportGenerated  = "report.generated"
	ReportEventsSchemaVersion = "1"
)

// Publisher is the subset of Producer used by ReportEvents.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

// ReportEvents publishes report.generated events keyed by booking id.
type ReportEvents struct {
	publisher Publisher
	source    string
}

func NewReportEvents(publisher Publisher, source string) *ReportEvents {
	return &ReportEvents{publisher: publisher, source: source}
}

func (r *ReportEvents) PublishReportGenerated(ctx context.Context, event model.ReportGeneratedEvent, correlationID string) error {
	msg, err := NewMessage().
		WithKey(event.BookingID).
		WithValue(event).
		WithEventID(event.EventID).
		WithEventType(EventTypeReportGenerated).
		WithSchemaVersion(ReportEventsSchemaVersion).
		WithSource(r.source).
		WithCorrelationID(correlationID).
		WithTimestamp(event.GeneratedAt).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build report event: %w", err)
	}
	return r.publisher.Publish(ctx, msg)
}

// NopReportEvents discards events. Used when Kafka is disabled.
type NopReportEvents struct{}

func (NopReportEvents) PublishReportGenerated(context.Context, model.ReportGeneratedEvent, string) error {
	return nil
}
