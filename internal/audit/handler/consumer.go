package handler

import (
	"context"
	"time"

	"canteen/internal/audit/repository"
	"canteen/internal/reports/validator"
	"canteen/pkg/kafka"
	"canteen/pkg/logger"
	"canteen/pkg/model"
)

type ReportAuditHandler struct {
	repo      repository.AuditRepository
	validator *validator.ReportValidator
	log       *logger.Logger
	now       func() time.Time
}

func NewReportAuditHandler(repo repository.AuditRepository, validator *validator.ReportValidator, log *logger.Logger) *ReportAuditHandler {
	return &ReportAuditHandler{
		repo:      repo,
		validator: validator,
		log:       log,
		now:       time.Now,
	}
}

// Handle stores one report.generated event. Payloads that cannot be decoded
// or validated are permanent failures; storage failures are transient.
func (h *ReportAuditHandler) Handle(ctx context.Context, msg kafka.Message) error {
	if eventType := msg.GetEventType(); eventType != "" && eventType != kafka.EventTypeReportGenerated {
		h.log.Debug("Skipping unrelated event", "event_type", eventType, "offset", msg.Offset)
		return nil
	}

	var event model.ReportGeneratedEvent
	if err := msg.DecodeValue(&event); err != nil {
		return kafka.NewPermanentError("deserialization failed", err).
			WithDetail("offset", msg.Offset)
	}
	if event.EventID == "" {
		event.EventID = msg.GetEventID()
	}

	if err := h.validator.ValidateEvent(&event); err != nil {
		return kafka.NewPermanentError("invalid message", err).
			WithDetail("event_id", event.EventID)
	}

	inserted, err := h.repo.Record(ctx, repository.NewAudit(event, h.now()))
	if err != nil {
		return kafka.NewTransientError("failed to store report audit", err).
			WithDetail("event_id", event.EventID)
	}

	if inserted {
		h.log.Info("Report audit recorded",
			"event_id", event.EventID,
			"booking_id", event.BookingID,
			"kind", event.Kind,
			"requested_by", event.RequestedBy,
		)
	} else {
		h.log.Debug("Duplicate report event ignored", "event_id", event.EventID)
	}
	return nil
}
