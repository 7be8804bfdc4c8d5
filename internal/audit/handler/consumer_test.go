package handler

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"canteen/internal/reports/validator"
	"canteen/pkg/kafka"
	"canteen/pkg/logger"
	"canteen/pkg/model"
)

type mockAuditRepository struct {
	recordFunc func(ctx context.Context, audit model.ReportAudit) (bool, error)
	recorded   []model.ReportAudit
}

func (m *mockAuditRepository) Record(ctx context.Context, audit model.ReportAudit) (bool, error) {
	m.recorded = append(m.recorded, audit)
	if m.recordFunc != nil {
		return m.recordFunc(ctx, audit)
	}
	return true, nil
}

var receivedAt = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func newHandler(repo *mockAuditRepository) *ReportAuditHandler {
	h := NewReportAuditHandler(repo, validator.NewReportValidator(), logger.Discard())
	h.now = func() time.Time { return receivedAt }
	return h
}

func validEvent() model.ReportGeneratedEvent {
	return model.ReportGeneratedEvent{
		EventID:     "7b0e3c2a-1d7f-4c55-9c1e-0c5c0f3c1a11",
		BookingID:   "B-1",
		Kind:        model.ReportMenuSummary,
		Filename:    "Menu_Summary_B-1_2025-03-01.pdf",
		SizeBytes:   4096,
		RequestedBy: "admin-1",
		GeneratedAt: time.Date(2025, 3, 1, 9, 59, 0, 0, time.UTC),
	}
}

func message(t *testing.T, v any, headers map[string]string) kafka.Message {
	t.Helper()
	var value []byte
	switch raw := v.(type) {
	case []byte:
		value = raw
	default:
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		value = b
	}
	if headers == nil {
		headers = map[string]string{kafka.HeaderEventType: kafka.EventTypeReportGenerated}
	}
	return kafka.Message{Key: "B-1", Value: value, Headers: headers}
}

func TestHandle_RecordsEvent(t *testing.T) {
	repo := &mockAuditRepository{}
	h := newHandler(repo)

	if err := h.Handle(context.Background(), message(t, validEvent(), nil)); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if len(repo.recorded) != 1 {
		t.Fatalf("recorded %d audits, want 1", len(repo.recorded))
	}
	got := repo.recorded[0]
	if got.EventID != validEvent().EventID || got.Filename != validEvent().Filename {
		t.Errorf("unexpected audit: %+v", got)
	}
	if !got.ReceivedAt.Equal(receivedAt) {
		t.Errorf("ReceivedAt = %v", got.ReceivedAt)
	}
}

func TestHandle_EventIDFromHeader(t *testing.T) {
	repo := &mockAuditRepository{}
	event := validEvent()
	event.EventID = ""

	msg := message(t, event, map[string]string{kafka.HeaderEventID: "0f6a2d8e-64c4-4d4e-8c35-2f1f6f0b9a77"})
	if err := newHandler(repo).Handle(context.Background(), msg); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if repo.recorded[0].EventID != "0f6a2d8e-64c4-4d4e-8c35-2f1f6f0b9a77" {
		t.Errorf("EventID = %q", repo.recorded[0].EventID)
	}
}

func TestHandle_Failures(t *testing.T) {
	invalid := validEvent()
	invalid.Kind = "invoice"

	tests := []struct {
		name       string
		msg        func(t *testing.T) kafka.Message
		recordErr  error
		wantType   kafka.ErrorType
		wantStored int
	}{
		{
			name:     "undecodable payload",
			msg:      func(t *testing.T) kafka.Message { return message(t, []byte("{not json"), nil) },
			wantType: kafka.ErrorTypePermanent,
		},
		{
			name:     "invalid event",
			msg:      func(t *testing.T) kafka.Message { return message(t, invalid, nil) },
			wantType: kafka.ErrorTypePermanent,
		},
		{
			name:       "store failure",
			msg:        func(t *testing.T) kafka.Message { return message(t, validEvent(), nil) },
			recordErr:  errors.New("server selection error"),
			wantType:   kafka.ErrorTypeTransient,
			wantStored: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockAuditRepository{}
			if tt.recordErr != nil {
				repo.recordFunc = func(ctx context.Context, audit model.ReportAudit) (bool, error) {
					return false, tt.recordErr
				}
			}

			err := newHandler(repo).Handle(context.Background(), tt.msg(t))
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := kafka.ClassifyError(err); got != tt.wantType {
				t.Errorf("ClassifyError() = %v, want %v", got, tt.wantType)
			}
			if len(repo.recorded) != tt.wantStored {
				t.Errorf("recorded %d, want %d", len(repo.recorded), tt.wantStored)
			}
		})
	}
}

func TestHandle_IgnoresOtherEventTypes(t *testing.T) {
	repo := &mockAuditRepository{}
	msg := message(t, []byte("whatever"), map[string]string{kafka.HeaderEventType: "booking.created"})

	if err := newHandler(repo).Handle(context.Background(), msg); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if len(repo.recorded) != 0 {
		t.Error("unrelated events must not be stored")
	}
}

func TestHandle_DuplicateIsNotAnError(t *testing.T) {
	repo := &mockAuditRepository{
		recordFunc: func(ctx context.Context, audit model.ReportAudit) (bool, error) { return false, nil },
	}
	if err := newHandler(repo).Handle(context.Background(), message(t, validEvent(), nil)); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
}
