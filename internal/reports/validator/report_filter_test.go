package validator

import (
	"errors"
	"strings"
	"testing"
	"time"

	"canteen/pkg/model"
)

func TestValidateFilter(t *testing.T) {
	v := NewReportValidator()

	tests := []struct {
		name       string
		filter     model.BookingReportFilter
		wantFields []string
	}{
		{name: "empty filter", filter: model.BookingReportFilter{}},
		{name: "all valid", filter: model.BookingReportFilter{Date: "2025-03-01", Name: "asha", Type: "Wedding"}},
		{name: "bad date format", filter: model.BookingReportFilter{Date: "01/03/2025"}, wantFields: []string{"date"}},
		{name: "impossible date", filter: model.BookingReportFilter{Date: "2025-02-30"}, wantFields: []string{"date"}},
		{name: "name too long", filter: model.BookingReportFilter{Name: strings.Repeat("a", 101)}, wantFields: []string{"name"}},
		{
			name:       "several problems",
			filter:     model.BookingReportFilter{Date: "tomorrow", Type: strings.Repeat("t", 51)},
			wantFields: []string{"date", "type"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateFilter(&tt.filter)

			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			details := verrs.Details()
			if len(details) != len(tt.wantFields) {
				t.Errorf("got %d errors (%v), want %d", len(details), details, len(tt.wantFields))
			}
			for _, f := range tt.wantFields {
				if _, ok := details[f]; !ok {
					t.Errorf("missing error for field %q in %v", f, details)
				}
			}
		})
	}
}

func TestValidateEvent(t *testing.T) {
	v := NewReportValidator()

	valid := model.ReportGeneratedEvent{
		EventID:     "7b0e3c2a-1d7f-4c55-9c1e-0c5c0f3c1a11",
		BookingID:   "B-1",
		Kind:        model.ReportEvent,
		Filename:    "Event_Report_B-1_2025-03-01.pdf",
		SizeBytes:   10,
		GeneratedAt: time.Now(),
	}
	if err := v.ValidateEvent(&valid); err != nil {
		t.Fatalf("valid event rejected: %v", err)
	}

	invalid := valid
	invalid.EventID = "not-a-uuid"
	invalid.Kind = "invoice"
	invalid.SizeBytes = 0

	var verrs ValidationErrors
	if !errors.As(v.ValidateEvent(&invalid), &verrs) {
		t.Fatal("expected ValidationErrors")
	}
	details := verrs.Details()
	for _, f := range []string{"event_id", "kind", "size_bytes"} {
		if _, ok := details[f]; !ok {
			t.Errorf("missing error for %q in %v", f, details)
		}
	}
}
