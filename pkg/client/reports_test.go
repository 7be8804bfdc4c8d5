package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"canteen/pkg/model"
)

func TestReportsClient_DownloadReport(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		wantBody    string
		wantMessage string
	}{
		{
			name:        "pdf bytes on success",
			status:      http.StatusOK,
			contentType: "application/pdf",
			body:        "%PDF-1.3 fake",
			wantBody:    "%PDF-1.3 fake",
		},
		{
			name:        "json error field surfaced",
			status:      http.StatusNotFound,
			contentType: "application/json",
			body:        `{"error":"No menu selection found for this booking"}`,
			wantMessage: "No menu selection found for this booking",
		},
		{
			name:        "json message field surfaced",
			status:      http.StatusForbidden,
			contentType: "application/json",
			body:        `{"message":"Not allowed"}`,
			wantMessage: "Not allowed",
		},
		{
			name:        "non json body gets generic message",
			status:      http.StatusBadGateway,
			contentType: "text/html",
			body:        "<html>bad gateway</html>",
			wantMessage: reportDownloadFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotAuth string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotAuth = r.Header.Get("Authorization")
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewReportsClient(srv.URL, "tok")
			body, err := c.DownloadReport(context.Background(), "B-1")

			if gotPath != "/pdf/events/B-1" {
				t.Errorf("path = %q", gotPath)
			}
			if gotAuth != "Bearer tok" {
				t.Errorf("Authorization = %q", gotAuth)
			}

			if tt.wantMessage == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if string(body) != tt.wantBody {
					t.Errorf("body = %q, want %q", body, tt.wantBody)
				}
				return
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %v", err)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.status)
			}
			if apiErr.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMessage)
			}
		})
	}
}

func TestReportsClient_DownloadMenuSummary(t *testing.T) {
	var gotPath, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-menu"))
	}))
	defer srv.Close()

	body, err := NewReportsClient(srv.URL, "tok").DownloadMenuSummary(context.Background(), "B 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/pdf/menu-summary/B 1" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAccept != "application/pdf" {
		t.Errorf("Accept = %q", gotAccept)
	}
	if string(body) != "%PDF-menu" {
		t.Errorf("body = %q", body)
	}
}

func TestReportsClient_ListBookingReports(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"booking_id":"B-1","customer_name":"Asha","Event_ID":"E-9","guest_count":120,"status":"confirmed"}]`))
	}))
	defer srv.Close()

	c := NewReportsClient(srv.URL, "")
	rows, err := c.ListBookingReports(context.Background(), model.BookingReportFilter{Date: "2025-03-01", Type: "Wedding"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotQuery != "date=2025-03-01&type=Wedding" {
		t.Errorf("query = %q", gotQuery)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].EventID != "E-9" || rows[0].GuestCount != 120 {
		t.Errorf("unexpected row: %+v", rows[0])
	}
}

func TestReportsClient_ListBookingReports_ValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"Invalid report filter","code":"VALIDATION_ERROR"}`))
	}))
	defer srv.Close()

	_, err := NewReportsClient(srv.URL, "").ListBookingReports(context.Background(), model.BookingReportFilter{Date: "yesterday"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != "Invalid report filter" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestProgressClient_GetProgress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/progress/customerDashboard/B-7" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Booking not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"overallProgress":40,"completedCount":2,"totalTasks":5,"tasks":{"eventDetails":{"title":"Event Details","status":"Complete"}}}`))
	}))
	defer srv.Close()

	c := NewProgressClient(srv.URL, "tok")

	p, err := c.GetProgress(context.Background(), "B-7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.OverallProgress != 40 || p.CompletedCount != 2 || p.TotalTasks != 5 {
		t.Errorf("unexpected progress: %+v", p)
	}
	if p.Tasks[model.TaskEventDetails].Status != model.TaskComplete {
		t.Errorf("eventDetails status = %q", p.Tasks[model.TaskEventDetails].Status)
	}

	_, err = c.GetProgress(context.Background(), "missing")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 APIError, got %v", err)
	}
	if apiErr.Message != "Booking not found" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}
