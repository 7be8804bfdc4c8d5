package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"canteen/pkg/auth"
	apperrors "canteen/pkg/errors"
	"canteen/pkg/logger"
	"canteen/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockReportService struct {
	menuSummaryFunc func(ctx context.Context, p auth.Principal, ref string) (*model.GeneratedReport, error)
	eventReportFunc func(ctx context.Context, p auth.Principal, ref string) (*model.GeneratedReport, error)
	listFunc        func(ctx context.Context, filter model.BookingReportFilter) ([]model.BookingReportRow, error)
}

func (m *mockReportService) MenuSummary(ctx context.Context, p auth.Principal, ref string) (*model.GeneratedReport, error) {
	return m.menuSummaryFunc(ctx, p, ref)
}

func (m *mockReportService) EventReport(ctx context.Context, p auth.Principal, ref string) (*model.GeneratedReport, error) {
	return m.eventReportFunc(ctx, p, ref)
}

func (m *mockReportService) ListBookingReports(ctx context.Context, filter model.BookingReportFilter) ([]model.BookingReportRow, error) {
	return m.listFunc(ctx, filter)
}

func newRouter(svc *mockReportService) *httprouter.Router {
	router := httprouter.New()
	NewReportHandler(svc, logger.Discard()).RegisterRoutes(router)
	return router
}

func asAdmin(req *http.Request) *http.Request {
	return req.WithContext(auth.WithPrincipal(req.Context(), auth.Principal{Subject: "admin-1", Role: auth.RoleAdmin}))
}

func TestMenuSummary_ServesPDF(t *testing.T) {
	var gotRef string
	svc := &mockReportService{
		menuSummaryFunc: func(ctx context.Context, p auth.Principal, ref string) (*model.GeneratedReport, error) {
			gotRef = ref
			return &model.GeneratedReport{
				BookingID: ref,
				Kind:      model.ReportMenuSummary,
				Filename:  "Menu_Summary_B-1_2025-03-01.pdf",
				Content:   []byte("%PDF-1.3 body"),
			}, nil
		},
	}

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, asAdmin(httptest.NewRequest(http.MethodGet, "/pdf/menu-summary/B-1", nil)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	if gotRef != "B-1" {
		t.Errorf("ref = %q", gotRef)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename=Menu_Summary_B-1_2025-03-01.pdf` {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if rec.Body.String() != "%PDF-1.3 body" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestMenuSummary_NotFoundIsJSON(t *testing.T) {
	svc := &mockReportService{
		menuSummaryFunc: func(ctx context.Context, p auth.Principal, ref string) (*model.GeneratedReport, error) {
			return nil, apperrors.NotFoundWithID("Booking", ref).WithMessage("No menu summary available: booking not found")
		},
	}

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, asAdmin(httptest.NewRequest(http.MethodGet, "/pdf/menu-summary/B-404", nil)))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["error"] != "No menu summary available: booking not found" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestReports_RequirePrincipal(t *testing.T) {
	svc := &mockReportService{}
	for _, path := range []string{"/pdf/menu-summary/B-1", "/pdf/events/B-1"} {
		rec := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s status = %d, want 401", path, rec.Code)
		}
	}
}

func TestEventReport_ServesPDF(t *testing.T) {
	svc := &mockReportService{
		eventReportFunc: func(ctx context.Context, p auth.Principal, ref string) (*model.GeneratedReport, error) {
			return &model.GeneratedReport{Filename: "Event_Report_" + ref + "_2025-03-01.pdf", Content: []byte("%PDF-x")}, nil
		},
	}

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, asAdmin(httptest.NewRequest(http.MethodGet, "/pdf/events/B-7", nil)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename=Event_Report_B-7_2025-03-01.pdf` {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if rec.Header().Get("Content-Length") != "6" {
		t.Errorf("Content-Length = %q", rec.Header().Get("Content-Length"))
	}
}

func TestBookingReports(t *testing.T) {
	var gotFilter model.BookingReportFilter
	svc := &mockReportService{
		listFunc: func(ctx context.Context, filter model.BookingReportFilter) ([]model.BookingReportRow, error) {
			gotFilter = filter
			return []model.BookingReportRow{{
				BookingID:         "B-1",
				CustomerName:      "Asha",
				BookingDate:       time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
				EventID:           "E-1",
				GroomName:         "Kasun",
				BrideName:         "Asha",
				EventName:         "Wedding",
				ContactPersonName: "Nimal",
			}}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/pdf/booking-reports?date=2025-03-01&name=%20asha%20&type=Wedding", nil)
	newRouter(svc).ServeHTTP(rec, asAdmin(req))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	if gotFilter != (model.BookingReportFilter{Date: "2025-03-01", Name: "asha", Type: "Wedding"}) {
		t.Errorf("filter = %+v", gotFilter)
	}

	var rows []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d", len(rows))
	}
	for _, key := range []string{"booking_id", "customer_name", "email", "phone", "booking_date", "event_type", "Event_ID", "Groom_Name", "Bride_Name", "Event_Name", "ContactPersonName"} {
		if _, ok := rows[0][key]; !ok {
			t.Errorf("row missing key %q", key)
		}
	}
}

func TestBookingReports_EmptyListIsArray(t *testing.T) {
	svc := &mockReportService{
		listFunc: func(ctx context.Context, filter model.BookingReportFilter) ([]model.BookingReportRow, error) {
			return []model.BookingReportRow{}, nil
		},
	}

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, asAdmin(httptest.NewRequest(http.MethodGet, "/pdf/booking-reports", nil)))

	if got := rec.Body.String(); got != "[]\n" {
		t.Errorf("body = %q, want empty JSON array", got)
	}
}

func TestBookingReports_ValidationError(t *testing.T) {
	svc := &mockReportService{
		listFunc: func(ctx context.Context, filter model.BookingReportFilter) ([]model.BookingReportRow, error) {
			return nil, apperrors.Validation("Invalid report filter", map[string]any{"date": "must be a date in 2006-01-02 format"})
		},
	}

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, asAdmin(httptest.NewRequest(http.MethodGet, "/pdf/booking-reports?date=bad", nil)))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Code    string         `json:"code"`
		Details map[string]any `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Code != apperrors.CodeValidation || body.Details["date"] == nil {
		t.Errorf("unexpected body: %+v", body)
	}
}
