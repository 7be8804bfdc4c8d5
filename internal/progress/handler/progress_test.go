package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"canteen/pkg/auth"
	apperrors "canteen/pkg/errors"
	"canteen/pkg/logger"
	"canteen/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockProgressService struct {
	getProgressFunc func(ctx context.Context, principal auth.Principal, bookingRef string) (*model.Progress, error)
}

func (m *mockProgressService) GetProgress(ctx context.Context, principal auth.Principal, bookingRef string) (*model.Progress, error) {
	return m.getProgressFunc(ctx, principal, bookingRef)
}

func newRouter(svc *mockProgressService) *httprouter.Router {
	router := httprouter.New()
	NewProgressHandler(svc, logger.Discard()).RegisterRoutes(router)
	return router
}

func authed(req *http.Request) *http.Request {
	return req.WithContext(auth.WithPrincipal(req.Context(), auth.Principal{Subject: "c1", Role: auth.RoleCustomer}))
}

func TestCustomerDashboard_Success(t *testing.T) {
	var gotRef string
	svc := &mockProgressService{
		getProgressFunc: func(_ context.Context, p auth.Principal, ref string) (*model.Progress, error) {
			gotRef = ref
			progress := model.NewProgress(map[model.TaskKey]bool{
				model.TaskEventDetails:  true,
				model.TaskMenuSelection: true,
			}, nil)
			return &progress, nil
		},
	}

	req := authed(httptest.NewRequest(http.MethodGet, "/progress/customerDashboard/B-1001", nil))
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	if gotRef != "B-1001" {
		t.Errorf("service got ref %q", gotRef)
	}

	var body struct {
		OverallProgress int                   `json:"overallProgress"`
		CompletedCount  int                   `json:"completedCount"`
		TotalTasks      int                   `json:"totalTasks"`
		Tasks           map[string]model.Task `json:"tasks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.OverallProgress != 40 || body.CompletedCount != 2 || body.TotalTasks != 5 {
		t.Errorf("body = %+v", body)
	}
	if body.Tasks["menuSelection"].Status != model.TaskComplete || body.Tasks["barSelection"].Status != model.TaskIncomplete {
		t.Errorf("tasks = %+v", body.Tasks)
	}
}

func TestCustomerDashboard_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		authed     bool
		wantStatus int
	}{
		{"unauthenticated", nil, false, http.StatusUnauthorized},
		{"not found", apperrors.NotFoundWithID("Booking", "B-404"), true, http.StatusNotFound},
		{"forbidden", apperrors.Forbidden("no"), true, http.StatusForbidden},
		{"bad ref", apperrors.InvalidInput("booking reference is not valid"), true, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockProgressService{
				getProgressFunc: func(context.Context, auth.Principal, string) (*model.Progress, error) {
					return nil, tt.err
				},
			}
			req := httptest.NewRequest(http.MethodGet, "/progress/customerDashboard/B-404", nil)
			if tt.authed {
				req = authed(req)
			}
			rec := httptest.NewRecorder()
			newRouter(svc).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["error"] == "" {
				t.Errorf("expected JSON error body, got %s", rec.Body.String())
			}
		})
	}
}
