package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"canteen/internal/reports/service"
	"canteen/pkg/auth"
	apperrors "canteen/pkg/errors"
	httputil "canteen/pkg/http"
	"canteen/pkg/logger"
	"canteen/pkg/middleware"
	"canteen/pkg/model"
)

// ServiceRoles may reach the reports service at all. Customers only get as far
// as the menu summary, where ownership is checked per booking.
var ServiceRoles = []auth.Role{auth.RoleCustomer, auth.RoleAdmin, auth.RoleSuperAdmin}

var staffRoles = []auth.Role{auth.RoleAdmin, auth.RoleSuperAdmin}

type ReportHandler struct {
	service service.ReportService
	log     *logger.Logger
}

func NewReportHandler(service service.ReportService, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		log:     log,
	}
}

func (h *ReportHandler) MenuSummary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		h.writeError(w, "MenuSummary", apperrors.Unauthorized("Authentication required"))
		return
	}

	report, err := h.service.MenuSummary(r.Context(), principal, ps.ByName("bookingId"))
	if err != nil {
		h.writeError(w, "MenuSummary", err)
		return
	}

	h.writeReport(w, "MenuSummary", report)
}

func (h *ReportHandler) EventReport(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		h.writeError(w, "EventReport", apperrors.Unauthorized("Authentication required"))
		return
	}

	report, err := h.service.EventReport(r.Context(), principal, ps.ByName("bookingId"))
	if err != nil {
		h.writeError(w, "EventReport", err)
		return
	}

	h.writeReport(w, "EventReport", report)
}

func (h *ReportHandler) BookingReports(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := model.BookingReportFilter{
		Date: httputil.QueryValue(r, "date"),
		Name: httputil.QueryValue(r, "name"),
		Type: httputil.QueryValue(r, "type"),
	}

	rows, err := h.service.ListBookingReports(r.Context(), filter)
	if err != nil {
		h.writeError(w, "BookingReports", err)
		return
	}

	if err := httputil.WriteSuccess(w, rows); err != nil {
		h.log.Error("failed to write success response", "handler", "BookingReports", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReportHandler) writeReport(w http.ResponseWriter, handler string, report *model.GeneratedReport) {
	w.Header().Set("Cache-Control", "no-store")
	if err := httputil.WriteAttachment(w, httputil.ContentTypePDF, report.Filename, report.Content); err != nil {
		h.log.Error("failed to write attachment", "handler", handler, "operation", "WriteAttachment", "error", err)
	}
}

func (h *ReportHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *ReportHandler) RegisterRoutes(router *httprouter.Router) {
	staffOnly := middleware.RequireRoleHandle(h.log, staffRoles...)

	router.GET("/pdf/menu-summary/:bookingId", h.MenuSummary)
	router.GET("/pdf/events/:bookingId", staffOnly(h.EventReport))
	router.GET("/pdf/booking-reports", staffOnly(h.BookingReports))
}
