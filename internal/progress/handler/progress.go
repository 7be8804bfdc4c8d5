package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"canteen/internal/progress/service"
	"canteen/pkg/auth"
	apperrors "canteen/pkg/errors"
	httputil "canteen/pkg/http"
	"canteen/pkg/logger"
)

type ProgressHandler struct {
	service service.ProgressService
	log     *logger.Logger
}

func NewProgressHandler(service service.ProgressService, log *logger.Logger) *ProgressHandler {
	return &ProgressHandler{
		service: service,
		log:     log,
	}
}

func (h *ProgressHandler) CustomerDashboard(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		h.writeError(w, "CustomerDashboard", apperrors.Unauthorized("Authentication required"))
		return
	}

	progress, err := h.service.GetProgress(r.Context(), principal, ps.ByName("bookingId"))
	if err != nil {
		h.writeError(w, "CustomerDashboard", err)
		return
	}

	if err := httputil.WriteSuccess(w, progress); err != nil {
		h.log.Error("failed to write success response", "handler", "CustomerDashboard", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ProgressHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *ProgressHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/progress/customerDashboard/:bookingId", h.CustomerDashboard)
}
