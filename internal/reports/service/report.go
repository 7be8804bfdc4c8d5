package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	reporterrors "canteen/internal/reports/errors"
	"canteen/internal/reports/render"
	"canteen/internal/reports/repository"
	"canteen/internal/reports/validator"
	"canteen/pkg/auth"
	"canteen/pkg/config"
	apperrors "canteen/pkg/errors"
	"canteen/pkg/middleware"
	"canteen/pkg/model"
	"canteen/pkg/sanitizer"

	"github.com/google/uuid"
)

const publishTimeout = 5 * time.Second

type BookingRefResolver interface {
	Resolve(raw string) (string, error)
}

type DocumentRenderer interface {
	MenuSummary(ctx context.Context, data *model.MenuSummaryData, generatedAt time.Time) (*render.Document, error)
	EventReport(ctx context.Context, data *model.EventReportData, generatedAt time.Time) (*render.Document, error)
}

type ReportEventPublisher interface {
	PublishReportGenerated(ctx context.Context, event model.ReportGeneratedEvent, correlationID string) error
}

type ReportService interface {
	MenuSummary(ctx context.Context, principal auth.Principal, bookingRef string) (*model.GeneratedReport, error)
	EventReport(ctx context.Context, principal auth.Principal, bookingRef string) (*model.GeneratedReport, error)
	ListBookingReports(ctx context.Context, filter model.BookingReportFilter) ([]model.BookingReportRow, error)
}

type reportService struct {
	repo      repository.ReportRepository
	renderer  DocumentRenderer
	resolver  BookingRefResolver
	publisher ReportEventPublisher
	validator *validator.ReportValidator
	cfg       *config.Config
	now       func() time.Time
}

func NewReportService(
	repo repository.ReportRepository,
	renderer DocumentRenderer,
	resolver BookingRefResolver,
	publisher ReportEventPublisher,
	validator *validator.ReportValidator,
	cfg *config.Config,
) ReportService {
	return &reportService{
		repo:      repo,
		renderer:  renderer,
		resolver:  resolver,
		publisher: publisher,
		validator: validator,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *reportService) MenuSummary(ctx context.Context, principal auth.Principal, bookingRef string) (*model.GeneratedReport, error) {
	bookingID, err := s.resolver.Resolve(bookingRef)
	if err != nil {
		return nil, err
	}

	data, err := s.repo.LoadMenuSummary(ctx, bookingID)
	if err != nil {
		return nil, s.mapLoadError(err, bookingID, "menu summary")
	}
	if err := s.authorize(principal, data.Booking); err != nil {
		return nil, err
	}

	generatedAt := s.now()
	doc, err := s.renderer.MenuSummary(ctx, data, generatedAt)
	if err != nil {
		s.cfg.Log.Error("Failed to render menu summary", "booking_id", bookingID, "error", err)
		return nil, apperrors.Internal("Failed to generate menu summary", err)
	}

	report := s.newReport(bookingID, model.ReportMenuSummary, "Menu_Summary", doc, generatedAt)
	s.cfg.Log.Info("Menu summary generated",
		"booking_id", bookingID,
		"items", itemCount(data.Menu),
		"pages", report.Pages,
		"size_bytes", len(report.Content),
	)
	s.publish(ctx, principal, report, generatedAt)

	return report, nil
}

func (s *reportService) EventReport(ctx context.Context, principal auth.Principal, bookingRef string) (*model.GeneratedReport, error) {
	bookingID, err := s.resolver.Resolve(bookingRef)
	if err != nil {
		return nil, err
	}

	data, err := s.repo.LoadEventReport(ctx, bookingID)
	if err != nil {
		return nil, s.mapLoadError(err, bookingID, "event report")
	}
	if err := s.authorize(principal, data.Booking); err != nil {
		return nil, err
	}

	generatedAt := s.now()
	doc, err := s.renderer.EventReport(ctx, data, generatedAt)
	if err != nil {
		s.cfg.Log.Error("Failed to render event report", "booking_id", bookingID, "error", err)
		return nil, apperrors.Internal("Failed to generate event report", err)
	}

	report := s.newReport(bookingID, model.ReportEvent, "Event_Report", doc, generatedAt)
	s.cfg.Log.Info("Event report generated",
		"booking_id", bookingID,
		"pages", report.Pages,
		"size_bytes", len(report.Content),
	)
	s.publish(ctx, principal, report, generatedAt)

	return report, nil
}

func (s *reportService) ListBookingReports(ctx context.Context, filter model.BookingReportFilter) ([]model.BookingReportRow, error) {
	if err := s.validator.ValidateFilter(&filter); err != nil {
		s.cfg.Log.Warn("Booking report filter validation failed", "filter", filter, "error", err)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, apperrors.Validation("Invalid report filter", verrs.Details())
		}
		return nil, apperrors.Validation("Invalid report filter", map[string]any{"error": err.Error()})
	}

	rows, err := s.repo.ListBookingReportRows(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list booking reports", "error", err)
		return nil, apperrors.Internal("Failed to retrieve booking reports", err)
	}

	rows = FilterRows(rows, filter, s.cfg.Location())
	for i := range rows {
		rows[i].Phone = sanitizer.FormatPhone(rows[i].Phone)
	}

	s.cfg.Log.Debug("Booking reports listed", "count", len(rows), "filter", filter)
	return rows, nil
}

func (s *reportService) mapLoadError(err error, bookingID, what string) error {
	if errors.Is(err, reporterrors.ErrBookingNotFound) {
		return apperrors.NotFoundWithID("Booking", bookingID).
			WithMessage(fmt.Sprintf("No %s available: booking not found", what))
	}
	if apperrors.IsAppError(err) {
		return err
	}
	s.cfg.Log.Error("Failed to load report data", "booking_id", bookingID, "report", what, "error", err)
	return apperrors.Internal("Failed to retrieve booking", err)
}

func (s *reportService) authorize(principal auth.Principal, booking model.Booking) error {
	if principal.CanReadBooking(booking.CustomerID) {
		return nil
	}
	s.cfg.Log.Warn("Report access denied",
		"booking_id", booking.BookingID,
		"subject", principal.Subject,
		"role", principal.Role,
	)
	return apperrors.Forbidden("You do not have access to this booking")
}

func (s *reportService) newReport(bookingID string, kind model.ReportKind, prefix string, doc *render.Document, generatedAt time.Time) *model.GeneratedReport {
	return &model.GeneratedReport{
		BookingID: bookingID,
		Kind:      kind,
		Filename:  ReportFilename(prefix, bookingID, generatedAt, s.cfg.Location()),
		Pages:     doc.Pages,
		Content:   doc.Content,
	}
}

// publish is best-effort: a failure is logged and never reaches the caller.
func (s *reportService) publish(ctx context.Context, principal auth.Principal, report *model.GeneratedReport, generatedAt time.Time) {
	event := model.ReportGeneratedEvent{
		EventID:     uuid.NewString(),
		BookingID:   report.BookingID,
		Kind:        report.Kind,
		Filename:    report.Filename,
		SizeBytes:   len(report.Content),
		RequestedBy: principal.Subject,
		GeneratedAt: generatedAt.UTC(),
	}
	if err := s.validator.ValidateEvent(&event); err != nil {
		s.cfg.Log.Error("Report event failed validation, not published", "booking_id", report.BookingID, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.PublishReportGenerated(ctx, event, middleware.RequestIDFromContext(ctx)); err != nil {
		s.cfg.Log.Warn("Failed to publish report event",
			"booking_id", report.BookingID,
			"event_id", event.EventID,
			"error", err,
		)
	}
}

// ReportFilename builds <prefix>_<bookingID>_<YYYY-MM-DD>.pdf using the
// generation date in loc.
func ReportFilename(prefix, bookingID string, generatedAt time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return fmt.Sprintf("%s_%s_%s.pdf", prefix, bookingID, generatedAt.In(loc).Format(time.DateOnly))
}

func itemCount(menu *model.MenuSelection) int {
	if menu == nil {
		return 0
	}
	return menu.ItemCount()
}
