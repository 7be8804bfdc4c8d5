package service

import (
	"context"
	"errors"
	"sync"

	progresserrors "canteen/internal/progress/errors"
	"canteen/internal/progress/repository"
	"canteen/pkg/auth"
	"canteen/pkg/config"
	apperrors "canteen/pkg/errors"
	"canteen/pkg/model"
)

type BookingRefResolver interface {
	Resolve(raw string) (string, error)
}

type ProgressService interface {
	GetProgress(ctx context.Context, principal auth.Principal, bookingRef string) (*model.Progress, error)
}

type progressService struct {
	repo     repository.ProgressRepository
	resolver BookingRefResolver
	cfg      *config.Config
}

func NewProgressService(
	repo repository.ProgressRepository,
	resolver BookingRefResolver,
	cfg *config.Config,
) ProgressService {
	return &progressService{
		repo:     repo,
		resolver: resolver,
		cfg:      cfg,
	}
}

func (s *progressService) GetProgress(ctx context.Context, principal auth.Principal, bookingRef string) (*model.Progress, error) {
	bookingID, err := s.resolver.Resolve(bookingRef)
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.FindBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, progresserrors.ErrBookingNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", bookingID)
		}
		s.cfg.Log.Error("Failed to find booking",
			"booking_id", bookingID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	if !principal.CanReadBooking(booking.CustomerID) {
		s.cfg.Log.Warn("Progress access denied",
			"booking_id", bookingID,
			"subject", principal.Subject,
			"role", principal.Role,
		)
		return nil, apperrors.Forbidden("You do not have access to this booking")
	}

	complete, warnings := s.collectTasks(ctx, bookingID)
	progress := model.NewProgress(complete, warnings)

	s.cfg.Log.Info("Progress computed",
		"booking_id", bookingID,
		"completed", progress.CompletedCount,
		"total", progress.TotalTasks,
		"warnings", len(warnings),
	)

	return &progress, nil
}

// collectTasks queries every task concurrently. A failing query marks its task
// Incomplete and produces a warning instead of failing the whole call.
func (s *progressService) collectTasks(ctx context.Context, bookingID string) (map[model.TaskKey]bool, []model.ProgressWarning) {
	results := make([]bool, len(model.TaskKeys))
	errs := make([]error, len(model.TaskKeys))

	var wg sync.WaitGroup
	wg.Add(len(model.TaskKeys))
	for i, key := range model.TaskKeys {
		go func() {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
			defer cancel()
			results[i], errs[i] = s.repo.IsTaskComplete(ctx, key, bookingID)
		}()
	}
	wg.Wait()

	complete := make(map[model.TaskKey]bool, len(model.TaskKeys))
	var warnings []model.ProgressWarning
	for i, key := range model.TaskKeys {
		if errs[i] != nil {
			s.cfg.Log.Warn("Progress task query failed, reporting as incomplete",
				"booking_id", bookingID,
				"task", key,
				"error", errs[i],
			)
			warnings = append(warnings, model.ProgressWarning{
				Task:    key,
				Message: key.Title() + " status could not be determined",
			})
			continue
		}
		complete[key] = results[i]
	}

	return complete, warnings
}
