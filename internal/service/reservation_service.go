package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ifcampus/meal-gateway/internal/dto"
	"github.com/ifcampus/meal-gateway/internal/models"
	appErrors "github.com/ifcampus/meal-gateway/pkg/errors"
)

type reservationRepository interface {
	Reserve(ctx context.Context, token string, mealID int, date string) error
	Cancel(ctx context.Context, token string, mealID int, date string) error
	Justify(ctx context.Context, token string, ticketID, justificationIndex int) error
}

// ReservationService performs the reservation mutations and keeps the query
// cache coherent: a committed mutation invalidates the cached queries it
// touches, nothing is ever locked.
type ReservationService struct {
	repo      reservationRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewReservationService constructs a ReservationService.
func NewReservationService(repo reservationRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ReservationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReservationService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// Reserve books a meal for the session's student.
func (s *ReservationService) Reserve(ctx context.Context, session *models.SessionClaims, req dto.ReservationRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reservation payload")
	}

	if err := s.repo.Reserve(ctx, session.UpstreamToken, req.MealID, req.Date); err != nil {
		return err
	}

	s.invalidateMenus(ctx, session.StudentID)
	s.invalidateHistory(ctx, session.StudentID)
	return nil
}

// Cancel withdraws an existing reservation.
func (s *ReservationService) Cancel(ctx context.Context, session *models.SessionClaims, req dto.ReservationRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid cancellation payload")
	}

	if err := s.repo.Cancel(ctx, session.UpstreamToken, req.MealID, req.Date); err != nil {
		return err
	}

	s.invalidateMenus(ctx, session.StudentID)
	s.invalidateHistory(ctx, session.StudentID)
	return nil
}

// Justify records an absence justification for a ticket. Only the history
// feed depends on justifications, so only it is invalidated.
func (s *ReservationService) Justify(ctx context.Context, session *models.SessionClaims, ticketID int, req dto.JustificationRequest) error {
	if ticketID <= 0 {
		return appErrors.Clone(appErrors.ErrValidation, "invalid ticket id")
	}
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid justification payload")
	}

	if err := s.repo.Justify(ctx, session.UpstreamToken, ticketID, req.StudentJustification); err != nil {
		return err
	}

	s.invalidateHistory(ctx, session.StudentID)
	return nil
}

func (s *ReservationService) invalidateMenus(ctx context.Context, studentID int) {
	_ = s.cache.Invalidate(ctx, fmt.Sprintf("menus:%d:*", studentID))
}

func (s *ReservationService) invalidateHistory(ctx context.Context, studentID int) {
	_ = s.cache.Invalidate(ctx, fmt.Sprintf("history:%d", studentID))
}
