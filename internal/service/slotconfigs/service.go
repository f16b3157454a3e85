// Package slotconfigs сервис управления конфигурациями слотов площадки.
// Все операции доступны только менеджерам площадки.
package slotconfigs

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	venueClient "github.com/alexsmw/PlayPoint-VenueBooking/internal/integrations/venueservice"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/service/slotconfigs/models"
)

// Service сервис для работы с конфигурациями слотов
type Service struct {
	configRepo  ConfigRepository
	venueClient VenueServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса конфигураций
func NewService(
	configRepo ConfigRepository,
	venueClient VenueServiceClient,
	logger Logger,
) *Service {
	return &Service{
		configRepo:  configRepo,
		venueClient: venueClient,
		logger:      logger,
	}
}

// GetAllByVenue получает все конфигурации площадки (общую и ресурсные)
// Доступно только менеджерам площадки
func (s *Service) GetAllByVenue(ctx context.Context, venueID, userID int64) (*models.ConfigListResponse, error) {
	s.logger.Info("GetAllByVenue: fetching configs for venue=%d, user=%d", venueID, userID)

	if err := s.checkManagerAccess(ctx, venueID, userID); err != nil {
		return nil, err
	}

	configs, err := s.configRepo.GetAllByVenue(ctx, venueID)
	if err != nil {
		s.logger.Error("GetAllByVenue: repository error for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: GetAllByVenue - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAllByVenue: successfully fetched %d configs for venue=%d", len(configs), venueID)
	return models.FromDomainConfigList(configs), nil
}

// Upsert создает или обновляет конфигурацию слотов площадки или ресурса
// Доступно только менеджерам площадки
func (s *Service) Upsert(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Upsert: upserting config for venue=%d, resource=%v, user=%d",
		req.VenueID, req.ResourceID, req.UserID)

	if err := validateUpsertRequest(req); err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, err
	}

	if err := s.checkManagerAccess(ctx, req.VenueID, req.UserID); err != nil {
		return nil, err
	}

	// Для ресурсной конфигурации проверяем существование ресурса
	if req.ResourceID != nil {
		resource, err := s.venueClient.GetResource(ctx, req.VenueID, *req.ResourceID)
		if err != nil {
			if errors.Is(err, venueClient.ErrResourceNotFound) {
				s.logger.Warn("Upsert: resource id=%d not found in venue id=%d", *req.ResourceID, req.VenueID)
				return nil, ErrResourceNotFound
			}
			s.logger.Error("Upsert: failed to get resource id=%d: %v", *req.ResourceID, err)
			return nil, fmt.Errorf("%w: Upsert - failed to get resource: %v", ErrInternal, err)
		}
		if resource.VenueID != req.VenueID {
			s.logger.Warn("Upsert: resource id=%d belongs to another venue", *req.ResourceID)
			return nil, ErrResourceNotFound
		}
	}

	saved, err := s.configRepo.Upsert(ctx, req.ToDomain())
	if err != nil {
		s.logger.Error("Upsert: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully saved config id=%d for venue=%d", saved.ID, req.VenueID)
	return models.FromDomainConfig(saved), nil
}

// checkManagerAccess проверяет, что пользователь является менеджером площадки
func (s *Service) checkManagerAccess(ctx context.Context, venueID, userID int64) error {
	venue, err := s.venueClient.GetVenue(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueClient.ErrVenueNotFound) {
			s.logger.Warn("checkManagerAccess: venue id=%d not found", venueID)
			return ErrVenueNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get venue id=%d: %v", venueID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get venue: %v", ErrInternal, err)
	}

	if !venue.IsManager(userID) {
		s.logger.Warn("checkManagerAccess: user id=%d is not a manager of venue id=%d", userID, venueID)
		return ErrAccessDenied
	}

	return nil
}

// validateUpsertRequest валидирует запрос конфигурации против бизнес-ограничений
func validateUpsertRequest(req *models.UpsertConfigRequest) error {
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}
	if req.ResourceID != nil && *req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	opening := req.ToDomain().OpeningTime
	closing := req.ToDomain().ClosingTime
	if err := opening.Validate(); err != nil {
		return fmt.Errorf("%w: invalid openingTime: %v", ErrInvalidInput, err)
	}
	if err := closing.Validate(); err != nil {
		return fmt.Errorf("%w: invalid closingTime: %v", ErrInvalidInput, err)
	}
	if !opening.IsBefore(closing) {
		return fmt.Errorf("%w: openingTime must be before closingTime", ErrInvalidInput)
	}

	if req.SlotDurationMinutes < domain.MinSlotDurationMinutes || req.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDurationMinutes must be within [%d, %d]",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if req.BasePrice.IsNegative() {
		return fmt.Errorf("%w: basePrice must not be negative", ErrInvalidInput)
	}
	if req.WeekendMultiplier != nil && req.WeekendMultiplier.IsNegative() {
		return fmt.Errorf("%w: weekendMultiplier must not be negative", ErrInvalidInput)
	}

	for _, d := range req.WeekendDays {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: weekendDays values must be within [0, 6]", ErrInvalidInput)
		}
	}

	if req.AdvanceBookingDays < domain.MinAdvanceBookingDays || req.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be within [%d, %d]",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}
	if req.MinBookingNoticeMinutes < domain.MinNoticeMinutes || req.MinBookingNoticeMinutes > domain.MaxNoticeMinutes {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be within [%d, %d]",
			ErrInvalidInput, domain.MinNoticeMinutes, domain.MaxNoticeMinutes)
	}

	return nil
}
