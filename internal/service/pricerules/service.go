// Package pricerules сервис управления правилами цен ресурсов.
// Все операции доступны только менеджерам площадки.
package pricerules

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	ruleRepo "github.com/alexsmw/PlayPoint-VenueBooking/internal/infra/storage/pricerule"
	venueClient "github.com/alexsmw/PlayPoint-VenueBooking/internal/integrations/venueservice"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/service/pricerules/models"
	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/types"
)

// Service сервис для работы с правилами цен
type Service struct {
	ruleRepo    PriceRuleRepository
	venueClient VenueServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса правил цен
func NewService(
	ruleRepo PriceRuleRepository,
	venueClient VenueServiceClient,
	logger Logger,
) *Service {
	return &Service{
		ruleRepo:    ruleRepo,
		venueClient: venueClient,
		logger:      logger,
	}
}

// Create создает новое правило цены для ресурса площадки
// Доступно только менеджерам площадки
func (s *Service) Create(ctx context.Context, req *models.CreatePriceRuleRequest) (*models.PriceRuleResponse, error) {
	s.logger.Info("Create: creating price rule for venue=%d, resource=%d, user=%d",
		req.VenueID, req.ResourceID, req.UserID)

	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	if err := s.checkManagerAccess(ctx, req.VenueID, req.UserID); err != nil {
		return nil, err
	}

	// Проверяем, что ресурс существует и принадлежит площадке
	resource, err := s.venueClient.GetResource(ctx, req.VenueID, req.ResourceID)
	if err != nil {
		if errors.Is(err, venueClient.ErrResourceNotFound) {
			s.logger.Warn("Create: resource id=%d not found in venue id=%d", req.ResourceID, req.VenueID)
			return nil, ErrResourceNotFound
		}
		s.logger.Error("Create: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: Create - failed to get resource: %v", ErrInternal, err)
	}
	if resource.VenueID != req.VenueID {
		s.logger.Warn("Create: resource id=%d belongs to another venue", req.ResourceID)
		return nil, ErrResourceNotFound
	}

	rule, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("Create: invalid onDate: %v", err)
		return nil, fmt.Errorf("%w: invalid onDate format", ErrInvalidInput)
	}

	created, err := s.ruleRepo.Create(ctx, rule)
	if err != nil {
		s.logger.Error("Create: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created price rule id=%d", created.ID)
	return models.FromDomainRule(created), nil
}

// ListByVenue получает все правила цен площадки
// Доступно только менеджерам площадки
func (s *Service) ListByVenue(ctx context.Context, venueID, userID int64) (*models.PriceRuleListResponse, error) {
	s.logger.Info("ListByVenue: fetching price rules for venue=%d, user=%d", venueID, userID)

	if err := s.checkManagerAccess(ctx, venueID, userID); err != nil {
		return nil, err
	}

	rules, err := s.ruleRepo.GetAllByVenue(ctx, venueID)
	if err != nil {
		s.logger.Error("ListByVenue: repository error for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: ListByVenue - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByVenue: successfully fetched %d rules for venue=%d", len(rules), venueID)
	return models.FromDomainRuleList(rules), nil
}

// Disable выключает правило цены (soft delete)
// Уже созданные брони сохраняют зафиксированную цену
// Доступно только менеджерам площадки
func (s *Service) Disable(ctx context.Context, ruleID, venueID, userID int64) error {
	s.logger.Info("Disable: disabling price rule id=%d, venue=%d, user=%d", ruleID, venueID, userID)

	if err := s.checkManagerAccess(ctx, venueID, userID); err != nil {
		return err
	}

	rule, err := s.ruleRepo.GetByID(ctx, ruleID)
	if err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("Disable: price rule id=%d not found", ruleID)
			return ErrRuleNotFound
		}
		s.logger.Error("Disable: repository error for rule id=%d: %v", ruleID, err)
		return fmt.Errorf("%w: Disable - repository error: %v", ErrInternal, err)
	}

	// Правило должно принадлежать площадке из запроса
	if rule.VenueID != venueID {
		s.logger.Warn("Disable: price rule id=%d belongs to another venue", ruleID)
		return ErrRuleNotFound
	}

	if err := s.ruleRepo.Disable(ctx, ruleID); err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			return ErrRuleNotFound
		}
		s.logger.Error("Disable: repository error for rule id=%d: %v", ruleID, err)
		return fmt.Errorf("%w: Disable - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Disable: successfully disabled price rule id=%d", ruleID)
	return nil
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

// validateCreateRequest валидирует запрос создания правила
func validateCreateRequest(req *models.CreatePriceRuleRequest) error {
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}
	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(req.Name) > domain.MaxPriceRuleNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidInput, domain.MaxPriceRuleNameLength)
	}

	switch domain.DayType(req.DayType) {
	case domain.DayTypeAll, domain.DayTypeWeekday, domain.DayTypeWeekend:
	default:
		return fmt.Errorf("%w: dayType must be \"all\", \"weekday\" or \"weekend\"", ErrInvalidInput)
	}

	start := types.TimeString(req.StartTime)
	end := types.TimeString(req.EndTime)
	if err := start.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	if err := end.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}
	if !start.IsBefore(end) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if req.BasePrice == nil && req.ExtraCharge == nil {
		return fmt.Errorf("%w: basePrice or extraCharge is required", ErrInvalidInput)
	}
	if req.BasePrice != nil && req.BasePrice.IsNegative() {
		return fmt.Errorf("%w: basePrice must not be negative", ErrInvalidInput)
	}

	if req.Priority < 0 || req.Priority > domain.MaxPriceRulePriority {
		return fmt.Errorf("%w: priority must be within [0, %d]", ErrInvalidInput, domain.MaxPriceRulePriority)
	}

	return nil
}
