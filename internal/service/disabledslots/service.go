// Package disabledslots сервис управления окнами блокировок ресурсов
// (техобслуживание, закрытые мероприятия). Все операции доступны только
// менеджерам площадки.
package disabledslots

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	disabledRepo "github.com/alexsmw/PlayPoint-VenueBooking/internal/infra/storage/disabledslot"
	venueClient "github.com/alexsmw/PlayPoint-VenueBooking/internal/integrations/venueservice"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/service/disabledslots/models"
	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/types"
)

// Service сервис для работы с окнами блокировок
type Service struct {
	disabledRepo DisabledSlotRepository
	venueClient  VenueServiceClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса окон блокировок
func NewService(
	disabledRepo DisabledSlotRepository,
	venueClient VenueServiceClient,
	logger Logger,
) *Service {
	return &Service{
		disabledRepo: disabledRepo,
		venueClient:  venueClient,
		logger:       logger,
	}
}

// Create создает окно блокировки для ресурса
// Уже существующие брони в окне не отменяются: блокировка закрывает
// только дальнейшее резервирование
// Доступно только менеджерам площадки
func (s *Service) Create(ctx context.Context, req *models.CreateDisabledSlotRequest) (*models.DisabledSlotResponse, error) {
	s.logger.Info("Create: creating disabled slot for venue=%d, resource=%d, date=%s, user=%d",
		req.VenueID, req.ResourceID, req.SlotDate, req.UserID)

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

	slot, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("Create: invalid slotDate: %v", err)
		return nil, fmt.Errorf("%w: invalid slotDate format", ErrInvalidInput)
	}

	created, err := s.disabledRepo.Create(ctx, slot)
	if err != nil {
		s.logger.Error("Create: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created disabled slot id=%d", created.ID)
	return models.FromDomainSlot(created), nil
}

// ListByResource получает окна блокировок ресурса за период
// Доступно только менеджерам площадки
func (s *Service) ListByResource(ctx context.Context, req *models.ListDisabledSlotsRequest) (*models.DisabledSlotListResponse, error) {
	s.logger.Info("ListByResource: fetching disabled slots for venue=%d, resource=%d, user=%d",
		req.VenueID, req.ResourceID, req.UserID)

	if err := s.checkManagerAccess(ctx, req.VenueID, req.UserID); err != nil {
		return nil, err
	}

	slots, err := s.disabledRepo.ListByResource(ctx, req.VenueID, req.ResourceID, req.From, req.To)
	if err != nil {
		s.logger.Error("ListByResource: repository error for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: ListByResource - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByResource: successfully fetched %d disabled slots for resource=%d", len(slots), req.ResourceID)
	return models.FromDomainSlotList(slots), nil
}

// Delete снимает окно блокировки: слоты сразу возвращаются в доступные
// Доступно только менеджерам площадки
func (s *Service) Delete(ctx context.Context, slotID, venueID, userID int64) error {
	s.logger.Info("Delete: deleting disabled slot id=%d, venue=%d, user=%d", slotID, venueID, userID)

	if err := s.checkManagerAccess(ctx, venueID, userID); err != nil {
		return err
	}

	slot, err := s.disabledRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, disabledRepo.ErrDisabledSlotNotFound) {
			s.logger.Warn("Delete: disabled slot id=%d not found", slotID)
			return ErrDisabledSlotNotFound
		}
		s.logger.Error("Delete: repository error for slot id=%d: %v", slotID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	// Окно должно принадлежать площадке из запроса
	if slot.VenueID != venueID {
		s.logger.Warn("Delete: disabled slot id=%d belongs to another venue", slotID)
		return ErrDisabledSlotNotFound
	}

	if err := s.disabledRepo.Delete(ctx, slotID); err != nil {
		if errors.Is(err, disabledRepo.ErrDisabledSlotNotFound) {
			return ErrDisabledSlotNotFound
		}
		s.logger.Error("Delete: repository error for slot id=%d: %v", slotID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted disabled slot id=%d", slotID)
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

// validateCreateRequest валидирует запрос создания окна блокировки
func validateCreateRequest(req *models.CreateDisabledSlotRequest) error {
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}
	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.SlotDate == "" {
		return fmt.Errorf("%w: slotDate is required", ErrInvalidInput)
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

	if req.Reason == "" {
		return fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	if len(req.Reason) > domain.MaxDisableReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxDisableReasonLength)
	}

	return nil
}
