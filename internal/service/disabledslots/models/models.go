package models

import (
	"time"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/types"
)

// Request модели

// CreateDisabledSlotRequest запрос на создание окна блокировки
type CreateDisabledSlotRequest struct {
	UserID     int64 `json:"userId"`
	VenueID    int64 `json:"venueId"`
	ResourceID int64 `json:"resourceId"`

	SlotDate  string `json:"slotDate"`  // "2026-03-15"
	StartTime string `json:"startTime"` // "12:00"
	EndTime   string `json:"endTime"`   // "15:00"

	Reason string `json:"reason"`
}

// ToDomain конвертирует request в доменное окно блокировки
func (r *CreateDisabledSlotRequest) ToDomain() (*domain.DisabledSlot, error) {
	slotDate, err := time.Parse(domain.DateFormat, r.SlotDate)
	if err != nil {
		return nil, err
	}

	return &domain.DisabledSlot{
		VenueID:    r.VenueID,
		ResourceID: r.ResourceID,

		SlotDate:  slotDate,
		StartTime: types.TimeString(r.StartTime),
		EndTime:   types.TimeString(r.EndTime),

		Reason:    r.Reason,
		Enabled:   true,
		CreatedBy: r.UserID,
	}, nil
}

// ListDisabledSlotsRequest запрос на получение окон блокировок ресурса
type ListDisabledSlotsRequest struct {
	UserID     int64      `json:"userId"`
	VenueID    int64      `json:"venueId"`
	ResourceID int64      `json:"resourceId"`
	From       *time.Time `json:"from,omitempty"` // Начало периода (опционально)
	To         *time.Time `json:"to,omitempty"`   // Конец периода (опционально)
}

// Response модели

// DisabledSlotResponse ответ с окном блокировки
type DisabledSlotResponse struct {
	ID         int64 `json:"id"`
	VenueID    int64 `json:"venueId"`
	ResourceID int64 `json:"resourceId"`

	SlotDate  string `json:"slotDate"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`

	Reason  string `json:"reason"`
	Enabled bool   `json:"enabled"`

	CreatedBy int64     `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DisabledSlotListResponse ответ со списком окон блокировок
type DisabledSlotListResponse struct {
	DisabledSlots []DisabledSlotResponse `json:"disabledSlots"`
	Total         int                    `json:"total"`
}

// FromDomainSlot конвертирует доменное окно блокировки в response
func FromDomainSlot(d *domain.DisabledSlot) *DisabledSlotResponse {
	return &DisabledSlotResponse{
		ID:         d.ID,
		VenueID:    d.VenueID,
		ResourceID: d.ResourceID,

		SlotDate:  d.SlotDate.Format(domain.DateFormat),
		StartTime: d.StartTime.String(),
		EndTime:   d.EndTime.String(),

		Reason:  d.Reason,
		Enabled: d.Enabled,

		CreatedBy: d.CreatedBy,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// FromDomainSlotList конвертирует список доменных окон блокировок в response
func FromDomainSlotList(slots []*domain.DisabledSlot) *DisabledSlotListResponse {
	responses := make([]DisabledSlotResponse, 0, len(slots))
	for _, d := range slots {
		responses = append(responses, *FromDomainSlot(d))
	}
	return &DisabledSlotListResponse{
		DisabledSlots: responses,
		Total:         len(responses),
	}
}
