package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/types"
)

// Request модели

// UpsertConfigRequest запрос на создание или обновление конфигурации слотов
type UpsertConfigRequest struct {
	UserID     int64  `json:"userId"`
	VenueID    int64  `json:"venueId"`
	ResourceID *int64 `json:"resourceId,omitempty"` // nil = конфигурация всей площадки

	OpeningTime         string `json:"openingTime"` // "08:00"
	ClosingTime         string `json:"closingTime"` // "22:00"
	SlotDurationMinutes int    `json:"slotDurationMinutes"`

	BasePrice         decimal.Decimal  `json:"basePrice"`
	WeekendMultiplier *decimal.Decimal `json:"weekendMultiplier,omitempty"`
	WeekendDays       []int            `json:"weekendDays,omitempty"`

	AdvanceBookingDays      int `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int `json:"minBookingNoticeMinutes"`

	Enabled *bool `json:"enabled,omitempty"` // nil = true
}

// ToDomain конвертирует request в доменную конфигурацию
func (r *UpsertConfigRequest) ToDomain() *domain.SlotConfig {
	enabled := true
	if r.Enabled != nil {
		enabled = *r.Enabled
	}

	return &domain.SlotConfig{
		VenueID:    r.VenueID,
		ResourceID: r.ResourceID,

		OpeningTime:         types.TimeString(r.OpeningTime),
		ClosingTime:         types.TimeString(r.ClosingTime),
		SlotDurationMinutes: r.SlotDurationMinutes,

		BasePrice:         r.BasePrice,
		WeekendMultiplier: r.WeekendMultiplier,
		WeekendDays:       r.WeekendDays,

		AdvanceBookingDays:      r.AdvanceBookingDays,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,

		Enabled: enabled,
	}
}

// Response модели

// ConfigResponse ответ с конфигурацией слотов
type ConfigResponse struct {
	ID         int64  `json:"id"`
	VenueID    int64  `json:"venueId"`
	ResourceID *int64 `json:"resourceId,omitempty"`

	OpeningTime         string `json:"openingTime"`
	ClosingTime         string `json:"closingTime"`
	SlotDurationMinutes int    `json:"slotDurationMinutes"`

	BasePrice         decimal.Decimal  `json:"basePrice"`
	WeekendMultiplier *decimal.Decimal `json:"weekendMultiplier,omitempty"`
	WeekendDays       []int            `json:"weekendDays,omitempty"`

	AdvanceBookingDays      int `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int `json:"minBookingNoticeMinutes"`

	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ConfigListResponse ответ со списком конфигураций площадки
type ConfigListResponse struct {
	Configs []ConfigResponse `json:"configs"`
	Total   int              `json:"total"`
}

// FromDomainConfig конвертирует доменную конфигурацию в response
func FromDomainConfig(c *domain.SlotConfig) *ConfigResponse {
	return &ConfigResponse{
		ID:         c.ID,
		VenueID:    c.VenueID,
		ResourceID: c.ResourceID,

		OpeningTime:         c.OpeningTime.String(),
		ClosingTime:         c.ClosingTime.String(),
		SlotDurationMinutes: c.SlotDurationMinutes,

		BasePrice:         c.BasePrice,
		WeekendMultiplier: c.WeekendMultiplier,
		WeekendDays:       c.WeekendDays,

		AdvanceBookingDays:      c.AdvanceBookingDays,
		MinBookingNoticeMinutes: c.MinBookingNoticeMinutes,

		Enabled:   c.Enabled,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// FromDomainConfigList конвертирует список доменных конфигураций в response
func FromDomainConfigList(configs []*domain.SlotConfig) *ConfigListResponse {
	responses := make([]ConfigResponse, 0, len(configs))
	for _, c := range configs {
		responses = append(responses, *FromDomainConfig(c))
	}
	return &ConfigListResponse{
		Configs: responses,
		Total:   len(responses),
	}
}
