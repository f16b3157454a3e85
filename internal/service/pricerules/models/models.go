package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/types"
)

// Request модели

// CreatePriceRuleRequest запрос на создание правила цены
type CreatePriceRuleRequest struct {
	UserID     int64 `json:"userId"`
	VenueID    int64 `json:"venueId"`
	ResourceID int64 `json:"resourceId"`

	Name    string  `json:"name"`
	DayType string  `json:"dayType"`          // "all", "weekday", "weekend"
	OnDate  *string `json:"onDate,omitempty"` // "2026-03-08", перекрывает dayType

	StartTime string `json:"startTime"` // "18:00"
	EndTime   string `json:"endTime"`   // "22:00"

	BasePrice   *decimal.Decimal `json:"basePrice,omitempty"`
	ExtraCharge *decimal.Decimal `json:"extraCharge,omitempty"`

	Priority int `json:"priority"`
}

// ToDomain конвертирует request в доменное правило
func (r *CreatePriceRuleRequest) ToDomain() (*domain.PriceRule, error) {
	rule := &domain.PriceRule{
		VenueID:    r.VenueID,
		ResourceID: r.ResourceID,

		Name:    r.Name,
		DayType: domain.DayType(r.DayType),

		StartTime: types.TimeString(r.StartTime),
		EndTime:   types.TimeString(r.EndTime),

		BasePrice:   r.BasePrice,
		ExtraCharge: r.ExtraCharge,

		Priority: r.Priority,
		Enabled:  true,
	}

	if r.OnDate != nil {
		onDate, err := time.Parse(domain.DateFormat, *r.OnDate)
		if err != nil {
			return nil, err
		}
		rule.OnDate = &onDate
	}

	return rule, nil
}

// Response модели

// PriceRuleResponse ответ с правилом цены
type PriceRuleResponse struct {
	ID         int64 `json:"id"`
	VenueID    int64 `json:"venueId"`
	ResourceID int64 `json:"resourceId"`

	Name    string  `json:"name"`
	DayType string  `json:"dayType"`
	OnDate  *string `json:"onDate,omitempty"`

	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`

	BasePrice   *decimal.Decimal `json:"basePrice,omitempty"`
	ExtraCharge *decimal.Decimal `json:"extraCharge,omitempty"`

	Priority int  `json:"priority"`
	Enabled  bool `json:"enabled"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PriceRuleListResponse ответ со списком правил площадки
type PriceRuleListResponse struct {
	Rules []PriceRuleResponse `json:"rules"`
	Total int                 `json:"total"`
}

// FromDomainRule конвертирует доменное правило в response
func FromDomainRule(r *domain.PriceRule) *PriceRuleResponse {
	resp := &PriceRuleResponse{
		ID:         r.ID,
		VenueID:    r.VenueID,
		ResourceID: r.ResourceID,

		Name:    r.Name,
		DayType: string(r.DayType),

		StartTime: r.StartTime.String(),
		EndTime:   r.EndTime.String(),

		BasePrice:   r.BasePrice,
		ExtraCharge: r.ExtraCharge,

		Priority: r.Priority,
		Enabled:  r.Enabled,

		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}

	if r.OnDate != nil {
		onDate := r.OnDate.Format(domain.DateFormat)
		resp.OnDate = &onDate
	}

	return resp
}

// FromDomainRuleList конвертирует список доменных правил в response
func FromDomainRuleList(rules []*domain.PriceRule) *PriceRuleListResponse {
	responses := make([]PriceRuleResponse, 0, len(rules))
	for _, r := range rules {
		responses = append(responses, *FromDomainRule(r))
	}
	return &PriceRuleListResponse{
		Rules: responses,
		Total: len(responses),
	}
}
