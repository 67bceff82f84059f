package models

import (
	"fmt"
	"time"

	"github.com/m04kA/PFM-BookingService/internal/domain"
)

// Пагинация административного списка
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// BookingResponse бронирование с названиями услуги и барбера
type BookingResponse struct {
	ID                 int64   `json:"id"`
	Code               string  `json:"code"`
	ClientName         string  `json:"clientName"`
	ClientPhone        string  `json:"clientPhone"`
	BarberID           int64   `json:"barberId"`
	BarberName         string  `json:"barberName"`
	ServiceID          int64   `json:"serviceId"`
	ServiceTitle       string  `json:"serviceTitle"`
	StartAt            string  `json:"startAt"`
	EndAt              string  `json:"endAt"`
	PartyCount         int     `json:"partyCount"`
	Note               *string `json:"note,omitempty"`
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CreatedAt          string  `json:"createdAt"`
}

// BookingListResponse страница административного списка бронирований
type BookingListResponse struct {
	Items      []*BookingResponse `json:"items"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	Total      int64              `json:"total"`
	TotalPages int64              `json:"totalPages"`
}

// StatsResponse счетчики для административной панели
type StatsResponse struct {
	Pending int64 `json:"pending"`
	Today   int64 `json:"today"`
	Week    int64 `json:"week"`
	Month   int64 `json:"month"`
}

// TransitionRequest запрос на смену статуса бронирования
type TransitionRequest struct {
	Status             string
	CancellationReason *string
}

// ListBookingsRequest запрос административного списка с фильтрацией
type ListBookingsRequest struct {
	Date     *string
	Status   *string
	BarberID *int64
	Query    *string
	Page     int
	Limit    int
}

// ToDomainFilter конвертирует запрос в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		BarberID: r.BarberID,
		Query:    r.Query,
		Page:     r.Page,
		Limit:    r.Limit,
	}

	if filter.Page < 1 {
		filter.Page = DefaultPage
	}
	if filter.Limit < 1 {
		filter.Limit = DefaultLimit
	}
	if filter.Limit > MaxLimit {
		filter.Limit = MaxLimit
	}

	if r.Date != nil && *r.Date != "" {
		date, err := time.ParseInLocation(domain.DateFormat, *r.Date, time.Local)
		if err != nil {
			return domain.BookingsFilter{}, fmt.Errorf("invalid date: %v", err)
		}
		filter.Date = &date
	}

	if r.Status != nil && *r.Status != "" {
		status, ok := domain.ParseBookingStatus(*r.Status)
		if !ok {
			return domain.BookingsFilter{}, fmt.Errorf("invalid status: %q", *r.Status)
		}
		filter.Status = &status
	}

	return filter, nil
}

// FromDomainDetails конвертирует domain модель в response
func FromDomainDetails(d *domain.BookingDetails) *BookingResponse {
	return &BookingResponse{
		ID:                 d.ID,
		Code:               d.Code,
		ClientName:         d.ClientName,
		ClientPhone:        d.ClientPhone,
		BarberID:           d.BarberID,
		BarberName:         d.BarberName,
		ServiceID:          d.ServiceID,
		ServiceTitle:       d.ServiceTitle,
		StartAt:            d.StartAt.Format(time.RFC3339),
		EndAt:              d.EndAt.Format(time.RFC3339),
		PartyCount:         d.PartyCount,
		Note:               d.Note,
		Status:             string(d.Status),
		CancellationReason: d.CancellationReason,
		CreatedAt:          d.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainDetailsList конвертирует список domain моделей в responses
func FromDomainDetailsList(list []*domain.BookingDetails) []*BookingResponse {
	result := make([]*BookingResponse, len(list))
	for i, d := range list {
		result[i] = FromDomainDetails(d)
	}
	return result
}
