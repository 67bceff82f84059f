package get_bookings

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/PFM-BookingService/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос сервиса из query параметров
// Поддерживаются фильтры date, status, barberId, q и пагинация page/limit
func ToServiceRequest(query url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

	if v := query.Get("date"); v != "" {
		req.Date = &v
	}
	if v := query.Get("status"); v != "" {
		req.Status = &v
	}
	if v := query.Get("q"); v != "" {
		req.Query = &v
	}

	if v := query.Get("barberId"); v != "" {
		barberID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid barberId: %v", err)
		}
		req.BarberID = &barberID
	}

	if v := query.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid page: %v", err)
		}
		req.Page = page
	}

	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid limit: %v", err)
		}
		req.Limit = limit
	}

	return req, nil
}
