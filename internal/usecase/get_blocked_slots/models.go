package get_blocked_slots

import "time"

// Request входные данные запроса занятых интервалов
type Request struct {
	BarberID int64
	Date     string // "2006-01-02"
}

// BlockedSlot занятый интервал [StartAt, EndAt)
type BlockedSlot struct {
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
}

// Response список занятых интервалов барбера в окне вокруг запрошенной даты
type Response struct {
	Slots []BlockedSlot `json:"slots"`
}
