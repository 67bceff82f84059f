package create_booking

// Request входные данные создания бронирования
// Date и Time приходят строками ("2006-01-02", "15:04") и интерпретируются
// в локальном времени сервера
type Request struct {
	ClientName  string
	ClientPhone string
	BarberID    int64
	ServiceID   int64
	Date        string
	Time        string
	Note        *string
	PartyCount  int
}

// Response результат создания бронирования
// Код - публичный идентификатор, по которому клиент проверяет статус записи
type Response struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
}
