package domain

import "time"

// Service услуга барбершопа (каталог, read-only для ядра бронирования)
type Service struct {
	ID          int64
	Title       string
	Category    string
	Price       int64
	DurationMin int
	IsActive    bool
	CreatedAt   time.Time
}

// Barber барбер (каталог, read-only для ядра бронирования)
type Barber struct {
	ID        int64
	Name      string
	Role      string
	IsActive  bool
	CreatedAt time.Time
}
