package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/PFM-BookingService/internal/domain"
	"github.com/m04kA/PFM-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/PFM-BookingService/pkg/txmanager"
)

// Repository read-only репозиторий каталога (услуги и барберы)
// Ядро бронирования каталог не мутирует - записи каталога обслуживает
// административный CRUD за пределами этого сервиса
type Repository struct {
	db txmanager.Executor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db txmanager.Executor) *Repository {
	return &Repository{db: db}
}

// GetService получает услугу по ID
func (r *Repository) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"title",
		"category",
		"price",
		"duration_min",
		"is_active",
		"created_at",
	).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var service domain.Service
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.Title,
		&service.Category,
		&service.Price,
		&service.DurationMin,
		&service.IsActive,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	service.CreatedAt = createdAt.Time

	return &service, nil
}

// GetBarber получает барбера по ID
func (r *Repository) GetBarber(ctx context.Context, id int64) (*domain.Barber, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"role",
		"is_active",
		"created_at",
	).
		From("barbers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBarber - build select query: %v", ErrBuildQuery, err)
	}

	var barber domain.Barber
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&barber.ID,
		&barber.Name,
		&barber.Role,
		&barber.IsActive,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBarberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBarber - scan barber: %v", ErrScanRow, err)
	}

	barber.CreatedAt = createdAt.Time

	return &barber, nil
}
