package availability

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/PFM-BookingService/internal/domain"
	"github.com/m04kA/PFM-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/PFM-BookingService/pkg/txmanager"
)

var blockColumns = []string{
	"id",
	"barber_id",
	"start_date",
	"end_date",
	"reason",
	"created_at",
}

// Repository репозиторий периодов недоступности барберов
type Repository struct {
	db txmanager.Executor
}

// NewRepository создает новый экземпляр репозитория недоступности
func NewRepository(db txmanager.Executor) *Repository {
	return &Repository{db: db}
}

// Create создает период недоступности барбера
func (r *Repository) Create(ctx context.Context, block *domain.AvailabilityBlock) (*domain.AvailabilityBlock, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("barber_availability").
		Columns("barber_id", "start_date", "end_date", "reason").
		Values(block.BarberID, block.StartDate, block.EndDate, block.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&block.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	block.CreatedAt = createdAt.Time

	return block, nil
}

// ListByBarber получает все периоды недоступности барбера, отсортированные по дате начала
func (r *Repository) ListByBarber(ctx context.Context, barberID int64) ([]*domain.AvailabilityBlock, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockColumns...).
		From("barber_availability").
		Where(squirrel.Eq{"barber_id": barberID}).
		OrderBy("start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByBarber - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBarber - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBlocks(rows, "ListByBarber")
}

// ListCovering получает периоды недоступности барбера, накрывающие указанную дату
// Используется проверкой доступности при создании бронирования
func (r *Repository) ListCovering(ctx context.Context, barberID int64, date time.Time) ([]*domain.AvailabilityBlock, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	query, args, err := psqlbuilder.Select(blockColumns...).
		From("barber_availability").
		Where(squirrel.Eq{"barber_id": barberID}).
		Where(squirrel.LtOrEq{"start_date": day}).
		Where(squirrel.GtOrEq{"end_date": day}).
		OrderBy("start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListCovering - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCovering - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBlocks(rows, "ListCovering")
}

// Delete удаляет период недоступности
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("barber_availability").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockNotFound
	}

	return nil
}

// scanBlocks сканирует результаты запроса в слайс периодов недоступности
func (r *Repository) scanBlocks(rows *sql.Rows, method string) ([]*domain.AvailabilityBlock, error) {
	blocks := make([]*domain.AvailabilityBlock, 0)

	for rows.Next() {
		var block domain.AvailabilityBlock
		var createdAt sql.NullTime

		err := rows.Scan(
			&block.ID,
			&block.BarberID,
			&block.StartDate,
			&block.EndDate,
			&block.Reason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, method, err)
		}

		block.CreatedAt = createdAt.Time
		blocks = append(blocks, &block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, method, err)
	}

	return blocks, nil
}
