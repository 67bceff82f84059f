package history

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/PFM-BookingService/internal/domain"
	"github.com/m04kA/PFM-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/PFM-BookingService/pkg/txmanager"
)

// Repository репозиторий журнала истории бронирований
// Журнал append-only: записи никогда не обновляются и не удаляются
type Repository struct {
	db txmanager.Executor
}

// NewRepository создает новый экземпляр репозитория истории
func NewRepository(db txmanager.Executor) *Repository {
	return &Repository{db: db}
}

// Append добавляет снимок бронирования в журнал
// Вызывается внутри транзакции мутации: если запись в журнал не удалась,
// мутация откатывается вместе с ней
func (r *Repository) Append(ctx context.Context, entry *domain.HistoryEntry) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_history").
		Columns(
			"booking_id",
			"code",
			"client_name",
			"client_phone",
			"barber_id",
			"service_id",
			"start_at",
			"end_at",
			"party_count",
			"note",
			"status",
			"cancellation_reason",
			"action",
		).
		Values(
			entry.BookingID,
			entry.Code,
			entry.ClientName,
			entry.ClientPhone,
			entry.BarberID,
			entry.ServiceID,
			entry.StartAt,
			entry.EndAt,
			entry.PartyCount,
			entry.Note,
			entry.Status,
			entry.CancellationReason,
			entry.Action,
		).
		Suffix("RETURNING id, action_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &entry.ActionAt)
	if err != nil {
		return fmt.Errorf("%w: Append - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Search ищет записи истории по коду, имени или телефону клиента
// Результат отсортирован по времени действия (сначала новые) и ограничен limit записями
func (r *Repository) Search(ctx context.Context, query *string, limit uint64) ([]*domain.HistoryDetails, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"bh.id",
		"bh.booking_id",
		"bh.code",
		"bh.client_name",
		"bh.client_phone",
		"bh.barber_id",
		"bh.service_id",
		"bh.start_at",
		"bh.end_at",
		"bh.party_count",
		"bh.note",
		"bh.status",
		"bh.cancellation_reason",
		"bh.action",
		"bh.action_at",
		"s.title AS service_title",
		"br.name AS barber_name",
	).
		From("booking_history bh").
		LeftJoin("services s ON bh.service_id = s.id").
		LeftJoin("barbers br ON bh.barber_id = br.id")

	if query != nil && *query != "" {
		search := "%" + *query + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"bh.code": search},
			squirrel.ILike{"bh.client_name": search},
			squirrel.ILike{"bh.client_phone": search},
		})
	}

	sqlQuery, args, err := selectBuilder.
		OrderBy("bh.action_at DESC").
		Limit(limit).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Search - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Search - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.HistoryDetails, 0)
	for rows.Next() {
		var d domain.HistoryDetails
		var actionAt sql.NullTime

		err := rows.Scan(
			&d.ID,
			&d.BookingID,
			&d.Code,
			&d.ClientName,
			&d.ClientPhone,
			&d.BarberID,
			&d.ServiceID,
			&d.StartAt,
			&d.EndAt,
			&d.PartyCount,
			&d.Note,
			&d.Status,
			&d.CancellationReason,
			&d.Action,
			&actionAt,
			&d.ServiceTitle,
			&d.BarberName,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: Search - scan row: %v", ErrScanRow, err)
		}

		d.ActionAt = actionAt.Time
		entries = append(entries, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Search - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
