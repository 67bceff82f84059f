package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/PFM-BookingService/internal/domain"
	"github.com/m04kA/PFM-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/PFM-BookingService/pkg/txmanager"
)

const pqUniqueViolation = "23505"

var bookingColumns = []string{
	"id",
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
	"created_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её -
// создание с проверкой доступности слота обязано выполняться в транзакции,
// иначе возможна гонка check-then-act.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
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
		).
		Values(
			booking.Code,
			booking.ClientName,
			booking.ClientPhone,
			booking.BarberID,
			booking.ServiceID,
			booking.StartAt,
			booking.EndAt,
			booking.PartyCount,
			booking.Note,
			booking.Status,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, ErrDuplicateCode
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBooking(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByCode получает бронирование по публичному коду
// Присоединяет названия услуги и барбера для отображения клиенту
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.BookingDetails, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"b.id",
		"b.code",
		"b.client_name",
		"b.client_phone",
		"b.barber_id",
		"b.service_id",
		"b.start_at",
		"b.end_at",
		"b.party_count",
		"b.note",
		"b.status",
		"b.cancellation_reason",
		"b.created_at",
		"COALESCE(s.title, '') AS service_title",
		"COALESCE(br.name, '') AS barber_name",
	).
		From("bookings b").
		LeftJoin("services s ON b.service_id = s.id").
		LeftJoin("barbers br ON b.barber_id = br.id").
		Where(squirrel.Eq{"b.code": code}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - build select query: %v", ErrBuildQuery, err)
	}

	var details domain.BookingDetails
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&details.ID,
		&details.Code,
		&details.ClientName,
		&details.ClientPhone,
		&details.BarberID,
		&details.ServiceID,
		&details.StartAt,
		&details.EndAt,
		&details.PartyCount,
		&details.Note,
		&details.Status,
		&details.CancellationReason,
		&createdAt,
		&details.ServiceTitle,
		&details.BarberName,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - scan booking: %v", ErrScanRow, err)
	}

	details.CreatedAt = createdAt.Time

	return &details, nil
}

// ListOverlapping получает активные бронирования барбера, пересекающиеся с кандидатом
// Пересечение полуоткрытых интервалов: start_at < slot.EndAt AND end_at > slot.StartAt
// (граничащие интервалы не пересекаются).
// Внутри транзакции строки блокируются через FOR UPDATE - это сериализует
// конкурирующие создания бронирований на одного барбера.
func (r *Repository) ListOverlapping(ctx context.Context, barberID int64, slot domain.TimeSlot) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"barber_id": barberID}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		Where(squirrel.Lt{"start_at": slot.EndAt}).
		Where(squirrel.Gt{"end_at": slot.StartAt}).
		OrderBy("start_at ASC")

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows, "ListOverlapping")
}

// ListInWindow получает активные бронирования барбера в заданном временном окне
// Используется для выдачи занятых интервалов клиентскому слот-пикеру
func (r *Repository) ListInWindow(ctx context.Context, barberID int64, from, to time.Time) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"barber_id": barberID}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListInWindow - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListInWindow - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows, "ListInWindow")
}

// ListWithFilter получает бронирования с фильтрацией и пагинацией для админки
// Возвращает страницу бронирований и общее количество записей под фильтром
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.BookingDetails, int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	conds := filterConditions(filter)

	// 1. Общее количество записей
	countBuilder := psqlbuilder.Select("COUNT(*)").
		From("bookings b")
	for _, cond := range conds {
		countBuilder = countBuilder.Where(cond)
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListWithFilter - build count query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: ListWithFilter - scan count: %v", ErrScanRow, err)
	}

	// 2. Страница данных
	offset := (filter.Page - 1) * filter.Limit

	selectBuilder := psqlbuilder.Select(
		"b.id",
		"b.code",
		"b.client_name",
		"b.client_phone",
		"b.barber_id",
		"b.service_id",
		"b.start_at",
		"b.end_at",
		"b.party_count",
		"b.note",
		"b.status",
		"b.cancellation_reason",
		"b.created_at",
		"COALESCE(s.title, '') AS service_title",
		"COALESCE(br.name, '') AS barber_name",
	).
		From("bookings b").
		LeftJoin("services s ON b.service_id = s.id").
		LeftJoin("barbers br ON b.barber_id = br.id")
	for _, cond := range conds {
		selectBuilder = selectBuilder.Where(cond)
	}
	selectBuilder = selectBuilder.
		OrderBy("b.start_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(offset))

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	details := make([]*domain.BookingDetails, 0)
	for rows.Next() {
		var d domain.BookingDetails
		var createdAt sql.NullTime

		err := rows.Scan(
			&d.ID,
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
			&createdAt,
			&d.ServiceTitle,
			&d.BarberName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: ListWithFilter - scan row: %v", ErrScanRow, err)
		}

		d.CreatedAt = createdAt.Time
		details = append(details, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: ListWithFilter - rows error: %v", ErrScanRow, err)
	}

	return details, total, nil
}

// CountByStatus подсчитывает бронирования с указанным статусом
func (r *Repository) CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"status": status}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByStatus - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByStatus - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CountStartingSince подсчитывает бронирования, начинающиеся не раньше указанного момента
func (r *Repository) CountStartingSince(ctx context.Context, since time.Time) (int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.GtOrEq{"start_at": since}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountStartingSince - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountStartingSince - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CodeExists проверяет, занят ли публичный код бронирования
func (r *Repository) CodeExists(ctx context.Context, code string) (bool, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"code": code}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: CodeExists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: CodeExists - scan row: %w", ErrScanRow, err)
	}

	return true, nil
}

// UpdateStatus обновляет статус бронирования
// Причина отмены записывается только при переходе в cancelled, иначе сбрасывается
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, cancellationReason *string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", status).
		Where(squirrel.Eq{"id": id})

	if status == domain.StatusCancelled {
		updateBuilder = updateBuilder.Set("cancellation_reason", cancellationReason)
	} else {
		updateBuilder = updateBuilder.Set("cancellation_reason", nil)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Delete удаляет бронирование из живой таблицы
// Снимок должен быть записан в историю до удаления (см. service/bookings)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
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
		return ErrBookingNotFound
	}

	return nil
}

// filterConditions собирает WHERE условия для ListWithFilter
func filterConditions(filter domain.BookingsFilter) []squirrel.Sqlizer {
	conds := make([]squirrel.Sqlizer, 0)

	if filter.Date != nil {
		dayStart := time.Date(filter.Date.Year(), filter.Date.Month(), filter.Date.Day(), 0, 0, 0, 0, filter.Date.Location())
		conds = append(conds,
			squirrel.GtOrEq{"b.start_at": dayStart},
			squirrel.Lt{"b.start_at": dayStart.AddDate(0, 0, 1)},
		)
	}
	if filter.Status != nil {
		conds = append(conds, squirrel.Eq{"b.status": *filter.Status})
	}
	if filter.BarberID != nil {
		conds = append(conds, squirrel.Eq{"b.barber_id": *filter.BarberID})
	}
	if filter.Query != nil && *filter.Query != "" {
		search := "%" + *filter.Query + "%"
		conds = append(conds, squirrel.Or{
			squirrel.ILike{"b.code": search},
			squirrel.ILike{"b.client_name": search},
			squirrel.ILike{"b.client_phone": search},
		})
	}

	return conds
}

// statusStrings конвертирует статусы в строки для squirrel.Eq
func statusStrings(statuses []domain.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}

// scanBooking сканирует одну строку в бронирование
func (r *Repository) scanBooking(row *sql.Row, method string) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.Code,
		&booking.ClientName,
		&booking.ClientPhone,
		&booking.BarberID,
		&booking.ServiceID,
		&booking.StartAt,
		&booking.EndAt,
		&booking.PartyCount,
		&booking.Note,
		&booking.Status,
		&booking.CancellationReason,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, method, err)
	}

	booking.CreatedAt = createdAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows, method string) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.Code,
			&booking.ClientName,
			&booking.ClientPhone,
			&booking.BarberID,
			&booking.ServiceID,
			&booking.StartAt,
			&booking.EndAt,
			&booking.PartyCount,
			&booking.Note,
			&booking.Status,
			&booking.CancellationReason,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, method, err)
		}

		booking.CreatedAt = createdAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, method, err)
	}

	return bookings, nil
}
