package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PFM-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PFM-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/PFM-BookingService/internal/service/bookings/models"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
	details  map[string]*domain.BookingDetails

	updatedStatus *domain.BookingStatus
	updatedReason *string
	deletedID     *int64

	countsByStatus map[domain.BookingStatus]int64
	countsSince    []time.Time
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings:       map[int64]*domain.Booking{},
		details:        map[string]*domain.BookingDetails{},
		countsByStatus: map[domain.BookingStatus]int64{},
	}
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copy := *b
	return &copy, nil
}

func (f *fakeBookingRepo) GetByCode(_ context.Context, code string) (*domain.BookingDetails, error) {
	d, ok := f.details[code]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return d, nil
}

func (f *fakeBookingRepo) ListWithFilter(_ context.Context, _ domain.BookingsFilter) ([]*domain.BookingDetails, int64, error) {
	items := make([]*domain.BookingDetails, 0, len(f.details))
	for _, d := range f.details {
		items = append(items, d)
	}
	return items, int64(len(items)), nil
}

func (f *fakeBookingRepo) CountByStatus(_ context.Context, status domain.BookingStatus) (int64, error) {
	return f.countsByStatus[status], nil
}

func (f *fakeBookingRepo) CountStartingSince(_ context.Context, since time.Time) (int64, error) {
	f.countsSince = append(f.countsSince, since)
	return int64(len(f.countsSince)), nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus, reason *string) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	b.CancellationReason = reason
	f.updatedStatus = &status
	f.updatedReason = reason
	return nil
}

func (f *fakeBookingRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(f.bookings, id)
	f.deletedID = &id
	return nil
}

type fakeHistoryRepo struct {
	entries []*domain.HistoryEntry
	err     error
}

func (f *fakeHistoryRepo) Append(_ context.Context, entry *domain.HistoryEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(repo *fakeBookingRepo, history *fakeHistoryRepo) *Service {
	return NewService(repo, history, &fakeTxManager{}, nopLogger{})
}

func pendingBooking(id int64) *domain.Booking {
	startAt := time.Date(2026, 9, 1, 14, 0, 0, 0, time.Local)
	return &domain.Booking{
		ID:          id,
		Code:        "PFM-A1B2C3",
		ClientName:  "Иван",
		ClientPhone: "+79990001122",
		BarberID:    1,
		ServiceID:   1,
		StartAt:     startAt,
		EndAt:       startAt.Add(30 * time.Minute),
		PartyCount:  1,
		Status:      domain.StatusPending,
	}
}

func TestTransition_PendingToConfirmed(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.bookings[1] = pendingBooking(1)
	history := &fakeHistoryRepo{}
	svc := newTestService(repo, history)

	err := svc.Transition(context.Background(), 1, &models.TransitionRequest{Status: "confirmed"})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, repo.bookings[1].Status)

	// Снимок в истории фиксирует состояние после перехода
	require.Len(t, history.entries, 1)
	assert.Equal(t, domain.ActionStatusChange, history.entries[0].Action)
	assert.Equal(t, domain.StatusConfirmed, history.entries[0].Status)
	assert.Equal(t, "PFM-A1B2C3", history.entries[0].Code)
}

func TestTransition_CancelledKeepsReason(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.bookings[1] = pendingBooking(1)
	history := &fakeHistoryRepo{}
	svc := newTestService(repo, history)

	reason := "клиент не придет"
	err := svc.Transition(context.Background(), 1, &models.TransitionRequest{
		Status:             "cancelled",
		CancellationReason: &reason,
	})

	require.NoError(t, err)
	require.NotNil(t, repo.updatedReason)
	assert.Equal(t, reason, *repo.updatedReason)

	require.Len(t, history.entries, 1)
	require.NotNil(t, history.entries[0].CancellationReason)
	assert.Equal(t, reason, *history.entries[0].CancellationReason)
}

func TestTransition_ReasonIgnoredForNonCancelled(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.bookings[1] = pendingBooking(1)
	history := &fakeHistoryRepo{}
	svc := newTestService(repo, history)

	reason := "не должна сохраниться"
	err := svc.Transition(context.Background(), 1, &models.TransitionRequest{
		Status:             "confirmed",
		CancellationReason: &reason,
	})

	require.NoError(t, err)
	assert.Nil(t, repo.updatedReason)
	require.Len(t, history.entries, 1)
	assert.Nil(t, history.entries[0].CancellationReason)
}

func TestTransition_DoneArchivesAndPurges(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.bookings[1] = pendingBooking(1)
	history := &fakeHistoryRepo{}
	svc := newTestService(repo, history)

	err := svc.Transition(context.Background(), 1, &models.TransitionRequest{Status: "done"})

	require.NoError(t, err)

	// Живая строка удалена, след остается только в журнале
	_, exists := repo.bookings[1]
	assert.False(t, exists)
	require.NotNil(t, repo.deletedID)
	assert.Equal(t, int64(1), *repo.deletedID)

	require.Len(t, history.entries, 1)
	assert.Equal(t, domain.StatusDone, history.entries[0].Status)
	assert.Equal(t, domain.ActionStatusChange, history.entries[0].Action)
}

func TestTransition_InvalidStatus(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.bookings[1] = pendingBooking(1)
	svc := newTestService(repo, &fakeHistoryRepo{})

	err := svc.Transition(context.Background(), 1, &models.TransitionRequest{Status: "archived"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestTransition_NotPermitted(t *testing.T) {
	repo := newFakeBookingRepo()
	booking := pendingBooking(1)
	booking.Status = domain.StatusCancelled
	repo.bookings[1] = booking
	history := &fakeHistoryRepo{}
	svc := newTestService(repo, history)

	err := svc.Transition(context.Background(), 1, &models.TransitionRequest{Status: "confirmed"})

	assert.ErrorIs(t, err, ErrCannotTransition)
	assert.Empty(t, history.entries)
}

func TestTransition_ToPendingNotPermitted(t *testing.T) {
	repo := newFakeBookingRepo()
	booking := pendingBooking(1)
	booking.Status = domain.StatusConfirmed
	repo.bookings[1] = booking
	svc := newTestService(repo, &fakeHistoryRepo{})

	err := svc.Transition(context.Background(), 1, &models.TransitionRequest{Status: "pending"})
	assert.ErrorIs(t, err, ErrCannotTransition)
}

func TestTransition_NotFound(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), &fakeHistoryRepo{})

	err := svc.Transition(context.Background(), 99, &models.TransitionRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestTransition_HistoryFailureAborts(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.bookings[1] = pendingBooking(1)
	history := &fakeHistoryRepo{err: assert.AnError}
	svc := newTestService(repo, history)

	err := svc.Transition(context.Background(), 1, &models.TransitionRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestDelete_SnapshotsBeforeRemoval(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.bookings[1] = pendingBooking(1)
	history := &fakeHistoryRepo{}
	svc := newTestService(repo, history)

	err := svc.Delete(context.Background(), 1)

	require.NoError(t, err)
	_, exists := repo.bookings[1]
	assert.False(t, exists)

	require.Len(t, history.entries, 1)
	assert.Equal(t, domain.ActionDeleted, history.entries[0].Action)
	// Снимок сохраняет статус на момент удаления
	assert.Equal(t, domain.StatusPending, history.entries[0].Status)
}

func TestDelete_NotFound(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), &fakeHistoryRepo{})

	err := svc.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByCode_NotFound(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), &fakeHistoryRepo{})

	_, err := svc.GetByCode(context.Background(), "PFM-000000")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByCode_Success(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.details["PFM-A1B2C3"] = &domain.BookingDetails{
		Booking:      *pendingBooking(1),
		ServiceTitle: "Стрижка",
		BarberName:   "Алексей",
	}
	svc := newTestService(repo, &fakeHistoryRepo{})

	resp, err := svc.GetByCode(context.Background(), "PFM-A1B2C3")

	require.NoError(t, err)
	assert.Equal(t, "PFM-A1B2C3", resp.Code)
	assert.Equal(t, "Стрижка", resp.ServiceTitle)
	assert.Equal(t, "Алексей", resp.BarberName)
	assert.Equal(t, "pending", resp.Status)
}

func TestStats_PeriodBoundaries(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.countsByStatus[domain.StatusPending] = 5
	svc := newTestService(repo, &fakeHistoryRepo{})

	// Среда 2 сентября 2026, 15:30
	now := time.Date(2026, 9, 2, 15, 30, 0, 0, time.Local)
	svc.timeProvider = &fixedTimeProvider{now: now}

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.Pending)

	require.Len(t, repo.countsSince, 3)

	// Сегодня: начало текущих суток
	assert.Equal(t, time.Date(2026, 9, 2, 0, 0, 0, 0, time.Local), repo.countsSince[0])
	// Неделя начинается с воскресенья 30 августа
	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local), repo.countsSince[1])
	// Месяц: первое сентября
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local), repo.countsSince[2])
}

func TestList_Pagination(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.details["PFM-A1B2C3"] = &domain.BookingDetails{Booking: *pendingBooking(1)}
	svc := newTestService(repo, &fakeHistoryRepo{})

	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{})

	require.NoError(t, err)
	assert.Equal(t, models.DefaultPage, resp.Page)
	assert.Equal(t, models.DefaultLimit, resp.Limit)
	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, int64(1), resp.TotalPages)
}

func TestList_InvalidFilter(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), &fakeHistoryRepo{})

	badStatus := "archived"
	_, err := svc.List(context.Background(), &models.ListBookingsRequest{Status: &badStatus})
	assert.ErrorIs(t, err, ErrInvalidInput)

	badDate := "01.09.2026"
	_, err = svc.List(context.Background(), &models.ListBookingsRequest{Date: &badDate})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
