package availability_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PFM-BookingService/internal/domain"
	availabilityRepo "github.com/m04kA/PFM-BookingService/internal/infra/storage/availability"
	catalogRepo "github.com/m04kA/PFM-BookingService/internal/infra/storage/catalog"
	"github.com/m04kA/PFM-BookingService/internal/service/availability"
)

type fakeAvailabilityRepo struct {
	blocks  []*domain.AvailabilityBlock
	deleted []int64
}

func (f *fakeAvailabilityRepo) Create(_ context.Context, block *domain.AvailabilityBlock) (*domain.AvailabilityBlock, error) {
	created := *block
	created.ID = int64(len(f.blocks) + 1)
	created.CreatedAt = time.Now()
	f.blocks = append(f.blocks, &created)
	return &created, nil
}

func (f *fakeAvailabilityRepo) ListByBarber(_ context.Context, barberID int64) ([]*domain.AvailabilityBlock, error) {
	result := make([]*domain.AvailabilityBlock, 0)
	for _, b := range f.blocks {
		if b.BarberID == barberID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeAvailabilityRepo) Delete(_ context.Context, id int64) error {
	for i, b := range f.blocks {
		if b.ID == id {
			f.blocks = append(f.blocks[:i], f.blocks[i+1:]...)
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return availabilityRepo.ErrBlockNotFound
}

type fakeCatalogRepo struct {
	barbers map[int64]*domain.Barber
}

func (f *fakeCatalogRepo) GetBarber(_ context.Context, id int64) (*domain.Barber, error) {
	b, ok := f.barbers[id]
	if !ok {
		return nil, catalogRepo.ErrBarberNotFound
	}
	return b, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*availability.Service, *fakeAvailabilityRepo) {
	repo := &fakeAvailabilityRepo{}
	catalog := &fakeCatalogRepo{barbers: map[int64]*domain.Barber{
		1: {ID: 1, Name: "Алексей", IsActive: true},
	}}
	return availability.NewService(repo, catalog, nopLogger{}), repo
}

func TestCreate_Success(t *testing.T) {
	svc, repo := newTestService()

	reason := "отпуск"
	block, err := svc.Create(context.Background(), &availability.CreateBlockRequest{
		BarberID:  1,
		StartDate: "2026-09-01",
		EndDate:   "2026-09-07",
		Reason:    &reason,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), block.ID)
	assert.Equal(t, "2026-09-01", block.StartDate)
	assert.Equal(t, "2026-09-07", block.EndDate)
	require.NotNil(t, block.Reason)
	assert.Equal(t, reason, *block.Reason)
	assert.Len(t, repo.blocks, 1)
}

func TestCreate_SingleDayBlock(t *testing.T) {
	svc, _ := newTestService()

	block, err := svc.Create(context.Background(), &availability.CreateBlockRequest{
		BarberID:  1,
		StartDate: "2026-09-01",
		EndDate:   "2026-09-01",
	})

	require.NoError(t, err)
	assert.Equal(t, block.StartDate, block.EndDate)
}

func TestCreate_InvalidInput(t *testing.T) {
	svc, _ := newTestService()

	tests := []struct {
		name string
		req  *availability.CreateBlockRequest
	}{
		{
			name: "missing start date",
			req:  &availability.CreateBlockRequest{BarberID: 1, EndDate: "2026-09-07"},
		},
		{
			name: "missing end date",
			req:  &availability.CreateBlockRequest{BarberID: 1, StartDate: "2026-09-01"},
		},
		{
			name: "malformed start date",
			req:  &availability.CreateBlockRequest{BarberID: 1, StartDate: "01.09.2026", EndDate: "2026-09-07"},
		},
		{
			name: "end before start",
			req:  &availability.CreateBlockRequest{BarberID: 1, StartDate: "2026-09-07", EndDate: "2026-09-01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, availability.ErrInvalidInput)
		})
	}
}

func TestCreate_BarberNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), &availability.CreateBlockRequest{
		BarberID:  99,
		StartDate: "2026-09-01",
		EndDate:   "2026-09-07",
	})
	assert.ErrorIs(t, err, availability.ErrBarberNotFound)
}

func TestListByBarber(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), &availability.CreateBlockRequest{
		BarberID:  1,
		StartDate: "2026-09-01",
		EndDate:   "2026-09-07",
	})
	require.NoError(t, err)

	blocks, err := svc.ListByBarber(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, blocks, 1)

	empty, err := svc.ListByBarber(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDelete(t *testing.T) {
	svc, repo := newTestService()

	block, err := svc.Create(context.Background(), &availability.CreateBlockRequest{
		BarberID:  1,
		StartDate: "2026-09-01",
		EndDate:   "2026-09-07",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), block.ID))
	assert.Empty(t, repo.blocks)

	err = svc.Delete(context.Background(), block.ID)
	assert.ErrorIs(t, err, availability.ErrBlockNotFound)
}

func TestAvailabilityBlock_Covers(t *testing.T) {
	start, _ := time.ParseInLocation(domain.DateFormat, "2026-09-01", time.Local)
	end, _ := time.ParseInLocation(domain.DateFormat, "2026-09-07", time.Local)
	block := &domain.AvailabilityBlock{StartDate: start, EndDate: end}

	inside, _ := time.ParseInLocation(domain.DateTimeFormat, "2026-09-03 15:00", time.Local)
	assert.True(t, block.Covers(inside))

	// Границы включительны с обеих сторон
	assert.True(t, block.Covers(start))
	assert.True(t, block.Covers(end.Add(23*time.Hour)))

	before, _ := time.ParseInLocation(domain.DateFormat, "2026-08-31", time.Local)
	after, _ := time.ParseInLocation(domain.DateFormat, "2026-09-08", time.Local)
	assert.False(t, block.Covers(before))
	assert.False(t, block.Covers(after))
}
