package create_booking

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PFM-BookingService/internal/domain"
	storage "github.com/m04kA/PFM-BookingService/internal/infra/storage/booking"
)

type fakeBookingRepo struct {
	overlapping   []*domain.Booking
	existingCodes map[string]bool
	createErrs    []error
	created       *domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return nil, err
		}
	}

	created := *booking
	created.ID = 42
	created.CreatedAt = time.Now()
	f.created = &created
	return &created, nil
}

func (f *fakeBookingRepo) ListOverlapping(_ context.Context, _ int64, _ domain.TimeSlot) ([]*domain.Booking, error) {
	return f.overlapping, nil
}

func (f *fakeBookingRepo) CodeExists(_ context.Context, code string) (bool, error) {
	return f.existingCodes[code], nil
}

type fakeAvailabilityRepo struct {
	blocks []*domain.AvailabilityBlock
}

func (f *fakeAvailabilityRepo) ListCovering(_ context.Context, _ int64, _ time.Time) ([]*domain.AvailabilityBlock, error) {
	return f.blocks, nil
}

type fakeCatalogRepo struct {
	service *domain.Service
	barber  *domain.Barber
}

func (f *fakeCatalogRepo) GetService(_ context.Context, _ int64) (*domain.Service, error) {
	return f.service, nil
}

func (f *fakeCatalogRepo) GetBarber(_ context.Context, _ int64) (*domain.Barber, error) {
	return f.barber, nil
}

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// seqCodeGenerator выдает заранее заданные коды по порядку
type seqCodeGenerator struct {
	codes []string
	next  int
}

func (g *seqCodeGenerator) Generate() string {
	code := g.codes[g.next%len(g.codes)]
	g.next++
	return code
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func activeService() *domain.Service {
	return &domain.Service{ID: 1, Title: "Стрижка", DurationMin: 30, IsActive: true}
}

func activeBarber() *domain.Barber {
	return &domain.Barber{ID: 1, Name: "Алексей", IsActive: true}
}

func validRequest() *Request {
	return &Request{
		ClientName:  "Иван",
		ClientPhone: "+79990001122",
		BarberID:    1,
		ServiceID:   1,
		Date:        "2026-09-01",
		Time:        "14:00",
		PartyCount:  1,
	}
}

func newTestUseCase(bookingRepo *fakeBookingRepo, availabilityRepo *fakeAvailabilityRepo, catalogRepo *fakeCatalogRepo) *UseCase {
	uc := NewUseCase(bookingRepo, availabilityRepo, catalogRepo, &fakeTxManager{}, nopLogger{})
	uc.codeGen = &seqCodeGenerator{codes: []string{"PFM-A1B2C3"}}
	return uc
}

func existingBooking(t *testing.T, start, end string, status domain.BookingStatus) *domain.Booking {
	t.Helper()

	startAt, err := time.ParseInLocation(domain.DateTimeFormat, start, time.Local)
	require.NoError(t, err)
	endAt, err := time.ParseInLocation(domain.DateTimeFormat, end, time.Local)
	require.NoError(t, err)

	return &domain.Booking{
		ID:      7,
		Code:    "PFM-FF00AA",
		StartAt: startAt,
		EndAt:   endAt,
		Status:  status,
	}
}

func TestExecute_Success(t *testing.T) {
	bookingRepo := &fakeBookingRepo{existingCodes: map[string]bool{}}
	uc := newTestUseCase(bookingRepo, &fakeAvailabilityRepo{}, &fakeCatalogRepo{
		service: activeService(),
		barber:  activeBarber(),
	})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "PFM-A1B2C3", resp.Code)

	require.NotNil(t, bookingRepo.created)
	assert.Equal(t, domain.StatusPending, bookingRepo.created.Status)
	assert.Equal(t, 30*time.Minute, bookingRepo.created.Slot().Duration())
}

func TestExecute_PartyCountScalesDuration(t *testing.T) {
	// Группа из двух человек на 30-минутную услугу занимает час
	bookingRepo := &fakeBookingRepo{existingCodes: map[string]bool{}}
	uc := newTestUseCase(bookingRepo, &fakeAvailabilityRepo{}, &fakeCatalogRepo{
		service: activeService(),
		barber:  activeBarber(),
	})

	req := validRequest()
	req.PartyCount = 2

	_, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, bookingRepo.created)
	assert.Equal(t, 60*time.Minute, bookingRepo.created.Slot().Duration())
}

func TestExecute_MissingFields(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeAvailabilityRepo{}, &fakeCatalogRepo{
		service: activeService(),
		barber:  activeBarber(),
	})

	mutations := map[string]func(r *Request){
		"no client name":  func(r *Request) { r.ClientName = "" },
		"no client phone": func(r *Request) { r.ClientPhone = "" },
		"no barber":       func(r *Request) { r.BarberID = 0 },
		"no service":      func(r *Request) { r.ServiceID = 0 },
		"no date":         func(r *Request) { r.Date = "" },
		"no time":         func(r *Request) { r.Time = "" },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			req := validRequest()
			mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrMissingFields)
		})
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeAvailabilityRepo{}, &fakeCatalogRepo{
		service: activeService(),
		barber:  activeBarber(),
	})

	t.Run("party count too large", func(t *testing.T) {
		req := validRequest()
		req.PartyCount = domain.MaxPartyCount + 1

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("note too long", func(t *testing.T) {
		req := validRequest()
		note := strings.Repeat("x", domain.MaxNoteLength+1)
		req.Note = &note

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("malformed date", func(t *testing.T) {
		req := validRequest()
		req.Date = "01.09.2026"

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestExecute_InactiveService(t *testing.T) {
	service := activeService()
	service.IsActive = false

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeAvailabilityRepo{}, &fakeCatalogRepo{
		service: service,
		barber:  activeBarber(),
	})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InactiveBarber(t *testing.T) {
	barber := activeBarber()
	barber.IsActive = false

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeAvailabilityRepo{}, &fakeCatalogRepo{
		service: activeService(),
		barber:  barber,
	})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBarberNotFound)
}

func TestExecute_SlotConflict(t *testing.T) {
	bookingRepo := &fakeBookingRepo{
		existingCodes: map[string]bool{},
		overlapping: []*domain.Booking{
			existingBooking(t, "2026-09-01 13:45", "2026-09-01 14:15", domain.StatusConfirmed),
		},
	}

	uc := newTestUseCase(bookingRepo, &fakeAvailabilityRepo{}, &fakeCatalogRepo{
		service: activeService(),
		barber:  activeBarber(),
	})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, bookingRepo.created)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	bookingRepo := &fakeBookingRepo{
		existingCodes: map[string]bool{},
		overlapping: []*domain.Booking{
			existingBooking(t, "2026-09-01 13:45", "2026-09-01 14:15", domain.StatusCancelled),
		},
	}

	uc := newTestUseCase(bookingRepo, &fakeAvailabilityRepo{}, &fakeCatalogRepo{
		service: activeService(),
		barber:  activeBarber(),
	})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_TouchingSlotDoesNotConflict(t *testing.T) {
	// Существующее бронирование заканчивается ровно в начале нового
	bookingRepo := &fakeBookingRepo{
		existingCodes: map[string]bool{},
		overlapping: []*domain.Booking{
			existingBooking(t, "2026-09-01 13:30", "2026-09-01 14:00", domain.StatusConfirmed),
		},
	}

	uc := newTestUseCase(bookingRepo, &fakeAvailabilityRepo{}, &fakeCatalogRepo{
		service: activeService(),
		barber:  activeBarber(),
	})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_BarberUnavailable(t *testing.T) {
	startDate, _ := time.ParseInLocation(domain.DateFormat, "2026-08-30", time.Local)
	endDate, _ := time.ParseInLocation(domain.DateFormat, "2026-09-05", time.Local)

	uc := newTestUseCase(&fakeBookingRepo{existingCodes: map[string]bool{}}, &fakeAvailabilityRepo{
		blocks: []*domain.AvailabilityBlock{
			{ID: 3, BarberID: 1, StartDate: startDate, EndDate: endDate},
		},
	}, &fakeCatalogRepo{
		service: activeService(),
		barber:  activeBarber(),
	})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBarberUnavailable)
}

func TestExecute_CodeCollisionRegenerates(t *testing.T) {
	bookingRepo := &fakeBookingRepo{
		existingCodes: map[string]bool{"PFM-A1B2C3": true},
	}

	uc := newTestUseCase(bookingRepo, &fakeAvailabilityRepo{}, &fakeCatalogRepo{
		service: activeService(),
		barber:  activeBarber(),
	})
	uc.codeGen = &seqCodeGenerator{codes: []string{"PFM-A1B2C3", "PFM-D4E5F6"}}

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "PFM-D4E5F6", resp.Code)
}

func TestExecute_DuplicateCodeAtInsertRegenerates(t *testing.T) {
	// Проверка CodeExists прошла, но конкурентная вставка заняла код первой -
	// уникальный индекс сработал, бронирование создается повторно с новым кодом
	bookingRepo := &fakeBookingRepo{
		existingCodes: map[string]bool{},
		createErrs:    []error{storage.ErrDuplicateCode},
	}

	uc := newTestUseCase(bookingRepo, &fakeAvailabilityRepo{}, &fakeCatalogRepo{
		service: activeService(),
		barber:  activeBarber(),
	})
	uc.codeGen = &seqCodeGenerator{codes: []string{"PFM-A1B2C3", "PFM-D4E5F6"}}

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "PFM-D4E5F6", resp.Code)
	require.NotNil(t, bookingRepo.created)
	assert.Equal(t, "PFM-D4E5F6", bookingRepo.created.Code)
}

func TestExecute_DuplicateCodeAtInsertExhausted(t *testing.T) {
	createErrs := make([]error, maxCodeAttempts)
	for i := range createErrs {
		createErrs[i] = storage.ErrDuplicateCode
	}

	bookingRepo := &fakeBookingRepo{
		existingCodes: map[string]bool{},
		createErrs:    createErrs,
	}

	uc := newTestUseCase(bookingRepo, &fakeAvailabilityRepo{}, &fakeCatalogRepo{
		service: activeService(),
		barber:  activeBarber(),
	})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInternal)
	assert.Nil(t, bookingRepo.created)
}

func TestRandomCodeGenerator_Format(t *testing.T) {
	gen := &RandomCodeGenerator{}

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := gen.Generate()
		assert.True(t, strings.HasPrefix(code, domain.CodePrefix))
		assert.Len(t, code, len(domain.CodePrefix)+domain.CodeRandomBytes*2)
		assert.Equal(t, strings.ToUpper(code), code)
		seen[code] = true
	}

	// 100 кодов из 16M комбинаций практически не коллидируют
	assert.Greater(t, len(seen), 95)
}
