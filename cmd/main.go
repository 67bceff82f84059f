package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createAvailabilityBlockHandler "github.com/m04kA/PFM-BookingService/internal/api/handlers/create_availability_block"
	createBookingHandler "github.com/m04kA/PFM-BookingService/internal/api/handlers/create_booking"
	deleteAvailabilityBlockHandler "github.com/m04kA/PFM-BookingService/internal/api/handlers/delete_availability_block"
	deleteBookingHandler "github.com/m04kA/PFM-BookingService/internal/api/handlers/delete_booking"
	getBarberAvailabilityHandler "github.com/m04kA/PFM-BookingService/internal/api/handlers/get_barber_availability"
	getBlockedSlotsHandler "github.com/m04kA/PFM-BookingService/internal/api/handlers/get_blocked_slots"
	getBookingHandler "github.com/m04kA/PFM-BookingService/internal/api/handlers/get_booking"
	getBookingStatsHandler "github.com/m04kA/PFM-BookingService/internal/api/handlers/get_booking_stats"
	getBookingsHandler "github.com/m04kA/PFM-BookingService/internal/api/handlers/get_bookings"
	searchHistoryHandler "github.com/m04kA/PFM-BookingService/internal/api/handlers/search_history"
	updateBookingStatusHandler "github.com/m04kA/PFM-BookingService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/PFM-BookingService/internal/api/middleware"
	"github.com/m04kA/PFM-BookingService/internal/config"
	availabilityRepo "github.com/m04kA/PFM-BookingService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/PFM-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/PFM-BookingService/internal/infra/storage/catalog"
	historyRepo "github.com/m04kA/PFM-BookingService/internal/infra/storage/history"
	availabilityService "github.com/m04kA/PFM-BookingService/internal/service/availability"
	bookingsService "github.com/m04kA/PFM-BookingService/internal/service/bookings"
	historyService "github.com/m04kA/PFM-BookingService/internal/service/history"
	createBookingUC "github.com/m04kA/PFM-BookingService/internal/usecase/create_booking"
	getBlockedSlotsUC "github.com/m04kA/PFM-BookingService/internal/usecase/get_blocked_slots"
	"github.com/m04kA/PFM-BookingService/pkg/logger"
	"github.com/m04kA/PFM-BookingService/pkg/metrics"
	"github.com/m04kA/PFM-BookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting PFM-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(db)
	historyRepository := historyRepo.NewRepository(db)
	availabilityRepository := availabilityRepo.NewRepository(db)
	catalogRepository := catalogRepo.NewRepository(db)

	txMgr := txmanager.NewTransactionManager(db)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		historyRepository,
		txMgr,
		log,
	)
	historySvc := historyService.NewService(historyRepository, log)
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		catalogRepository,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		catalogRepository,
		txMgr,
		log,
	)
	getBlockedSlotsUseCase := getBlockedSlotsUC.NewUseCase(bookingRepository, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBlockedSlots := getBlockedSlotsHandler.NewHandler(getBlockedSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookings := getBookingsHandler.NewHandler(bookingSvc, log)
	getBookingStats := getBookingStatsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	searchHistory := searchHistoryHandler.NewHandler(historySvc, log)
	createAvailabilityBlock := createAvailabilityBlockHandler.NewHandler(availabilitySvc, log)
	getBarberAvailability := getBarberAvailabilityHandler.NewHandler(availabilitySvc, log)
	deleteAvailabilityBlock := deleteAvailabilityBlockHandler.NewHandler(availabilitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Занятые интервалы барбера для слот-пикера
	// Регистрируется до /bookings/{code}, иначе mux сопоставит blocked-slots с кодом
	api.HandleFunc("/bookings/blocked-slots", getBlockedSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Проверка бронирования по публичному коду
	api.HandleFunc("/bookings/{code}", getBooking.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют Bearer токен администратора)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Auth.AdminToken, log))

	// --- Бронирования ---
	admin.HandleFunc("/bookings", getBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/stats", getBookingStats.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

	// --- История ---
	admin.HandleFunc("/history", searchHistory.Handle).Methods(http.MethodGet)

	// --- Недоступность барберов ---
	admin.HandleFunc("/barbers/{barberId}/availability", getBarberAvailability.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/barbers/{barberId}/availability", createAvailabilityBlock.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/availability/{blockId}", deleteAvailabilityBlock.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
