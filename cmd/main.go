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

	blockSlotHandler "github.com/m04kA/PlayCourt-BookingService/internal/api/handlers/block_slot"
	cancelBookingHandler "github.com/m04kA/PlayCourt-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/PlayCourt-BookingService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/PlayCourt-BookingService/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/m04kA/PlayCourt-BookingService/internal/api/handlers/get_user_bookings"
	getVenueBookingsHandler "github.com/m04kA/PlayCourt-BookingService/internal/api/handlers/get_venue_bookings"
	getVenueSlotsHandler "github.com/m04kA/PlayCourt-BookingService/internal/api/handlers/get_venue_slots"
	unblockSlotHandler "github.com/m04kA/PlayCourt-BookingService/internal/api/handlers/unblock_slot"
	"github.com/m04kA/PlayCourt-BookingService/internal/api/middleware"
	"github.com/m04kA/PlayCourt-BookingService/internal/config"
	"github.com/m04kA/PlayCourt-BookingService/internal/infra/events"
	bookingRepo "github.com/m04kA/PlayCourt-BookingService/internal/infra/storage/booking"
	slotBlockRepo "github.com/m04kA/PlayCourt-BookingService/internal/infra/storage/slotblock"
	venueServiceClient "github.com/m04kA/PlayCourt-BookingService/internal/integrations/venueservice"
	bookingsService "github.com/m04kA/PlayCourt-BookingService/internal/service/bookings"
	slotBlocksService "github.com/m04kA/PlayCourt-BookingService/internal/service/slotblocks"
	createBookingUC "github.com/m04kA/PlayCourt-BookingService/internal/usecase/create_booking"
	getVenueSlotsUC "github.com/m04kA/PlayCourt-BookingService/internal/usecase/get_venue_slots"
	"github.com/m04kA/PlayCourt-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PlayCourt-BookingService/pkg/logger"
	"github.com/m04kA/PlayCourt-BookingService/pkg/metrics"
	"github.com/m04kA/PlayCourt-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/PlayCourt-BookingService/pkg/txmanager"
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

	log.Info("Starting PlayCourt-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

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

	// Инициализируем клиента VenueService
	venueClient := venueServiceClient.NewClient(
		cfg.VenueService.URL,
		time.Duration(cfg.VenueService.Timeout)*time.Second,
		log,
	)
	log.Info("VenueService client initialized (url=%s, timeout=%ds)",
		cfg.VenueService.URL, cfg.VenueService.Timeout)

	// Инициализируем продюсер событий (или заглушку, если Kafka выключена)
	var eventSink interface {
		Emit(ctx context.Context, eventType string, key string, payload interface{}) error
	}
	if cfg.Kafka.Enabled {
		producer := events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, metricsCollector, log)
		defer producer.Close()
		eventSink = producer
		log.Info("Kafka producer initialized (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	} else {
		eventSink = events.NoopSink{}
		log.Info("Kafka disabled, events will not be published")
	}

	// Инициализируем репозитории и менеджер транзакций (с метриками или без)
	var (
		bookingRepository   *bookingRepo.Repository
		slotBlockRepository *slotBlockRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		slotBlockRepository = slotBlockRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		slotBlockRepository = slotBlockRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		venueClient,
		eventSink,
		log,
	)
	slotBlockSvc := slotBlocksService.NewService(
		slotBlockRepository,
		venueClient,
		eventSink,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		slotBlockRepository,
		venueClient,
		txMgr,
		eventSink,
		log,
	)

	getVenueSlotsUseCase := getVenueSlotsUC.NewUseCase(
		bookingRepository,
		slotBlockRepository,
		venueClient,
		log,
	)

	// Инициализируем handlers
	getVenueSlots := getVenueSlotsHandler.NewHandler(getVenueSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getVenueBookings := getVenueBookingsHandler.NewHandler(bookingSvc, log)
	blockSlot := blockSlotHandler.NewHandler(slotBlockSvc, log)
	unblockSlot := unblockSlotHandler.NewHandler(slotBlockSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Слоты площадки на дату с актуальной доступностью
	api.HandleFunc("/venues/{venueId}/slots", getVenueSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования с расчетом возврата
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление площадкой (для менеджеров) ---
	// Список бронирований площадки
	protected.HandleFunc("/venues/{venueId}/bookings", getVenueBookings.Handle).Methods(http.MethodGet)

	// Блокировка слота
	protected.HandleFunc("/venues/{venueId}/blocks", blockSlot.Handle).Methods(http.MethodPost)

	// Снятие блокировки слота
	protected.HandleFunc("/venues/{venueId}/blocks", unblockSlot.Handle).Methods(http.MethodDelete)

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

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
