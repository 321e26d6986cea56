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

	approveBookingHandler "github.com/m04kA/SMC-VisitBookingService/internal/api/handlers/approve_booking"
	bulkDecideHandler "github.com/m04kA/SMC-VisitBookingService/internal/api/handlers/bulk_decide_bookings"
	createBookingHandler "github.com/m04kA/SMC-VisitBookingService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/SMC-VisitBookingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-VisitBookingService/internal/api/handlers/get_booking"
	listBookingsHandler "github.com/m04kA/SMC-VisitBookingService/internal/api/handlers/list_bookings"
	rejectBookingHandler "github.com/m04kA/SMC-VisitBookingService/internal/api/handlers/reject_booking"
	"github.com/m04kA/SMC-VisitBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-VisitBookingService/internal/config"
	bookingRepo "github.com/m04kA/SMC-VisitBookingService/internal/infra/storage/booking"
	smsClient "github.com/m04kA/SMC-VisitBookingService/internal/integrations/smsgateway"
	bookingsService "github.com/m04kA/SMC-VisitBookingService/internal/service/bookings"
	approveBookingUC "github.com/m04kA/SMC-VisitBookingService/internal/usecase/approve_booking"
	createBookingUC "github.com/m04kA/SMC-VisitBookingService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SMC-VisitBookingService/internal/usecase/get_availability"
	rejectBookingUC "github.com/m04kA/SMC-VisitBookingService/internal/usecase/reject_booking"
	"github.com/m04kA/SMC-VisitBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VisitBookingService/pkg/logger"
	"github.com/m04kA/SMC-VisitBookingService/pkg/metrics"
	"github.com/m04kA/SMC-VisitBookingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-VisitBookingService/pkg/txmanager"
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

	log.Info("Starting SMC-VisitBookingService...")
	log.Info("Configuration loaded from config.toml")
	log.Info("Segment capacity: %d slots", cfg.Booking.MaxSlotsPerSegment)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Инициализируем клиент SMS-шлюза
	notifier := smsClient.NewClient(
		cfg.SMSGateway.URL,
		time.Duration(cfg.SMSGateway.Timeout)*time.Second,
		log,
	)
	log.Info("SMS gateway client initialized (url=%s, timeout=%ds)",
		cfg.SMSGateway.URL, cfg.SMSGateway.Timeout)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозиторий и transaction manager (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		txMgr             TxManager
	)

	lockTimeout := time.Duration(cfg.Database.LockTimeout) * time.Millisecond
	log.Info("Transaction lock wait limited to %dms", cfg.Database.LockTimeout)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB, lockTimeout)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db, lockTimeout)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(bookingRepository, txMgr, log)
	approveBookingUseCase := approveBookingUC.NewUseCase(
		bookingRepository,
		notifier,
		txMgr,
		cfg.Booking.MaxSlotsPerSegment,
		log,
	)
	rejectBookingUseCase := rejectBookingUC.NewUseCase(bookingRepository, notifier, txMgr, log)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		cfg.Booking.MaxSlotsPerSegment,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	approveBooking := approveBookingHandler.NewHandler(approveBookingUseCase, log)
	rejectBooking := rejectBookingHandler.NewHandler(rejectBookingUseCase, log)
	bulkDecide := bulkDecideHandler.NewHandler(approveBookingUseCase, rejectBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
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

	// Оставшаяся вместимость сегментов на дату
	api.HandleFunc("/slots", getAvailability.Handle).Methods(http.MethodGet)

	// Создание бронирования (checkout)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Operator-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Список и просмотр бронирований
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Решения по бронированиям
	protected.HandleFunc("/bookings/{bookingId}/approve", approveBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reject", rejectBooking.Handle).Methods(http.MethodPatch)

	// Пакетные решения
	protected.HandleFunc("/admin/bookings/bulk-decide", bulkDecide.Handle).Methods(http.MethodPost)

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
