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

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/cors"

	"github.com/m04kA/SMC-RoomBookingService/internal/api"
	createReservationHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/create_reservation"
	deleteReservationHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/delete_reservation"
	getAvailabilityHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_availability"
	getCatalogHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_catalog"
	getCurrentUserHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_current_user"
	getReservationHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_reservation"
	listReservationsHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/list_reservations"
	updateReservationHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/update_reservation"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/config"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/memory"
	reservationRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/access"
	reservationsService "github.com/m04kA/SMC-RoomBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-RoomBookingService/internal/usecase/admission"
	createReservationUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/get_availability"
	updateReservationUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/update_reservation"
	"github.com/m04kA/SMC-RoomBookingService/internal/validator"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/keylock"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
	"github.com/m04kA/SMC-RoomBookingService/pkg/metrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/txmanager"
)

const rateLimitCleanupInterval = time.Minute

// reservationStore общий набор методов Postgres и in-memory хранилищ
type reservationStore interface {
	admission.Repository
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	Delete(ctx context.Context, id int64) error
}

func main() {
	// Загружаем .env, если он есть
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Failed to load .env: %v\n", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-RoomBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены), иначе получатели остаются nil
	var (
		dbCollector       dbmetrics.Collector
		admissionRecorder admission.Recorder
		httpRecorder      middleware.HTTPRecorder
		metricsHandler    http.Handler
	)
	stopCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		collector := metrics.New(cfg.Metrics.ServiceName)
		dbCollector = collector
		admissionRecorder = collector
		httpRecorder = collector
		metricsHandler = collector.Handler()
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилище и блокировку ключей
	var (
		store  reservationStore
		locker admission.Locker
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store = memory.NewRepository()
		locker = keylock.New()
		log.Warn("Using in-memory storage: reservations are lost on restart")

	default:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		wrappedDB := dbmetrics.WrapWithDefault(db, dbCollector, stopCh)
		store = reservationRepo.NewRepository(wrappedDB)
		locker = txmanager.NewTransactionManager(wrappedDB)
	}

	// Инициализируем валидатор
	reservationValidator, err := validator.New()
	if err != nil {
		log.Fatal("Failed to initialize validator: %v", err)
	}

	// Инициализируем сервисы
	admissionController := admission.NewController(store, locker, admissionRecorder, log)
	guard := access.NewGuard(store, log)
	reservationSvc := reservationsService.NewService(store, guard, log)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(reservationValidator, admissionController, log)
	updateReservationUseCase := updateReservationUC.NewUseCase(guard, reservationValidator, admissionController, log)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(store, log)

	// Инициализируем handlers
	h := api.Handlers{
		ListReservations:  listReservationsHandler.NewHandler(reservationSvc, log),
		GetReservation:    getReservationHandler.NewHandler(reservationSvc, log),
		CreateReservation: createReservationHandler.NewHandler(createReservationUseCase, log),
		UpdateReservation: updateReservationHandler.NewHandler(updateReservationUseCase, log),
		DeleteReservation: deleteReservationHandler.NewHandler(reservationSvc, log),
		Availability:      getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log),
		CurrentUser:       getCurrentUserHandler.NewHandler(log),
		Catalog:           getCatalogHandler.NewHandler(),
	}

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		go rateLimiter.RunCleanup(rateLimitCleanupInterval, stopCh)
		log.Info("Rate limit enabled: rps=%.2f, burst=%d", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Настраиваем роутер
	router := api.NewRouter(h, api.Options{
		Auth: middleware.NewAuthenticator(middleware.AuthConfig{
			Secret:   cfg.Auth.JWTSecret,
			Issuer:   cfg.Auth.Issuer,
			Audience: cfg.Auth.Audience,
		}, log),
		RateLimiter:    rateLimiter,
		Recorder:       httpRecorder,
		MetricsHandler: metricsHandler,
		MetricsPath:    cfg.Metrics.Path,
		Logger:         log,
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	}).Handler(router)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s (storage=%s)", addr, cfg.Storage.Driver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик пула и очистку rate limiter
	close(stopCh)

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
