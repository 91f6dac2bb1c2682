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

	"github.com/go-co-op/gocron/v2"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/canchub/court-booking-service/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/canchub/court-booking-service/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/canchub/court-booking-service/internal/api/handlers/create_booking"
	declineBookingHandler "github.com/canchub/court-booking-service/internal/api/handlers/decline_booking"
	expireBookingsHandler "github.com/canchub/court-booking-service/internal/api/handlers/expire_bookings"
	getAvailabilityHandler "github.com/canchub/court-booking-service/internal/api/handlers/get_availability"
	getBookingHandler "github.com/canchub/court-booking-service/internal/api/handlers/get_booking"
	getCourtBookingsHandler "github.com/canchub/court-booking-service/internal/api/handlers/get_court_bookings"
	getOwnerBookingsHandler "github.com/canchub/court-booking-service/internal/api/handlers/get_owner_bookings"
	getUserBookingsHandler "github.com/canchub/court-booking-service/internal/api/handlers/get_user_bookings"
	managePricesHandler "github.com/canchub/court-booking-service/internal/api/handlers/manage_prices"
	manageSchedulesHandler "github.com/canchub/court-booking-service/internal/api/handlers/manage_schedules"
	updateBookingHandler "github.com/canchub/court-booking-service/internal/api/handlers/update_booking"
	"github.com/canchub/court-booking-service/internal/api/middleware"
	"github.com/canchub/court-booking-service/internal/config"
	"github.com/canchub/court-booking-service/internal/domain"
	bookingRepo "github.com/canchub/court-booking-service/internal/infra/storage/booking"
	priceRepo "github.com/canchub/court-booking-service/internal/infra/storage/price"
	scheduleRepo "github.com/canchub/court-booking-service/internal/infra/storage/schedule"
	userServiceClient "github.com/canchub/court-booking-service/internal/integrations/userservice"
	venueServiceClient "github.com/canchub/court-booking-service/internal/integrations/venueservice"
	"github.com/canchub/court-booking-service/internal/notifications"
	bookingsService "github.com/canchub/court-booking-service/internal/service/bookings"
	pricesService "github.com/canchub/court-booking-service/internal/service/prices"
	schedulesService "github.com/canchub/court-booking-service/internal/service/schedules"
	createBookingUC "github.com/canchub/court-booking-service/internal/usecase/create_booking"
	expireBookingsUC "github.com/canchub/court-booking-service/internal/usecase/expire_bookings"
	getAvailabilityUC "github.com/canchub/court-booking-service/internal/usecase/get_availability"
	updateBookingUC "github.com/canchub/court-booking-service/internal/usecase/update_booking"
	"github.com/canchub/court-booking-service/pkg/dbmetrics"
	"github.com/canchub/court-booking-service/pkg/logger"
	"github.com/canchub/court-booking-service/pkg/metrics"
	"github.com/canchub/court-booking-service/pkg/mq"
	"github.com/canchub/court-booking-service/pkg/simpletxmanager"
	"github.com/canchub/court-booking-service/pkg/txmanager"
)

// TxManager объединяет транзакционные интерфейсы сервисов и usecases
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

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

	log.Info("Starting court-booking-service...")
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

	// Инициализируем интеграционных клиентов
	venueClient := venueServiceClient.NewClient(
		cfg.VenueService.URL,
		time.Duration(cfg.VenueService.Timeout)*time.Second,
		log,
	)
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (VenueService=%s timeout=%ds, UserService=%s timeout=%ds)",
		cfg.VenueService.URL, cfg.VenueService.Timeout, cfg.UserService.URL, cfg.UserService.Timeout)

	// Инициализируем публикацию событий бронирований
	var notifier notifications.Notifier = notifications.NewNopNotifier()
	if cfg.Notifications.Enabled {
		publisher, err := mq.NewPublisher(cfg.Notifications.AMQPURL, cfg.Notifications.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
		notifier = notifications.NewAMQPNotifier(publisher, log)
		log.Info("Booking events will be published to exchange %q", cfg.Notifications.Exchange)
	} else {
		log.Info("Booking event notifications disabled")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		scheduleRepository *scheduleRepo.Repository
		priceRepository    *priceRepo.Repository
		txMgr              TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		priceRepository = priceRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		priceRepository = priceRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	stateMachine := domain.NewDefaultStateMachine()

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		venueClient,
		userClient,
		txMgr,
		stateMachine,
		notifier,
		&bookingsService.RealTimeProvider{},
		cfg.Booking.LateWindowHours,
		log,
	)
	scheduleSvc := schedulesService.NewService(
		scheduleRepository,
		venueClient,
		log,
	)
	priceSvc := pricesService.NewService(
		priceRepository,
		venueClient,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		priceRepository,
		venueClient,
		txMgr,
		notifier,
		cfg.Booking.PendingTTLMinutes,
		cfg.Booking.AutoConfirm,
		log,
	)
	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		priceRepository,
		txMgr,
		notifier,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		priceRepository,
		cfg.Booking.Currency,
		log,
	)
	expireBookingsUseCase := expireBookingsUC.NewUseCase(
		bookingRepository,
		txMgr,
		notifier,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	declineBooking := declineBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getCourtBookings := getCourtBookingsHandler.NewHandler(bookingSvc, log)
	getOwnerBookings := getOwnerBookingsHandler.NewHandler(bookingSvc, log)
	expireBookings := expireBookingsHandler.NewHandler(expireBookingsUseCase, log)
	manageSchedules := manageSchedulesHandler.NewHandler(scheduleSvc, log)
	managePrices := managePricesHandler.NewHandler(priceSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}", updateBooking.Handle).Methods(http.MethodPut)
	api.HandleFunc("/bookings/{id}/confirm", confirmBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/decline", declineBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// --- Списки бронирований ---
	api.HandleFunc("/users/{id}/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/courts/{id}/bookings", getCourtBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/owners/{id}/bookings", getOwnerBookings.Handle).Methods(http.MethodGet)

	// --- Доступность ---
	api.HandleFunc("/courts/{id}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	api.HandleFunc("/admin/bookings/expire", expireBookings.Handle).Methods(http.MethodPost)

	// --- Расписания площадок ---
	api.HandleFunc("/courts/{id}/schedules", manageSchedules.HandleCreate).Methods(http.MethodPost)
	api.HandleFunc("/courts/{id}/schedules", manageSchedules.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/schedules/{id}", manageSchedules.HandleUpdate).Methods(http.MethodPut)
	api.HandleFunc("/schedules/{id}", manageSchedules.HandleDelete).Methods(http.MethodDelete)

	// --- Правила цен ---
	api.HandleFunc("/courts/{id}/prices", managePrices.HandleCreate).Methods(http.MethodPost)
	api.HandleFunc("/courts/{id}/prices", managePrices.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/prices/{id}", managePrices.HandleUpdate).Methods(http.MethodPut)
	api.HandleFunc("/prices/{id}", managePrices.HandleDelete).Methods(http.MethodDelete)

	// Периодическая экспирация просроченных PENDING бронирований
	var scheduler gocron.Scheduler
	if cfg.Booking.ExpireSweepSeconds > 0 {
		scheduler, err = gocron.NewScheduler()
		if err != nil {
			log.Fatal("Failed to create scheduler: %v", err)
		}
		_, err = scheduler.NewJob(
			gocron.DurationJob(time.Duration(cfg.Booking.ExpireSweepSeconds)*time.Second),
			gocron.NewTask(func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				expired, err := expireBookingsUseCase.Execute(ctx)
				if err != nil {
					log.Error("Expire sweep failed: %v", err)
					return
				}
				if expired > 0 {
					log.Info("Expire sweep completed: %d bookings expired", expired)
				}
			}),
		)
		if err != nil {
			log.Fatal("Failed to schedule expire sweep: %v", err)
		}
		scheduler.Start()
		log.Info("Expire sweep scheduled every %d seconds", cfg.Booking.ExpireSweepSeconds)
	} else {
		log.Info("Expire sweep disabled")
	}

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

	if scheduler != nil {
		if err := scheduler.Shutdown(); err != nil {
			log.Error("Scheduler shutdown error: %v", err)
		}
	}

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
