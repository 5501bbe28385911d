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

	cancelBookingHandler "github.com/jamroom/booking-service/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/jamroom/booking-service/internal/api/handlers/create_booking"
	getBookingHandler "github.com/jamroom/booking-service/internal/api/handlers/get_booking"
	getBookingsHandler "github.com/jamroom/booking-service/internal/api/handlers/get_bookings"
	getPolicyHandler "github.com/jamroom/booking-service/internal/api/handlers/get_policy"
	getStudioBookingsHandler "github.com/jamroom/booking-service/internal/api/handlers/get_studio_bookings"
	updatePolicyHandler "github.com/jamroom/booking-service/internal/api/handlers/update_policy"
	"github.com/jamroom/booking-service/internal/api/middleware"
	"github.com/jamroom/booking-service/internal/config"
	"github.com/jamroom/booking-service/internal/infra/kv"
	bookingRepo "github.com/jamroom/booking-service/internal/infra/storage/booking"
	reminderRepo "github.com/jamroom/booking-service/internal/infra/storage/reminder"
	settingsRepo "github.com/jamroom/booking-service/internal/infra/storage/settings"
	calendarServiceClient "github.com/jamroom/booking-service/internal/integrations/calendarservice"
	identityServiceClient "github.com/jamroom/booking-service/internal/integrations/identityservice"
	"github.com/jamroom/booking-service/internal/notifier"
	bookingsService "github.com/jamroom/booking-service/internal/service/bookings"
	remindersService "github.com/jamroom/booking-service/internal/service/reminders"
	settingsService "github.com/jamroom/booking-service/internal/service/settings"
	admitBookingUC "github.com/jamroom/booking-service/internal/usecase/admit_booking"
	cancelBookingUC "github.com/jamroom/booking-service/internal/usecase/cancel_booking"
	"github.com/jamroom/booking-service/pkg/dbmetrics"
	"github.com/jamroom/booking-service/pkg/logger"
	"github.com/jamroom/booking-service/pkg/metrics"
	"github.com/jamroom/booking-service/pkg/simpletxmanager"
	"github.com/jamroom/booking-service/pkg/txmanager"
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

	log.Info("Starting booking-service...")
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

	// Подключаемся к Redis (распределённый rate limiting)
	kvStore, err := kv.NewStore(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatal("Failed to connect to Redis: %v", err)
	}
	defer kvStore.Close()
	log.Info("Successfully connected to Redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	// Подключаемся к RabbitMQ (если шина событий включена)
	var eventPublisher notifier.EventPublisher
	if cfg.RabbitMQ.Enabled {
		publisher, err := notifier.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
		eventPublisher = publisher
		log.Info("Successfully connected to RabbitMQ (exchange=%s)", cfg.RabbitMQ.Exchange)
	} else {
		log.Info("RabbitMQ disabled, booking events will not be published")
	}

	// Инициализируем интеграционных клиентов
	calendarClient := calendarServiceClient.NewClient(
		cfg.CalendarService.URL,
		time.Duration(cfg.CalendarService.Timeout)*time.Second,
		log,
	)
	identityClient := identityServiceClient.NewClient(
		cfg.IdentityService.URL,
		time.Duration(cfg.IdentityService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CalendarService=%s timeout=%ds, IdentityService=%s timeout=%ds)",
		cfg.CalendarService.URL, cfg.CalendarService.Timeout, cfg.IdentityService.URL, cfg.IdentityService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		reminderRepository *reminderRepo.Repository
		settingsRepository *settingsRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		reminderRepository = reminderRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		reminderRepository = reminderRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	settingsSvc := settingsService.NewService(settingsRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	reminderScheduler := remindersService.NewScheduler(reminderRepository, log)
	bookingNotifier := notifier.New(eventPublisher, calendarClient, bookingRepository, log)

	// Инициализируем use cases
	admitBookingUseCase := admitBookingUC.New(
		bookingRepository,
		settingsSvc,
		reminderScheduler,
		bookingNotifier,
		txMgr,
		&admitBookingUC.RealTimeProvider{},
		metricsCollector,
		log,
	)

	cancelBookingUseCase := cancelBookingUC.New(
		bookingRepository,
		reminderScheduler,
		identityClient,
		bookingNotifier,
		txMgr,
		&admitBookingUC.RealTimeProvider{},
		cancelBookingUC.Policy{
			RequireNotice: cfg.Booking.RequireCancellationNotice,
			NoticeHours:   cfg.Booking.CancellationNoticeHours,
		},
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(admitBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookings := getBookingsHandler.NewHandler(bookingSvc, log)
	getStudioBookings := getStudioBookingsHandler.NewHandler(bookingSvc, log)
	getPolicy := getPolicyHandler.NewHandler(settingsSvc, log)
	updatePolicy := updatePolicyHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Текущая политика бронирования
	api.HandleFunc("/settings/policy", getPolicy.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Contact-Phone header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// Мутирующие операции дополнительно проходят rate limit по номеру
	rateLimit := middleware.RateLimit(
		kvStore,
		int64(cfg.Booking.RateLimitPerPhone),
		time.Duration(cfg.Booking.RateLimitWindowSeconds)*time.Second,
		log,
	)

	mutating := protected.PathPrefix("").Subrouter()
	mutating.Use(rateLimit)

	// --- Бронирования ---
	// Приём нового бронирования
	mutating.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Отмена бронирования
	mutating.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований по номеру телефона
	protected.HandleFunc("/bookings", getBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// --- Персонал ---
	// Дневная сводка по студии
	protected.HandleFunc("/studios/{studio}/bookings", getStudioBookings.Handle).Methods(http.MethodGet)

	// Обновление политики бронирования
	protected.HandleFunc("/settings/policy", updatePolicy.Handle).Methods(http.MethodPut)

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
