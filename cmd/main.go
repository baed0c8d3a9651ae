package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	adminLoginHandler "github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers/admin_login"
	adminMeHandler "github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers/admin_me"
	cancelBookingHandler "github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers/create_booking"
	createClosedDayHandler "github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers/create_closed_day"
	createServiceHandler "github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers/create_service"
	deleteAppointmentHandler "github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers/delete_appointment"
	deleteClosedDayHandler "github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers/delete_closed_day"
	deleteServiceHandler "github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers/delete_service"
	getAllAppointmentsHandler "github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers/get_all_appointments"
	getAvailableSlotsHandler "github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers/get_available_slots"
	getBusinessHoursHandler "github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers/get_business_hours"
	getClientBookingsHandler "github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers/get_client_bookings"
	getClosedDaysHandler "github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers/get_closed_days"
	getServiceHandler "github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers/get_service"
	getServicesHandler "github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers/get_services"
	healthHandler "github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers/health"
	streamHandler "github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers/stream_appointments"
	updateAppointmentStatusHandler "github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers/update_appointment_status"
	updateBusinessHourHandler "github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers/update_business_hour"
	updateServiceHandler "github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers/update_service"
	"github.com/m04kA/PawsBubbles-BookingService/internal/api/middleware"
	"github.com/m04kA/PawsBubbles-BookingService/internal/config"
	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
	kafkaEvents "github.com/m04kA/PawsBubbles-BookingService/internal/infra/events/kafka"
	"github.com/m04kA/PawsBubbles-BookingService/internal/infra/realtime/pgnotify"
	adminRepo "github.com/m04kA/PawsBubbles-BookingService/internal/infra/storage/admin"
	appointmentRepo "github.com/m04kA/PawsBubbles-BookingService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/PawsBubbles-BookingService/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/PawsBubbles-BookingService/internal/infra/storage/schedule"
	"github.com/m04kA/PawsBubbles-BookingService/internal/realtime"
	authService "github.com/m04kA/PawsBubbles-BookingService/internal/service/auth"
	bookingsService "github.com/m04kA/PawsBubbles-BookingService/internal/service/bookings"
	catalogService "github.com/m04kA/PawsBubbles-BookingService/internal/service/catalog"
	scheduleService "github.com/m04kA/PawsBubbles-BookingService/internal/service/schedule"
	createBookingUC "github.com/m04kA/PawsBubbles-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/PawsBubbles-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/PawsBubbles-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PawsBubbles-BookingService/pkg/logger"
	"github.com/m04kA/PawsBubbles-BookingService/pkg/metrics"
	"github.com/m04kA/PawsBubbles-BookingService/pkg/tracing"
	"github.com/m04kA/PawsBubbles-BookingService/pkg/txmanager"
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

	log.Info("Starting PawsBubbles-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Часовой пояс салона: все даты и слоты считаются в нём
	location, err := cfg.Business.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Business.Timezone, err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Трассировка (если выключена - только пропагаторы)
	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to setup tracing: %v", err)
	}

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

	// Без метрик обёртка просто проксирует вызовы
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// ============================================================
	// REPOSITORIES & SERVICES
	// ============================================================

	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	adminRepository := adminRepo.NewRepository(wrappedDB)

	catalogSvc := catalogService.NewService(
		catalogRepository,
		catalogService.NewLRUListCache(cfg.Catalog.CacheSize, time.Duration(cfg.Catalog.CacheTTLSeconds)*time.Second),
		log,
	)
	scheduleSvc := scheduleService.NewService(scheduleRepository, location, log)
	bookingSvc := bookingsService.NewService(
		appointmentRepository,
		txMgr,
		bookingsService.Config{
			Location:            location,
			CancellationLead:    time.Duration(cfg.Business.CancellationLeadHours) * time.Hour,
			WhatsAppCountryCode: cfg.Business.WhatsAppCountryCode,
		},
		nil,
		metricsCollector,
		log,
	)
	authSvc := authService.NewService(
		adminRepository,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute,
		nil,
		log,
	)

	if err := authSvc.EnsureAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		log.Fatal("Failed to bootstrap admin account: %v", err)
	}

	// Инициализируем use cases
	rules := getAvailableSlotsUC.Rules{
		StepMinutes:   cfg.Business.SlotStepMinutes,
		CutoffMinutes: cfg.Business.BookingCutoffMinutes,
	}
	clock := &getAvailableSlotsUC.RealTimeProvider{Location: location}

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		catalogRepository,
		scheduleRepository,
		appointmentRepository,
		rules,
		clock,
		metricsCollector,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		scheduleRepository,
		txMgr,
		rules,
		domain.AppointmentStatus(cfg.Business.InitialStatus),
		clock,
		metricsCollector,
		log,
	)

	// ============================================================
	// REALTIME: LISTEN/NOTIFY -> hub (SSE) + Kafka
	// ============================================================

	hub := realtime.NewHub(cfg.Realtime.SubscriberBufferSize, metricsCollector, log)
	publishers := realtime.Fanout{hub}

	var producer *kafkaEvents.Producer
	if cfg.Kafka.Enabled {
		producer, err = kafkaEvents.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		if err != nil {
			log.Fatal("Failed to create kafka producer: %v", err)
		}
		publishers = append(publishers, producer)
		log.Info("Kafka producer enabled (brokers=%s, topic=%s)", strings.Join(cfg.Kafka.Brokers, ","), cfg.Kafka.Topic)
	}

	listener := pgnotify.NewListener(pgnotify.Config{
		DSN:                  cfg.Database.DSN(),
		MinReconnectInterval: time.Duration(cfg.Realtime.MinReconnectSeconds) * time.Second,
		MaxReconnectInterval: time.Duration(cfg.Realtime.MaxReconnectSeconds) * time.Second,
		Location:             location,
	}, publishers, log)

	listenerDone := make(chan struct{})
	go func() {
		defer close(listenerDone)
		if err := listener.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("Realtime listener stopped: %v", err)
		}
	}()

	// ============================================================
	// RATE LIMITING (Redis)
	// ============================================================

	var (
		redisClient    *redis.Client
		bookingLimiter *middleware.RedisRateLimiter
		loginLimiter   *middleware.RedisRateLimiter
	)
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancelPing := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is not reachable at %s: %v (fail_open=%t)", cfg.Redis.Addr, err, cfg.Redis.FailOpen)
		}
		cancelPing()

		window := time.Duration(cfg.Redis.RateLimitWindowSecs) * time.Second
		bookingLimiter = middleware.NewRedisRateLimiter(redisClient, cfg.Redis.RateLimitRequests, window,
			"ratelimit:bookings", cfg.Redis.FailOpen, log)
		loginLimiter = middleware.NewRedisRateLimiter(redisClient, cfg.Redis.RateLimitRequests, window,
			"ratelimit:admin-login", cfg.Redis.FailOpen, log)
		log.Info("Rate limiting enabled: %d requests per %s", cfg.Redis.RateLimitRequests, window)
	}

	// Инициализируем handlers
	getServices := getServicesHandler.NewHandler(catalogSvc, log)
	getService := getServiceHandler.NewHandler(catalogSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, location, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, location, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	stream := streamHandler.NewHandler(hub, time.Duration(cfg.Realtime.HeartbeatSeconds)*time.Second, log)

	adminLogin := adminLoginHandler.NewHandler(authSvc, log)
	adminMe := adminMeHandler.NewHandler(authSvc)
	getAllAppointments := getAllAppointmentsHandler.NewHandler(bookingSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(bookingSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(bookingSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)
	getBusinessHours := getBusinessHoursHandler.NewHandler(scheduleSvc, log)
	updateBusinessHour := updateBusinessHourHandler.NewHandler(scheduleSvc, log)
	getClosedDays := getClosedDaysHandler.NewHandler(scheduleSvc, location, log)
	createClosedDay := createClosedDayHandler.NewHandler(scheduleSvc, log)
	deleteClosedDay := deleteClosedDayHandler.NewHandler(scheduleSvc, log)
	health := healthHandler.NewHandler(wrappedDB, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (без метрик - passthrough)
	r.Use(middleware.MetricsMiddleware(metricsCollector))

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", health.Live).Methods(http.MethodGet)
	r.HandleFunc("/readyz", health.Ready).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// --- Каталог услуг ---
	api.HandleFunc("/services", getServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}", getService.Handle).Methods(http.MethodGet)

	// --- Мастер записи: дата и слоты ---
	api.HandleFunc("/availability/min-date", getAvailableSlots.HandleMinDate).Methods(http.MethodGet)
	api.HandleFunc("/availability/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Записи клиента ---
	api.Handle("/bookings", bookingLimiter.Middleware(http.HandlerFunc(createBooking.Handle))).Methods(http.MethodPost)
	api.HandleFunc("/bookings", getClientBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/stream", stream.HandleClient).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Вход администратора
	api.Handle("/admin/login", loginLimiter.Middleware(http.HandlerFunc(adminLogin.Handle))).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют Bearer токен)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth(authSvc, log))

	admin.HandleFunc("/me", adminMe.Handle).Methods(http.MethodGet)

	// --- Записи ---
	admin.HandleFunc("/appointments", getAllAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/stream", stream.HandleAdmin).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/appointments/{appointmentId}", deleteAppointment.Handle).Methods(http.MethodDelete)

	// --- Каталог ---
	admin.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/services/{serviceId}", updateService.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/services/{serviceId}", deleteService.Handle).Methods(http.MethodDelete)

	// --- Расписание ---
	admin.HandleFunc("/business-hours", getBusinessHours.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/business-hours/{dayOfWeek}", updateBusinessHour.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/closed-days", getClosedDays.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/closed-days", createClosedDay.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/closed-days/{closedDayId}", deleteClosedDay.Handle).Methods(http.MethodDelete)

	// Общие middleware; SSE не трассируем, span жил бы всё время подписки
	handler := middleware.Chain(r,
		middleware.RequestID,
		middleware.Recovery(log),
		middleware.AccessLog(log),
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.BodyLimit(cfg.Server.MaxBodyBytes),
	)
	handler = otelhttp.NewHandler(handler, cfg.Metrics.ServiceName,
		otelhttp.WithFilter(func(req *http.Request) bool {
			return !strings.HasSuffix(req.URL.Path, "/stream")
		}),
	)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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

	// Закрываем SSE подписки, иначе Shutdown ждёт их до таймаута
	hub.Close()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем listener, затем producer
	stop()
	<-listenerDone

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Error("Failed to close kafka producer: %v", err)
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}
