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

	cancelAppointmentHandler "github.com/atyusan/blue-card-sub005/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/atyusan/blue-card-sub005/internal/api/handlers/create_appointment"
	createBulkSlotsHandler "github.com/atyusan/blue-card-sub005/internal/api/handlers/create_bulk_slots"
	createRecurringSlotsHandler "github.com/atyusan/blue-card-sub005/internal/api/handlers/create_recurring_slots"
	createSlotHandler "github.com/atyusan/blue-card-sub005/internal/api/handlers/create_slot"
	deleteSlotHandler "github.com/atyusan/blue-card-sub005/internal/api/handlers/delete_slot"
	getAppointmentHandler "github.com/atyusan/blue-card-sub005/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/atyusan/blue-card-sub005/internal/api/handlers/get_availability"
	getPatientAppointmentsHandler "github.com/atyusan/blue-card-sub005/internal/api/handlers/get_patient_appointments"
	getScheduleRulesHandler "github.com/atyusan/blue-card-sub005/internal/api/handlers/get_schedule_rules"
	getSlotHandler "github.com/atyusan/blue-card-sub005/internal/api/handlers/get_slot"
	releaseSlotHandler "github.com/atyusan/blue-card-sub005/internal/api/handlers/release_slot"
	rescheduleAppointmentHandler "github.com/atyusan/blue-card-sub005/internal/api/handlers/reschedule_appointment"
	reserveSlotHandler "github.com/atyusan/blue-card-sub005/internal/api/handlers/reserve_slot"
	searchSlotsHandler "github.com/atyusan/blue-card-sub005/internal/api/handlers/search_slots"
	updateAppointmentStatusHandler "github.com/atyusan/blue-card-sub005/internal/api/handlers/update_appointment_status"
	updateSlotHandler "github.com/atyusan/blue-card-sub005/internal/api/handlers/update_slot"
	upsertScheduleRuleHandler "github.com/atyusan/blue-card-sub005/internal/api/handlers/upsert_schedule_rule"
	"github.com/atyusan/blue-card-sub005/internal/api/middleware"
	"github.com/atyusan/blue-card-sub005/internal/config"
	"github.com/atyusan/blue-card-sub005/internal/infra/events"
	appointmentRepo "github.com/atyusan/blue-card-sub005/internal/infra/storage/appointment"
	scheduleRuleRepo "github.com/atyusan/blue-card-sub005/internal/infra/storage/schedulerule"
	slotRepo "github.com/atyusan/blue-card-sub005/internal/infra/storage/slot"
	timeOffRepo "github.com/atyusan/blue-card-sub005/internal/infra/storage/timeoff"
	staffServiceClient "github.com/atyusan/blue-card-sub005/internal/integrations/staffservice"
	"github.com/atyusan/blue-card-sub005/internal/jobs"
	appointmentsService "github.com/atyusan/blue-card-sub005/internal/service/appointments"
	bookingService "github.com/atyusan/blue-card-sub005/internal/service/booking"
	conflictsService "github.com/atyusan/blue-card-sub005/internal/service/conflicts"
	scheduleRulesService "github.com/atyusan/blue-card-sub005/internal/service/schedulerules"
	slotsService "github.com/atyusan/blue-card-sub005/internal/service/slots"
	createAppointmentUC "github.com/atyusan/blue-card-sub005/internal/usecase/create_appointment"
	createBulkSlotsUC "github.com/atyusan/blue-card-sub005/internal/usecase/create_bulk_slots"
	createRecurringSlotsUC "github.com/atyusan/blue-card-sub005/internal/usecase/create_recurring_slots"
	getAvailabilityUC "github.com/atyusan/blue-card-sub005/internal/usecase/get_availability"
	"github.com/atyusan/blue-card-sub005/pkg/dbmetrics"
	"github.com/atyusan/blue-card-sub005/pkg/logger"
	"github.com/atyusan/blue-card-sub005/pkg/metrics"
	"github.com/atyusan/blue-card-sub005/pkg/simpletxmanager"
	"github.com/atyusan/blue-card-sub005/pkg/txmanager"
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

	log.Info("Starting SchedulingService...")
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

	// Инициализируем клиент кадрового сервиса
	staffClient := staffServiceClient.NewClient(
		cfg.StaffService.URL,
		time.Duration(cfg.StaffService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (StaffService=%s timeout=%ds)",
		cfg.StaffService.URL, cfg.StaffService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		slotRepository         *slotRepo.Repository
		appointmentRepository  *appointmentRepo.Repository
		scheduleRuleRepository *scheduleRuleRepo.Repository
		timeOffRepository      *timeOffRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	// Интерфейс бизнес-метрик (реальные коллекторы или заглушка)
	type BusinessMetrics interface {
		IncAppointmentCreated()
		IncAppointmentCancelled()
		IncReservation(result string)
		IncConflictsDetected(conflictType string, count int)
		AddSlotsGenerated(mode string, count int)
	}
	var businessMetrics BusinessMetrics

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = slotRepo.NewRepository(wrappedDB)
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		scheduleRuleRepository = scheduleRuleRepo.NewRepository(wrappedDB)
		timeOffRepository = timeOffRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
		businessMetrics = metricsCollector
	} else {
		slotRepository = slotRepo.NewRepository(db)
		appointmentRepository = appointmentRepo.NewRepository(db)
		scheduleRuleRepository = scheduleRuleRepo.NewRepository(db)
		timeOffRepository = timeOffRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
		businessMetrics = metrics.Noop{}
	}

	// Инициализируем публикацию событий (если включена)
	var eventPublisher interface {
		Publish(ctx context.Context, event events.AppointmentEvent) error
		Close() error
	}
	if cfg.Events.Enabled {
		publisher, err := events.NewPublisher(cfg.Events.URL, cfg.Events.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to message broker: %v", err)
		}
		eventPublisher = publisher
		log.Info("Event publisher connected (exchange=%s)", cfg.Events.Exchange)
	} else {
		eventPublisher = events.NoopPublisher{}
		log.Info("Event publishing disabled")
	}
	defer eventPublisher.Close()

	// LRU-кэш правил расписания
	ruleCache, err := getAvailabilityUC.NewRuleCache(cfg.Availability.RuleCacheSize)
	if err != nil {
		log.Fatal("Failed to initialize rule cache: %v", err)
	}

	// Инициализируем сервисы
	conflictsSvc := conflictsService.NewService(
		slotRepository,
		appointmentRepository,
		timeOffRepository,
		businessMetrics,
		log,
	)
	bookingSvc := bookingService.NewService(
		slotRepository,
		businessMetrics,
		log,
	)
	slotsSvc := slotsService.NewService(
		slotRepository,
		conflictsSvc,
		txMgr,
		businessMetrics,
		log,
	)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		bookingSvc,
		conflictsSvc,
		txMgr,
		eventPublisher,
		&appointmentsService.RealTimeProvider{},
		businessMetrics,
		log,
	)
	scheduleRulesSvc := scheduleRulesService.NewService(
		scheduleRuleRepository,
		ruleCache,
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		slotRepository,
		bookingSvc,
		conflictsSvc,
		staffClient,
		eventPublisher,
		txMgr,
		businessMetrics,
		log,
	)
	createRecurringSlotsUseCase := createRecurringSlotsUC.NewUseCase(
		slotRepository,
		conflictsSvc,
		txMgr,
		businessMetrics,
		log,
	)
	createBulkSlotsUseCase := createBulkSlotsUC.NewUseCase(
		slotRepository,
		conflictsSvc,
		txMgr,
		businessMetrics,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		scheduleRuleRepository,
		slotRepository,
		timeOffRepository,
		ruleCache,
		time.UTC,
		log,
	)

	// Запускаем фоновые задачи (если включены)
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(
			appointmentRepository,
			bookingSvc,
			eventPublisher,
			cfg.Jobs.ReminderLeadMinutes,
			cfg.Jobs.NoShowGraceMinutes,
			log,
		)
		if err := scheduler.Start(); err != nil {
			log.Fatal("Failed to start background jobs: %v", err)
		}
		log.Info("Background jobs started (reminder_lead=%dm, no_show_grace=%dm)",
			cfg.Jobs.ReminderLeadMinutes, cfg.Jobs.NoShowGraceMinutes)
	}

	// Инициализируем handlers
	createSlot := createSlotHandler.NewHandler(slotsSvc, log)
	getSlot := getSlotHandler.NewHandler(slotsSvc, log)
	updateSlot := updateSlotHandler.NewHandler(slotsSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotsSvc, log)
	searchSlots := searchSlotsHandler.NewHandler(slotsSvc, log)
	reserveSlot := reserveSlotHandler.NewHandler(bookingSvc, log)
	releaseSlot := releaseSlotHandler.NewHandler(bookingSvc, log)
	createRecurringSlots := createRecurringSlotsHandler.NewHandler(createRecurringSlotsUseCase, log)
	createBulkSlots := createBulkSlotsHandler.NewHandler(createBulkSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getPatientAppointments := getPatientAppointmentsHandler.NewHandler(appointmentsSvc, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	upsertScheduleRule := upsertScheduleRuleHandler.NewHandler(scheduleRulesSvc, log)
	getScheduleRules := getScheduleRulesHandler.NewHandler(scheduleRulesSvc, log)
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

	// Сетка доступности провайдера
	api.HandleFunc("/providers/{providerId}/availability/range",
		getAvailability.HandleRange).Methods(http.MethodGet)
	api.HandleFunc("/providers/{providerId}/availability",
		getAvailability.HandleDate).Methods(http.MethodGet)

	// Правила расписания провайдера
	api.HandleFunc("/providers/{providerId}/schedule-rules",
		getScheduleRules.Handle).Methods(http.MethodGet)

	// Поиск и просмотр слотов
	api.HandleFunc("/slots", searchSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots/{slotId:[0-9]+}", getSlot.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Слоты ---
	// Создание слота
	protected.HandleFunc("/slots", createSlot.Handle).Methods(http.MethodPost)

	// Массовая генерация слотов
	protected.HandleFunc("/slots/recurring", createRecurringSlots.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/slots/bulk", createBulkSlots.Handle).Methods(http.MethodPost)

	// Изменение и удаление слота
	protected.HandleFunc("/slots/{slotId:[0-9]+}", updateSlot.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/slots/{slotId:[0-9]+}", deleteSlot.Handle).Methods(http.MethodDelete)

	// Ручное управление местами слота
	protected.HandleFunc("/slots/{slotId:[0-9]+}/reserve", reserveSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/slots/{slotId:[0-9]+}/release", releaseSlot.Handle).Methods(http.MethodPost)

	// --- Приёмы ---
	// Создание приёма
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение приёма по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Перенос, отмена и смена статуса приёма
	protected.HandleFunc("/appointments/{appointmentId}/reschedule",
		rescheduleAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/cancel",
		cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/status",
		updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// История приёмов пациента
	protected.HandleFunc("/patients/{patientId}/appointments",
		getPatientAppointments.Handle).Methods(http.MethodGet)

	// --- Расписание провайдера ---
	protected.HandleFunc("/providers/{providerId}/schedule-rules/{dayOfWeek}",
		upsertScheduleRule.Handle).Methods(http.MethodPut)

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

	// Останавливаем фоновые задачи
	if scheduler != nil {
		scheduler.Stop()
		log.Info("Background jobs stopped")
	}

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
