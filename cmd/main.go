package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-BarberBot/internal/api/handlers/cancel_customer_appointment"
	"github.com/m04kA/SMC-BarberBot/internal/api/handlers/get_available_slots"
	"github.com/m04kA/SMC-BarberBot/internal/api/handlers/get_customer_appointment"
	"github.com/m04kA/SMC-BarberBot/internal/api/handlers/get_day_appointments"
	"github.com/m04kA/SMC-BarberBot/internal/api/handlers/get_nearest_slot"
	"github.com/m04kA/SMC-BarberBot/internal/api/handlers/handle_event"
	"github.com/m04kA/SMC-BarberBot/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBot/internal/clock"
	"github.com/m04kA/SMC-BarberBot/internal/config"
	"github.com/m04kA/SMC-BarberBot/internal/conversation"
	appointmentRepo "github.com/m04kA/SMC-BarberBot/internal/infra/storage/appointment"
	customerRepo "github.com/m04kA/SMC-BarberBot/internal/infra/storage/customer"
	"github.com/m04kA/SMC-BarberBot/internal/infra/storage/migrations"
	assistantClient "github.com/m04kA/SMC-BarberBot/internal/integrations/assistant"
	telegramClient "github.com/m04kA/SMC-BarberBot/internal/integrations/telegram"
	"github.com/m04kA/SMC-BarberBot/internal/notify"
	"github.com/m04kA/SMC-BarberBot/internal/scheduler"
	bookingsService "github.com/m04kA/SMC-BarberBot/internal/service/bookings"
	customersService "github.com/m04kA/SMC-BarberBot/internal/service/customers"
	createBookingUC "github.com/m04kA/SMC-BarberBot/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-BarberBot/internal/usecase/get_available_slots"
	sweepAppointmentsUC "github.com/m04kA/SMC-BarberBot/internal/usecase/sweep_appointments"
	"github.com/m04kA/SMC-BarberBot/pkg/logger"
	"github.com/m04kA/SMC-BarberBot/pkg/metrics"
	"github.com/m04kA/SMC-BarberBot/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
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

	log.Info("Starting SMC-BarberBot...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены); nil-сборщик безопасен
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	shopClock, err := clock.New(cfg.Shop.Timezone)
	if err != nil {
		log.Fatal("Failed to load shop timezone: %v", err)
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

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	// Проверяем соединение
	if err := db.PingContext(startupCtx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if err := migrations.Up(startupCtx, db); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Database migrations applied")

	// Инициализируем репозитории
	txMgr := txmanager.NewTransactionManager(db)
	appointmentRepository := appointmentRepo.NewRepository(db, txMgr)
	customerRepository := customerRepo.NewRepository(db)

	// Уведомления оператора: Telegram или лог, если канал выключен
	var sender notify.Sender = notify.LogSender{Logger: log}
	if cfg.Notifier.Enabled {
		sender = telegramClient.NewClient(cfg.Notifier.APIURL, cfg.Notifier.BotToken, cfg.Notifier.ChatID,
			cfg.Notifier.Timeout(), log)
		log.Info("Operator notifications enabled (chat_id=%d)", cfg.Notifier.ChatID)
	}
	dispatcher := notify.NewDispatcher(sender, cfg.Notifier.QueueSize, cfg.Notifier.Timeout(), metricsCollector, log)

	notifyCtx, stopNotify := context.WithCancel(context.Background())
	var notifyDone sync.WaitGroup
	notifyDone.Add(1)
	go func() {
		defer notifyDone.Done()
		dispatcher.Run(notifyCtx)
	}()

	// Fallback-ассистент; nil интерфейс включает заготовленный ответ
	var assistant conversation.Assistant
	if cfg.Assistant.Enabled {
		assistant = assistantClient.NewClient(cfg.Assistant.URL, cfg.Assistant.APIKey, assistantClient.Options{
			Model:       cfg.Assistant.Model,
			Temperature: cfg.Assistant.Temperature,
			MaxTokens:   cfg.Assistant.MaxTokens,
		}, cfg.Assistant.Timeout(), log)
		log.Info("Assistant enabled (model=%s, timeout=%s)", cfg.Assistant.Model, cfg.Assistant.Timeout())
	}

	// Инициализируем use cases и сервисы
	hours := cfg.Shop.Hours()

	availability := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		shopClock,
		hours,
		cfg.Shop.HorizonDays,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		appointmentRepository,
		customerRepository,
		shopClock,
		dispatcher,
		metricsCollector,
		hours,
		cfg.Shop.HorizonDays,
		log,
	)
	sweepUseCase := sweepAppointmentsUC.NewUseCase(
		appointmentRepository,
		shopClock,
		dispatcher,
		metricsCollector,
		log,
	)
	customerSvc := customersService.NewService(
		customerRepository,
		appointmentRepository,
		txMgr,
		shopClock,
		log,
	)
	bookingSvc := bookingsService.NewService(
		appointmentRepository,
		customerRepository,
		shopClock,
		dispatcher,
		log,
	)

	machine := conversation.NewMachine(
		conversation.NewStore(),
		availability,
		createBookingUseCase,
		customerSvc,
		bookingSvc,
		assistant,
		shopClock,
		metricsCollector,
		conversation.Config{
			ShopName:         cfg.Shop.Name,
			ContactInfo:      cfg.Shop.ContactInfo,
			HaircutPrice:     formatPrice(cfg.Shop.HaircutPrice),
			BeardPrice:       formatPrice(cfg.Shop.BeardPrice),
			Hours:            hours,
			AssistantTimeout: cfg.Assistant.Timeout(),
		},
		log,
	)

	// Ночная очистка прошедших записей
	sweeper, err := scheduler.New(shopClock.Location(), cfg.Sweeper.Schedule, cfg.Sweeper.Timeout(), sweepUseCase, log)
	if err != nil {
		log.Fatal("Failed to configure sweeper: %v", err)
	}

	// Инициализируем handlers
	handleEvent := handle_event.NewHandler(machine, log)
	getAvailableSlots := get_available_slots.NewHandler(availability, shopClock, log)
	getNearestSlot := get_nearest_slot.NewHandler(availability, shopClock, log)
	getDayAppointments := get_day_appointments.NewHandler(bookingSvc, shopClock, log)
	getCustomerAppointment := get_customer_appointment.NewHandler(bookingSvc, log)
	cancelCustomerAppointment := cancel_customer_appointment.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// CHAT GATEWAY
	// ============================================================

	// Входящее событие чата -> исходящие сообщения
	api.HandleFunc("/events", handleEvent.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token header)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.Token, log))

	// Ближайший свободный слот (регистрируется раньше /slots)
	admin.HandleFunc("/slots/nearest", getNearestSlot.Handle).Methods(http.MethodGet)

	// Свободные слоты дня
	admin.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Записи дня
	admin.HandleFunc("/appointments", getDayAppointments.Handle).Methods(http.MethodGet)

	// Активная запись клиента и её отмена
	admin.HandleFunc("/customers/{customerId}/appointment", getCustomerAppointment.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/customers/{customerId}/appointment", cancelCustomerAppointment.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	sweeper.Start()

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

	sweeper.Stop(shutdownCtx)

	// Досылаем уведомления, накопленные до остановки
	stopNotify()
	notifyDone.Wait()

	log.Info("Server stopped gracefully")
}

func formatPrice(amount int) string {
	return fmt.Sprintf("%d AMD", amount)
}
