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
	"github.com/shopspring/decimal"

	cancelBookingHandler "github.com/alexsmw/PlayPoint-VenueBooking/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/alexsmw/PlayPoint-VenueBooking/internal/api/handlers/confirm_booking"
	createDisabledSlotHandler "github.com/alexsmw/PlayPoint-VenueBooking/internal/api/handlers/create_disabled_slot"
	createPriceRuleHandler "github.com/alexsmw/PlayPoint-VenueBooking/internal/api/handlers/create_price_rule"
	deleteDisabledSlotHandler "github.com/alexsmw/PlayPoint-VenueBooking/internal/api/handlers/delete_disabled_slot"
	deletePriceRuleHandler "github.com/alexsmw/PlayPoint-VenueBooking/internal/api/handlers/delete_price_rule"
	failBookingHandler "github.com/alexsmw/PlayPoint-VenueBooking/internal/api/handlers/fail_booking"
	getAvailabilityHandler "github.com/alexsmw/PlayPoint-VenueBooking/internal/api/handlers/get_availability"
	getBookingHandler "github.com/alexsmw/PlayPoint-VenueBooking/internal/api/handlers/get_booking"
	getSlotConfigsHandler "github.com/alexsmw/PlayPoint-VenueBooking/internal/api/handlers/get_slot_configs"
	getUserBookingsHandler "github.com/alexsmw/PlayPoint-VenueBooking/internal/api/handlers/get_user_bookings"
	getVenueBookingsHandler "github.com/alexsmw/PlayPoint-VenueBooking/internal/api/handlers/get_venue_bookings"
	listDisabledSlotsHandler "github.com/alexsmw/PlayPoint-VenueBooking/internal/api/handlers/list_disabled_slots"
	listPriceRulesHandler "github.com/alexsmw/PlayPoint-VenueBooking/internal/api/handlers/list_price_rules"
	reserveSlotHandler "github.com/alexsmw/PlayPoint-VenueBooking/internal/api/handlers/reserve_slot"
	upsertSlotConfigHandler "github.com/alexsmw/PlayPoint-VenueBooking/internal/api/handlers/upsert_slot_config"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/api/middleware"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/config"
	bookingRepo "github.com/alexsmw/PlayPoint-VenueBooking/internal/infra/storage/booking"
	disabledSlotRepo "github.com/alexsmw/PlayPoint-VenueBooking/internal/infra/storage/disabledslot"
	priceRuleRepo "github.com/alexsmw/PlayPoint-VenueBooking/internal/infra/storage/pricerule"
	slotConfigRepo "github.com/alexsmw/PlayPoint-VenueBooking/internal/infra/storage/slotconfig"
	invoiceServiceClient "github.com/alexsmw/PlayPoint-VenueBooking/internal/integrations/invoiceservice"
	ledgerServiceClient "github.com/alexsmw/PlayPoint-VenueBooking/internal/integrations/ledgerservice"
	userServiceClient "github.com/alexsmw/PlayPoint-VenueBooking/internal/integrations/userservice"
	venueServiceClient "github.com/alexsmw/PlayPoint-VenueBooking/internal/integrations/venueservice"
	bookingsService "github.com/alexsmw/PlayPoint-VenueBooking/internal/service/bookings"
	disabledSlotsService "github.com/alexsmw/PlayPoint-VenueBooking/internal/service/disabledslots"
	priceRulesService "github.com/alexsmw/PlayPoint-VenueBooking/internal/service/pricerules"
	slotConfigsService "github.com/alexsmw/PlayPoint-VenueBooking/internal/service/slotconfigs"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/softlock"
	cancelBookingUC "github.com/alexsmw/PlayPoint-VenueBooking/internal/usecase/cancel_booking"
	confirmBookingUC "github.com/alexsmw/PlayPoint-VenueBooking/internal/usecase/confirm_booking"
	getAvailabilityUC "github.com/alexsmw/PlayPoint-VenueBooking/internal/usecase/get_availability"
	reserveSlotUC "github.com/alexsmw/PlayPoint-VenueBooking/internal/usecase/reserve_slot"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/workers/holdexpiry"
	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/dbmetrics"
	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/logger"
	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/metrics"
	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/redisconn"
	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/simpletxmanager"
	"github.com/alexsmw/PlayPoint-VenueBooking/pkg/txmanager"
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

	log.Info("Starting PlayPoint-VenueBooking...")
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

	// Инициализируем менеджер блокировок слотов
	var locks softlock.Manager
	switch cfg.Booking.SoftlockBackend {
	case "redis":
		redisClient, err := redisconn.New(redisconn.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()

		locks = softlock.NewRedisManager(redisClient)
		log.Info("Slot lock backend: redis (addr=%s)", cfg.Redis.Addr)
	default:
		locks = softlock.NewMemoryManager()
		log.Info("Slot lock backend: memory")
	}

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
	ledgerClient := ledgerServiceClient.NewClient(
		cfg.LedgerService.URL,
		cfg.LedgerService.Token,
		time.Duration(cfg.LedgerService.Timeout)*time.Second,
		log,
	)
	invoiceClient := invoiceServiceClient.NewClient(
		cfg.InvoiceService.URL,
		cfg.InvoiceService.Token,
		time.Duration(cfg.InvoiceService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (VenueService=%s, UserService=%s, LedgerService=%s, InvoiceService=%s)",
		cfg.VenueService.URL, cfg.UserService.URL, cfg.LedgerService.URL, cfg.InvoiceService.URL)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		slotConfigRepository   *slotConfigRepo.Repository
		priceRuleRepository    *priceRuleRepo.Repository
		disabledSlotRepository *disabledSlotRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		slotConfigRepository = slotConfigRepo.NewRepository(wrappedDB)
		priceRuleRepository = priceRuleRepo.NewRepository(wrappedDB)
		disabledSlotRepository = disabledSlotRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		slotConfigRepository = slotConfigRepo.NewRepository(db)
		priceRuleRepository = priceRuleRepo.NewRepository(db)
		disabledSlotRepository = disabledSlotRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		venueClient,
		log,
	)
	slotConfigSvc := slotConfigsService.NewService(
		slotConfigRepository,
		venueClient,
		log,
	)
	priceRuleSvc := priceRulesService.NewService(
		priceRuleRepository,
		venueClient,
		log,
	)
	disabledSlotSvc := disabledSlotsService.NewService(
		disabledSlotRepository,
		venueClient,
		log,
	)

	// Инициализируем use cases
	reserveSlotUseCase := reserveSlotUC.NewUseCase(
		bookingRepository,
		slotConfigRepository,
		priceRuleRepository,
		disabledSlotRepository,
		venueClient,
		userClient,
		locks,
		txMgr,
		reserveSlotUC.Params{
			LockTTL:             time.Duration(cfg.Booking.LockTTLMinutes) * time.Minute,
			PlatformFeePercent:  decimal.NewFromFloat(cfg.Booking.PlatformFeePercent),
			AdvanceSharePercent: decimal.NewFromFloat(cfg.Booking.AdvanceSharePercent),
		},
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		slotConfigRepository,
		priceRuleRepository,
		disabledSlotRepository,
		venueClient,
		locks,
		log,
	)

	confirmBookingUseCase := confirmBookingUC.NewUseCase(
		bookingRepository,
		locks,
		ledgerClient,
		invoiceClient,
		log,
	)

	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		venueClient,
		locks,
		log,
	)

	// Запускаем фоновую зачистку просроченных броней
	expiryWorker := holdexpiry.NewWorker(
		bookingRepository,
		locks,
		time.Duration(cfg.Booking.ExpirySweepSeconds)*time.Second,
		log,
	)
	expiryWorker.Start(context.Background())
	defer expiryWorker.Stop()

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	reserveSlot := reserveSlotHandler.NewHandler(reserveSlotUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getVenueBookings := getVenueBookingsHandler.NewHandler(bookingSvc, log)
	getSlotConfigs := getSlotConfigsHandler.NewHandler(slotConfigSvc, log)
	upsertSlotConfig := upsertSlotConfigHandler.NewHandler(slotConfigSvc, log)
	createPriceRule := createPriceRuleHandler.NewHandler(priceRuleSvc, log)
	listPriceRules := listPriceRulesHandler.NewHandler(priceRuleSvc, log)
	deletePriceRule := deletePriceRuleHandler.NewHandler(priceRuleSvc, log)
	createDisabledSlot := createDisabledSlotHandler.NewHandler(disabledSlotSvc, log)
	listDisabledSlots := listDisabledSlotsHandler.NewHandler(disabledSlotSvc, log)
	deleteDisabledSlot := deleteDisabledSlotHandler.NewHandler(disabledSlotSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(confirmBookingUseCase, log)
	failBooking := failBookingHandler.NewHandler(cancelBookingUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (доступность видна анонимно)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.OptionalAuth)

	// Сетка слотов ресурса на дату
	public.HandleFunc("/venues/{venueId}/resources/{resourceId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Резервирование слота
	protected.HandleFunc("/bookings", reserveSlot.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{id}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{id}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// История бронирований пользователя
	protected.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление площадкой (для менеджеров) ---
	// Список бронирований площадки
	protected.HandleFunc("/venues/{venueId}/bookings", getVenueBookings.Handle).Methods(http.MethodGet)

	// Конфигурации слотов площадки
	protected.HandleFunc("/venues/{venueId}/slot-configs", getSlotConfigs.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/venues/{venueId}/slot-configs", upsertSlotConfig.Handle).Methods(http.MethodPut)

	// Правила цен
	protected.HandleFunc("/venues/{venueId}/price-rules", createPriceRule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/venues/{venueId}/price-rules", listPriceRules.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/venues/{venueId}/price-rules/{ruleId}", deletePriceRule.Handle).Methods(http.MethodDelete)

	// Окна блокировок ресурсов
	protected.HandleFunc("/venues/{venueId}/resources/{resourceId}/disabled-slots",
		createDisabledSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/venues/{venueId}/resources/{resourceId}/disabled-slots",
		listDisabledSlots.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/venues/{venueId}/disabled-slots/{slotId}",
		deleteDisabledSlot.Handle).Methods(http.MethodDelete)

	// ============================================================
	// INTERNAL ROUTES (webhook платежного шлюза, статический токен)
	// ============================================================

	internal := r.PathPrefix("/internal").Subrouter()
	internal.Use(middleware.InternalAuth(cfg.Server.InternalToken))

	// Подтверждение оплаты
	internal.HandleFunc("/bookings/{id}/confirm", confirmBooking.Handle).Methods(http.MethodPost)

	// Неуспешная оплата
	internal.HandleFunc("/bookings/{id}/fail", failBooking.Handle).Methods(http.MethodPost)

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
